package api

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Adaptare-Software/workshop-registration/admin"
	"github.com/Adaptare-Software/workshop-registration/landing"
	"github.com/Adaptare-Software/workshop-registration/pricing"
	"github.com/Adaptare-Software/workshop-registration/registration"
)

const alertToggleFailed = "toggle_failed"

func (a *API) GetLanding(ctx context.Context) (Response, error) {
	return Response{StatusCode: http.StatusOK, Body: a.landing}, nil
}

// landingPage renders the marketing page. ?category= highlights a card.
func (a *API) landingPage(w http.ResponseWriter, r *http.Request) {
	selected, err := pricing.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		selected = ""
	}

	var buf bytes.Buffer
	if err := landing.Render(&buf, a.landing, selected); err != nil {
		a.log(r.Context()).Error("Failed to render landing page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	writeHTML(w, http.StatusOK, buf.Bytes())
}

func (a *API) adminPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := registration.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		filter = registration.FilterAll
	}

	page := admin.Page{
		Filter:   filter,
		Location: a.location,
	}
	if r.URL.Query().Get("alert") == alertToggleFailed {
		page.Alert = admin.ToggleFailedMessage
	}

	table := a.newAdminTable(ctx)
	if err := table.Load(ctx); err != nil {
		page.LoadError = err.Error()
	} else {
		table.SetFilter(filter)
		page.Rows = table.Rows()
	}

	var buf bytes.Buffer
	if err := admin.RenderHTML(&buf, page); err != nil {
		a.log(ctx).Error("Failed to render admin page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	writeHTML(w, http.StatusOK, buf.Bytes())
}

// adminToggle writes the flag value the admin asked for on the HTML table and
// sends the browser back to the list it came from.
func (a *API) adminToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	flag, err := registration.ParseFlag(r.URL.Query().Get("field"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	value, err := strconv.ParseBool(r.URL.Query().Get("value"))
	if err != nil {
		http.Error(w, "value must be true or false", http.StatusBadRequest)
		return
	}

	query := url.Values{}
	query.Set("filter", r.URL.Query().Get("filter"))

	table := a.newAdminTable(ctx)
	err = table.Load(ctx)
	if err == nil {
		err = table.Set(ctx, id, flag, value)
	}
	if err != nil {
		a.log(ctx).Warn("Admin toggle failed", "error", err, "registration-id", id, "flag", flag, "value", value)
		query.Set("alert", alertToggleFailed)
	}

	http.Redirect(w, r, "/admin?"+query.Encode(), http.StatusSeeOther)
}

func (a *API) newAdminTable(ctx context.Context) *admin.Table {
	logger := a.log(ctx)

	return admin.NewTable(a.db, admin.AlerterFunc(func(ctx context.Context, message string) {
		logger.WarnContext(ctx, "Admin alert", "message", message)
	}), logger)
}

func writeHTML(w http.ResponseWriter, statusCode int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	w.Write(body)
}
