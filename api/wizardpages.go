package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/Adaptare-Software/workshop-registration/checkout"
	"github.com/Adaptare-Software/workshop-registration/landing"
	"github.com/Adaptare-Software/workshop-registration/pricing"
)

func wizardPath(id string) string {
	return "/inscricao/" + id
}

// wizardOpen starts a checkout session from the landing page form. When the
// form already carries contact fields, step 1 is applied right away.
func (a *API) wizardOpen(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	category, err := pricing.ParseCategory(r.PostFormValue("category"))
	if err != nil {
		category = pricing.Adult
	}

	snap := a.sessions.Open(category)
	a.log(r.Context()).Info("Checkout opened", "session-id", snap.ID, "category", category, "source", "form")

	if !r.PostForm.Has("name") {
		http.Redirect(w, r, wizardPath(snap.ID), http.StatusSeeOther)
		return
	}

	a.applyContactForm(w, r, snap.ID)
}

func (a *API) wizardPage(w http.ResponseWriter, r *http.Request) {
	snap, err := a.sessions.Get(r.PathValue("id"))
	if err != nil {
		a.wizardRejected(w, r, snap, err)
		return
	}

	a.renderWizard(w, r, http.StatusOK, landing.WizardPage{Session: snap})
}

func (a *API) wizardContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	a.applyContactForm(w, r, r.PathValue("id"))
}

// applyContactForm stores the step 1 fields, switches the ticket if one was
// chosen and moves on to payment. Rejections re-render step 1.
func (a *API) applyContactForm(w http.ResponseWriter, r *http.Request, id string) {
	contact := checkout.Contact{
		Name:  r.PostFormValue("name"),
		Email: r.PostFormValue("email"),
		Phone: r.PostFormValue("phone"),
		TaxID: r.PostFormValue("taxId"),
	}
	category := r.PostFormValue("category")

	snap, err := a.sessions.Update(id, func(wz *checkout.Wizard) error {
		if err := wz.SetContact(contact); err != nil {
			return err
		}
		if category != "" {
			if err := wz.SelectCategory(pricing.Category(category)); err != nil {
				return err
			}
		}
		return wz.ConfirmContact()
	})
	if err != nil {
		a.wizardRejected(w, r, snap, err)
		return
	}

	http.Redirect(w, r, wizardPath(id), http.StatusSeeOther)
}

func (a *API) wizardBack(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	snap, err := a.sessions.Update(id, func(wz *checkout.Wizard) error {
		return wz.Back()
	})
	if err != nil {
		a.wizardRejected(w, r, snap, err)
		return
	}

	http.Redirect(w, r, wizardPath(id), http.StatusSeeOther)
}

// wizardPayment stores the step 2 choices. With action=submit the
// registration is written as well; anything else only refreshes the quote.
func (a *API) wizardPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	installments := 1
	if raw := r.PostFormValue("installments"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			snap, getErr := a.sessions.Get(id)
			if getErr == nil {
				getErr = checkout.NewInvalidPaymentError("Número de parcelas inválido", err)
			}
			a.wizardRejected(w, r, snap, getErr)
			return
		}
		installments = n
	}
	payment := checkout.Payment{
		Method:       pricing.Method(r.PostFormValue("method")),
		Installments: installments,
	}

	snap, err := a.sessions.Update(id, func(wz *checkout.Wizard) error {
		return wz.SetPayment(payment)
	})
	if err == nil && r.PostFormValue("action") == "submit" {
		snap, err = a.sessions.Submit(ctx, id)
		if err == nil {
			a.log(ctx).Info("Checkout submitted", "session-id", snap.ID, "registration-id", snap.RegistrationID)
		}
	}
	if err != nil {
		a.wizardRejected(w, r, snap, err)
		return
	}

	http.Redirect(w, r, wizardPath(id), http.StatusSeeOther)
}

func (a *API) wizardClose(w http.ResponseWriter, r *http.Request) {
	a.sessions.Close(r.PathValue("id"))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// wizardRejected re-renders the form with the reason a step was refused,
// using the same status codes as the JSON checkout API.
func (a *API) wizardRejected(w http.ResponseWriter, r *http.Request, snap checkout.Snapshot, err error) {
	ctx := r.Context()

	var checkoutErr *checkout.Error
	if !errors.As(err, &checkoutErr) {
		a.log(ctx).Error("Unexpected checkout error", "error", err)
		http.Error(w, "something went wrong", http.StatusInternalServerError)
		return
	}

	a.log(ctx).Warn("Checkout step rejected", "reason", checkoutErr.Reason, "error", err)

	page := landing.WizardPage{Session: snap, Message: checkoutErr.Message}
	status := http.StatusInternalServerError
	switch checkoutErr.Reason {
	case checkout.REASON_SESSION_NOT_FOUND:
		page = landing.WizardPage{Expired: true}
		status = http.StatusNotFound
	case checkout.REASON_INVALID_TRANSITION, checkout.REASON_SUBMIT_IN_FLIGHT:
		status = http.StatusConflict
	case checkout.REASON_MISSING_CONTACT_FIELDS:
		page.Problems = landing.ProblemsByField(checkout.FieldProblems(err))
		status = http.StatusUnprocessableEntity
	case checkout.REASON_INVALID_CATEGORY, checkout.REASON_INVALID_PAYMENT:
		status = http.StatusBadRequest
	case checkout.REASON_SUBMIT_FAILED:
		status = http.StatusBadGateway
	}

	a.renderWizard(w, r, status, page)
}

func (a *API) renderWizard(w http.ResponseWriter, r *http.Request, status int, page landing.WizardPage) {
	var buf bytes.Buffer
	if err := landing.RenderWizard(&buf, page); err != nil {
		a.log(r.Context()).Error("Failed to render checkout page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	writeHTML(w, status, buf.Bytes())
}
