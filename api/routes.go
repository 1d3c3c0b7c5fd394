package api

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"
)

// Handler builds the whole HTTP surface: the validated JSON API under /v1/
// and the server rendered pages.
func (a *API) Handler() (http.Handler, error) {
	swagger, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	swagger.Servers = nil

	v1 := http.NewServeMux()
	v1.HandleFunc("GET /v1/landing", a.serve(func(r *http.Request) (Response, error) {
		return a.GetLanding(r.Context())
	}))
	v1.HandleFunc("GET /v1/pricing", a.serve(func(r *http.Request) (Response, error) {
		var params GetPricingParams
		if err := bindQuery(r, &params.Category, "category", true); err != nil {
			return invalidParam(err), nil
		}
		if err := bindQuery(r, &params.Method, "method", false); err != nil {
			return invalidParam(err), nil
		}
		if err := bindQuery(r, &params.Installments, "installments", false); err != nil {
			return invalidParam(err), nil
		}
		return a.GetPricing(r.Context(), params)
	}))
	v1.HandleFunc("POST /v1/mask", a.serve(func(r *http.Request) (Response, error) {
		body, err := decodeBody[MaskRequest](r)
		if err != nil {
			return invalidBody(err), nil
		}
		return a.PostMask(r.Context(), body)
	}))
	v1.HandleFunc("POST /v1/checkout", a.serve(func(r *http.Request) (Response, error) {
		body, err := decodeBody[OpenCheckoutRequest](r)
		if err != nil {
			return invalidBody(err), nil
		}
		return a.PostCheckout(r.Context(), PostCheckoutRequestObject{Body: body})
	}))
	v1.HandleFunc("GET /v1/checkout/{id}", a.serve(func(r *http.Request) (Response, error) {
		return a.GetCheckout(r.Context(), CheckoutRequestObject{Id: r.PathValue("id")})
	}))
	v1.HandleFunc("DELETE /v1/checkout/{id}", a.serve(func(r *http.Request) (Response, error) {
		return a.DeleteCheckout(r.Context(), CheckoutRequestObject{Id: r.PathValue("id")})
	}))
	v1.HandleFunc("PUT /v1/checkout/{id}/contact", a.serve(func(r *http.Request) (Response, error) {
		body, err := decodeBody[Contact](r)
		if err != nil {
			return invalidBody(err), nil
		}
		return a.PutCheckoutContact(r.Context(), PutCheckoutContactRequestObject{Id: r.PathValue("id"), Body: body})
	}))
	v1.HandleFunc("PUT /v1/checkout/{id}/category", a.serve(func(r *http.Request) (Response, error) {
		body, err := decodeBody[CategorySelection](r)
		if err != nil {
			return invalidBody(err), nil
		}
		return a.PutCheckoutCategory(r.Context(), PutCheckoutCategoryRequestObject{Id: r.PathValue("id"), Body: body})
	}))
	v1.HandleFunc("POST /v1/checkout/{id}/contact/confirm", a.serve(func(r *http.Request) (Response, error) {
		return a.PostCheckoutContactConfirm(r.Context(), CheckoutRequestObject{Id: r.PathValue("id")})
	}))
	v1.HandleFunc("POST /v1/checkout/{id}/back", a.serve(func(r *http.Request) (Response, error) {
		return a.PostCheckoutBack(r.Context(), CheckoutRequestObject{Id: r.PathValue("id")})
	}))
	v1.HandleFunc("PUT /v1/checkout/{id}/payment", a.serve(func(r *http.Request) (Response, error) {
		body, err := decodeBody[Payment](r)
		if err != nil {
			return invalidBody(err), nil
		}
		return a.PutCheckoutPayment(r.Context(), PutCheckoutPaymentRequestObject{Id: r.PathValue("id"), Body: body})
	}))
	v1.HandleFunc("POST /v1/checkout/{id}/submit", a.serve(func(r *http.Request) (Response, error) {
		return a.PostCheckoutSubmit(r.Context(), CheckoutRequestObject{Id: r.PathValue("id")})
	}))
	v1.HandleFunc("GET /v1/admin/registrations", a.serve(func(r *http.Request) (Response, error) {
		var params GetAdminRegistrationsParams
		if err := bindQuery(r, &params.Filter, "filter", false); err != nil {
			return invalidParam(err), nil
		}
		if err := bindQuery(r, &params.Limit, "limit", false); err != nil {
			return invalidParam(err), nil
		}
		if err := bindQuery(r, &params.Cursor, "cursor", false); err != nil {
			return invalidParam(err), nil
		}
		return a.GetAdminRegistrations(r.Context(), params)
	}))
	v1.HandleFunc("PATCH /v1/admin/registrations/{id}", a.serve(func(r *http.Request) (Response, error) {
		body, err := decodeBody[FlagUpdate](r)
		if err != nil {
			return invalidBody(err), nil
		}
		return a.PatchAdminRegistration(r.Context(), PatchAdminRegistrationRequestObject{Id: r.PathValue("id"), Body: body})
	}))

	root := http.NewServeMux()
	root.Handle("/v1/", a.openapiValidateMiddleware(swagger)(v1))
	root.HandleFunc("GET /{$}", a.landingPage)
	root.HandleFunc("GET /admin", a.adminPage)
	root.HandleFunc("POST /admin/registrations/{id}/toggle", a.adminToggle)
	root.HandleFunc("POST /inscricao", a.wizardOpen)
	root.HandleFunc("GET /inscricao/{id}", a.wizardPage)
	root.HandleFunc("POST /inscricao/{id}/contato", a.wizardContact)
	root.HandleFunc("POST /inscricao/{id}/voltar", a.wizardBack)
	root.HandleFunc("POST /inscricao/{id}/pagamento", a.wizardPayment)
	root.HandleFunc("POST /inscricao/{id}/fechar", a.wizardClose)

	return useMiddlewares(root,
		a.loggingMiddleware(),
		a.requestContextMiddleware(),
		a.corsMiddleware(),
		a.tracingMiddleware(),
	), nil
}

func bindQuery(r *http.Request, dest any, name string, required bool) error {
	return runtime.BindQueryParameter("form", true, required, name, r.URL.Query(), dest)
}

func invalidParam(err error) Response {
	return errorResponse(http.StatusBadRequest, InputValidationError, fmt.Sprintf("Invalid query parameter: %s", err))
}

func invalidBody(err error) Response {
	return errorResponse(http.StatusBadRequest, InvalidBody, fmt.Sprintf("Invalid body: %s", err))
}
