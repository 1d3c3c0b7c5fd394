package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/Adaptare-Software/workshop-registration/checkout"
	"github.com/Adaptare-Software/workshop-registration/pricing"
	"github.com/Adaptare-Software/workshop-registration/ptr"
	"github.com/Adaptare-Software/workshop-registration/slices"
)

type PostCheckoutRequestObject struct {
	Body *OpenCheckoutRequest
}

type CheckoutRequestObject struct {
	Id string
}

type PutCheckoutContactRequestObject struct {
	Id   string
	Body *Contact
}

type PutCheckoutCategoryRequestObject struct {
	Id   string
	Body *CategorySelection
}

type PutCheckoutPaymentRequestObject struct {
	Id   string
	Body *Payment
}

func (a *API) PostCheckout(ctx context.Context, request PostCheckoutRequestObject) (Response, error) {
	category := pricing.Adult
	if request.Body != nil && request.Body.Category != nil {
		parsed, err := pricing.ParseCategory(string(*request.Body.Category))
		if err != nil {
			a.log(ctx).Warn("Invalid category for checkout", "error", err)

			return errorResponse(http.StatusBadRequest, InvalidBody, err.Error()), nil
		}
		category = parsed
	}

	snap := a.sessions.Open(category)
	a.log(ctx).Info("Checkout opened", "session-id", snap.ID, "category", category)

	return Response{StatusCode: http.StatusCreated, Body: snapshotToApiSession(snap)}, nil
}

func (a *API) GetCheckout(ctx context.Context, request CheckoutRequestObject) (Response, error) {
	snap, err := a.sessions.Get(request.Id)
	if err != nil {
		return a.checkoutErrorResponse(ctx, err), nil
	}

	return sessionResponse(snap), nil
}

func (a *API) DeleteCheckout(ctx context.Context, request CheckoutRequestObject) (Response, error) {
	a.sessions.Close(request.Id)

	return Response{StatusCode: http.StatusNoContent}, nil
}

func (a *API) PutCheckoutContact(ctx context.Context, request PutCheckoutContactRequestObject) (Response, error) {
	if request.Body == nil {
		return errorResponse(http.StatusBadRequest, EmptyBody, "Must specify a body"), nil
	}

	contact := checkout.Contact{
		Name:  request.Body.Name,
		Email: request.Body.Email,
		Phone: request.Body.Phone,
		TaxID: request.Body.TaxId,
	}
	snap, err := a.sessions.Update(request.Id, func(w *checkout.Wizard) error {
		return w.SetContact(contact)
	})
	if err != nil {
		return a.checkoutErrorResponse(ctx, err), nil
	}

	return sessionResponse(snap), nil
}

func (a *API) PutCheckoutCategory(ctx context.Context, request PutCheckoutCategoryRequestObject) (Response, error) {
	if request.Body == nil {
		return errorResponse(http.StatusBadRequest, EmptyBody, "Must specify a body"), nil
	}

	category := pricing.Category(request.Body.Category)
	snap, err := a.sessions.Update(request.Id, func(w *checkout.Wizard) error {
		return w.SelectCategory(category)
	})
	if err != nil {
		return a.checkoutErrorResponse(ctx, err), nil
	}

	return sessionResponse(snap), nil
}

func (a *API) PostCheckoutContactConfirm(ctx context.Context, request CheckoutRequestObject) (Response, error) {
	snap, err := a.sessions.Update(request.Id, func(w *checkout.Wizard) error {
		return w.ConfirmContact()
	})
	if err != nil {
		return a.checkoutErrorResponse(ctx, err), nil
	}

	return sessionResponse(snap), nil
}

func (a *API) PostCheckoutBack(ctx context.Context, request CheckoutRequestObject) (Response, error) {
	snap, err := a.sessions.Update(request.Id, func(w *checkout.Wizard) error {
		return w.Back()
	})
	if err != nil {
		return a.checkoutErrorResponse(ctx, err), nil
	}

	return sessionResponse(snap), nil
}

func (a *API) PutCheckoutPayment(ctx context.Context, request PutCheckoutPaymentRequestObject) (Response, error) {
	if request.Body == nil {
		return errorResponse(http.StatusBadRequest, EmptyBody, "Must specify a body"), nil
	}

	payment := checkout.Payment{
		Method:       pricing.Method(request.Body.Method),
		Installments: ptr.Deref(request.Body.Installments, 1),
	}
	snap, err := a.sessions.Update(request.Id, func(w *checkout.Wizard) error {
		return w.SetPayment(payment)
	})
	if err != nil {
		return a.checkoutErrorResponse(ctx, err), nil
	}

	return sessionResponse(snap), nil
}

func (a *API) PostCheckoutSubmit(ctx context.Context, request CheckoutRequestObject) (Response, error) {
	snap, err := a.sessions.Submit(ctx, request.Id)
	if err != nil {
		return a.checkoutErrorResponse(ctx, err), nil
	}

	a.log(ctx).Info("Checkout submitted", "session-id", snap.ID, "registration-id", snap.RegistrationID)

	return sessionResponse(snap), nil
}

func (a *API) checkoutErrorResponse(ctx context.Context, err error) Response {
	var checkoutErr *checkout.Error
	if !errors.As(err, &checkoutErr) {
		a.log(ctx).Error("Unexpected checkout error", "error", err)

		return errorResponse(http.StatusInternalServerError, InternalError, "Something went wrong")
	}

	a.log(ctx).Warn("Checkout step rejected", "reason", checkoutErr.Reason, "error", err)

	switch checkoutErr.Reason {
	case checkout.REASON_SESSION_NOT_FOUND:
		return errorResponse(http.StatusNotFound, NotFound, "Checkout session not found")
	case checkout.REASON_INVALID_TRANSITION:
		return errorResponse(http.StatusConflict, InvalidTransition, checkoutErr.Message)
	case checkout.REASON_SUBMIT_IN_FLIGHT:
		return errorResponse(http.StatusConflict, SubmitInFlight, checkoutErr.Message)
	case checkout.REASON_MISSING_CONTACT_FIELDS:
		return Response{
			StatusCode: http.StatusUnprocessableEntity,
			Body: Error{
				Code:    MissingContactFields,
				Message: checkoutErr.Message,
				Fields: slices.Map(checkout.FieldProblems(err), func(p checkout.FieldProblem) FieldError {
					return FieldError{Field: p.Field, Message: p.Message}
				}),
			},
		}
	case checkout.REASON_INVALID_CATEGORY, checkout.REASON_INVALID_PAYMENT:
		return errorResponse(http.StatusBadRequest, InvalidBody, checkoutErr.Message)
	case checkout.REASON_SUBMIT_FAILED:
		return errorResponse(http.StatusBadGateway, SubmitFailed, checkoutErr.Message)
	}

	return errorResponse(http.StatusInternalServerError, InternalError, "Something went wrong")
}

func sessionResponse(snap checkout.Snapshot) Response {
	return Response{StatusCode: http.StatusOK, Body: snapshotToApiSession(snap)}
}

func snapshotToApiSession(snap checkout.Snapshot) CheckoutSession {
	session := CheckoutSession{
		Id:       snap.ID,
		Stage:    Stage(snap.Stage.String()),
		Step:     snap.Step(),
		Category: Category(snap.Category),
		Contact: Contact{
			Name:  snap.Contact.Name,
			Email: snap.Contact.Email,
			Phone: snap.Contact.Phone,
			TaxId: snap.Contact.TaxID,
		},
		Payment: Payment{
			Method:       PaymentMethod(snap.Payment.Method),
			Installments: ptr.Int(snap.Payment.Installments),
		},
		Quote:     quoteToApiQuote(snap.Quote),
		Succeeded: snap.Succeeded(),
	}
	if snap.ErrorMessage != "" {
		session.Error = ptr.String(snap.ErrorMessage)
	}
	if snap.RegistrationID != "" {
		session.RegistrationId = ptr.String(snap.RegistrationID)
	}
	return session
}
