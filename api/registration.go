package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Adaptare-Software/workshop-registration/registration"
	"github.com/Adaptare-Software/workshop-registration/slices"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type PatchAdminRegistrationRequestObject struct {
	Id   string
	Body *FlagUpdate
}

// GetAdminRegistrations pages through registrations newest first. The filter
// narrows the rows of each page; the cursor always walks the unfiltered list.
func (a *API) GetAdminRegistrations(ctx context.Context, params GetAdminRegistrationsParams) (Response, error) {
	limit := defaultListLimit

	if params.Limit != nil {
		userLimit := *params.Limit
		if userLimit < 1 || userLimit > maxListLimit {
			a.log(ctx).Warn("Limit out of bounds", "limit", userLimit)

			return errorResponse(http.StatusBadRequest, LimitOutOfBounds,
				fmt.Sprintf("Limit must be between 1 and %d", maxListLimit)), nil
		}
		limit = userLimit
	}

	filter := registration.FilterAll
	if params.Filter != nil {
		parsed, err := registration.ParseFilter(*params.Filter)
		if err != nil {
			return errorResponse(http.StatusBadRequest, InvalidBody, err.Error()), nil
		}
		filter = parsed
	}

	result, err := a.db.GetRegistrations(ctx, int32(limit), params.Cursor)
	if err != nil {
		a.log(ctx).Error("Failed to get registrations", "error", err)

		var registrationErr *registration.Error
		if errors.As(err, &registrationErr) {
			switch registrationErr.Reason {
			case registration.REASON_INVALID_CURSOR:
				return errorResponse(http.StatusBadRequest, InvalidCursor, "Cursor is invalid"), nil
			}
		}
		return errorResponse(http.StatusInternalServerError, InternalError, "Failed to get registrations"), nil
	}

	return Response{
		StatusCode: http.StatusOK,
		Body: RegistrationPage{
			Data:        slices.Map(filter.Apply(result.Data), registrationToApiRegistration),
			Cursor:      result.Cursor,
			HasNextPage: result.HasNextPage,
		},
	}, nil
}

func (a *API) PatchAdminRegistration(ctx context.Context, request PatchAdminRegistrationRequestObject) (Response, error) {
	if request.Body == nil {
		return errorResponse(http.StatusBadRequest, EmptyBody, "Must specify a body"), nil
	}

	flag, err := registration.ParseFlag(request.Body.Field)
	if err != nil {
		return errorResponse(http.StatusBadRequest, InvalidBody, err.Error()), nil
	}

	err = a.db.UpdateRegistrationFlag(ctx, request.Id, flag, request.Body.Value)
	if err != nil {
		a.log(ctx).Error("Failed to update registration flag", "error", err, "registration-id", request.Id, "flag", flag)

		var registrationErr *registration.Error
		if errors.As(err, &registrationErr) {
			switch registrationErr.Reason {
			case registration.REASON_REGISTRATION_DOES_NOT_EXIST:
				return errorResponse(http.StatusNotFound, NotFound, "Registration not found"), nil
			case registration.REASON_UNKNOWN_FLAG:
				return errorResponse(http.StatusBadRequest, InvalidBody, registrationErr.Message), nil
			}
		}
		return errorResponse(http.StatusInternalServerError, InternalError, "Failed to update registration"), nil
	}

	a.log(ctx).Info("Registration flag updated", "registration-id", request.Id, "flag", flag, "value", request.Body.Value)

	return Response{StatusCode: http.StatusNoContent}, nil
}

func registrationToApiRegistration(reg registration.Registration) Registration {
	return Registration{
		Id:            reg.ID,
		CreatedAt:     reg.CreatedAt,
		Name:          reg.Name,
		Email:         reg.Email,
		Phone:         reg.Phone,
		TaxId:         reg.TaxID,
		TicketType:    Category(reg.Category),
		PaymentMethod: PaymentMethod(reg.PaymentMethod),
		Installments:  reg.Installments,
		Amount:        reg.Amount,
		IsSent:        reg.IsSent,
		IsPaid:        reg.IsPaid,
	}
}
