package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Adaptare-Software/workshop-registration/mask"
	"github.com/Adaptare-Software/workshop-registration/pricing"
	"github.com/Adaptare-Software/workshop-registration/ptr"
	"github.com/Adaptare-Software/workshop-registration/slices"
)

func (a *API) GetPricing(ctx context.Context, params GetPricingParams) (Response, error) {
	category, err := pricing.ParseCategory(string(params.Category))
	if err != nil {
		return errorResponse(http.StatusBadRequest, InvalidBody, err.Error()), nil
	}

	method := pricing.Pix
	if params.Method != nil {
		method, err = pricing.ParseMethod(string(*params.Method))
		if err != nil {
			return errorResponse(http.StatusBadRequest, InvalidBody, err.Error()), nil
		}
	}

	installments := 1
	if params.Installments != nil && method != pricing.Pix {
		installments = *params.Installments
	}
	if !pricing.ValidInstallments(installments) {
		return errorResponse(http.StatusBadRequest, InvalidBody,
			fmt.Sprintf("Installments must be between 1 and %d", pricing.MaxInstallments)), nil
	}

	return Response{
		StatusCode: http.StatusOK,
		Body: PricingResponse{
			Quote:              quoteToApiQuote(pricing.Calculate(category, method, installments)),
			InstallmentOptions: slices.Map(pricing.InstallmentOptions(category), installmentOptionToApi),
		},
	}, nil
}

func (a *API) PostMask(ctx context.Context, body *MaskRequest) (Response, error) {
	if body == nil {
		return errorResponse(http.StatusBadRequest, EmptyBody, "Must specify a body"), nil
	}

	resp := MaskRequest{}
	if body.Phone != nil {
		resp.Phone = ptr.String(mask.Phone(*body.Phone))
	}
	if body.TaxId != nil {
		resp.TaxId = ptr.String(mask.TaxID(*body.TaxId))
	}

	return Response{StatusCode: http.StatusOK, Body: resp}, nil
}

func quoteToApiQuote(q pricing.Quote) Quote {
	display := QuoteDisplay{
		Base:  pricing.FormatBRL(q.Base),
		Final: pricing.FormatBRL(q.Final),
	}
	if q.Discount {
		display.Discount = ptr.String(pricing.FormatBRL(q.DiscountAmount()))
	}
	if q.InstallmentValue != nil {
		display.Installment = ptr.String(fmt.Sprintf("em %dx de %s", q.Installments, pricing.FormatBRL(*q.InstallmentValue)))
	}

	return Quote{
		Category:         Category(q.Category),
		Method:           PaymentMethod(q.Method),
		Installments:     q.Installments,
		Base:             q.Base,
		Final:            q.Final,
		Discount:         q.Discount,
		DiscountAmount:   q.DiscountAmount(),
		InstallmentValue: q.InstallmentValue,
		Display:          display,
	}
}

func installmentOptionToApi(o pricing.InstallmentOption) InstallmentOption {
	return InstallmentOption{
		Count: o.Count,
		Value: o.Value,
		Label: o.Label,
	}
}
