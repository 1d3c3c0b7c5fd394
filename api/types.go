package api

import "time"

// Models mirror the schemas in openapi.yaml.

type ErrorCode string

const (
	AlreadyExists        ErrorCode = "AlreadyExists"
	EmptyBody            ErrorCode = "EmptyBody"
	InputValidationError ErrorCode = "InputValidationError"
	InternalError        ErrorCode = "InternalError"
	InvalidBody          ErrorCode = "InvalidBody"
	InvalidCursor        ErrorCode = "InvalidCursor"
	InvalidTransition    ErrorCode = "InvalidTransition"
	LimitOutOfBounds     ErrorCode = "LimitOutOfBounds"
	MissingContactFields ErrorCode = "MissingContactFields"
	NotFound             ErrorCode = "NotFound"
	SubmitFailed         ErrorCode = "SubmitFailed"
	SubmitInFlight       ErrorCode = "SubmitInFlight"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type Category string

type PaymentMethod string

type Stage string

type MaskRequest struct {
	Phone *string `json:"phone,omitempty"`
	TaxId *string `json:"taxId,omitempty"`
}

type OpenCheckoutRequest struct {
	Category *Category `json:"category,omitempty"`
}

type CategorySelection struct {
	Category Category `json:"category"`
}

type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	TaxId string `json:"taxId"`
}

type Payment struct {
	Method       PaymentMethod `json:"method"`
	Installments *int          `json:"installments,omitempty"`
}

type QuoteDisplay struct {
	Base        string  `json:"base"`
	Final       string  `json:"final"`
	Discount    *string `json:"discount,omitempty"`
	Installment *string `json:"installment,omitempty"`
}

type Quote struct {
	Category         Category      `json:"category"`
	Method           PaymentMethod `json:"method"`
	Installments     int           `json:"installments"`
	Base             float64       `json:"base"`
	Final            float64       `json:"final"`
	Discount         bool          `json:"discount"`
	DiscountAmount   float64       `json:"discountAmount"`
	InstallmentValue *float64      `json:"installmentValue,omitempty"`
	Display          QuoteDisplay  `json:"display"`
}

type InstallmentOption struct {
	Count int     `json:"count"`
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

type PricingResponse struct {
	Quote              Quote               `json:"quote"`
	InstallmentOptions []InstallmentOption `json:"installmentOptions"`
}

type CheckoutSession struct {
	Id             string   `json:"id"`
	Stage          Stage    `json:"stage"`
	Step           int      `json:"step"`
	Category       Category `json:"category"`
	Contact        Contact  `json:"contact"`
	Payment        Payment  `json:"payment"`
	Quote          Quote    `json:"quote"`
	Error          *string  `json:"error,omitempty"`
	Succeeded      bool     `json:"succeeded"`
	RegistrationId *string  `json:"registrationId,omitempty"`
}

type Registration struct {
	Id            string        `json:"id"`
	CreatedAt     time.Time     `json:"createdAt"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	TaxId         string        `json:"taxId"`
	TicketType    Category      `json:"ticketType"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Installments  int           `json:"installments"`
	Amount        float64       `json:"amount"`
	IsSent        bool          `json:"isSent"`
	IsPaid        bool          `json:"isPaid"`
}

type RegistrationPage struct {
	Data        []Registration `json:"data"`
	Cursor      *string        `json:"cursor,omitempty"`
	HasNextPage bool           `json:"hasNextPage"`
}

type FlagUpdate struct {
	Field string `json:"field"`
	Value bool   `json:"value"`
}

type GetPricingParams struct {
	Category     Category       `form:"category" json:"category"`
	Method       *PaymentMethod `form:"method,omitempty" json:"method,omitempty"`
	Installments *int           `form:"installments,omitempty" json:"installments,omitempty"`
}

type GetAdminRegistrationsParams struct {
	Filter *string `form:"filter,omitempty" json:"filter,omitempty"`
	Limit  *int    `form:"limit,omitempty" json:"limit,omitempty"`
	Cursor *string `form:"cursor,omitempty" json:"cursor,omitempty"`
}
