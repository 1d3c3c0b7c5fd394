package checkout

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldProblem names one contact field that blocked the step change.
type FieldProblem struct {
	Field   string
	Message string
}

// FieldProblems unpacks the validation failures behind a
// MISSING_CONTACT_FIELDS error.
func FieldProblems(err error) []FieldProblem {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		return nil
	}

	out := make([]FieldProblem, len(verr))
	for i, ferr := range verr {
		out[i] = FieldProblem{Field: ferr.Field(), Message: msgForTag(ferr.Tag())}
	}
	return out
}

func msgForTag(tag string) string {
	switch tag {
	case "required":
		return "Campo obrigatório"
	case "email":
		return "E-mail inválido"
	}
	return tag
}
