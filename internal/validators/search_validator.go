package validators

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"property-dashboard/internal/models"
	"property-dashboard/pkg/listings"
)

type searchValidator struct {
	validate *validator.Validate
}

func NewSearchValidator() SearchValidator {
	v := validator.New()
	_ = v.RegisterValidation("token", isToken)
	return &searchValidator{validate: v}
}

// isToken accepts a value that can go into the provider query as one word.
func isToken(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s != "" && !strings.ContainsAny(s, " \t\r\n&?#/=")
}

// ValidateSearch normalizes req in place (trimmed suburb, lower-case property
// type defaulting to "house") and then checks it.
func (v *searchValidator) ValidateSearch(req *models.SearchRequest) error {
	req.Suburb = strings.TrimSpace(req.Suburb)
	req.PropertyType = strings.ToLower(strings.TrimSpace(req.PropertyType))
	if req.PropertyType == "" {
		req.PropertyType = listings.DefaultPropertyType
	}

	if err := v.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return toValidationError(fieldErrs[0])
		}
		return &listings.ValidationError{Field: "query", Message: err.Error()}
	}
	return nil
}

func toValidationError(fe validator.FieldError) *listings.ValidationError {
	switch fe.Field() {
	case "Suburb":
		if fe.Tag() == "required" {
			return &listings.ValidationError{Field: "suburb", Message: "suburb parameter is required"}
		}
		return &listings.ValidationError{Field: "suburb", Message: fmt.Sprintf("suburb must be at most %s characters", fe.Param())}
	case "PropertyType":
		if fe.Tag() == "max" {
			return &listings.ValidationError{Field: "property_type", Message: fmt.Sprintf("property_type must be at most %s characters", fe.Param())}
		}
		return &listings.ValidationError{Field: "property_type", Message: "property_type must be a single word"}
	default:
		return &listings.ValidationError{Field: strings.ToLower(fe.Field()), Message: fmt.Sprintf("failed %s validation", fe.Tag())}
	}
}
