package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Cross-field rule messages, shared between request validation and the
// merged-record invariant check.
const (
	msgBHKRequired      = "BHK is required for Apartment and Villa properties"
	msgBHKNotApplicable = "BHK is only applicable for Apartment and Villa properties"
	msgBudgetRange      = "Maximum budget must be greater than or equal to minimum budget"
)

var phonePattern = regexp.MustCompile(`^\d{10,15}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report errors under JSON field names so they can be echoed to clients.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	if err := v.RegisterValidation("phone", validatePhone); err != nil {
		panic(err)
	}

	if err := v.RegisterValidation("enum", validateEnum); err != nil {
		panic(err)
	}

	v.RegisterStructValidation(validateCreateBuyerCrossFields, CreateBuyerRequest{})

	return v
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// validateEnum dispatches to the closed enum types. New enum types must be
// added here to be accepted by the "enum" tag.
func validateEnum(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case City:
		return v.Valid()
	case PropertyType:
		return v.Valid()
	case BHK:
		return v.Valid()
	case Purpose:
		return v.Valid()
	case Timeline:
		return v.Valid()
	case Source:
		return v.Valid()
	case Status:
		return v.Valid()
	default:
		return false
	}
}

// validateCreateBuyerCrossFields applies the cross-field rules in their fixed
// order: the BHK/property-type dependency first, the budget range second.
// The BHK rule is skipped while the property type itself is invalid so a bad
// enum value does not also produce a misleading BHK error.
func validateCreateBuyerCrossFields(sl validator.StructLevel) {
	req := sl.Current().Interface().(CreateBuyerRequest)

	if req.PropertyType.Valid() {
		if req.PropertyType.RequiresBHK() && req.BHK == "" {
			sl.ReportError(req.BHK, "bhk", "BHK", "bhk_required", "")
		} else if !req.PropertyType.RequiresBHK() && req.BHK != "" {
			sl.ReportError(req.BHK, "bhk", "BHK", "bhk_not_applicable", "")
		}
	}

	if req.BudgetMin != nil && req.BudgetMax != nil && *req.BudgetMax < *req.BudgetMin {
		sl.ReportError(req.BudgetMax, "budgetMax", "BudgetMax", "budget_range", "")
	}
}

// validateStruct runs the shared validator and translates failures into the
// full []FieldError list.
func validateStruct(s any) *ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: []FieldError{{Field: "", Message: err.Error()}}}
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}

	return &ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at most %s entries", fe.Field(), fe.Param())
		}

		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "email":
		return "Invalid email address"
	case "phone":
		return "Phone must be 10-15 digits"
	case "gt":
		return "Budget must be positive"
	case "enum":
		return fmt.Sprintf("%q is not a valid %s", fmt.Sprintf("%v", fe.Value()), fe.Field())
	case "bhk_required":
		return msgBHKRequired
	case "bhk_not_applicable":
		return msgBHKNotApplicable
	case "budget_range":
		return msgBudgetRange
	default:
		return fe.Field() + " is invalid"
	}
}
