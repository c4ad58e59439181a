package model

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// Letters, spaces, hyphens and apostrophes, as names are stored.
	personNameRegex = regexp.MustCompile(`^[A-Za-z' -]+$`)

	// National format only: a leading zero followed by ten digits.
	phoneGBRegex = regexp.MustCompile(`^0\d{10}$`)

	// Three uppercase letters, e.g. NCL.
	airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)
)

// RegisterCustomValidations installs the domain's custom struct-tag rules on v.
// Every entity validator shares these so the same payload is judged the same
// way everywhere.
func RegisterCustomValidations(v *validator.Validate) error {
	// Report violations under the json field name so error payloads match
	// what the client actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("person_name", validatePersonName); err != nil {
		return err
	}
	if err := v.RegisterValidation("phone_gb", validatePhoneGB); err != nil {
		return err
	}
	return v.RegisterValidation("airport_code", validateAirportCode)
}

func validatePersonName(fl validator.FieldLevel) bool {
	return personNameRegex.MatchString(fl.Field().String())
}

func validatePhoneGB(fl validator.FieldLevel) bool {
	return phoneGBRegex.MatchString(fl.Field().String())
}

func validateAirportCode(fl validator.FieldLevel) bool {
	return airportCodeRegex.MatchString(fl.Field().String())
}

// TranslateTagErrors turns struct-tag violations into a field→reason map so
// every validator reports structural failures in the same shape.
func TranslateTagErrors(errs validator.ValidationErrors) map[string]any {
	fields := make(map[string]any, len(errs))

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "len":
			message = fmt.Sprintf("%s must be exactly %s characters", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "alphanum":
			message = fmt.Sprintf("%s must contain only letters and digits", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid object id", err.Field())
		case "person_name":
			message = fmt.Sprintf("%s must contain only letters, spaces, hyphens and apostrophes", err.Field())
		case "phone_gb":
			message = fmt.Sprintf("%s must start with 0 and contain 11 digits", err.Field())
		case "airport_code":
			message = fmt.Sprintf("%s must be a 3 upper-case letter airport code", err.Field())
		}

		fields[err.Field()] = message
	}

	return fields
}
