package utils

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/keshevplus/leadhub/internal/shared/errors"
)

// israeliPhone matches local-format landline and mobile numbers with the
// separators already stripped. 057 is not an allocated mobile prefix.
var israeliPhone = regexp.MustCompile(`^0(5[^7]|[2-4]|[8-9]|7[0-9])[0-9]{7}$`)

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON name so clients can map errors to inputs.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("ilphone", func(fl validator.FieldLevel) bool {
		return IsIsraeliPhone(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// IsIsraeliPhone accepts s as typed by a visitor, separators included.
func IsIsraeliPhone(s string) bool {
	return israeliPhone.MatchString(NormalizePhone(s))
}

// NormalizePhone strips spaces, dashes and parentheses.
func NormalizePhone(s string) string {
	return phoneSeparators.Replace(strings.TrimSpace(s))
}

// ValidateStruct runs the validate tags on s. Failures come back as one
// validation AppError listing every bad field.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !stderrors.As(err, &invalid) {
		return errors.NewValidationError("Validation failed", err.Error())
	}

	fields := make([]errors.FieldError, len(invalid))
	for i, fe := range invalid {
		fields[i] = errors.FieldError{Field: fe.Field(), Message: fieldMessage(fe)}
	}
	return errors.NewFieldValidationError(fields...)
}

var fixedMessages = map[string]string{
	"email":   "Please provide a valid email",
	"ilphone": "Please provide a valid Israeli phone number",
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := fixedMessages[fe.Tag()]; ok {
		return msg
	}

	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters long"
	}

	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", fe.Field(), fe.Param(), unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", fe.Field(), fe.Param(), unit)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed validation for '%s'", fe.Field(), fe.Tag())
}
