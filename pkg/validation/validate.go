package validation

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	nicRegex        = regexp.MustCompile(`^([0-9]{9}[VvXx]|[0-9]{12})$`)
	personNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z .'-]{1,99}$`)
	phoneRegex      = regexp.MustCompile(`^(\+[0-9]{7,15}|0[0-9]{9})$`)
	postalCodeRegex = regexp.MustCompile(`^[0-9]{4,10}$`)
	vehicleRegex    = regexp.MustCompile(`^[A-Z]{2,3}[- ]?[0-9]{4}$`)
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("nic", validateNIC)
	_ = validate.RegisterValidation("person_name", validatePersonName)
	_ = validate.RegisterValidation("phone", validatePhone)
	_ = validate.RegisterValidation("postal_code", validatePostalCode)
	_ = validate.RegisterValidation("vehicle", validateVehicle)
	_ = validate.RegisterValidation("month", validateMonth)
}

// Struct validates s against its `validate` tags, including the shop rules registered above.
func Struct(s any) error {
	return validate.Struct(s)
}

func validateNIC(fl validator.FieldLevel) bool {
	return nicRegex.MatchString(fl.Field().String())
}

func validatePersonName(fl validator.FieldLevel) bool {
	return personNameRegex.MatchString(fl.Field().String())
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

func validatePostalCode(fl validator.FieldLevel) bool {
	return postalCodeRegex.MatchString(fl.Field().String())
}

func validateVehicle(fl validator.FieldLevel) bool {
	return vehicleRegex.MatchString(fl.Field().String())
}

// month is YYYY-MM
func validateMonth(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01", fl.Field().String())
	return err == nil
}
