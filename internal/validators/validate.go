package validators

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

var (
	once     sync.Once
	validate *validator.Validate

	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})

		_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			_, err := booking.ParseClock(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
			_, err := booking.ParseDate(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})

		validate = v
	})
	return validate
}

// Struct validates v against its `validate` tags. The first failing field is
// reported as validation error "invalid_<field>".
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return httperr.ErrValidation("invalid_" + errs[0].Field())
	}
	return httperr.ErrValidation("invalid_request")
}
