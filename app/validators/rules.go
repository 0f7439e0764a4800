package validators

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	// Egyptian and Saudi mobile numbers.
	phonePattern      = regexp.MustCompile(`^(((\+?20)|0)?1[0125]\d{8}|(\+?966|0)?5\d{8})$`)
	postalCodePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 \-]{1,8}[A-Za-z0-9]$`)
)

func newEngine() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Money fields compare as numbers under gte/lte.
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		if d, ok := f.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("phone_egsa", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("postal_code", func(fl validator.FieldLevel) bool {
		return postalCodePattern.MatchString(fl.Field().String())
	})
	return v
}

// translate turns validator failures into field errors. A field's msg tag
// overrides the default text per rule ("min=Too short name;max=Too long name")
// or for every rule ("*=...").
func translate(errs validator.ValidationErrors, dst any) []helpers.FieldError {
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	out := make([]helpers.FieldError, 0, len(errs))
	for _, fe := range errs {
		msg := defaultMessage(fe)
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if custom, ok := messageFor(sf.Tag.Get("msg"), fe.Tag()); ok {
				msg = custom
			}
		}
		out = append(out, helpers.FieldError{
			Msg:      msg,
			Path:     fe.Field(),
			Location: "body",
			Value:    echoValue(fe),
		})
	}
	return out
}

func messageFor(tag, rule string) (string, bool) {
	if tag == "" {
		return "", false
	}
	var fallback string
	found := false
	for _, part := range strings.Split(tag, ";") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		switch k {
		case rule:
			return v, true
		case "*":
			fallback, found = v, true
		}
	}
	return fallback, found
}

func defaultMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Please enter a valid email."
	case "uuid":
		return fmt.Sprintf("Invalid %s id format", field)
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Too short %s", field)
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Too long %s", field)
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "alphanum":
		return fmt.Sprintf("%s must contain only letters and numbers", field)
	case "eqfield":
		return "Passwords have to match!"
	case "phone_egsa":
		return "Invalid phone number, only accepted Egy and SA Phone numbers"
	case "postal_code":
		return "Please enter a valid postal code"
	default:
		return fmt.Sprintf("Invalid value for %s", field)
	}
}

// echoValue reports the rejected value back, except for secrets.
func echoValue(fe validator.FieldError) any {
	if strings.Contains(strings.ToLower(fe.Field()), "password") {
		return nil
	}
	v := reflect.ValueOf(fe.Value())
	if !v.IsValid() {
		return nil
	}
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		return v.Elem().Interface()
	}
	return fe.Value()
}
