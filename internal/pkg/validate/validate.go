package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// v is the package-level singleton. Custom rules register in init, before
// the first Struct call.
var v = validator.New()

// phoneRE accepts an optional leading + and 10 to 20 digits total, the same
// bounds the players table enforces on its phone column.
var phoneRE = regexp.MustCompile(`^\+?[0-9]{9,19}$`)

func init() {
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRE.MatchString(fl.Field().String())
	})
}

// Struct validates the given struct using its validate tags and returns a
// single readable error listing every failed field.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("%s does not satisfy '%s'", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
