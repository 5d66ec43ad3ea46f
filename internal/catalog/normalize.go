package catalog

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/tentenco/stellantis/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// ValidateModel checks the fetched model against the schema; the configurator
// cannot start without a usable model row.
func ValidateModel(model Model) error {
	if err := validate.Struct(model); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "model failed schema validation")
	}
	return nil
}

// validateCombination checks one catalog row. The backend payload is
// duck-typed JSON; anything missing its identifying fields is unusable for
// lookups and gets dropped at the index boundary.
func validateCombination(combo Combination) error {
	if err := validate.Struct(combo); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "combination failed schema validation")
	}
	return nil
}
