// Package validation wraps go-playground/validator v10 and converts its
// failures into an apperror.ValidationError listing every violated field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/pageza/recipehub/backend/internal/apperror"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	webURLPattern = regexp.MustCompile(`^https?://.+`)
)

// GetValidator returns the shared validator instance. Field names in errors
// come from the json tag so they match what API clients send.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("weburl", func(fl validator.FieldLevel) bool {
			return webURLPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// ValidateStruct returns nil or an *apperror.ValidationError.
func ValidateStruct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperror.Validation("unknown", "unknown", err.Error())
	}

	verr := &apperror.ValidationError{}
	for _, fe := range validationErrs {
		field := fieldPath(fe)
		verr.Add(field, fe.Tag(), translateError(fe, field))
	}
	return verr
}

// fieldPath drops the root struct name from the namespace,
// e.g. "recipeInput.ingredients[0].quantity" -> "ingredients[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

var errorMessageTemplates = map[string]string{
	"required":  "%s is required",
	"weburl":    "%s must be a valid URL",
	"lowercase": "%s must be lowercase",
	"uuid":      "%s must be a valid id",
	"unique":    "%s must not contain duplicate entries",
}

var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",

	"datetime": "%s must be a date in the form %s",
}

func translateError(fe validator.FieldError, field string) string {
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}

	isString := fe.Kind() == reflect.String
	isList := fe.Kind() == reflect.Slice
	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		if isList {
			return fmt.Sprintf("%s must contain at least %s items", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		if isList {
			return fmt.Sprintf("%s must contain at most %s items", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
