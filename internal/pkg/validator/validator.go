package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ev-siting/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// В деталях ошибок отдаём имена полей как в JSON, а не как в Go структуре
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Validate - валидация структуры. Ошибки валидации превращаются в INVALID_REQUEST
// с перечнем полей в details.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.ErrInvalidRequest.WithMessage(err.Error())
	}

	fields := make(map[string]interface{}, len(validationErrs))
	for _, fe := range validationErrs {
		fields[fe.Field()] = fe.Tag()
	}
	return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
		"fields": fields,
	})
}
