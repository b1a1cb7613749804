// Package validation создаёт валидатор входящих DTO с дополнительными тегами.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/asset-maintenance/internal/lib/servicedate"
)

// New возвращает валидатор с тегом isodate. В сообщениях об ошибках
// используются имена полей из json-тегов.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, ok := servicedate.Parse(fl.Field().String())
		return ok
	})
	return v
}
