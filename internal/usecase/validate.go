package usecase

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/phenrril/carpinteria/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// decimal.Decimal se valida como float64 para poder usar gte/gt/lte en los tags
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		if d, ok := v.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}

// validateEntity traduce los errores del validador a *domain.ValidationError.
func validateEntity(entity string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &domain.ValidationError{Entity: entity}
	for _, e := range verrs {
		out.Fields = append(out.Fields, domain.FieldError{
			Field:   fieldPath(e),
			Tag:     e.Tag(),
			Message: validationMessage(e),
		})
	}
	return out
}

func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func validationMessage(e validator.FieldError) string {
	f := fieldPath(e)
	switch e.Tag() {
	case "required":
		return f + " es obligatorio"
	case "email":
		return f + " no es un email válido"
	case "gte":
		return f + " debe ser mayor o igual a " + e.Param()
	case "gt":
		return f + " debe ser mayor a " + e.Param()
	case "lte":
		return f + " debe ser menor o igual a " + e.Param()
	case "max":
		return f + " supera el máximo de " + e.Param()
	case "oneof":
		return f + " debe ser uno de: " + e.Param()
	default:
		return f + " es inválido"
	}
}
