package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"basegraph.app/cms/common"
	"basegraph.app/cms/internal/model"
)

var registerOnce sync.Once

// RegisterValidators installs the custom rules and JSON field naming on
// gin's validator engine. Safe to call more than once.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	var err error
	registerOnce.Do(func() {
		v.RegisterTagNameFunc(fieldName)
		if err = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return common.IsSlug(fl.Field().String())
		}); err != nil {
			return
		}
		err = v.RegisterValidation("sortorder", func(fl validator.FieldLevel) bool {
			order := model.SortOrder(fl.Field().String())
			return order == model.SortAsc || order == model.SortDesc
		})
	})
	return err
}

// fieldName reports json names for bodies and form names for queries and
// path params.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// ValidationDetails turns a binding error into per-field details. source
// names the request part and is used when the error has no field.
func ValidationDetails(err error, source string) []ErrorDetail {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]ErrorDetail, 0, len(verrs))
		for _, fe := range verrs {
			// "url|eq=" reports as "url".
			rule, _, _ := strings.Cut(fe.Tag(), "|")
			details = append(details, ErrorDetail{
				Field: fe.Field(),
				Rule:  rule,
				Param: fe.Param(),
			})
		}
		return details
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var numErr *strconv.NumError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = source
		}
		return []ErrorDetail{{Field: field, Rule: "type", Message: "expected " + typeErr.Type.String()}}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return []ErrorDetail{{Field: source, Rule: "json", Message: "malformed JSON"}}
	case errors.Is(err, io.EOF):
		return []ErrorDetail{{Field: source, Rule: "required", Message: "request body is empty"}}
	case errors.As(err, &numErr):
		return []ErrorDetail{{Field: source, Rule: "type", Message: fmt.Sprintf("%q is not a number", numErr.Num)}}
	}
	return []ErrorDetail{{Field: source, Rule: "invalid", Message: err.Error()}}
}
