package middleware

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"

	"basegraph.app/cms/internal/http/dto"
)

// Target is the part of the request a Validate middleware binds.
type Target int

const (
	Body Target = iota
	Query
	Params
)

func (t Target) String() string {
	switch t {
	case Body:
		return "body"
	case Query:
		return "query"
	case Params:
		return "params"
	}
	return "request"
}

// Validate binds the target into a fresh T and runs its binding rules.
// Handlers read the result with Validated[T].
func Validate[T any](target Target) gin.HandlerFunc {
	key := validatedKey[T]()
	return func(c *gin.Context) {
		var req T
		var err error
		switch target {
		case Body:
			err = c.ShouldBindJSON(&req)
		case Query:
			err = c.ShouldBindQuery(&req)
		case Params:
			err = c.ShouldBindUri(&req)
		}
		if err != nil {
			AbortWithError(c, http.StatusBadRequest, dto.CodeValidation, "invalid "+target.String(),
				dto.ValidationDetails(err, target.String())...)
			return
		}

		c.Set(key, req)
		c.Next()
	}
}

// Validated returns the value bound by Validate[T], or the zero T.
func Validated[T any](c *gin.Context) T {
	v, _ := c.Get(validatedKey[T]())
	req, _ := v.(T)
	return req
}

func validatedKey[T any]() string {
	return "cms.validated." + reflect.TypeFor[T]().String()
}
