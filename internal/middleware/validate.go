package middleware

import (
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"taskapi/internal/schema"
)

// Context keys under which validated request values are stored.
const (
	ValidatedBodyKey   = "validatedBody"
	ValidatedQueryKey  = "validatedQuery"
	ValidatedParamsKey = "validatedParams"
)

// BodyParser validates a raw JSON body. A non-nil error is a
// non-validation failure (e.g. malformed JSON) and is forwarded to the
// terminal error handler instead of being reported as a 400 field list.
type BodyParser func(data []byte) (any, []schema.FieldError, error)

// QueryParser validates the request's query string.
type QueryParser func(values url.Values) (any, []schema.FieldError)

// ParamsParser validates the request's route parameters.
type ParamsParser func(params map[string]string) (any, []schema.FieldError)

// Schemas is the set of parsers to apply to a request. Parts are
// validated in order: body, then query, then params.
type Schemas struct {
	Body   BodyParser
	Query  QueryParser
	Params ParamsParser
}

// Validate short-circuits the request with a 400 envelope on the first
// part that fails validation; handlers behind it only ever see validated
// values.
func Validate(s Schemas) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.Body != nil {
			data, err := io.ReadAll(c.Request.Body)
			if err != nil {
				_ = c.Error(err)
				c.Abort()
				return
			}
			value, ferrs, perr := s.Body(data)
			if perr != nil {
				_ = c.Error(perr)
				c.Abort()
				return
			}
			if len(ferrs) > 0 {
				respondValidationError(c, ferrs)
				return
			}
			c.Set(ValidatedBodyKey, value)
		}

		if s.Query != nil {
			value, ferrs := s.Query(c.Request.URL.Query())
			if len(ferrs) > 0 {
				respondValidationError(c, ferrs)
				return
			}
			c.Set(ValidatedQueryKey, value)
		}

		if s.Params != nil {
			params := make(map[string]string, len(c.Params))
			for _, p := range c.Params {
				params[p.Key] = p.Value
			}
			value, ferrs := s.Params(params)
			if len(ferrs) > 0 {
				respondValidationError(c, ferrs)
				return
			}
			c.Set(ValidatedParamsKey, value)
		}

		c.Next()
	}
}

func respondValidationError(c *gin.Context, errs []schema.FieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Validation error",
		"errors":  errs,
	})
}

// CreateTaskBody binds the create-task schema to the middleware contract.
func CreateTaskBody() BodyParser {
	return func(data []byte) (any, []schema.FieldError, error) {
		input, ferrs, err := schema.ParseCreateTask(data)
		if input == nil {
			return nil, ferrs, err
		}
		return input, nil, nil
	}
}

// UpdateTaskBody binds the update-task schema to the middleware contract.
func UpdateTaskBody() BodyParser {
	return func(data []byte) (any, []schema.FieldError, error) {
		input, ferrs, err := schema.ParseUpdateTask(data)
		if input == nil {
			return nil, ferrs, err
		}
		return input, nil, nil
	}
}

// ListTasksQuery binds the listing query schema to the middleware contract.
func ListTasksQuery() QueryParser {
	return func(values url.Values) (any, []schema.FieldError) {
		query, ferrs := schema.ParseListTasksQuery(values)
		if query == nil {
			return nil, ferrs
		}
		return query, nil
	}
}

// TaskIDParams validates the :id route parameter.
func TaskIDParams() ParamsParser {
	return func(params map[string]string) (any, []schema.FieldError) {
		id, ferrs := schema.ParseTaskID(params["id"])
		if len(ferrs) > 0 {
			return nil, ferrs
		}
		return id, nil
	}
}
