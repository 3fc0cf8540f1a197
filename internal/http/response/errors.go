package response

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
)

// StatusFor maps a domain error code to its HTTP status. Conflicts are
// reported as 400 like any other rejected write.
func StatusFor(code domainagg.ErrorCode) int {
	switch code {
	case domainagg.CodeValidation, domainagg.CodeConflict, domainagg.CodePreconditionFailed, domainagg.CodeInvariantViolation:
		return http.StatusBadRequest
	case domainagg.CodeNotFound:
		return http.StatusNotFound
	case domainagg.CodeForbidden:
		return http.StatusForbidden
	case domainagg.CodeUnauthorized:
		return http.StatusUnauthorized
	case domainagg.CodeRetryable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err using the shared envelope. Uncoded errors become a 500
// without leaking their text.
func Error(c *gin.Context, err error) {
	e, ok := domainagg.As(err)
	if !ok {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorEnvelope{
			Error: APIError{Message: "internal server error", Code: string(domainagg.CodeInternal)},
		})
		return
	}
	status := StatusFor(e.Code)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	msg := strings.TrimSpace(e.Message)
	if msg == "" || status >= http.StatusInternalServerError {
		msg = defaultMessage(status)
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    string(e.Code),
			Fields:  e.Fields,
		},
	})
}

func defaultMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusServiceUnavailable:
		return "temporarily unavailable, retry"
	case http.StatusInternalServerError:
		return "internal server error"
	default:
		return strings.ToLower(http.StatusText(status))
	}
}

// BindError converts a gin binding failure into a field-level validation error.
func BindError(op string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domainagg.NewError(domainagg.CodeValidation, op, "malformed request body", err)
	}
	fields := domainagg.FieldErrors{}
	for _, fe := range verrs {
		fields.Add(jsonFieldName(fe), validationMessage(fe))
	}
	return domainagg.NewValidation(op, fields)
}

var registerTagNames sync.Once

// RegisterJSONTagNames makes gin's validator report fields by their json name.
func RegisterJSONTagNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

func jsonFieldName(fe validator.FieldError) string {
	// Namespace looks like "createRecipeRequest.ingredients[0].amount"
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	if root, _, ok := strings.Cut(ns, "["); ok {
		return toSnake(root)
	}
	if root, _, ok := strings.Cut(ns, "."); ok {
		return toSnake(root)
	}
	return toSnake(ns)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return "Ensure this field has no more than " + fe.Param() + " characters."
	case "min":
		return "Ensure this value is greater than or equal to " + fe.Param() + "."
	case "gte":
		return "Ensure this value is greater than or equal to " + fe.Param() + "."
	case "lte":
		return "Ensure this value is less than or equal to " + fe.Param() + "."
	case "uuid":
		return "Must be a valid UUID."
	default:
		return "Invalid value."
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
