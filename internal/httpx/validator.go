package httpx

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON key.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ErrInvalidJSON marks a body that is not well-formed JSON.
var ErrInvalidJSON = errors.New("request body is not valid JSON")

// ValidationError reports a body that is well-formed but does not fit the target shape.
type ValidationError struct {
	Details []ErrorDetail
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// DecodeJSON reads the request body into dst and runs struct validation on it.
// It returns ErrInvalidJSON or a *ValidationError.
func DecodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if !json.Valid(body) {
		return ErrInvalidJSON
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &ValidationError{Details: []ErrorDetail{{Field: "body", Message: typeMismatchMessage(err)}}}
	}
	if details := ValidateStruct(dst); len(details) > 0 {
		return &ValidationError{Details: details}
	}
	return nil
}

// WriteDecodeError answers the client for an error returned by DecodeJSON.
func WriteDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		JSONErrorWithRequest(r, w, http.StatusUnprocessableEntity, CodeValidation, "Request body failed validation", verr.Details)
	case errors.Is(err, ErrInvalidJSON):
		JSONErrorWithRequest(r, w, http.StatusBadRequest, CodeInvalidJSON, "Request body is not valid JSON", nil)
	default:
		JSONErrorWithRequest(r, w, http.StatusBadRequest, CodeInvalidJSON, "Could not read request body", nil)
	}
}

func ValidateStruct(s any) []ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ErrorDetail{{Field: "body", Message: err.Error()}}
	}

	details := make([]ErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "gte", "lte":
			message = fmt.Sprintf("%s must be %s %s", field, fe.Tag(), fe.Param())
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}
		details = append(details, ErrorDetail{Field: field, Message: message})
	}
	return details
}

// typeMismatchMessage trims the decoder's error down to the part useful to a client.
func typeMismatchMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ", error found in"); i > 0 {
		msg = msg[:i]
	}
	return msg
}
