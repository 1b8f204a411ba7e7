package httpx

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	CodeInvalidJSON = "INVALID_JSON"
	CodeValidation  = "VALIDATION_ERROR"
	CodeInvalidUID  = "INVALID_UID"
	CodeNotFound    = "NOT_FOUND"
	CodeInternal    = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   ErrorResponseBody `json:"error"`
	Meta    map[string]any    `json:"meta,omitempty"`
}

type ErrorResponseBody struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func buildMeta(r *http.Request) map[string]any {
	requestID := RequestIDFrom(r)
	if requestID == "" {
		return nil
	}
	return map[string]any{"request_id": requestID}
}

// JSON writes data as the whole response body.
func JSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func JSONSuccess(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

func JSONSuccessCreated(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

func JSONSuccessNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func JSONError(w http.ResponseWriter, statusCode int, code string, message string, details []ErrorDetail) {
	JSON(w, statusCode, ErrorResponse{
		Success: false,
		Error: ErrorResponseBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func JSONErrorWithRequest(r *http.Request, w http.ResponseWriter, statusCode int, code string, message string, details []ErrorDetail) {
	JSON(w, statusCode, ErrorResponse{
		Success: false,
		Error: ErrorResponseBody{
			Code:    code,
			Message: message,
			Details: details,
		},
		Meta: buildMeta(r),
	})
}
