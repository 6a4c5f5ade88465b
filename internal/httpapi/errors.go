package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mobil-koeln/railhop/internal/models"
)

// Error codes returned in ErrorResponse
const (
	CodeBadRequest    = "bad_request"
	CodeValidation    = "validation_error"
	CodeBookingFailed = "booking_failed"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes what went wrong
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// validationBody returns an ErrorResponse for a rejected input. Messages of
// *models.ValidationError are passed through unchanged so a UI can show them.
func validationBody(err error) ErrorResponse {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return ErrorResponse{Error: ErrorDetail{Code: CodeValidation, Message: ve.Message, Field: ve.Field}}
	}
	return ErrorResponse{Error: ErrorDetail{Code: CodeValidation, Message: err.Error()}}
}

// requestBody returns an ErrorResponse for a body that could not be decoded
func requestBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: CodeBadRequest, Message: message}}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody decodes a bounded JSON request body into v
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
