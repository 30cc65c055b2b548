package api

import (
	"encoding/json"
	"net/http"

	"cogview/internal/errors"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// WriteError writes an error response with the given status.
func WriteError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := ErrorResponse{
		Error: err.Error(),
		Code:  string(errors.InternalError),
	}
	if cogErr, ok := err.(*errors.CogError); ok {
		resp.Code = string(cogErr.Code)
		resp.Details = cogErr.Details
	}

	json.NewEncoder(w).Encode(resp)
}

// WriteCogError writes a CogError with automatic status code mapping.
func WriteCogError(w http.ResponseWriter, err *errors.CogError) {
	WriteError(w, err, StatusForCode(err.Code))
}

// StatusForCode maps error codes to HTTP status codes.
func StatusForCode(code errors.ErrorCode) int {
	switch code {
	case errors.MalformedInput:
		return http.StatusBadRequest // 400
	case errors.FileNotFound:
		return http.StatusNotFound // 404
	case errors.UnsupportedLanguage:
		return http.StatusUnprocessableEntity // 422
	case errors.ParseFailed:
		return http.StatusUnprocessableEntity // 422
	case errors.UnrecoverableState:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// BadRequest writes a 400 Bad Request error.
func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, &errors.CogError{
		Code:    errors.MalformedInput,
		Message: message,
	}, http.StatusBadRequest)
}

// NotFound writes a 404 Not Found error.
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, &errors.CogError{
		Code:    errors.FileNotFound,
		Message: message,
	}, http.StatusNotFound)
}

// MethodNotAllowed writes a 405 Method Not Allowed error.
func MethodNotAllowed(w http.ResponseWriter) {
	WriteError(w, &errors.CogError{
		Code:    errors.MalformedInput,
		Message: "method not allowed",
	}, http.StatusMethodNotAllowed)
}

// InternalError writes a 500 Internal Server Error.
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, &errors.CogError{
		Code:    errors.InternalError,
		Message: message,
	}, http.StatusInternalServerError)
}
