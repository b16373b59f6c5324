package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/cinevault/cinevault/pkg/apperrors"
)

// Response is the uniform success envelope: {success, message?, data?}
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorBody carries the error message inside the error envelope
type ErrorBody struct {
	Message string `json:"message"`
}

// ErrorResponse is the uniform error envelope: {success:false, error:{message}}
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a 200 OK success envelope with data
func WriteSuccess(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

// WriteSuccessMessage writes a 200 OK success envelope with a message and data
func WriteSuccessMessage(w http.ResponseWriter, message string, data interface{}) error {
	return WriteJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// WriteCreated writes a 201 Created success envelope with data
func WriteCreated(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusCreated, Response{Success: true, Data: data})
}

// WriteCreatedMessage writes a 201 Created success envelope with a message and data
func WriteCreatedMessage(w http.ResponseWriter, message string, data interface{}) error {
	return WriteJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// WriteError writes the error envelope using the status classification
// carried by err. Untyped errors render as 500 with a generic message.
func WriteError(w http.ResponseWriter, err error) {
	WriteErrorMessage(w, apperrors.StatusOf(err), apperrors.MessageOf(err))
}

// WriteErrorMessage writes the error envelope with an explicit status and message
func WriteErrorMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   ErrorBody{Message: message},
	})
}

// WriteUnauthorized writes a 401 error envelope
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteErrorMessage(w, http.StatusUnauthorized, message)
}

// WriteBadRequest writes a 400 error envelope
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteErrorMessage(w, http.StatusBadRequest, message)
}

// WriteNotFound writes a 404 error envelope
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteErrorMessage(w, http.StatusNotFound, message)
}

// WriteTooManyRequests writes a 429 error envelope
func WriteTooManyRequests(w http.ResponseWriter, message string) {
	WriteErrorMessage(w, http.StatusTooManyRequests, message)
}
