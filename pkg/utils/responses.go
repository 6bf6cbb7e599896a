package utils

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Timestamp time.Time    `json:"timestamp"`
	Status    int          `json:"status"`
	Error     string       `json:"error"`
	Message   string       `json:"message"`
	Details   []FieldError `json:"details,omitempty"`
}

// ResponseJSON writes data as JSON with the given status code
func ResponseJSON(w http.ResponseWriter, r *http.Request, code int, data any) {
	render.Status(r, code)
	render.JSON(w, r, data)
}

// ResponseError writes an ErrorResponse with the given status code
func ResponseError(w http.ResponseWriter, r *http.Request, code int, message string, details []FieldError) {
	if message == "" {
		message = http.StatusText(code)
	}
	ResponseJSON(w, r, code, ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    code,
		Error:     http.StatusText(code),
		Message:   message,
		Details:   details,
	})
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, r *http.Request, data any) {
	ResponseJSON(w, r, http.StatusOK, data)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, r *http.Request, data any) {
	ResponseJSON(w, r, http.StatusCreated, data)
}

// returns 204 No Content
func ResponseNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, r *http.Request, message string, details []FieldError) {
	ResponseError(w, r, http.StatusBadRequest, message, details)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, r *http.Request, message string) {
	ResponseError(w, r, http.StatusNotFound, message, nil)
}

// returns 405 Method Not Allowed
func ResponseMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	ResponseError(w, r, http.StatusMethodNotAllowed, "", nil)
}

// returns 429 Too Many Requests
func ResponseTooManyRequests(w http.ResponseWriter, r *http.Request) {
	ResponseError(w, r, http.StatusTooManyRequests, "Rate limit exceeded", nil)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, r *http.Request, message string) {
	ResponseError(w, r, http.StatusInternalServerError, message, nil)
}
