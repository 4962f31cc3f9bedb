package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ResponseJSON writes the envelope with the given status code. Headers are
// already sent when encoding fails, so the error is dropped.
func ResponseJSON(w http.ResponseWriter, code int, status bool, message string, data, errors any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Response{
		Status:  status,
		Message: message,
		Data:    data,
		Errors:  errors,
	})
}

func ok(w http.ResponseWriter, code int, message string, data any) {
	ResponseJSON(w, code, true, message, data, nil)
}

func fail(w http.ResponseWriter, code int, message string, errors any) {
	ResponseJSON(w, code, false, message, nil, errors)
}

func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ok(w, http.StatusOK, message, data)
}

func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ok(w, http.StatusCreated, message, data)
}

// ResponseBadRequest carries optional per-field validation messages in errors.
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	fail(w, http.StatusBadRequest, message, errors)
}

func ResponseUnauthorized(w http.ResponseWriter, message string) {
	fail(w, http.StatusUnauthorized, message, nil)
}

func ResponseForbidden(w http.ResponseWriter, message string) {
	fail(w, http.StatusForbidden, message, nil)
}

func ResponseNotFound(w http.ResponseWriter, message string) {
	fail(w, http.StatusNotFound, message, nil)
}

func ResponseConflict(w http.ResponseWriter, message string) {
	fail(w, http.StatusConflict, message, nil)
}

func ResponseServiceUnavailable(w http.ResponseWriter, message string) {
	fail(w, http.StatusServiceUnavailable, message, nil)
}

func ResponseInternalError(w http.ResponseWriter, message string) {
	fail(w, http.StatusInternalServerError, message, nil)
}
