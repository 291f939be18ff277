// Package httpx holds the response envelope shared by every endpoint of the
// surrounding backend. The auth core returns typed results and sentinel
// errors; the web layer wraps them with these helpers.
package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform single-result response shape:
// {status, message, data?}.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Pagination describes the window of a list response. Irrelevant to the auth
// core but part of the shared envelope contract.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

// ListEnvelope is the uniform list response shape:
// {status, message, data[], pagination}.
type ListEnvelope struct {
	Status     int        `json:"status"`
	Message    string     `json:"message"`
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// OK builds a success envelope.
func OK(message string, data any) Envelope {
	return Envelope{Status: http.StatusOK, Message: message, Data: data}
}

// Fail builds an error envelope with no data payload.
func Fail(status int, message string) Envelope {
	return Envelope{Status: status, Message: message}
}

// WriteJSON writes a JSON response with the given status code.
// It sets Content-Type and no-store caching headers; auth responses carry
// credentials and must never be cached.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
