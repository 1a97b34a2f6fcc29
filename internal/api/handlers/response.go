package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"
)

// maxDetailsLength bounds upstream error details returned to clients
const maxDetailsLength = 200

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

const msgInternalError = "internal server error"

// Envelope is the body of every API response
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// RespondJSON writes a success envelope
func RespondJSON(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

// RespondError writes a failure envelope
func RespondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: false, Error: message})
}

// RespondErrorDetails writes a failure envelope with truncated details
func RespondErrorDetails(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, Envelope{Success: false, Error: message, Details: TruncateDetails(details)})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondUpstreamError reports a gateway/storage/analytics failure
func RespondUpstreamError(w http.ResponseWriter, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	RespondErrorDetails(w, http.StatusInternalServerError, message, details)
}

// TruncateDetails cuts s to maxDetailsLength characters
func TruncateDetails(s string) string {
	if utf8.RuneCountInString(s) <= maxDetailsLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxDetailsLength])
}

// DecodeJSON decodes the request body into v, rejecting unknown fields and trailing data
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if dec.More() {
		return errors.New("decode body: unexpected trailing data")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
