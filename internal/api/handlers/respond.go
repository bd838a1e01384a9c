package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/rewritely/rewritely-be/internal/apperr"
)

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respondError maps a service error onto an HTTP status and a JSON
// error body. Model parse failures get a generic message so raw model
// output is never echoed back to the client.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "Internal server error"

	switch {
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, apperr.ErrDuplicateEmail):
		status = http.StatusBadRequest
		msg = "User already exists"
	case errors.Is(err, apperr.ErrInvalidCredentials):
		status = http.StatusBadRequest
		msg = "Invalid credentials"
	case errors.Is(err, apperr.ErrUnauthorized):
		status = http.StatusUnauthorized
		msg = "Not authorized"
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
		msg = "Resource not found"
	case errors.Is(err, apperr.ErrMalformedResponse), errors.Is(err, apperr.ErrEmptyResult):
		msg = "AI response could not be processed"
	case errors.Is(err, apperr.ErrUpstream):
		msg = "AI request failed"
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("Request failed")
	}

	respondJSON(w, status, map[string]interface{}{"success": false, "error": msg})
}
