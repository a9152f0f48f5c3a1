package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openedu/crooms/internal/catalog"
	"github.com/openedu/crooms/internal/models"
	"github.com/openedu/crooms/internal/service"
)

// ErrorResponse is the JSON body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v as the response body with the given status code
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError sends a JSON error payload
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeServiceError maps service-layer errors onto HTTP status codes.
// Validation problems are 400, missing rooms 404, conflicts 409; anything
// unexpected is a 500 without leaking internals.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case service.IsValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrRoomNotFound):
		writeError(w, http.StatusNotFound, "Room not found")
	case errors.Is(err, models.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, "Booking not found")
	case errors.Is(err, service.ErrTimeConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrCancelApproved):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
