package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/openedu/crooms/internal/models"
	"github.com/openedu/crooms/internal/service"
)

// validate checks the shape of incoming request payloads; semantic checks
// (time ordering, room existence, conflicts) live in the service layer
var validate = validator.New()

// CreateBookingRequest is the payload for POST /api/bookings
type CreateBookingRequest struct {
	RoomID    int    `json:"roomId" validate:"required,gt=0"`
	UserID    int    `json:"userId" validate:"required,gt=0"`
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	Purpose   string `json:"purpose" validate:"required"`
}

// UpdateBookingStatusRequest is the payload for PATCH /api/bookings/{id}
type UpdateBookingStatusRequest struct {
	Status models.BookingStatus `json:"status"`
}

// BookingHandler handles HTTP requests for booking management
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new booking handler with the given booking service
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// ServeHTTP handles HTTP requests for booking management
func (h *BookingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Extract booking ID from path if present
	// Path format: /api/bookings/{bookingID}
	pathParts := strings.Split(strings.TrimSuffix(r.URL.Path, "/"), "/")
	var bookingID string
	if len(pathParts) >= 4 && pathParts[3] != "" {
		bookingID = pathParts[3]
	}

	// Route based on HTTP method and path
	switch {
	case r.Method == http.MethodPost && bookingID == "":
		h.createBooking(w, r)
	case r.Method == http.MethodGet && bookingID == "":
		h.listBookings(w, r)
	case r.Method == http.MethodGet && bookingID != "":
		h.getBooking(w, r, bookingID)
	case r.Method == http.MethodPatch && bookingID != "":
		h.updateBookingStatus(w, r, bookingID)
	case r.Method == http.MethodDelete && bookingID != "":
		h.cancelBooking(w, r, bookingID)
	default:
		http.NotFound(w, r)
	}
}

// createBooking handles POST /api/bookings to create a new pending booking
func (h *BookingHandler) createBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Error decoding booking request: %v", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := h.bookingService.CreateBooking(r.Context(),
		req.RoomID, req.UserID, req.Date, req.StartTime, req.EndTime, req.Purpose)
	if err != nil {
		log.Printf("Error creating booking for room %d: %v", req.RoomID, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

// listBookings handles GET /api/bookings filtered by user or by room+date
func (h *BookingHandler) listBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	switch {
	case query.Get("userId") != "":
		userID, err := strconv.Atoi(query.Get("userId"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "userId must be an integer")
			return
		}

		bookings, err := h.bookingService.ListUserBookings(r.Context(), userID, query.Get("status"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bookings)

	case query.Get("roomId") != "":
		roomID, err := strconv.Atoi(query.Get("roomId"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "roomId must be an integer")
			return
		}

		date := query.Get("date")
		if date == "" {
			writeError(w, http.StatusBadRequest, "Query parameter date is required with roomId")
			return
		}

		bookings, err := h.bookingService.ListRoomBookings(r.Context(), roomID, date)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bookings)

	default:
		writeError(w, http.StatusBadRequest, "Either userId or roomId+date is required")
	}
}

// getBooking handles GET /api/bookings/{bookingID} to get a specific booking
func (h *BookingHandler) getBooking(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Booking id must be an integer")
		return
	}

	booking, err := h.bookingService.GetBooking(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// updateBookingStatus handles PATCH /api/bookings/{bookingID}, the entry
// point for the external approval process
func (h *BookingHandler) updateBookingStatus(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Booking id must be an integer")
		return
	}

	var req UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	defer r.Body.Close()

	booking, err := h.bookingService.UpdateBookingStatus(r.Context(), id, req.Status)
	if err != nil {
		log.Printf("Error updating booking %d: %v", id, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// cancelBooking handles DELETE /api/bookings/{bookingID}?userId=N. The
// userId parameter stands in for the authenticated caller; a booking can
// only be cancelled by its owner and only while it is not approved.
func (h *BookingHandler) cancelBooking(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Booking id must be an integer")
		return
	}

	userID, err := strconv.Atoi(r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "userId must be an integer")
		return
	}

	if err := h.bookingService.CancelBooking(r.Context(), id, userID); err != nil {
		log.Printf("Error cancelling booking %d: %v", id, err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Booking cancelled successfully",
	})
}
