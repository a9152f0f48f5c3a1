package api

import (
	"net/http"

	"github.com/openedu/crooms/internal/service"
)

// SetupRoutes configures the HTTP routes for the API
func SetupRoutes(roomService *service.RoomService, bookingService *service.BookingService) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check endpoints for Kubernetes
	mux.HandleFunc("/health/live", HealthLiveHandler)
	mux.HandleFunc("/health/ready", HealthReadyHandler)

	// Room and availability endpoints
	roomHandler := NewRoomHandler(roomService)
	mux.Handle("/api/rooms", roomHandler)
	mux.Handle("/api/rooms/", roomHandler)

	// Booking endpoints
	bookingHandler := NewBookingHandler(bookingService)
	mux.Handle("/api/bookings", bookingHandler)
	mux.Handle("/api/bookings/", bookingHandler)

	return mux
}
