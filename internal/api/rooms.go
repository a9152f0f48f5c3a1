package api

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/openedu/crooms/internal/service"
	"github.com/openedu/crooms/internal/utils"
)

// RoomHandler handles HTTP requests for rooms and their availability
type RoomHandler struct {
	roomService *service.RoomService
}

// NewRoomHandler creates a new room handler with the given room service
func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
	}
}

// ServeHTTP handles HTTP requests for room management
func (h *RoomHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	// Path formats:
	//   /api/rooms
	//   /api/rooms/{roomID}
	//   /api/rooms/{roomID}/availability?date=YYYY-MM-DD
	//   /api/rooms/{roomID}/schedule?date=YYYY-MM-DD
	pathParts := strings.Split(strings.TrimSuffix(r.URL.Path, "/"), "/")

	switch {
	case len(pathParts) == 3:
		h.listRooms(w, r)
	case len(pathParts) == 4:
		h.getRoom(w, r, pathParts[3])
	case len(pathParts) == 5 && pathParts[4] == "availability":
		h.getAvailability(w, r, pathParts[3])
	case len(pathParts) == 5 && pathParts[4] == "schedule":
		h.getSchedule(w, r, pathParts[3])
	default:
		http.NotFound(w, r)
	}
}

// listRooms handles GET /api/rooms to list all rooms
func (h *RoomHandler) listRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.roomService.ListRooms())
}

// getRoom handles GET /api/rooms/{roomID} to get a specific room
func (h *RoomHandler) getRoom(w http.ResponseWriter, r *http.Request, rawID string) {
	roomID, err := strconv.Atoi(rawID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Room id must be an integer")
		return
	}

	room, err := h.roomService.GetRoom(roomID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, room)
}

// getAvailability handles GET /api/rooms/{roomID}/availability to compute
// the slot-by-slot occupancy of a room on a date
func (h *RoomHandler) getAvailability(w http.ResponseWriter, r *http.Request, rawID string) {
	roomID, err := strconv.Atoi(rawID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Room id must be an integer")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "Query parameter date is required")
		return
	}

	statuses, err := h.roomService.Availability(r.Context(), roomID, date)
	if err != nil {
		log.Printf("Error computing availability for room %d on %s: %v",
			roomID, utils.SanitizeLogString(date), err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statuses)
}

// getSchedule handles GET /api/rooms/{roomID}/schedule to list the weekday's
// recurring classes for the date
func (h *RoomHandler) getSchedule(w http.ResponseWriter, r *http.Request, rawID string) {
	roomID, err := strconv.Atoi(rawID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Room id must be an integer")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "Query parameter date is required")
		return
	}

	entries, err := h.roomService.DaySchedule(roomID, date)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
