package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openedu/crooms/internal/api"
	"github.com/openedu/crooms/internal/catalog"
	"github.com/openedu/crooms/internal/models"
	"github.com/openedu/crooms/internal/repository/memory"
	"github.com/openedu/crooms/internal/service"
)

// 2026-09-07 is a Monday; room 1 has a Monday class 09:30-10:50
const testDate = "2026-09-07"

func setupTestServer(t *testing.T) (*http.ServeMux, *service.BookingService) {
	t.Helper()

	rooms := []models.Room{
		{ID: 1, RoomNumber: "201", Capacity: 25, Features: []string{"whiteboard"}},
		{ID: 2, RoomNumber: "202", Capacity: 30, Features: []string{"projector", "computers"}},
	}
	schedule := []models.ScheduleEntry{
		{ID: 1, RoomID: 1, Day: models.Monday, StartTime: "09:30", EndTime: "10:50", CourseName: "Course 1", Instructor: "Professor A"},
	}

	cat, err := catalog.New(rooms, schedule)
	require.NoError(t, err)

	repo := memory.NewRepository()
	roomService := service.NewRoomService(cat, repo)
	bookingService := service.NewBookingService(cat, repo)

	return api.SetupRoutes(roomService, bookingService), bookingService
}

func doRequest(t *testing.T, mux *http.ServeMux, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func createRequest(roomID int) api.CreateBookingRequest {
	return api.CreateBookingRequest{
		RoomID:    roomID,
		UserID:    1,
		Date:      testDate,
		StartTime: "11:00",
		EndTime:   "12:20",
		Purpose:   "Group study session",
	}
}

func TestHealthEndpoints(t *testing.T) {
	mux, _ := setupTestServer(t)

	assert.Equal(t, http.StatusOK, doRequest(t, mux, http.MethodGet, "/health/live", nil).Code)
	assert.Equal(t, http.StatusOK, doRequest(t, mux, http.MethodGet, "/health/ready", nil).Code)
}

func TestListRooms(t *testing.T) {
	mux, _ := setupTestServer(t)

	rec := doRequest(t, mux, http.MethodGet, "/api/rooms", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var rooms []models.Room
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rooms))
	require.Len(t, rooms, 2)
	assert.Equal(t, "201", rooms[0].RoomNumber)
}

func TestGetRoom(t *testing.T) {
	mux, _ := setupTestServer(t)

	rec := doRequest(t, mux, http.MethodGet, "/api/rooms/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var room models.Room
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &room))
	assert.Equal(t, "202", room.RoomNumber)

	t.Run("NotFound", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/api/rooms/99", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("BadID", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/api/rooms/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MethodNotAllowed", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodPost, "/api/rooms/2", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestGetSchedule(t *testing.T) {
	mux, _ := setupTestServer(t)

	rec := doRequest(t, mux, http.MethodGet, "/api/rooms/1/schedule?date="+testDate, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []models.ScheduleEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Course 1", entries[0].CourseName)

	t.Run("EmptyDayIsEmptyArray", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/api/rooms/2/schedule?date="+testDate, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("MissingDate", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/api/rooms/1/schedule", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetAvailability(t *testing.T) {
	mux, _ := setupTestServer(t)

	rec := doRequest(t, mux, http.MethodGet, "/api/rooms/1/availability?date="+testDate, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var statuses []struct {
		Slot     models.TimeSlot `json:"slot"`
		Occupied bool            `json:"occupied"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &statuses))
	require.Len(t, statuses, 6)
	assert.True(t, statuses[0].Occupied, "scheduled class occupies first slot")
	assert.False(t, statuses[1].Occupied)

	t.Run("MissingDate", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/api/rooms/1/availability", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("BadDate", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/api/rooms/1/availability?date=tomorrow", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UnknownRoom", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/api/rooms/99/availability?date="+testDate, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCreateBooking(t *testing.T) {
	mux, _ := setupTestServer(t)

	rec := doRequest(t, mux, http.MethodPost, "/api/bookings", createRequest(1))
	require.Equal(t, http.StatusCreated, rec.Code)

	var booking models.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &booking))
	assert.Equal(t, 1, booking.ID)
	assert.Equal(t, models.BookingStatusPending, booking.Status)

	t.Run("InvalidBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader([]byte("not json")))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MissingFields", func(t *testing.T) {
		req := createRequest(1)
		req.Purpose = ""
		rec := doRequest(t, mux, http.MethodPost, "/api/bookings", req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UnknownRoom", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodPost, "/api/bookings", createRequest(99))
		assert.Equal(t, http.StatusNotFound, rec.Code)

		var body api.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Room not found", body.Error)
	})

	t.Run("ConflictWithClass", func(t *testing.T) {
		req := createRequest(1)
		req.StartTime = "10:00"
		req.EndTime = "11:00"
		rec := doRequest(t, mux, http.MethodPost, "/api/bookings", req)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestBookingLifecycle(t *testing.T) {
	mux, _ := setupTestServer(t)

	rec := doRequest(t, mux, http.MethodPost, "/api/bookings", createRequest(1))
	require.Equal(t, http.StatusCreated, rec.Code)

	var booking models.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &booking))

	t.Run("Get", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, fmt.Sprintf("/api/bookings/%d", booking.ID), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got models.Booking
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, booking.ID, got.ID)
	})

	t.Run("GetMissing", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/api/bookings/999", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Approve", func(t *testing.T) {
		body := api.UpdateBookingStatusRequest{Status: models.BookingStatusApproved}
		rec := doRequest(t, mux, http.MethodPatch, fmt.Sprintf("/api/bookings/%d", booking.ID), body)
		require.Equal(t, http.StatusOK, rec.Code)

		var got models.Booking
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, models.BookingStatusApproved, got.Status)
	})

	t.Run("ApprovedBlocksAvailability", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/api/rooms/1/availability?date="+testDate, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var statuses []struct {
			Occupied bool `json:"occupied"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &statuses))
		assert.True(t, statuses[1].Occupied, "approved 11:00-12:20 booking occupies second slot")
	})

	t.Run("CancelApprovedRefused", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodDelete, fmt.Sprintf("/api/bookings/%d?userId=1", booking.ID), nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestListBookings(t *testing.T) {
	mux, _ := setupTestServer(t)

	require.Equal(t, http.StatusCreated, doRequest(t, mux, http.MethodPost, "/api/bookings", createRequest(1)).Code)

	second := createRequest(1)
	second.UserID = 2
	second.StartTime = "12:30"
	second.EndTime = "13:50"
	require.Equal(t, http.StatusCreated, doRequest(t, mux, http.MethodPost, "/api/bookings", second).Code)

	t.Run("ByUser", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/api/bookings?userId=1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var bookings []models.Booking
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bookings))
		assert.Len(t, bookings, 1)
	})

	t.Run("ByUserAndStatus", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/api/bookings?userId=1&status=approved", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var bookings []models.Booking
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bookings))
		assert.Empty(t, bookings)
	})

	t.Run("ByRoomAndDate", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/api/bookings?roomId=1&date="+testDate, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var bookings []models.Booking
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bookings))
		assert.Len(t, bookings, 2)
	})

	t.Run("RoomWithoutDate", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/api/bookings?roomId=1", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("NoFilter", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/api/bookings", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCancelBooking(t *testing.T) {
	mux, _ := setupTestServer(t)

	rec := doRequest(t, mux, http.MethodPost, "/api/bookings", createRequest(1))
	require.Equal(t, http.StatusCreated, rec.Code)

	var booking models.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &booking))

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodDelete, fmt.Sprintf("/api/bookings/%d?userId=2", booking.ID), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("MissingUserID", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", booking.ID), nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("OwnerCancels", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodDelete, fmt.Sprintf("/api/bookings/%d?userId=1", booking.ID), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, mux, http.MethodGet, fmt.Sprintf("/api/bookings/%d", booking.ID), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
