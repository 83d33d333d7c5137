package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bookingRepo "agendabot/database/repository/booking"
	settingsRepo "agendabot/database/repository/settings"
	"agendabot/handlers"
	"agendabot/services/schedule"
)

func newBookingRouter(t *testing.T) (*gin.Engine, *schedule.DefaultSchedulingService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := bookingRepo.NewMemoryBookingRepo()
	scheduler := &schedule.DefaultSchedulingService{
		Repo:     repo,
		Settings: settingsRepo.Typed{Repo: settingsRepo.NewMemorySettingsRepo()},
	}
	h := handlers.NewBookingHandler(scheduler, repo, zap.NewNop())

	r := gin.New()
	r.GET("/bookings", h.ListBookings)
	r.POST("/bookings", h.CreateBooking)
	r.POST("/bookings/cancel", h.CancelBooking)
	r.GET("/availability/:date", h.Availability)
	return r, scheduler
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBooking_ThenConflict(t *testing.T) {
	r, _ := newBookingRouter(t)

	w := doJSON(t, r, http.MethodPost, "/bookings", gin.H{
		"date": "2025-06-01", "slot": "10:00", "clientName": "Ana",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Kind    string `json:"kind"`
		Booking struct {
			Contact string `json:"contact"`
			Status  string `json:"status"`
		} `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "new", created.Kind)
	assert.Equal(t, "Manual", created.Booking.Contact)
	assert.Equal(t, "Confirmed", created.Booking.Status)

	// Another client asking for the same slot is a conflict, not an overwrite.
	w = doJSON(t, r, http.MethodPost, "/bookings", gin.H{
		"date": "2025-06-01", "slot": "10:00", "clientName": "Bob",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateBooking_Validation(t *testing.T) {
	r, _ := newBookingRouter(t)

	cases := []gin.H{
		{"slot": "10:00", "clientName": "Ana"},                          // missing date
		{"date": "01/06/2025", "slot": "10:00", "clientName": "Ana"},   // bad date format
		{"date": "2025-06-01", "slot": "10am", "clientName": "Ana"},    // bad slot format
		{"date": "2025-06-01", "slot": "10:00"},                        // missing client
	}
	for _, body := range cases {
		w := doJSON(t, r, http.MethodPost, "/bookings", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %v", body)
	}
}

func TestListBookings_FromFilter(t *testing.T) {
	r, scheduler := newBookingRouter(t)
	ctx := context.Background()

	_, err := scheduler.RequestBooking(ctx, "2025-06-01", "10:00", "Ana", "x")
	require.NoError(t, err)
	_, err = scheduler.RequestBooking(ctx, "2025-06-02", "10:00", "Bob", "x")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/bookings?from=2025-06-02", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Bookings []struct {
			ClientName string `json:"clientName"`
		} `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "Bob", resp.Bookings[0].ClientName)

	w = doJSON(t, r, http.MethodGet, "/bookings?from=junk", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAvailability_ReflectsBookingsAndCancels(t *testing.T) {
	r, scheduler := newBookingRouter(t)
	ctx := context.Background()

	w := doJSON(t, r, http.MethodGet, "/availability/2025-06-01", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Date  string   `json:"date"`
		Slots []string `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2025-06-01", resp.Date)
	require.Contains(t, resp.Slots, "10:00")
	open := len(resp.Slots)

	_, err := scheduler.RequestBooking(ctx, "2025-06-01", "10:00", "Ana", "x")
	require.NoError(t, err)

	w = doJSON(t, r, http.MethodGet, "/availability/2025-06-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Slots, open-1)
	assert.NotContains(t, resp.Slots, "10:00")

	wc := doJSON(t, r, http.MethodPost, "/bookings/cancel", gin.H{
		"date": "2025-06-01", "clientName": "ANA",
	})
	require.Equal(t, http.StatusOK, wc.Code)
	assert.Contains(t, wc.Body.String(), `"cancelled":true`)

	w = doJSON(t, r, http.MethodGet, "/availability/2025-06-01", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Slots, "10:00")
}

func TestAvailability_BadDate(t *testing.T) {
	r, _ := newBookingRouter(t)
	w := doJSON(t, r, http.MethodGet, "/availability/not-a-date", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
