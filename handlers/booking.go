package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingRepo "agendabot/database/repository/booking"
	"agendabot/services/schedule"
)

// Contact recorded for bookings entered through the admin panel without one.
const manualContact = "Manual"

// BookingHandler exposes the booking engine and the slot calendar over the
// admin API.
type BookingHandler struct {
	Scheduler schedule.SchedulingService
	Repo      bookingRepo.BookingRepository
	Logger    *zap.Logger
}

func NewBookingHandler(scheduler schedule.SchedulingService, repo bookingRepo.BookingRepository, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Scheduler: scheduler, Repo: repo, Logger: logger}
}

// ListBookings returns bookings from the given date onward (today when no
// date is passed), ordered by date then slot.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	from := c.Query("from")
	if from == "" {
		from = time.Now().Format("2006-01-02")
	} else if !validDate(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
		return
	}

	bookings, err := h.Repo.ListFrom(c.Request.Context(), from)
	if err != nil {
		h.Logger.Error("failed to list bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CreateBooking books a slot manually. Manual bookings share the chat
// path's conflict policy.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input struct {
		Date       string `json:"date" binding:"required"`
		Slot       string `json:"slot" binding:"required"`
		ClientName string `json:"clientName" binding:"required"`
		Contact    string `json:"contact"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if !validDate(input.Date) || !validSlot(input.Slot) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD and slot HH:MM"})
		return
	}
	if input.Contact == "" {
		input.Contact = manualContact
	}

	result, err := h.Scheduler.RequestBooking(c.Request.Context(), input.Date, input.Slot, input.ClientName, input.Contact)
	if schedule.IsSlotTaken(err) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.Logger.Error("failed to create booking", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		return
	}
	c.JSON(http.StatusCreated, result)
}

// CancelBooking soft-cancels a client's booking for a date.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var input struct {
		Date       string `json:"date" binding:"required"`
		ClientName string `json:"clientName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	cancelled, err := h.Scheduler.CancelBooking(c.Request.Context(), input.Date, input.ClientName)
	if err != nil {
		h.Logger.Error("failed to cancel booking", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel booking"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": cancelled})
}

// Availability returns the open slots for a date.
func (h *BookingHandler) Availability(c *gin.Context) {
	date := c.Param("date")
	if !validDate(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	slots, err := h.Scheduler.AvailableSlots(c.Request.Context(), date)
	if err != nil {
		h.Logger.Error("failed to compute availability", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute availability"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil && len(s) == len("2006-01-02")
}

func validSlot(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil && len(s) == len("15:04")
}
