package api

import (
	"errors"
	"net/http"
	"time"

	"studio-booking/internal/domain/pricing"
	"studio-booking/internal/domain/schedule"
	"studio-booking/internal/domain/verification"
	reqdto "studio-booking/internal/handler/dto/request"
	resdto "studio-booking/internal/handler/dto/response"
	"studio-booking/internal/usecase/commands"
	"studio-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PublicBookingHandler struct {
	bookings commands.PublicBookingCommands
	agenda   queries.AgendaQueries
	rooms    queries.RoomQueries
	views    queries.ReservationQueries
}

func NewPublicBookingHandler(
	bookings commands.PublicBookingCommands,
	agenda queries.AgendaQueries,
	rooms queries.RoomQueries,
	views queries.ReservationQueries,
) *PublicBookingHandler {
	return &PublicBookingHandler{
		bookings: bookings,
		agenda:   agenda,
		rooms:    rooms,
		views:    views,
	}
}

// @Summary Start public booking
// @Description Hold a slot and email a verification code
// @Tags public
// @Accept json
// @Produce json
// @Param request body reqdto.StartPublicBookingRequest true "Booking request"
// @Success 202 {object} resdto.PublicBookingStartedResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /public/bookings [post]
func (h *PublicBookingHandler) StartBooking(c *gin.Context) {
	var req reqdto.StartPublicBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params, err := req.ToParams()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	started, err := h.bookings.Start(c.Request.Context(), params)
	if err != nil {
		writePublicBookingError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, resdto.FromPublicBookingStarted(started))
}

// @Summary Confirm public booking
// @Description Verify the emailed code and commit the held booking
// @Tags public
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.ConfirmPublicBookingRequest true "Verification code"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /public/bookings/{id}/confirm [post]
func (h *PublicBookingHandler) ConfirmBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	var req reqdto.ConfirmPublicBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	committed, err := h.bookings.Confirm(c.Request.Context(), bookingID, req.Code)
	if err != nil {
		writePublicBookingError(c, err)
		return
	}

	view, err := h.views.GetByID(c.Request.Context(), committed.ID())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

// @Summary Public availability
// @Description Free time ranges of a room for one display date
// @Tags public
// @Produce json
// @Param room_id query string true "Room ID"
// @Param date query string true "Display date (YYYY-MM-DD)"
// @Success 200 {array} resdto.FreeRangeResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /public/availability [get]
func (h *PublicBookingHandler) Availability(c *gin.Context) {
	roomID, err := uuid.Parse(c.Query("room_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}
	date, err := time.Parse(time.DateOnly, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date",
		})
		return
	}

	if _, err := h.rooms.GetByID(c.Request.Context(), roomID); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	ranges, err := h.agenda.PublicAvailability(c.Request.Context(), roomID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromFreeRangeViews(ranges))
}

func writePublicBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, schedule.ErrInvalidInterval):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid time interval",
		})
	case errors.Is(err, commands.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Room not found",
		})
	case errors.Is(err, commands.ErrSlotConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Slot already booked",
		})
	case errors.Is(err, pricing.ErrNoRateRule):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "No rate rule covers the requested booking",
		})
	case errors.Is(err, verification.ErrAlreadyVerified):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking already confirmed",
		})
	case errors.Is(err, verification.ErrCodeExpired):
		c.JSON(http.StatusGone, gin.H{
			"error": "Verification window expired",
		})
	case errors.Is(err, verification.ErrAttemptsExhausted):
		c.JSON(http.StatusGone, gin.H{
			"error": "Verification attempts exhausted",
		})
	case errors.Is(err, verification.ErrCodeMismatch):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Incorrect verification code",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
