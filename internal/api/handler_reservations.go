package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-management-backend/internal/hotel"
	"hotel-management-backend/internal/model"
	"hotel-management-backend/internal/store"
)

type createReservationRequest struct {
	GuestID         int64   `json:"guest_id" binding:"required"`
	RoomID          int64   `json:"room_id" binding:"required"`
	CheckInDate     string  `json:"check_in_date" binding:"required"`
	CheckOutDate    string  `json:"check_out_date" binding:"required"`
	NumberOfGuests  *int    `json:"number_of_guests"`
	SpecialRequests *string `json:"special_requests"`
}

type updateReservationRequest struct {
	CheckInDate     *string                  `json:"check_in_date"`
	CheckOutDate    *string                  `json:"check_out_date"`
	Status          *model.ReservationStatus `json:"status"`
	NumberOfGuests  *int                     `json:"number_of_guests"`
	SpecialRequests *string                  `json:"special_requests"`
}

type reservationListQuery struct {
	pageQuery
	Status []string `form:"status"`
}

type quoteQuery struct {
	RoomID   int64  `form:"room_id" binding:"required"`
	CheckIn  string `form:"check_in" binding:"required"`
	CheckOut string `form:"check_out" binding:"required"`
}

// CreateReservation handles POST /api/reservations.
func (h *Handler) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	checkIn, err := parseDate("check_in_date", req.CheckInDate)
	if err != nil {
		respondError(c, err)
		return
	}
	checkOut, err := parseDate("check_out_date", req.CheckOutDate)
	if err != nil {
		respondError(c, err)
		return
	}
	guests := 1
	if req.NumberOfGuests != nil {
		guests = *req.NumberOfGuests
	}

	reservation, err := h.reservations.Create(c.Request.Context(), hotel.NewReservation{
		GuestID:         req.GuestID,
		RoomID:          req.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		NumberOfGuests:  guests,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// ListReservations handles GET /api/reservations. status may repeat or be comma separated.
func (h *Handler) ListReservations(c *gin.Context) {
	var q reservationListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	filter := store.ReservationFilter{Page: q.page()}
	for _, raw := range q.Status {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filter.Statuses = append(filter.Statuses, model.ReservationStatus(s))
			}
		}
	}

	reservations, err := h.reservations.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// QuoteReservation handles GET /api/reservations/quote.
func (h *Handler) QuoteReservation(c *gin.Context) {
	var q quoteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	checkIn, err := parseDate("check_in", q.CheckIn)
	if err != nil {
		respondError(c, err)
		return
	}
	checkOut, err := parseDate("check_out", q.CheckOut)
	if err != nil {
		respondError(c, err)
		return
	}

	total, err := h.reservations.Quote(c.Request.Context(), q.RoomID, checkIn, checkOut)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"room_id":        q.RoomID,
		"check_in_date":  checkIn,
		"check_out_date": checkOut,
		"nights":         hotel.Nights(checkIn, checkOut),
		"total_price":    total,
	})
}

// GetReservation handles GET /api/reservations/:id.
func (h *Handler) GetReservation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	reservation, err := h.reservations.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// UpdateReservation handles PUT /api/reservations/:id.
func (h *Handler) UpdateReservation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req updateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	upd := hotel.ReservationUpdate{
		Status:          req.Status,
		NumberOfGuests:  req.NumberOfGuests,
		SpecialRequests: req.SpecialRequests,
	}
	var err error
	if upd.CheckIn, err = parseOptionalDate("check_in_date", req.CheckInDate); err != nil {
		respondError(c, err)
		return
	}
	if upd.CheckOut, err = parseOptionalDate("check_out_date", req.CheckOutDate); err != nil {
		respondError(c, err)
		return
	}

	reservation, err := h.reservations.Update(c.Request.Context(), id, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// DeleteReservation handles DELETE /api/reservations/:id.
func (h *Handler) DeleteReservation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.reservations.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ConfirmReservation handles POST /api/reservations/:id/confirm.
func (h *Handler) ConfirmReservation(c *gin.Context) {
	h.transition(c, h.reservations.Confirm)
}

// CancelReservation handles POST /api/reservations/:id/cancel.
func (h *Handler) CancelReservation(c *gin.Context) {
	h.transition(c, h.reservations.Cancel)
}

// CheckInReservation handles POST /api/reservations/:id/check-in.
func (h *Handler) CheckInReservation(c *gin.Context) {
	h.transition(c, h.reservations.CheckIn)
}

// CheckOutReservation handles POST /api/reservations/:id/check-out.
func (h *Handler) CheckOutReservation(c *gin.Context) {
	h.transition(c, h.reservations.CheckOut)
}

func (h *Handler) transition(c *gin.Context, step func(context.Context, int64) (*model.Reservation, error)) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	reservation, err := step(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}
