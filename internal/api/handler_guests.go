package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-management-backend/internal/hotel"
)

type createGuestRequest struct {
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Email     string  `json:"email" binding:"required"`
	Phone     string  `json:"phone" binding:"required"`
	Address   *string `json:"address"`
	IDNumber  string  `json:"id_number" binding:"required"`
}

type updateGuestRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	IDNumber  *string `json:"id_number"`
}

// CreateGuest handles POST /api/guests.
func (h *Handler) CreateGuest(c *gin.Context) {
	var req createGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	guest, err := h.guests.Create(c.Request.Context(), hotel.NewGuest(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, guest)
}

// ListGuests handles GET /api/guests.
func (h *Handler) ListGuests(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	guests, err := h.guests.List(c.Request.Context(), q.page())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, guests)
}

// GetGuest handles GET /api/guests/:id.
func (h *Handler) GetGuest(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	guest, err := h.guests.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

// GetGuestByEmail handles GET /api/guests/search/email/:email.
func (h *Handler) GetGuestByEmail(c *gin.Context) {
	guest, err := h.guests.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

// UpdateGuest handles PUT /api/guests/:id.
func (h *Handler) UpdateGuest(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req updateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	guest, err := h.guests.Update(c.Request.Context(), id, hotel.GuestUpdate(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

// DeleteGuest handles DELETE /api/guests/:id.
func (h *Handler) DeleteGuest(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.guests.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListGuestReservations handles GET /api/guests/:id/reservations.
func (h *Handler) ListGuestReservations(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	reservations, err := h.reservations.ListForGuest(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}
