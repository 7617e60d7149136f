package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-management-backend/internal/hotel"
	"hotel-management-backend/internal/model"
	"hotel-management-backend/internal/store"
)

type createRoomRequest struct {
	RoomNumber  string           `json:"room_number" binding:"required"`
	RoomType    model.RoomType   `json:"room_type" binding:"required"`
	Price       float64          `json:"price"`
	Status      model.RoomStatus `json:"status"`
	Floor       *int             `json:"floor"`
	Capacity    int              `json:"capacity"`
	Description *string          `json:"description"`
}

type updateRoomRequest struct {
	RoomNumber  *string           `json:"room_number"`
	RoomType    *model.RoomType   `json:"room_type"`
	Price       *float64          `json:"price"`
	Status      *model.RoomStatus `json:"status"`
	Floor       *int              `json:"floor"`
	Capacity    *int              `json:"capacity"`
	Description *string           `json:"description"`
}

type roomListQuery struct {
	pageQuery
	Status model.RoomStatus `form:"status"`
}

type availabilityQuery struct {
	CheckIn  string `form:"check_in"`
	CheckOut string `form:"check_out"`
	Guests   int    `form:"guests" binding:"min=0"`
}

// CreateRoom handles POST /api/rooms.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	room, err := h.rooms.Create(c.Request.Context(), hotel.NewRoom{
		RoomNumber:  req.RoomNumber,
		RoomType:    req.RoomType,
		Price:       req.Price,
		Status:      req.Status,
		Floor:       req.Floor,
		Capacity:    req.Capacity,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// ListRooms handles GET /api/rooms.
func (h *Handler) ListRooms(c *gin.Context) {
	var q roomListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	rooms, err := h.rooms.List(c.Request.Context(), store.RoomFilter{Status: q.Status, Page: q.page()})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// ListAvailableRooms handles GET /api/rooms/available. Without a date range it
// lists the rooms currently marked available.
func (h *Handler) ListAvailableRooms(c *gin.Context) {
	var q availabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	var (
		rooms []model.Room
		err   error
	)
	if q.CheckIn == "" && q.CheckOut == "" {
		rooms, err = h.rooms.Available(c.Request.Context())
	} else {
		rooms, err = h.availableFor(c, q)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *Handler) availableFor(c *gin.Context, q availabilityQuery) ([]model.Room, error) {
	checkIn, err := parseDate("check_in", q.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := parseDate("check_out", q.CheckOut)
	if err != nil {
		return nil, err
	}
	return h.rooms.AvailableFor(c.Request.Context(), checkIn, checkOut, q.Guests)
}

// GetRoom handles GET /api/rooms/:id.
func (h *Handler) GetRoom(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	room, err := h.rooms.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// UpdateRoom handles PUT /api/rooms/:id.
func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req updateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	room, err := h.rooms.Update(c.Request.Context(), id, hotel.RoomUpdate(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// DeleteRoom handles DELETE /api/rooms/:id.
func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.rooms.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListRoomReservations handles GET /api/rooms/:id/reservations.
func (h *Handler) ListRoomReservations(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	reservations, err := h.reservations.ListForRoom(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}
