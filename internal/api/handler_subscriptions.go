package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type putSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	P256DH   string `json:"p256dh" binding:"required"`
	Auth     string `json:"auth" binding:"required"`
}

type deleteSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// PutSubscription registers, or refreshes, a browser push subscription of a guest.
func (h *Handler) PutSubscription(c *gin.Context) {
	guestID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req putSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	sub, err := h.guests.Subscribe(c.Request.Context(), guestID, req.Endpoint, req.P256DH, req.Auth)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// DeleteSubscription removes a push subscription of a guest.
func (h *Handler) DeleteSubscription(c *gin.Context) {
	guestID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req deleteSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.guests.Unsubscribe(c.Request.Context(), guestID, req.Endpoint); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSubscriptions lists the push endpoints registered for a guest.
func (h *Handler) GetSubscriptions(c *gin.Context) {
	guestID, ok := idParam(c, "id")
	if !ok {
		return
	}
	subs, err := h.guests.Subscriptions(c.Request.Context(), guestID)
	if err != nil {
		respondError(c, err)
		return
	}

	endpoints := make([]string, len(subs))
	for i, sub := range subs {
		endpoints[i] = sub.Endpoint
	}
	c.JSON(http.StatusOK, gin.H{"endpoints": endpoints})
}
