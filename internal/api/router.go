package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"hotel-management-backend/config"
	"hotel-management-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router. The rate limiter's
// idle-client sweeper runs until ctx is cancelled.
func NewRouter(ctx context.Context, h *Handler, cfg config.ServerConfig) *gin.Engine {
	r := gin.Default()
	r.Use(mw.RequestID())

	limiter := mw.NewIPRateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst, 10*time.Minute)
	go limiter.Run(ctx, time.Minute)

	cacheStore := cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	caching := mw.Cache(cacheStore, cfg.CacheTTL)

	r.GET("/", h.GetRoot)
	r.GET("/health", h.GetHealth)

	api := r.Group("/api")
	api.Use(mw.RateLimiter(limiter), caching)
	{
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)

		rooms := api.Group("/rooms")
		rooms.POST("", h.CreateRoom)
		rooms.GET("", h.ListRooms)
		rooms.GET("/available", h.ListAvailableRooms)
		rooms.GET("/:id", h.GetRoom)
		rooms.PUT("/:id", h.UpdateRoom)
		rooms.DELETE("/:id", h.DeleteRoom)
		rooms.GET("/:id/reservations", h.ListRoomReservations)

		guests := api.Group("/guests")
		guests.POST("", h.CreateGuest)
		guests.GET("", h.ListGuests)
		guests.GET("/search/email/:email", h.GetGuestByEmail)
		guests.GET("/:id", h.GetGuest)
		guests.PUT("/:id", h.UpdateGuest)
		guests.DELETE("/:id", h.DeleteGuest)
		guests.GET("/:id/reservations", h.ListGuestReservations)
		guests.GET("/:id/subscriptions", h.GetSubscriptions)
		guests.PUT("/:id/subscriptions", h.PutSubscription)
		guests.DELETE("/:id/subscriptions", h.DeleteSubscription)

		reservations := api.Group("/reservations")
		reservations.POST("", h.CreateReservation)
		reservations.GET("", h.ListReservations)
		reservations.GET("/quote", h.QuoteReservation)
		reservations.GET("/:id", h.GetReservation)
		reservations.PUT("/:id", h.UpdateReservation)
		reservations.DELETE("/:id", h.DeleteReservation)
		reservations.POST("/:id/confirm", h.ConfirmReservation)
		reservations.POST("/:id/cancel", h.CancelReservation)
		reservations.POST("/:id/check-in", h.CheckInReservation)
		reservations.POST("/:id/check-out", h.CheckOutReservation)
	}

	return r
}
