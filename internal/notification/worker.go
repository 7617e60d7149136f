package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"

	"hotel-management-backend/internal/model"
	"hotel-management-backend/internal/store"
)

// queueFactor sizes the job buffer relative to the number of workers.
const queueFactor = 64

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Message is the JSON payload delivered to the guest's browser.
type Message struct {
	Title         string                  `json:"title"`
	Body          string                  `json:"body"`
	ReservationID int64                   `json:"reservation_id"`
	Status        model.ReservationStatus `json:"status"`
}

// WorkerPool tells guests about their reservations over web push.
type WorkerPool struct {
	size    int
	jobs    chan int64
	store   store.Store
	webpush *webpush.Options
	sender  NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, st store.Store, webpushOptions *webpush.Options) *WorkerPool {
	if size < 1 {
		size = 1
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan int64, size*queueFactor),
		store:   st,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// SetSender replaces the web push transport.
func (wp *WorkerPool) SetSender(sender NotificationSender) {
	wp.sender = sender
}

// Start launches the worker goroutines. They exit when ctx is cancelled.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case reservationID := <-wp.jobs:
			log.Printf("Worker %d processing reservation %d", id, reservationID)
			wp.notifyGuest(ctx, reservationID)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a notification for the reservation. It never blocks the
// caller: when the queue is full the notification is dropped.
func (wp *WorkerPool) Dispatch(reservationID int64) {
	select {
	case wp.jobs <- reservationID:
	default:
		log.Printf("Notification queue full; dropping notification for reservation %d", reservationID)
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan int64 {
	return wp.jobs
}

// notifyGuest sends the current state of a reservation to every subscription of its guest.
func (wp *WorkerPool) notifyGuest(ctx context.Context, reservationID int64) {
	r, err := wp.store.GetReservation(ctx, reservationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Printf("Reservation %d disappeared before it could be notified", reservationID)
		} else {
			log.Printf("Error fetching reservation %d: %v", reservationID, err)
		}
		return
	}

	subscriptions, err := wp.store.ListSubscriptions(ctx, r.GuestID)
	if err != nil {
		log.Printf("Error fetching subscriptions for guest %d: %v", r.GuestID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	roomLabel := fmt.Sprintf("#%d", r.RoomID)
	if room, err := wp.store.GetRoom(ctx, r.RoomID); err != nil {
		log.Printf("Error fetching room %d: %v", r.RoomID, err)
	} else if room.RoomNumber != "" {
		roomLabel = room.RoomNumber
	}

	payload, err := json.Marshal(NewMessage(r, roomLabel))
	if err != nil {
		log.Printf("Error encoding notification for reservation %d: %v", r.ID, err)
		return
	}

	log.Printf("Sending %d notifications for reservation %d", len(subscriptions), r.ID)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, payload)
	}
}

// NewMessage describes a reservation in its current status.
func NewMessage(r *model.Reservation, roomLabel string) Message {
	stay := fmt.Sprintf("room %s, %s to %s", roomLabel,
		r.CheckInDate.Format("Jan 2"), r.CheckOutDate.Format("Jan 2, 2006"))

	var title, body string
	switch r.Status {
	case model.ReservationPending:
		title, body = "Reservation received", "We received your booking for "+stay+"."
	case model.ReservationConfirmed:
		title, body = "Reservation confirmed", "Your booking for "+stay+" is confirmed."
	case model.ReservationCheckedIn:
		title, body = "Welcome", "You are checked in to room "+roomLabel+". Enjoy your stay."
	case model.ReservationCheckedOut:
		title, body = "Thank you", "You have checked out of room "+roomLabel+"."
	case model.ReservationCancelled:
		title, body = "Reservation cancelled", "Your booking for "+stay+" was cancelled."
	default:
		title, body = "Reservation updated", fmt.Sprintf("Your booking for %s is now %s.", stay, r.Status)
	}
	return Message{Title: title, Body: body, ReservationID: r.ID, Status: r.Status}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// The push service forgot this subscription.
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.store.DeleteSubscription(ctx, sub.GuestID, sub.Endpoint); err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
