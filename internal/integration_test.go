package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-management-backend/config"
	"hotel-management-backend/internal/api"
	"hotel-management-backend/internal/db"
	"hotel-management-backend/internal/notification"
	"hotel-management-backend/internal/store"
)

// pushRecorder stands in for the browser push service.
type pushRecorder struct {
	mu       sync.Mutex
	messages []notification.Message
}

func (p *pushRecorder) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	var msg notification.Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.messages = append(p.messages, msg)
	p.mu.Unlock()
	return &http.Response{StatusCode: http.StatusCreated, Body: io.NopCloser(bytes.NewReader(nil))}, nil
}

func (p *pushRecorder) statuses() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.messages))
	for i, m := range p.messages {
		out[i] = string(m.Status)
	}
	return out
}

type client struct {
	t      *testing.T
	router http.Handler
}

func (c client) do(method, path string, body any) (int, map[string]any) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func (c client) id(out map[string]any) string {
	c.t.Helper()
	id, ok := out["id"].(float64)
	require.True(c.t, ok, "response has no id: %v", out)
	return itoa(int64(id))
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

// TestRoom101Scenario runs the booking conflict walkthrough through the HTTP
// API with the notification pool attached.
func TestRoom101Scenario(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gormDB, err := db.Init(&config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	sqlDB, _ := gormDB.DB()
	defer sqlDB.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	push := &pushRecorder{}
	pool := notification.NewWorkerPool(2, appStore, &webpush.Options{})
	pool.SetSender(push)
	pool.Start(ctx)

	handler := api.NewHandler("Hotel Management System", appStore, pool, &webpush.Options{VAPIDPublicKey: "pub"})
	c := client{t: t, router: api.NewRouter(ctx, handler, config.ServerConfig{
		RateLimitPerSec: 1000, RateLimitBurst: 1000, CacheTTL: time.Minute,
	})}

	status, room := c.do(http.MethodPost, "/api/rooms", map[string]any{
		"room_number": "101", "room_type": "double", "price": 100, "capacity": 2,
	})
	require.Equal(t, http.StatusCreated, status)
	roomPath := "/api/rooms/" + c.id(room)

	_, g1 := c.do(http.MethodPost, "/api/guests", map[string]any{
		"first_name": "Grace", "last_name": "One", "email": "g1@example.com", "phone": "1", "id_number": "G1",
	})
	_, g2 := c.do(http.MethodPost, "/api/guests", map[string]any{
		"first_name": "Gus", "last_name": "Two", "email": "g2@example.com", "phone": "2", "id_number": "G2",
	})

	status, _ = c.do(http.MethodPut, "/api/guests/"+c.id(g1)+"/subscriptions", map[string]any{
		"endpoint": "https://push.example/g1", "p256dh": "k", "auth": "a",
	})
	require.Equal(t, http.StatusCreated, status)

	// A: G1 books Jan 1-3.
	status, a := c.do(http.MethodPost, "/api/reservations", map[string]any{
		"guest_id": g1["id"], "room_id": room["id"], "check_in_date": "2024-01-01", "check_out_date": "2024-01-03",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 200.0, a["total_price"])
	_, r := c.do(http.MethodGet, roomPath, nil)
	assert.Equal(t, "reserved", r["status"])
	require.Eventually(t, func() bool {
		return len(push.statuses()) == 1
	}, 2*time.Second, 10*time.Millisecond, "G1 is told about the booking")
	assert.Equal(t, []string{"pending"}, push.statuses())

	// B: G2 asks for Jan 2-4 and is refused.
	requestB := map[string]any{
		"guest_id": g2["id"], "room_id": room["id"], "check_in_date": "2024-01-02", "check_out_date": "2024-01-04",
	}
	status, _ = c.do(http.MethodPost, "/api/reservations", requestB)
	assert.Equal(t, http.StatusConflict, status)

	// Cancelling A frees the room and lets B through.
	status, cancelled := c.do(http.MethodPost, "/api/reservations/"+c.id(a)+"/cancel", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "cancelled", cancelled["status"])
	_, r = c.do(http.MethodGet, roomPath, nil)
	assert.Equal(t, "available", r["status"])
	require.Eventually(t, func() bool {
		return len(push.statuses()) == 2
	}, 2*time.Second, 10*time.Millisecond, "G1 is told about the cancellation")

	status, b := c.do(http.MethodPost, "/api/reservations", requestB)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 200.0, b["total_price"])
	_, r = c.do(http.MethodGet, roomPath, nil)
	assert.Equal(t, "reserved", r["status"])

	// G2 has no subscription, so G1's two messages are all that was sent.
	assert.Equal(t, []string{"pending", "cancelled"}, push.statuses())
}
