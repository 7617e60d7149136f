package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-management-backend/config"
	"hotel-management-backend/internal/db"
	"hotel-management-backend/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testServerConfig = config.ServerConfig{
	RateLimitPerSec: 1000,
	RateLimitBurst:  1000,
	CacheTTL:        time.Minute,
}

// newTestRouter serves the full API over a private in-memory SQLite database.
func newTestRouter(t *testing.T, webpushOptions *webpush.Options) (*gin.Engine, store.Store) {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(testDB))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	st := store.NewGormStore(testDB)
	h := NewHandler("Hotel Management System", st, nil, webpushOptions)
	return NewRouter(ctx, h, testServerConfig), st
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
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

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type roomJSON struct {
	ID         int64   `json:"id"`
	RoomNumber string  `json:"room_number"`
	Status     string  `json:"status"`
	Floor      *int    `json:"floor"`
	Capacity   int     `json:"capacity"`
	Price      float64 `json:"price"`
}

type guestJSON struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type reservationJSON struct {
	ID           int64     `json:"id"`
	Status       string    `json:"status"`
	TotalPrice   float64   `json:"total_price"`
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
}

func createRoom(t *testing.T, r http.Handler, number string, capacity int, price float64) roomJSON {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/rooms", gin.H{
		"room_number": number, "room_type": "double", "price": price, "capacity": capacity,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[roomJSON](t, w)
}

func createGuest(t *testing.T, r http.Handler, name string) guestJSON {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/guests", gin.H{
		"first_name": name, "last_name": "Tester", "email": name + "@example.com",
		"phone": "5550100", "id_number": "ID-" + name,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[guestJSON](t, w)
}

func getRoom(t *testing.T, r http.Handler, id int64) roomJSON {
	t.Helper()
	w := doJSON(t, r, http.MethodGet, "/api/rooms/"+itoa(id), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[roomJSON](t, w)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
