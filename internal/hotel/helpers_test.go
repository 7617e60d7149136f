package hotel

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-management-backend/internal/db"
	"hotel-management-backend/internal/model"
	"hotel-management-backend/internal/store"
)

// newTestStore opens a private in-memory SQLite database with the full schema.
func newTestStore(t *testing.T) store.Store {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(testDB))
	return store.NewGormStore(testDB)
}

func day0(offset int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func seedRoom(t *testing.T, st store.Store, number string, capacity int, price float64) *model.Room {
	t.Helper()
	room, err := NewRooms(st).Create(context.Background(), NewRoom{
		RoomNumber: number,
		RoomType:   model.RoomTypeDouble,
		Price:      price,
		Capacity:   capacity,
	})
	require.NoError(t, err)
	return room
}

func seedGuest(t *testing.T, st store.Store, name string) *model.Guest {
	t.Helper()
	guest, err := NewGuests(st).Create(context.Background(), NewGuest{
		FirstName: name,
		LastName:  "Tester",
		Email:     name + "@example.com",
		Phone:     "5550100100",
		IDNumber:  "ID-" + name,
	})
	require.NoError(t, err)
	return guest
}

func roomStatus(t *testing.T, st store.Store, roomID int64) model.RoomStatus {
	t.Helper()
	room, err := st.GetRoom(context.Background(), roomID)
	require.NoError(t, err)
	return room.Status
}

// recordingNotifier collects dispatched reservation ids.
type recordingNotifier struct {
	mu  sync.Mutex
	ids []int64
}

func (n *recordingNotifier) Dispatch(id int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ids = append(n.ids, id)
}

func (n *recordingNotifier) dispatched() []int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]int64(nil), n.ids...)
}
