package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-management-backend/internal/apperr"
	"hotel-management-backend/internal/db"
	"hotel-management-backend/internal/model"
)

func newSQLiteStore(t *testing.T) Store {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard, TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gormDB))
	return NewGormStore(gormDB)
}

func TestGormStore_UniqueIndexesReportConflicts(t *testing.T) {
	ctx := context.Background()
	st := newSQLiteStore(t)

	require.NoError(t, st.CreateRoom(ctx, &model.Room{RoomNumber: "101", RoomType: model.RoomTypeDouble, Price: 100, Capacity: 2}))
	err := st.CreateRoom(ctx, &model.Room{RoomNumber: "101", RoomType: model.RoomTypeSingle, Price: 80, Capacity: 1})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	first := &model.Guest{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Phone: "5550100100", IDNumber: "ID-1"}
	require.NoError(t, st.CreateGuest(ctx, first))

	sameEmail := &model.Guest{FirstName: "Ada", LastName: "Byron", Email: "ada@example.com", Phone: "5550100101", IDNumber: "ID-2"}
	assert.ErrorIs(t, st.CreateGuest(ctx, sameEmail), apperr.ErrConflict)

	second := &model.Guest{FirstName: "Bob", LastName: "Tester", Email: "bob@example.com", Phone: "5550100102", IDNumber: "ID-3"}
	require.NoError(t, st.CreateGuest(ctx, second))
	second.IDNumber = "ID-1"
	assert.ErrorIs(t, st.SaveGuest(ctx, second), apperr.ErrConflict)

	guests, err := st.ListGuests(ctx, Page{})
	require.NoError(t, err)
	assert.Len(t, guests, 2)
}
