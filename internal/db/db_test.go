package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-management-backend/config"
	"hotel-management-backend/internal/model"
)

func TestInit_SQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:                  config.DriverSQLite,
		DSN:                     "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns:            2,
		EnableOverlapConstraint: true, // ignored for sqlite
	}

	gormDB, err := Init(cfg)
	require.NoError(t, err)
	sqlDB, _ := gormDB.DB()
	defer sqlDB.Close()

	for _, m := range []any{&model.Room{}, &model.Guest{}, &model.Reservation{}, &model.PushSubscription{}} {
		assert.True(t, gormDB.Migrator().HasTable(m), "expected table for %T", m)
	}
	assert.True(t, gormDB.Migrator().HasIndex(&model.Reservation{}, "idx_reservation_room_dates"))
}

func TestInit_UnsupportedDriver(t *testing.T) {
	_, err := Init(&config.DatabaseConfig{Driver: "oracle", DSN: "whatever"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
