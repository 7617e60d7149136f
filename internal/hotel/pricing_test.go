package hotel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-management-backend/internal/apperr"
)

func TestNights(t *testing.T) {
	assert.Equal(t, 3, Nights(day0(0), day0(3)))
	assert.Equal(t, 1, Nights(day0(0), day0(1).Add(23*time.Hour)), "partial days are truncated")
	assert.Equal(t, 0, Nights(day0(0), day0(0).Add(20*time.Hour)))
	assert.Equal(t, -2, Nights(day0(3), day0(1)))
}

func TestTotalPrice(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	room := seedRoom(t, st, "101", 2, 100)

	price, err := TotalPrice(ctx, st, room.ID, day0(0), day0(3))
	require.NoError(t, err)
	assert.Equal(t, 300.0, price)

	_, err = TotalPrice(ctx, st, 999, day0(0), day0(3))
	assert.ErrorIs(t, err, apperr.ErrNotFound, "a missing room is reported, not priced at zero")
}
