package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomNumber(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expected  ParsedRoomNumber
		expectErr bool
	}{
		{
			name:     "Three digits",
			raw:      "101",
			expected: ParsedRoomNumber{Floor: 1, Seq: 1},
		},
		{
			name:     "Four digits",
			raw:      "1203",
			expected: ParsedRoomNumber{Floor: 12, Seq: 3},
		},
		{
			name:     "Wing prefix with dash",
			raw:      "b-204",
			expected: ParsedRoomNumber{Wing: "B", Floor: 2, Seq: 4},
		},
		{
			name:     "Explicit floor and sequence",
			raw:      "A12-05",
			expected: ParsedRoomNumber{Wing: "A", Floor: 12, Seq: 5},
		},
		{
			name:     "Surrounding spaces and hash",
			raw:      "  #305 ",
			expected: ParsedRoomNumber{Floor: 3, Seq: 5},
		},
		{
			name:     "Ground floor",
			raw:      "007",
			expected: ParsedRoomNumber{Floor: 0, Seq: 7},
		},
		{
			name:      "Too short",
			raw:       "12",
			expectErr: true,
		},
		{
			name:      "Not a room number",
			raw:       "Penthouse",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := RoomNumber(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, parsed)
			}
		})
	}
}
