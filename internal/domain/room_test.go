package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeRoomID_Canonicalizes(t *testing.T) {
	req := require.New(t)

	id, err := NormalizeRoomID("abc123")
	req.NoError(err)
	req.Equal("ABC123", id)

	id, err = NormalizeRoomID("  my-room-1  ")
	req.NoError(err)
	req.Equal("MY-ROOM-1", id)
}

func TestNormalizeRoomID_Rejects(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"inner space", "my room"},
		{"punctuation", "room!"},
		{"unicode", "комната"},
		{"too long", strings.Repeat("A", 65)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizeRoomID(tc.raw)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestNewRoom(t *testing.T) {
	req := require.New(t)

	room := NewRoom("ABC123")
	req.Equal("ABC123", room.RoomID)
	req.Equal(room.CreatedAt, room.LastActivity)
	req.NotNil(room.Commands)
	req.Empty(room.Commands)
}
