package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"inkboard/internal/domain"
)

func TestMemoryRoomRepository_JoinOrCreate(t *testing.T) {
	req := require.New(t)
	repo := NewMemoryRoomRepository(0, 0)
	ctx := context.Background()

	room, err := repo.JoinOrCreate(ctx, "ABC123")
	req.NoError(err)
	req.Equal("ABC123", room.RoomID)
	req.Empty(room.Commands)
	req.Equal(room.CreatedAt, room.LastActivity)

	// Second join returns the same room with a refreshed activity clock
	again, err := repo.JoinOrCreate(ctx, "ABC123")
	req.NoError(err)
	req.Equal(room.CreatedAt, again.CreatedAt)
	req.True(again.LastActivity.After(room.LastActivity) || again.LastActivity.Equal(room.LastActivity))
}

func TestMemoryRoomRepository_GetByID(t *testing.T) {
	req := require.New(t)
	repo := NewMemoryRoomRepository(0, 0)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "MISSING")
	req.ErrorIs(err, domain.ErrRoomNotFound)

	_, err = repo.JoinOrCreate(ctx, "ABC123")
	req.NoError(err)

	room, err := repo.GetByID(ctx, "ABC123")
	req.NoError(err)
	req.Equal("ABC123", room.RoomID)
}

func TestMemoryRoomRepository_AppendAndLoadAll(t *testing.T) {
	req := require.New(t)
	repo := NewMemoryRoomRepository(0, 0)
	ctx := context.Background()

	cmd := domain.NewStrokeCommand(domain.Stroke{
		Path:  []domain.Point{{X: 1, Y: 1}, {X: 2, Y: 2}},
		Color: "#000000",
	})

	// Appending to an unknown room creates it
	req.NoError(repo.Append(ctx, "ABC123", cmd))
	req.NoError(repo.Append(ctx, "ABC123", domain.NewClearCommand()))

	commands, err := repo.LoadAll(ctx, "ABC123")
	req.NoError(err)
	req.Len(commands, 2)
	req.Equal(domain.CommandStroke, commands[0].Type)
	req.Equal(domain.CommandClear, commands[1].Type)
}

func TestMemoryRoomRepository_LoadAllUnknownRoom(t *testing.T) {
	req := require.New(t)
	repo := NewMemoryRoomRepository(0, 0)

	commands, err := repo.LoadAll(context.Background(), "MISSING")
	req.NoError(err)
	req.Empty(commands)
}

func TestMemoryRoomRepository_SnapshotsAreIsolated(t *testing.T) {
	req := require.New(t)
	repo := NewMemoryRoomRepository(0, 0)
	ctx := context.Background()

	req.NoError(repo.Append(ctx, "ABC123", domain.NewClearCommand()))

	room, err := repo.GetByID(ctx, "ABC123")
	req.NoError(err)
	room.Commands[0].Type = domain.CommandStroke

	fresh, err := repo.GetByID(ctx, "ABC123")
	req.NoError(err)
	req.Equal(domain.CommandClear, fresh.Commands[0].Type)
}

func TestMemoryRoomRepository_IdleEviction(t *testing.T) {
	req := require.New(t)
	repo := NewMemoryRoomRepository(0, 10*time.Millisecond)
	ctx := context.Background()

	_, err := repo.JoinOrCreate(ctx, "STALE")
	req.NoError(err)

	time.Sleep(20 * time.Millisecond)

	// The next join sweeps expired rooms, so STALE comes back empty
	req.NoError(repo.Append(ctx, "STALE", domain.NewClearCommand()))
	_, err = repo.JoinOrCreate(ctx, "OTHER")
	req.NoError(err)

	commands, err := repo.LoadAll(ctx, "STALE")
	req.NoError(err)
	req.Len(commands, 1)
}

func TestMemoryRoomRepository_CapacityEvictsOldest(t *testing.T) {
	req := require.New(t)
	repo := NewMemoryRoomRepository(2, time.Hour)
	ctx := context.Background()

	_, err := repo.JoinOrCreate(ctx, "ROOM-1")
	req.NoError(err)
	time.Sleep(time.Millisecond)
	_, err = repo.JoinOrCreate(ctx, "ROOM-2")
	req.NoError(err)
	time.Sleep(time.Millisecond)
	_, err = repo.JoinOrCreate(ctx, "ROOM-3")
	req.NoError(err)

	_, err = repo.GetByID(ctx, "ROOM-1")
	req.ErrorIs(err, domain.ErrRoomNotFound)

	_, err = repo.GetByID(ctx, "ROOM-3")
	req.NoError(err)
}
