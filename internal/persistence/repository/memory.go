package repository

import (
	"context"
	"sync"
	"time"

	"inkboard/internal/domain"
)

// MemoryRoomRepository is the storeless fallback used when no MongoDB URI is
// configured. It mirrors the Mongo-backed repository's behavior, including the
// 24h idle eviction, but history does not survive a restart.
type MemoryRoomRepository struct {
	rooms      map[string]*domain.Room
	lastAccess map[string]time.Time
	capacity   uint
	idleExpiry time.Duration
	mu         *sync.RWMutex
}

func NewMemoryRoomRepository(capacity uint, idleExpiry time.Duration) *MemoryRoomRepository {
	if capacity == 0 {
		capacity = 1000
	}
	if idleExpiry == 0 {
		idleExpiry = roomTTLSeconds * time.Second
	}

	return &MemoryRoomRepository{
		rooms:      make(map[string]*domain.Room),
		lastAccess: make(map[string]time.Time),
		capacity:   capacity,
		idleExpiry: idleExpiry,
		mu:         &sync.RWMutex{},
	}
}

func (r *MemoryRoomRepository) touch(roomID string) {
	now := time.Now()
	r.lastAccess[roomID] = now
	if room, exists := r.rooms[roomID]; exists {
		room.LastActivity = now.UTC()
	}
}

func (r *MemoryRoomRepository) evictIdle() {
	cutoff := time.Now().Add(-r.idleExpiry)
	for id, last := range r.lastAccess {
		if last.Before(cutoff) {
			delete(r.rooms, id)
			delete(r.lastAccess, id)
		}
	}
}

// enforceCapacity removes oldest-accessed rooms when over capacity.
func (r *MemoryRoomRepository) enforceCapacity() {
	if uint(len(r.rooms)) <= r.capacity {
		return
	}

	for uint(len(r.rooms)) > r.capacity {
		var oldestID string
		var oldestTime time.Time
		for id, t := range r.lastAccess {
			if oldestID == "" || t.Before(oldestTime) {
				oldestID = id
				oldestTime = t
			}
		}
		delete(r.rooms, oldestID)
		delete(r.lastAccess, oldestID)
	}
}

func (r *MemoryRoomRepository) JoinOrCreate(ctx context.Context, roomID string) (*domain.Room, error) {
	if roomID == "" {
		return nil, domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.evictIdle()

	room, exists := r.rooms[roomID]
	if !exists {
		room = domain.NewRoom(roomID)
		r.rooms[roomID] = room
		r.lastAccess[roomID] = time.Now()
		r.enforceCapacity()
	} else {
		r.touch(roomID)
	}

	return snapshot(room), nil
}

func (r *MemoryRoomRepository) GetByID(ctx context.Context, roomID string) (*domain.Room, error) {
	if roomID == "" {
		return nil, domain.ErrInvalidInput
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, exists := r.rooms[roomID]
	if !exists {
		return nil, domain.ErrRoomNotFound
	}

	return snapshot(room), nil
}

func (r *MemoryRoomRepository) Append(ctx context.Context, roomID string, cmd domain.DrawingCommand) error {
	if roomID == "" {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.evictIdle()

	room, exists := r.rooms[roomID]
	if !exists {
		room = domain.NewRoom(roomID)
		r.rooms[roomID] = room
		r.lastAccess[roomID] = time.Now()
		r.enforceCapacity()
	}

	room.Commands = append(room.Commands, cmd)
	r.touch(roomID)

	return nil
}

func (r *MemoryRoomRepository) LoadAll(ctx context.Context, roomID string) ([]domain.DrawingCommand, error) {
	if roomID == "" {
		return nil, domain.ErrInvalidInput
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, exists := r.rooms[roomID]
	if !exists {
		return []domain.DrawingCommand{}, nil
	}

	commands := make([]domain.DrawingCommand, len(room.Commands))
	copy(commands, room.Commands)

	return commands, nil
}

func (r *MemoryRoomRepository) Touch(ctx context.Context, roomID string) error {
	if roomID == "" {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[roomID]; exists {
		r.touch(roomID)
	}

	return nil
}

// snapshot copies a room so callers can't mutate shared state.
func snapshot(room *domain.Room) *domain.Room {
	out := *room
	out.Commands = make([]domain.DrawingCommand, len(room.Commands))
	copy(out.Commands, room.Commands)
	return &out
}
