package ws

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrClientNotFound = errors.New("client not found")
)

type wsRoom struct {
	ID      string
	Clients map[string]*Client
}

// Registry tracks which connections are currently in which room. A room entry
// exists only while it has members; durable room state lives in storage.
type Registry struct {
	rooms map[string]*wsRoom // roomID → room
	mu    sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*wsRoom),
	}
}

func (rg *Registry) AddClient(cl *Client) {
	rg.mu.Lock()
	defer rg.mu.Unlock()

	room, ok := rg.rooms[cl.RoomID]
	if !ok {
		room = &wsRoom{
			ID:      cl.RoomID,
			Clients: make(map[string]*Client),
		}
		rg.rooms[cl.RoomID] = room
	}

	if _, exists := room.Clients[cl.ID]; !exists {
		room.Clients[cl.ID] = cl
	}
}

// RemoveClient drops a client from its room and reports how many members
// remain. Empty rooms are deleted from the registry.
func (rg *Registry) RemoveClient(cl *Client) (remaining int, removed bool) {
	rg.mu.Lock()
	defer rg.mu.Unlock()

	room, ok := rg.rooms[cl.RoomID]
	if !ok {
		return 0, false
	}

	if _, ok := room.Clients[cl.ID]; !ok {
		return len(room.Clients), false
	}

	delete(room.Clients, cl.ID)

	if len(room.Clients) == 0 {
		delete(rg.rooms, cl.RoomID)
		return 0, true
	}

	return len(room.Clients), true
}

// Members returns the connection ids currently in a room, sorted so presence
// snapshots are stable across broadcasts.
func (rg *Registry) Members(roomID string) []string {
	rg.mu.RLock()
	defer rg.mu.RUnlock()

	room, ok := rg.rooms[roomID]
	if !ok {
		return []string{}
	}

	members := make([]string, 0, len(room.Clients))
	for id := range room.Clients {
		members = append(members, id)
	}
	sort.Strings(members)

	return members
}

func (rg *Registry) RoomCount() int {
	rg.mu.RLock()
	defer rg.mu.RUnlock()

	return len(rg.rooms)
}

// BroadcastToRoom sends msg to every member of the room except excludeID.
// Pass an empty excludeID to reach everyone. The lock is held across the
// iteration so membership cannot change mid-broadcast; sends never block,
// so holding it is cheap.
func (rg *Registry) BroadcastToRoom(msg *WSMessage, excludeID string) error {
	rg.mu.RLock()
	defer rg.mu.RUnlock()

	room, ok := rg.rooms[msg.RoomID]
	if !ok {
		return ErrRoomNotFound
	}

	for _, cl := range room.Clients {
		if cl.ID == excludeID {
			continue
		}
		cl.Send(msg)
	}
	return nil
}
