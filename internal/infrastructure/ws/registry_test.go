package ws

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(id, roomID string) *Client {
	cl := NewClient(nil, id, 16)
	cl.RoomID = roomID
	return cl
}

func received(cl *Client) []*WSMessage {
	var msgs []*WSMessage
	for {
		select {
		case m := <-cl.Message:
			msgs = append(msgs, m)
		default:
			return msgs
		}
	}
}

func TestRegistry_AddAndRemove(t *testing.T) {
	req := require.New(t)
	rg := NewRegistry()

	a := newTestClient("conn-a", "ROOM1")
	b := newTestClient("conn-b", "ROOM1")

	rg.AddClient(a)
	rg.AddClient(b)
	req.Equal(1, rg.RoomCount())

	remaining, removed := rg.RemoveClient(a)
	req.True(removed)
	req.Equal(1, remaining)

	remaining, removed = rg.RemoveClient(b)
	req.True(removed)
	req.Equal(0, remaining)
	req.Equal(0, rg.RoomCount())
}

func TestRegistry_RemoveUnknownClient(t *testing.T) {
	req := require.New(t)
	rg := NewRegistry()

	_, removed := rg.RemoveClient(newTestClient("conn-a", "ROOM1"))
	req.False(removed)
}

func TestRegistry_MembersSorted(t *testing.T) {
	req := require.New(t)
	rg := NewRegistry()

	rg.AddClient(newTestClient("conn-c", "ROOM1"))
	rg.AddClient(newTestClient("conn-a", "ROOM1"))
	rg.AddClient(newTestClient("conn-b", "ROOM1"))

	req.Equal([]string{"conn-a", "conn-b", "conn-c"}, rg.Members("ROOM1"))
	req.Empty(rg.Members("OTHER"))
}

func TestRegistry_BroadcastExcludesSender(t *testing.T) {
	req := require.New(t)
	rg := NewRegistry()

	a := newTestClient("conn-a", "ROOM1")
	b := newTestClient("conn-b", "ROOM1")
	rg.AddClient(a)
	rg.AddClient(b)

	err := rg.BroadcastToRoom(NewDrawEnd("ROOM1"), "conn-a")
	req.NoError(err)

	req.Empty(received(a))

	got := received(b)
	req.Len(got, 1)
	req.Equal(DrawEnd, got[0].Type)
}

func TestRegistry_BroadcastToAll(t *testing.T) {
	req := require.New(t)
	rg := NewRegistry()

	a := newTestClient("conn-a", "ROOM1")
	b := newTestClient("conn-b", "ROOM1")
	rg.AddClient(a)
	rg.AddClient(b)

	err := rg.BroadcastToRoom(NewClearCanvas("ROOM1"), "")
	req.NoError(err)

	req.Len(received(a), 1)
	req.Len(received(b), 1)
}

func TestRegistry_BroadcastUnknownRoom(t *testing.T) {
	req := require.New(t)
	rg := NewRegistry()

	err := rg.BroadcastToRoom(NewClearCanvas("NOWHERE"), "")
	req.ErrorIs(err, ErrRoomNotFound)
}

func TestRegistry_ConcurrentBroadcastAndMembership(t *testing.T) {
	req := require.New(t)
	rg := NewRegistry()

	rg.AddClient(newTestClient("conn-0", "ROOM1"))
	msg := &WSMessage{Type: RoomUsers, RoomID: "ROOM1"}

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cl := newTestClient(fmt.Sprintf("conn-%d", i), "ROOM1")
			rg.AddClient(cl)
			_ = rg.BroadcastToRoom(msg, "")
			rg.RemoveClient(cl)
		}(i)
	}
	wg.Wait()

	req.Equal([]string{"conn-0"}, rg.Members("ROOM1"))
}
