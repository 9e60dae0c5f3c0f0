package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// wsPipe dials a throwaway upgrade server and returns both ends of one
// websocket connection.
func wsPipe(t *testing.T) (server, client *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	conns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns <- c
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = client.Close() })

	select {
	case server = <-conns:
	case <-time.After(time.Second):
		t.Fatal("server side never connected")
	}
	t.Cleanup(func() { _ = server.Close() })

	return server, client
}

func TestClientSend_FullBufferDropsPositionUpdates(t *testing.T) {
	req := require.New(t)
	server, _ := wsPipe(t)

	cl := NewClient(server, "conn-a", 1)
	cl.Send(&WSMessage{Type: DrawStart, RoomID: "ROOM-A"})

	// With the buffer full, intermediate positions are expendable.
	cl.Send(&WSMessage{Type: DrawMove, RoomID: "ROOM-A"})
	cl.Send(&WSMessage{Type: CursorMove, RoomID: "ROOM-A"})

	req.Len(cl.Message, 1)
	req.NoError(cl.conn.Ping(time.Now().Add(time.Second)))
}

func TestClientSend_SaturatedDrawEndDisconnects(t *testing.T) {
	req := require.New(t)
	server, client := wsPipe(t)

	cl := NewClient(server, "conn-a", 1)
	cl.Send(&WSMessage{Type: DrawStart, RoomID: "ROOM-A"})

	// A peer that cannot take a draw-end would be stuck with a half-open
	// stroke forever, so saturation here ends the connection instead.
	cl.Send(&WSMessage{Type: DrawEnd, RoomID: "ROOM-A"})

	req.Error(cl.conn.Ping(time.Now().Add(time.Second)))

	req.NoError(client.SetReadDeadline(time.Now().Add(time.Second)))
	_, _, err := client.ReadMessage()
	req.Error(err)
}

func TestClientSend_SaturatedPresenceDisconnects(t *testing.T) {
	req := require.New(t)
	server, _ := wsPipe(t)

	cl := NewClient(server, "conn-a", 1)
	cl.Send(&WSMessage{Type: LoadDrawing, RoomID: "ROOM-A"})
	cl.Send(&WSMessage{Type: RoomUsers, RoomID: "ROOM-A"})

	req.Error(cl.conn.Ping(time.Now().Add(time.Second)))
}
