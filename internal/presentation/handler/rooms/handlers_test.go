package rooms

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"inkboard/internal/domain"
	"inkboard/internal/infrastructure/events"
	"inkboard/internal/infrastructure/ws"
	"inkboard/internal/persistence/repository"
)

func newTestRouter(repo domain.RoomRepository, commandLog domain.CommandLog) http.Handler {
	relay := ws.NewRelay(ws.RelayOptions{CommandLog: commandLog})
	h := NewHandler(repo, relay, events.NewNoopPublisher())

	r := chi.NewRouter()
	r.Post("/api/rooms/join", h.JoinRoomHandler)
	r.Get("/api/rooms/{roomId}", h.GetRoomHandler)
	return r
}

func TestJoinRoomHandler_CreatesRoom(t *testing.T) {
	req := require.New(t)
	repo := repository.NewMemoryRoomRepository(0, 0)
	router := newTestRouter(repo, repo)

	body := bytes.NewBufferString(`{"roomId":"abc123"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/rooms/join", body))

	req.Equal(http.StatusOK, rec.Code)

	var resp roomResponse
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	req.True(resp.Success)
	req.Equal("ABC123", resp.Room.RoomID)
	req.NotNil(resp.Room.Commands)
	req.Empty(resp.Room.Commands)
}

func TestJoinRoomHandler_ReturnsExistingHistory(t *testing.T) {
	req := require.New(t)
	repo := repository.NewMemoryRoomRepository(0, 0)
	router := newTestRouter(repo, repo)

	cmd := domain.NewStrokeCommand(domain.Stroke{
		Path:  []domain.Point{{X: 1, Y: 1}, {X: 2, Y: 2}},
		Color: "#000000",
	})
	req.NoError(repo.Append(context.Background(), "ABC123", cmd))

	body := bytes.NewBufferString(`{"roomId":"ABC123"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/rooms/join", body))

	req.Equal(http.StatusOK, rec.Code)

	var resp roomResponse
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	req.Len(resp.Room.Commands, 1)
	req.Equal(domain.CommandStroke, resp.Room.Commands[0].Type)
	req.Equal(1, resp.Room.StrokeCount)
}

func TestJoinRoomHandler_RejectsInvalidRoomID(t *testing.T) {
	req := require.New(t)
	repo := repository.NewMemoryRoomRepository(0, 0)
	router := newTestRouter(repo, repo)

	cases := []string{
		`{"roomId":""}`,
		`{"roomId":"has space"}`,
		`{"roomId":"bad!"}`,
		`{}`,
	}

	for _, body := range cases {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/rooms/join", bytes.NewBufferString(body)))
		req.Equal(http.StatusBadRequest, rec.Code, "body: %s", body)
	}
}

func TestJoinRoomHandler_RejectsUnknownFields(t *testing.T) {
	req := require.New(t)
	repo := repository.NewMemoryRoomRepository(0, 0)
	router := newTestRouter(repo, repo)

	body := bytes.NewBufferString(`{"roomId":"ABC123","bogus":true}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/rooms/join", body))

	req.Equal(http.StatusBadRequest, rec.Code)
}

func TestGetRoomHandler(t *testing.T) {
	req := require.New(t)
	repo := repository.NewMemoryRoomRepository(0, 0)
	router := newTestRouter(repo, repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/rooms/MISSING", nil))
	req.Equal(http.StatusNotFound, rec.Code)

	_, err := repo.JoinOrCreate(context.Background(), "ABC123")
	req.NoError(err)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/rooms/abc123", nil))
	req.Equal(http.StatusOK, rec.Code)

	var resp roomResponse
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	req.Equal("ABC123", resp.Room.RoomID)
}
