package rooms

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkboard/internal/domain"
	"inkboard/internal/infrastructure/events"
	"inkboard/internal/infrastructure/json"
	"inkboard/internal/infrastructure/ws"
)

type Handler struct {
	roomRepository domain.RoomRepository
	relay          *ws.Relay
	roomPublisher  events.Publisher
}

func NewHandler(
	roomRepository domain.RoomRepository,
	relay *ws.Relay,
	roomPublisher events.Publisher,
) *Handler {
	return &Handler{
		roomRepository: roomRepository,
		relay:          relay,
		roomPublisher:  roomPublisher,
	}
}

// JoinRoomHandler godoc
// @Summary      Join or create a room
// @Description  Returns the room with its full drawing history, creating it if it does not exist
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        request body joinRoomRequest true "Room to join"
// @Success      200 {object} roomResponse "Room joined"
// @Failure      400 {object} json.ErrorResponse "Invalid room id"
// @Failure      500 {object} json.ErrorResponse "Internal server error"
// @Router       /rooms/join [post]
func (h *Handler) JoinRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req joinRoomRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	roomID, err := domain.NormalizeRoomID(req.RoomID)
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	ctx := r.Context()
	room, err := h.roomRepository.JoinOrCreate(ctx, roomID)
	if err != nil {
		log.Printf("Failed to join or create room %s: %v", roomID, err)
		json.WriteInternalError(w, err)
		return
	}

	// A freshly created room has no history and no prior activity window.
	if len(room.Commands) == 0 && room.CreatedAt.Equal(room.LastActivity) {
		if err := h.roomPublisher.PublishRoomCreated(ctx, roomID); err != nil {
			log.Printf("Error publishing room created: %v", err)
		}
	}

	json.Write(w, http.StatusOK, newRoomResponse(room))
}

// GetRoomHandler godoc
// @Summary      Get room information
// @Description  Returns room metadata and drawing history without joining
// @Tags         rooms
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Success      200 {object} roomResponse "Room found"
// @Failure      400 {object} json.ErrorResponse "Invalid room id"
// @Failure      404 {object} json.ErrorResponse "Room not found"
// @Failure      500 {object} json.ErrorResponse "Internal server error"
// @Router       /rooms/{roomId} [get]
func (h *Handler) GetRoomHandler(w http.ResponseWriter, r *http.Request) {
	roomID, err := domain.NormalizeRoomID(chi.URLParam(r, "roomId"))
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	room, err := h.roomRepository.GetByID(r.Context(), roomID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			json.WriteNotFoundError(w, "Room not found")
		default:
			log.Printf("Failed to fetch room %s: %v", roomID, err)
			json.WriteInternalError(w, err)
		}
		return
	}

	json.Write(w, http.StatusOK, newRoomResponse(room))
}

// ConnectHandler godoc
// @Summary      Open the realtime drawing connection
// @Description  Upgrades to a WebSocket. The client then sends a join-room event to enter a room
// @Tags         rooms
// @Success      101 {object} map[string]interface{} "Switching Protocols - WebSocket connection established"
// @Router       /ws [get]
func (h *Handler) ConnectHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := h.relay.Registry().Upgrade(w, r)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := ws.NewClient(conn, uuid.NewString(), h.relay.ClientBufferSize())
	h.relay.Register() <- client

	go client.WriteMessage()
	go client.ReadMessage(h.relay)

	log.Printf("Connection %s established from %s", client.ID, r.RemoteAddr)
}
