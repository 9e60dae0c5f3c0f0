package ws

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"inkboard/internal/domain"
	"inkboard/internal/infrastructure/events"
	"inkboard/internal/infrastructure/metrics"
)

type inboundEvent struct {
	client *Client
	msg    InboundMessage
}

type commitRequest struct {
	roomID string
	cmd    domain.DrawingCommand
}

// auditEvent defers a broker publish to the audit goroutine. A stalled
// broker must never stop the run loop, and amqp091 does not interrupt an
// in-flight socket write on context cancellation, so publishes cannot be
// made on the loop's own goroutine at all.
type auditEvent struct {
	kind    string
	publish func(ctx context.Context) error
}

// Relay is the hub for all websocket traffic. A single run loop owns the
// registry, the per-connection stroke buffers, and every broadcast, so
// presence updates and relayed events are totally ordered per room without
// further locking. Command log appends go through a buffered queue drained by
// one committer goroutine; the live relay never waits for storage.
type Relay struct {
	registry   *Registry
	register   chan *Client
	unregister chan *Client
	inbound    chan inboundEvent
	commits    chan commitRequest
	audits     chan auditEvent

	commandLog domain.CommandLog
	publisher  events.Publisher
	metrics    *metrics.Metrics

	strokes map[string]*StrokeBuilder // connection ID → in-flight stroke

	historyTimeout   time.Duration
	commitTimeout    time.Duration
	publishTimeout   time.Duration
	clientBufferSize int
}

type RelayOptions struct {
	CommandLog       domain.CommandLog
	Publisher        events.Publisher
	Metrics          *metrics.Metrics
	HistoryTimeout   time.Duration
	CommitTimeout    time.Duration
	PublishTimeout   time.Duration
	CommitQueueSize  int
	AuditQueueSize   int
	ClientBufferSize int
}

func NewRelay(opts RelayOptions) *Relay {
	if opts.Publisher == nil {
		opts.Publisher = events.NewNoopPublisher()
	}
	if opts.HistoryTimeout <= 0 {
		opts.HistoryTimeout = 3 * time.Second
	}
	if opts.CommitTimeout <= 0 {
		opts.CommitTimeout = 2 * time.Second
	}
	if opts.PublishTimeout <= 0 {
		opts.PublishTimeout = 5 * time.Second
	}
	if opts.CommitQueueSize <= 0 {
		opts.CommitQueueSize = 1024
	}
	if opts.AuditQueueSize <= 0 {
		opts.AuditQueueSize = 256
	}
	if opts.ClientBufferSize <= 0 {
		opts.ClientBufferSize = 256
	}

	return &Relay{
		registry:         NewRegistry(),
		register:         make(chan *Client),
		unregister:       make(chan *Client),
		inbound:          make(chan inboundEvent, 256),
		commits:          make(chan commitRequest, opts.CommitQueueSize),
		audits:           make(chan auditEvent, opts.AuditQueueSize),
		commandLog:       opts.CommandLog,
		publisher:        opts.Publisher,
		metrics:          opts.Metrics,
		strokes:          make(map[string]*StrokeBuilder),
		historyTimeout:   opts.HistoryTimeout,
		commitTimeout:    opts.CommitTimeout,
		publishTimeout:   opts.PublishTimeout,
		clientBufferSize: opts.ClientBufferSize,
	}
}

func (r *Relay) Register() chan<- *Client {
	return r.register
}

func (r *Relay) Unregister() chan<- *Client {
	return r.unregister
}

func (r *Relay) Inbound() chan<- inboundEvent {
	return r.inbound
}

func (r *Relay) Registry() *Registry {
	return r.registry
}

func (r *Relay) ClientBufferSize() int {
	return r.clientBufferSize
}

// Run processes all relay traffic until ctx is cancelled. It must be the only
// goroutine touching the registry's membership and the stroke buffers.
func (r *Relay) Run(ctx context.Context) {
	go r.commitLoop(ctx)
	go r.auditLoop(ctx)

	for {
		select {
		case cl := <-r.register:
			r.strokes[cl.ID] = NewStrokeBuilder()
			if r.metrics != nil {
				r.metrics.ConnectionOpened()
			}

		case cl := <-r.unregister:
			r.handleLeave(cl)
			delete(r.strokes, cl.ID)
			close(cl.Message)
			if r.metrics != nil {
				r.metrics.ConnectionClosed()
			}

		case ev := <-r.inbound:
			r.dispatch(ev.client, ev.msg)

		case <-ctx.Done():
			return
		}
	}
}

func (r *Relay) dispatch(cl *Client, msg InboundMessage) {
	switch msg.Type {
	case JoinRoom:
		r.handleJoin(cl, msg)
	case LeaveRoom:
		r.handleLeave(cl)
	case DrawStart:
		r.handleDrawStart(cl, msg)
	case DrawMove:
		r.handleDrawMove(cl, msg)
	case DrawEnd:
		r.handleDrawEnd(cl)
	case ClearCanvas:
		r.handleClear(cl)
	case CursorMove:
		r.handleCursorMove(cl, msg)
	default:
		cl.Send(NewError(cl.RoomID, "unknown event type"))
	}
}

func (r *Relay) handleJoin(cl *Client, msg InboundMessage) {
	roomID, err := domain.NormalizeRoomID(msg.RoomID)
	if err != nil {
		cl.Send(NewJoinFailed(msg.RoomID, "invalid room id"))
		return
	}

	// Re-joining a different room implies leaving the current one first. A
	// join for the room the connection is already in is a refresh: history
	// and the presence snapshot are re-sent so the client can redraw.
	rejoining := cl.RoomID == roomID
	if cl.RoomID != "" && !rejoining {
		r.handleLeave(cl)
	}

	// History replay must reach the joiner before any live event. Loading
	// inside the run loop guarantees that ordering: nothing is broadcast
	// until the replay sits in the joiner's buffer and the joiner is not
	// yet registered while the load runs. The load is bounded so one slow
	// storage call cannot stall the relay indefinitely.
	loadCtx, cancel := context.WithTimeout(context.Background(), r.historyTimeout)
	start := time.Now()
	history, err := r.commandLog.LoadAll(loadCtx, roomID)
	if err == nil {
		// Presence alone keeps a room alive; a watcher who never draws
		// still resets the inactivity clock.
		if touchErr := r.commandLog.Touch(loadCtx, roomID); touchErr != nil {
			log.Printf("failed to touch room %s: %v", roomID, touchErr)
		}
	}
	cancel()
	if r.metrics != nil {
		r.metrics.ObserveHistoryLoad(time.Since(start))
	}
	if err != nil {
		log.Printf("failed to load history for room %s: %v", roomID, err)
		cl.Send(NewJoinFailed(roomID, "failed to join room"))
		return
	}

	if len(history) > 0 {
		cl.Send(NewLoadDrawing(roomID, history))
	}

	cl.RoomID = roomID
	r.registry.AddClient(cl)

	members := r.registry.Members(roomID)
	_ = r.registry.BroadcastToRoom(NewRoomUsers(roomID, members), "")

	if r.metrics != nil {
		r.metrics.SetActiveRooms(r.registry.RoomCount())
	}

	if !rejoining {
		connID, count := cl.ID, len(members)
		r.enqueueAudit(auditEvent{kind: "member joined", publish: func(ctx context.Context) error {
			return r.publisher.PublishMemberJoined(ctx, roomID, connID, count)
		}})
	}
}

// handleLeave covers both an explicit leave-room and a disconnect. Any
// unfinished stroke is discarded, never committed.
func (r *Relay) handleLeave(cl *Client) {
	if cl.RoomID == "" {
		return
	}

	roomID := cl.RoomID

	if builder, ok := r.strokes[cl.ID]; ok {
		builder.Abort()
	}

	remaining, removed := r.registry.RemoveClient(cl)
	cl.RoomID = ""
	if !removed {
		return
	}

	if remaining > 0 {
		members := r.registry.Members(roomID)
		_ = r.registry.BroadcastToRoom(NewRoomUsers(roomID, members), "")
		_ = r.registry.BroadcastToRoom(NewUserLeft(roomID, cl.ID), "")
	}

	if r.metrics != nil {
		r.metrics.SetActiveRooms(r.registry.RoomCount())
	}

	connID, count := cl.ID, remaining
	r.enqueueAudit(auditEvent{kind: "member left", publish: func(ctx context.Context) error {
		return r.publisher.PublishMemberLeft(ctx, roomID, connID, count)
	}})
}

func (r *Relay) handleDrawStart(cl *Client, msg InboundMessage) {
	if cl.RoomID == "" {
		return
	}

	var p DrawStartPayload
	if err := json.Unmarshal(msg.Data, &p); err != nil {
		cl.Send(NewError(cl.RoomID, "malformed draw-start payload"))
		return
	}

	if builder, ok := r.strokes[cl.ID]; ok {
		builder.Start(p.X, p.Y, p.Color, p.StrokeWidth)
	}

	_ = r.registry.BroadcastToRoom(NewDrawStart(cl.RoomID, p), cl.ID)
	r.relayed(DrawStart)
}

func (r *Relay) handleDrawMove(cl *Client, msg InboundMessage) {
	if cl.RoomID == "" {
		return
	}

	var p DrawMovePayload
	if err := json.Unmarshal(msg.Data, &p); err != nil {
		cl.Send(NewError(cl.RoomID, "malformed draw-move payload"))
		return
	}

	if builder, ok := r.strokes[cl.ID]; ok {
		builder.Move(p.X, p.Y)
	}

	_ = r.registry.BroadcastToRoom(NewDrawMove(cl.RoomID, p), cl.ID)
	r.relayed(DrawMove)
}

func (r *Relay) handleDrawEnd(cl *Client) {
	if cl.RoomID == "" {
		return
	}

	_ = r.registry.BroadcastToRoom(NewDrawEnd(cl.RoomID), cl.ID)
	r.relayed(DrawEnd)

	builder, ok := r.strokes[cl.ID]
	if !ok {
		return
	}

	stroke, ok := builder.End()
	if !ok {
		return
	}

	r.enqueueCommit(cl.RoomID, domain.NewStrokeCommand(stroke))
}

func (r *Relay) handleClear(cl *Client) {
	if cl.RoomID == "" {
		return
	}

	// Unlike draw events, clear-canvas goes to everyone including the
	// sender: the sender's canvas resets on the echo, same as the rest.
	_ = r.registry.BroadcastToRoom(NewClearCanvas(cl.RoomID), "")
	r.relayed(ClearCanvas)

	r.enqueueCommit(cl.RoomID, domain.NewClearCommand())

	roomID, connID := cl.RoomID, cl.ID
	r.enqueueAudit(auditEvent{kind: "room cleared", publish: func(ctx context.Context) error {
		return r.publisher.PublishRoomCleared(ctx, roomID, connID)
	}})
}

func (r *Relay) handleCursorMove(cl *Client, msg InboundMessage) {
	if cl.RoomID == "" {
		return
	}

	var p CursorPayload
	if err := json.Unmarshal(msg.Data, &p); err != nil {
		return
	}

	_ = r.registry.BroadcastToRoom(NewCursorMove(cl.RoomID, cl.ID, p.Position), cl.ID)
	r.relayed(CursorMove)
}

// enqueueCommit hands a command to the committer without blocking the run
// loop. A full queue drops the command: the live relay already happened,
// only persistence is lost.
func (r *Relay) enqueueCommit(roomID string, cmd domain.DrawingCommand) {
	select {
	case r.commits <- commitRequest{roomID: roomID, cmd: cmd}:
	default:
		log.Printf("commit queue full, dropping %s command for room %s", cmd.Type, roomID)
		if r.metrics != nil {
			r.metrics.CommandDropped()
		}
	}
}

// enqueueAudit hands a lifecycle event to the audit goroutine without
// blocking the run loop. Auditing is best effort; a full queue drops the
// event.
func (r *Relay) enqueueAudit(ev auditEvent) {
	select {
	case r.audits <- ev:
	default:
		log.Printf("audit queue full, dropping %s event", ev.kind)
	}
}

// auditLoop publishes queued lifecycle events one at a time, each under its
// own deadline so a slow broker delays auditing, never the relay.
func (r *Relay) auditLoop(ctx context.Context) {
	for {
		select {
		case ev := <-r.audits:
			pubCtx, cancel := context.WithTimeout(context.Background(), r.publishTimeout)
			err := ev.publish(pubCtx)
			cancel()
			if err != nil {
				log.Printf("failed to publish %s event: %v", ev.kind, err)
			}

		case <-ctx.Done():
			return
		}
	}
}

// commitLoop drains the commit queue one append at a time, preserving the
// order commands were finalized in.
func (r *Relay) commitLoop(ctx context.Context) {
	for {
		select {
		case req := <-r.commits:
			commitCtx, cancel := context.WithTimeout(context.Background(), r.commitTimeout)
			err := r.commandLog.Append(commitCtx, req.roomID, req.cmd)
			cancel()
			if err != nil {
				log.Printf("failed to append %s command for room %s: %v", req.cmd.Type, req.roomID, err)
				if r.metrics != nil {
					r.metrics.StorageFailure("append")
				}
				continue
			}

			if r.metrics != nil {
				r.metrics.CommandCommitted(string(req.cmd.Type))
			}

		case <-ctx.Done():
			return
		}
	}
}

func (r *Relay) relayed(event string) {
	if r.metrics != nil {
		r.metrics.EventRelayed(event)
	}
}
