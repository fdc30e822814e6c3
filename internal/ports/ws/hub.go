package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"livechess/internal/app"
	"livechess/internal/domain"
	"livechess/internal/ports"
)

// Hub owns the set of connected viewers and routes engine outcomes to them:
// applied move deltas to everyone, desync snapshots to the offender only,
// promotion snapshots to everyone. Broadcast is fire-and-forget; the hub
// never retries or confirms delivery.
type Hub struct {
	engine    *app.Service
	directory ports.OwnerDirectory
	log       *slog.Logger
	upgrader  websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub wires the hub to the engine and owner directory. allowOrigins is
// the websocket origin allowlist; empty allows every origin.
func NewHub(engine *app.Service, directory ports.OwnerDirectory, allowOrigins []string, log *slog.Logger) *Hub {
	allowed := make(map[string]bool, len(allowOrigins))
	for _, o := range allowOrigins {
		if o != "" {
			allowed[o] = true
		}
	}

	return &Hub{
		engine:    engine,
		directory: directory,
		log:       log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowed) == 0 || allowed[origin]
			},
		},
		clients: make(map[*client]struct{}),
	}
}

// ServeWS upgrades the request, resolves the session token into an owner
// identity, pushes the initial full snapshot and then serves the client's
// requests until the connection drops.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	owner, registered := ports.Owner{}, false
	if token := r.URL.Query().Get("token"); token != "" {
		owner, registered = h.directory.Resolve(r.Context(), token)
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "err", err)
		return
	}

	c := newClient(conn, owner, registered)
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.log.Info("viewer connected", "owner", owner.ID, "registered", registered)

	go c.writePump()
	h.sendSnapshot(c)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var m Msg
		if err := json.Unmarshal(data, &m); err != nil {
			h.sendError(c, "bad_envelope", "message is not a valid envelope")
			continue
		}

		switch m.T {
		case MsgMove:
			h.handleMove(c, m.M)
		case MsgPromote:
			h.handlePromote(c, m.M)
		default:
			h.log.Warn("unknown message type", "t", m.T)
		}
	}

	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	close(c.send)
	h.log.Info("viewer disconnected", "owner", owner.ID)
}

// handleMove runs one move request through the engine and routes the
// outcome per the broadcast contract.
func (h *Hub) handleMove(c *client, raw json.RawMessage) {
	if !c.registered {
		h.sendError(c, "not_registered", "spectators cannot move pieces")
		return
	}

	var p MovePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.sendError(c, "bad_payload", "move payload is malformed")
		return
	}

	outcome := h.engine.ApplyMove(c.owner.ID, p.Move, p.Checksum)
	switch outcome.Kind {
	case app.OutcomeApplied:
		h.broadcast(MsgDelta, deltaPayload(*outcome.Delta))
	case app.OutcomeDesynced:
		h.log.Info("viewer desynced", "owner", c.owner.ID, "claimed", p.Checksum, "current", outcome.State.Checksum)
		h.sendState(c, *outcome.State)
	case app.OutcomeRejected:
		code := "move_rejected"
		if errors.Is(outcome.Err, domain.ErrNoPieceAtSource) {
			code = "no_piece_at_source"
		} else if errors.Is(outcome.Err, app.ErrMoveNotAllowed) {
			code = "move_not_allowed"
		}
		h.sendError(c, code, outcome.Err.Error())
	}
}

// handlePromote runs a promotion request. An applied promotion is broadcast
// as a full snapshot; an ignored one mutates nothing and stays off the wire.
func (h *Hub) handlePromote(c *client, raw json.RawMessage) {
	if !c.registered {
		h.sendError(c, "not_registered", "spectators cannot promote pieces")
		return
	}

	var p PromotePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.sendError(c, "bad_payload", "promote payload is malformed")
		return
	}

	outcome := h.engine.Promote(c.owner.ID, p.X, p.Y, p.Type)
	switch outcome.Kind {
	case app.OutcomeApplied:
		h.broadcast(MsgState, statePayload(*outcome.State, 0))
	case app.OutcomeIgnored:
		h.log.Debug("promotion ignored", "owner", c.owner.ID, "x", p.X, "y", p.Y, "type", p.Type)
	}
}

// sendSnapshot pushes the current full state to one client.
func (h *Hub) sendSnapshot(c *client) {
	h.sendState(c, h.engine.Snapshot())
}

func (h *Hub) sendState(c *client, snap app.Snapshot) {
	b, err := Encode(MsgState, statePayload(snap, c.owner.ID))
	if err != nil {
		h.log.Error("encode state", "err", err)
		return
	}
	c.enqueue(b)
}

func (h *Hub) sendError(c *client, code, message string) {
	b, err := Encode(MsgError, ErrorPayload{Code: code, Message: message})
	if err != nil {
		h.log.Error("encode error message", "err", err)
		return
	}
	c.enqueue(b)
}

// broadcast fans a frame out to every connected viewer.
func (h *Hub) broadcast(t string, payload any) {
	b, err := Encode(t, payload)
	if err != nil {
		h.log.Error("encode broadcast", "t", t, "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.enqueue(b)
	}
}
