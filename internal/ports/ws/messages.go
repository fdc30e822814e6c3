package ws

import (
	"encoding/json"
	"fmt"

	"livechess/internal/app"
	"livechess/internal/domain"
)

// Message types carried in the envelope's "t" field.
const (
	MsgState   = "state"   // full snapshot; on connect, resync and promotion
	MsgDelta   = "delta"   // single applied move plus resulting checksum
	MsgMove    = "move"    // client move request
	MsgPromote = "promote" // client promotion request
	MsgError   = "error"   // targeted error report
)

// Msg is the wire envelope: a type tag plus a type-specific payload.
type Msg struct {
	T string          `json:"t"`
	M json.RawMessage `json:"m,omitempty"`
}

// MovePayload is a client's move request: the move plus the checksum of the
// board state the client believes is current.
type MovePayload struct {
	domain.Move
	Checksum uint32 `json:"checksum"`
}

// PromotePayload is a client's promotion request.
type PromotePayload struct {
	X    int              `json:"x"`
	Y    int              `json:"y"`
	Type domain.PieceType `json:"type"`
}

// StatePayload is the full board snapshot. You identifies the recipient's
// owner id on targeted sends and is omitted on broadcasts.
type StatePayload struct {
	Pieces   []domain.Piece `json:"pieces"`
	Moves    int            `json:"moves"`
	Checksum uint32         `json:"checksum"`
	You      int            `json:"you,omitempty"`
}

// DeltaPayload is the broadcast payload for one applied move.
type DeltaPayload struct {
	Owner    int         `json:"owner"`
	Move     domain.Move `json:"move"`
	Capture  bool        `json:"capture"`
	Checksum uint32      `json:"checksum"`
}

// ErrorPayload reports a rejected request to the requester only.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Encode wraps a payload in the envelope and marshals it.
func Encode(t string, payload any) ([]byte, error) {
	m, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", t, err)
	}
	b, err := json.Marshal(Msg{T: t, M: m})
	if err != nil {
		return nil, fmt.Errorf("encode %s envelope: %w", t, err)
	}
	return b, nil
}

// statePayload converts an engine snapshot to its wire shape.
func statePayload(snap app.Snapshot, you int) StatePayload {
	return StatePayload{
		Pieces:   snap.Board.Pieces,
		Moves:    snap.Board.Moves,
		Checksum: snap.Checksum,
		You:      you,
	}
}

// deltaPayload converts an engine delta to its wire shape.
func deltaPayload(d app.Delta) DeltaPayload {
	return DeltaPayload{
		Owner:    d.Owner,
		Move:     d.Move,
		Capture:  d.Capture,
		Checksum: d.Checksum,
	}
}
