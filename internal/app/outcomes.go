package app

import "livechess/internal/domain"

// OutcomeKind classifies the result of a move or promotion request.
type OutcomeKind string

const (
	// OutcomeApplied means the mutation landed; the payload must be pushed
	// to every viewer.
	OutcomeApplied OutcomeKind = "applied"
	// OutcomeRejected means the move referenced an empty source cell; the
	// board is untouched and only the requester is told.
	OutcomeRejected OutcomeKind = "rejected"
	// OutcomeDesynced means the requester's claimed checksum was stale; the
	// full snapshot goes back to the requester only.
	OutcomeDesynced OutcomeKind = "desynced"
	// OutcomeIgnored means a promotion precondition failed; nothing changed
	// and nothing is broadcast.
	OutcomeIgnored OutcomeKind = "ignored"
)

// Delta is the minimal payload broadcast for an ordinary applied move: the
// move itself, its attribution, and the checksum of the board it produced.
type Delta struct {
	Owner    int
	Move     domain.Move
	Capture  bool
	Checksum uint32
}

// Snapshot is the full-resync payload: a clone of the board plus its
// checksum, computed atomically with the state it describes.
type Snapshot struct {
	Board    *domain.Board
	Checksum uint32
}

// MoveOutcome is the engine's answer to a move or promotion request.
// Exactly one of Delta and State is set for applied moves and promotions
// respectively; State also carries the authoritative board on desync.
type MoveOutcome struct {
	Kind  OutcomeKind
	Delta *Delta
	State *Snapshot
	Err   error
}
