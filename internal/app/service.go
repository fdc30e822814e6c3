package app

import (
	"errors"
	"fmt"
	"sync"

	"livechess/internal/domain"
)

var (
	ErrMoveNotAllowed = errors.New("move not allowed by rule")
)

// MoveRule decides whether a structurally valid move may be applied.
// The board argument is a read-only view; rules must not mutate it.
type MoveRule func(b *domain.Board, ownerID int, m domain.Move) bool

// AllowAll is the default rule: any structural move is legal. Movement
// validation is a deliberately pluggable policy so a rules engine can be
// added later without reworking the synchronization core.
func AllowAll(*domain.Board, int, domain.Move) bool { return true }

// Service is the synchronization engine. It owns the single authoritative
// board and its checksum, and is the board's only writer. The checksum
// comparison, the mutation and the refingerprint run inside one critical
// section, so no observer can pair an updated board with a stale checksum.
type Service struct {
	mu       sync.Mutex
	board    *domain.Board
	checksum uint32
	rule     MoveRule
}

// NewService constructs an engine around the given board, or the canonical
// default layout when board is nil. rule may be nil to allow every move.
func NewService(board *domain.Board, rule MoveRule) *Service {
	if board == nil {
		board = domain.DefaultBoard()
	}
	if rule == nil {
		rule = AllowAll
	}
	return &Service{
		board:    board,
		checksum: board.Checksum(),
		rule:     rule,
	}
}

// Checksum returns the current authoritative fingerprint.
func (s *Service) Checksum() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checksum
}

// Snapshot returns the full-resync payload: a clone of the board and the
// checksum it fingerprints to. Used on initial connect and on every desync.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Service) snapshotLocked() Snapshot {
	return Snapshot{Board: s.board.Clone(), Checksum: s.checksum}
}

// ApplyMove runs the optimistic-concurrency protocol for one move request.
// A stale claimed checksum yields Desynced with the authoritative snapshot
// and no mutation. An empty source cell yields Rejected, board untouched.
// Otherwise the move is applied, the checksum recomputed, and the resulting
// delta is meant for every viewer including the requester.
func (s *Service) ApplyMove(ownerID int, m domain.Move, claimed uint32) MoveOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if claimed != s.checksum {
		state := s.snapshotLocked()
		return MoveOutcome{Kind: OutcomeDesynced, State: &state}
	}

	if !s.rule(s.board, ownerID, m) {
		return MoveOutcome{Kind: OutcomeRejected, Err: ErrMoveNotAllowed}
	}

	captured, err := s.board.MovePiece(m)
	if err != nil {
		return MoveOutcome{Kind: OutcomeRejected, Err: err}
	}

	s.checksum = s.board.Checksum()
	return MoveOutcome{
		Kind: OutcomeApplied,
		Delta: &Delta{
			Owner:    ownerID,
			Move:     m,
			Capture:  captured,
			Checksum: s.checksum,
		},
	}
}

// Promote changes the type of the requester's living piece at (x, y) in
// place. When the cell is empty, the piece belongs to someone else, or the
// target type is unknown, the request is explicitly Ignored with no
// mutation. Promotions are rare, so the applied payload is a full snapshot
// for every viewer rather than a delta.
func (s *Service) Promote(ownerID, x, y int, newType domain.PieceType) MoveOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.board.PieceAt(x, y)
	if p == nil || p.Owner != ownerID || !domain.ValidPieceType(newType) {
		return MoveOutcome{Kind: OutcomeIgnored}
	}

	p.Type = newType
	s.checksum = s.board.Checksum()
	state := s.snapshotLocked()
	return MoveOutcome{Kind: OutcomeApplied, State: &state}
}

// RegisterOwner deploys the starter set for a newly registered owner and
// refingerprints the board.
func (s *Service) RegisterOwner(ownerID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.board.CreatePiecesFor(ownerID); err != nil {
		return err
	}
	s.checksum = s.board.Checksum()
	return nil
}

// Owners lists the owner ids that currently hold pieces on the board.
func (s *Service) Owners() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Owners()
}

// DumpSnapshot serializes the authoritative board for persistence.
func (s *Service) DumpSnapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Serialize()
}

// LoadSnapshot replaces the board with a persisted one and refingerprints.
// On a malformed blob the current board is kept and the error reported;
// callers substitute the default layout instead of crashing.
func (s *Service) LoadSnapshot(blob []byte) error {
	board, err := domain.DeserializeBoard(blob)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = board
	s.checksum = board.Checksum()
	return nil
}
