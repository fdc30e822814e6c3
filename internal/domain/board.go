package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// BoardSize is the width and height of the square board.
const BoardSize = 8

// Well-known owner ids for the two deployable sides. Owner ids are assigned
// in registration order, so the first registered owner always plays the
// bottom side.
const (
	OwnerBottom = 1
	OwnerTop    = 2
)

// StarterSetSize is the number of pieces deployed for one owner.
const StarterSetSize = 16

var (
	ErrNoSideAvailable = errors.New("no board side available for owner")
	ErrNoPieceAtSource = errors.New("no living piece at source cell")
)

// Board holds the authoritative piece collection plus the applied-move
// counter. Collection order is only significant for serialization stability;
// the checksum does not depend on it.
type Board struct {
	Pieces []Piece `json:"pieces"`
	Moves  int     `json:"moves"`
}

// NewBoard returns an empty board with no pieces deployed.
func NewBoard() *Board {
	return &Board{}
}

// DefaultBoard returns the canonical starting layout: both sides deployed
// for the well-known bottom and top owners. Deterministic, no randomness.
func DefaultBoard() *Board {
	b := NewBoard()
	// Both appends succeed on an empty board.
	_ = b.CreatePiecesFor(OwnerBottom)
	_ = b.CreatePiecesFor(OwnerTop)
	return b
}

// backRank is the piece order along an owner's home rank, left to right.
var backRank = []PieceType{
	PieceRook, PieceKnight, PieceBishop, PieceQueen,
	PieceKing, PieceBishop, PieceKnight, PieceRook,
}

// CreatePiecesFor appends the fixed starter set for ownerID to the
// collection. The bottom owner deploys on ranks 0-1, the top owner on ranks
// 6-7. Existing pieces are never touched. The caller is responsible for
// recomputing the checksum afterwards.
func (b *Board) CreatePiecesFor(ownerID int) error {
	var home, pawnRank int
	switch ownerID {
	case OwnerBottom:
		home, pawnRank = 0, 1
	case OwnerTop:
		home, pawnRank = BoardSize-1, BoardSize-2
	default:
		return ErrNoSideAvailable
	}

	for x := 0; x < BoardSize; x++ {
		b.Pieces = append(b.Pieces, Piece{X: x, Y: home, Owner: ownerID, Type: backRank[x], Alive: true})
	}
	for x := 0; x < BoardSize; x++ {
		b.Pieces = append(b.Pieces, Piece{X: x, Y: pawnRank, Owner: ownerID, Type: PiecePawn, Alive: true})
	}
	return nil
}

// PieceAt returns the living piece occupying the cell, or nil when the cell
// is empty. Dead pieces sharing the cell are skipped.
func (b *Board) PieceAt(x, y int) *Piece {
	for i := range b.Pieces {
		p := &b.Pieces[i]
		if p.Alive && p.X == x && p.Y == y {
			return p
		}
	}
	return nil
}

// MovePiece relocates the living piece at the move's source cell to its
// target cell, marking any living occupant of the target as captured.
// It reports whether a capture happened. The board is untouched when no
// living piece is at the source.
func (b *Board) MovePiece(m Move) (bool, error) {
	mover := b.PieceAt(m.FromX, m.FromY)
	if mover == nil {
		return false, ErrNoPieceAtSource
	}

	captured := false
	if target := b.PieceAt(m.ToX, m.ToY); target != nil && target != mover {
		target.Alive = false
		captured = true
	}

	mover.X = m.ToX
	mover.Y = m.ToY
	b.Moves++
	return captured, nil
}

// LivingPieces returns how many pieces are currently alive.
func (b *Board) LivingPieces() int {
	count := 0
	for i := range b.Pieces {
		if b.Pieces[i].Alive {
			count++
		}
	}
	return count
}

// Owners returns the distinct owner ids that have pieces on the board, in
// first-seen collection order.
func (b *Board) Owners() []int {
	var owners []int
	seen := make(map[int]bool)
	for i := range b.Pieces {
		id := b.Pieces[i].Owner
		if id == OwnerNone || seen[id] {
			continue
		}
		seen[id] = true
		owners = append(owners, id)
	}
	return owners
}

// Clone returns a deep copy of the board. Snapshots handed to readers are
// always clones; no caller ever observes the live collection.
func (b *Board) Clone() *Board {
	clone := &Board{Moves: b.Moves}
	if b.Pieces != nil {
		clone.Pieces = append([]Piece(nil), b.Pieces...)
	}
	return clone
}

// Serialize encodes the full board, every piece with its complete attribute
// set, into a stable blob. The round trip through DeserializeBoard is
// lossless.
func (b *Board) Serialize() ([]byte, error) {
	blob, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("serialize board: %w", err)
	}
	return blob, nil
}

// DeserializeBoard decodes a blob produced by Serialize. Malformed input is
// reported to the caller; persistence is expected to fall back to the
// default layout rather than crash.
func DeserializeBoard(blob []byte) (*Board, error) {
	var b Board
	if err := json.Unmarshal(blob, &b); err != nil {
		return nil, fmt.Errorf("deserialize board: %w", err)
	}
	for i := range b.Pieces {
		if !ValidPieceType(b.Pieces[i].Type) {
			return nil, fmt.Errorf("deserialize board: unknown piece type %q", b.Pieces[i].Type)
		}
	}
	return &b, nil
}
