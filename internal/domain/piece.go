package domain

// PieceType identifies the kind of a piece on the board.
type PieceType string

const (
	PiecePawn   PieceType = "pawn"
	PieceRook   PieceType = "rook"
	PieceKnight PieceType = "knight"
	PieceBishop PieceType = "bishop"
	PieceQueen  PieceType = "queen"
	PieceKing   PieceType = "king"
)

// ValidPieceType reports whether t is one of the known piece kinds.
func ValidPieceType(t PieceType) bool {
	switch t {
	case PiecePawn, PieceRook, PieceKnight, PieceBishop, PieceQueen, PieceKing:
		return true
	}
	return false
}

// OwnerNone marks a piece that belongs to no owner.
const OwnerNone = 0

// Piece is a single token on the board. Captured pieces are marked dead
// rather than removed, so indices into the collection stay stable.
type Piece struct {
	X     int       `json:"x"`
	Y     int       `json:"y"`
	Owner int       `json:"owner"`
	Type  PieceType `json:"type"`
	Alive bool      `json:"alive"`
}
