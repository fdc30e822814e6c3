package domain

import (
	"reflect"
	"testing"
)

func TestDefaultBoardLayout(t *testing.T) {
	b := DefaultBoard()

	if got := len(b.Pieces); got != 2*StarterSetSize {
		t.Fatalf("expected %d pieces, got %d", 2*StarterSetSize, got)
	}

	counts := map[int]int{}
	for _, p := range b.Pieces {
		if !p.Alive {
			t.Fatalf("piece %+v should start alive", p)
		}
		counts[p.Owner]++
	}
	if counts[OwnerBottom] != StarterSetSize || counts[OwnerTop] != StarterSetSize {
		t.Fatalf("expected %d pieces per owner, got %v", StarterSetSize, counts)
	}

	if p := b.PieceAt(4, 0); p == nil || p.Type != PieceKing || p.Owner != OwnerBottom {
		t.Fatalf("expected bottom king at (4,0), got %+v", p)
	}
	if p := b.PieceAt(4, 7); p == nil || p.Type != PieceKing || p.Owner != OwnerTop {
		t.Fatalf("expected top king at (4,7), got %+v", p)
	}

	// Deterministic: two default boards are structurally identical.
	other := DefaultBoard()
	if !reflect.DeepEqual(b, other) {
		t.Fatal("default boards differ between calls")
	}
	if b.Checksum() != other.Checksum() {
		t.Fatal("default board checksums differ between calls")
	}
}

func TestCreatePiecesFor(t *testing.T) {
	b := NewBoard()
	if err := b.CreatePiecesFor(OwnerBottom); err != nil {
		t.Fatalf("CreatePiecesFor returned error: %v", err)
	}

	if got := len(b.Pieces); got != StarterSetSize {
		t.Fatalf("expected %d pieces, got %d", StarterSetSize, got)
	}
	for _, p := range b.Pieces {
		if p.Owner != OwnerBottom {
			t.Fatalf("piece %+v has wrong owner", p)
		}
		if !p.Alive {
			t.Fatalf("piece %+v should be alive", p)
		}
	}

	// Appending the second side leaves the first side untouched.
	before := append([]Piece(nil), b.Pieces...)
	if err := b.CreatePiecesFor(OwnerTop); err != nil {
		t.Fatalf("CreatePiecesFor returned error: %v", err)
	}
	if !reflect.DeepEqual(before, b.Pieces[:StarterSetSize]) {
		t.Fatal("existing pieces were mutated by CreatePiecesFor")
	}
	if got := len(b.Pieces); got != 2*StarterSetSize {
		t.Fatalf("expected %d pieces after second deploy, got %d", 2*StarterSetSize, got)
	}

	if err := b.CreatePiecesFor(3); err != ErrNoSideAvailable {
		t.Fatalf("expected ErrNoSideAvailable for owner 3, got %v", err)
	}
}

func TestPieceAtSkipsDead(t *testing.T) {
	b := &Board{Pieces: []Piece{
		{X: 2, Y: 2, Owner: OwnerBottom, Type: PiecePawn, Alive: false},
		{X: 2, Y: 2, Owner: OwnerTop, Type: PieceRook, Alive: true},
	}}

	p := b.PieceAt(2, 2)
	if p == nil || p.Type != PieceRook {
		t.Fatalf("expected living rook at (2,2), got %+v", p)
	}

	if p := b.PieceAt(5, 5); p != nil {
		t.Fatalf("expected empty cell, got %+v", p)
	}
}

func TestMovePiece(t *testing.T) {
	t.Run("no piece at source", func(t *testing.T) {
		b := DefaultBoard()
		before := b.Checksum()

		_, err := b.MovePiece(Move{FromX: 4, FromY: 4, ToX: 4, ToY: 5})
		if err != ErrNoPieceAtSource {
			t.Fatalf("expected ErrNoPieceAtSource, got %v", err)
		}
		if b.Checksum() != before {
			t.Fatal("board mutated on rejected move")
		}
	})

	t.Run("relocation without capture", func(t *testing.T) {
		b := DefaultBoard()
		captured, err := b.MovePiece(Move{FromX: 0, FromY: 1, ToX: 0, ToY: 3})
		if err != nil {
			t.Fatalf("MovePiece returned error: %v", err)
		}
		if captured {
			t.Fatal("expected no capture")
		}
		if p := b.PieceAt(0, 3); p == nil || p.Type != PiecePawn || p.Owner != OwnerBottom {
			t.Fatalf("expected bottom pawn at (0,3), got %+v", p)
		}
		if p := b.PieceAt(0, 1); p != nil {
			t.Fatalf("source cell should be empty, got %+v", p)
		}
		if b.Moves != 1 {
			t.Fatalf("expected move counter 1, got %d", b.Moves)
		}
	})

	t.Run("capture marks occupant dead", func(t *testing.T) {
		b := DefaultBoard()
		captured, err := b.MovePiece(Move{FromX: 0, FromY: 1, ToX: 0, ToY: 6})
		if err != nil {
			t.Fatalf("MovePiece returned error: %v", err)
		}
		if !captured {
			t.Fatal("expected a capture")
		}

		living := 0
		for _, p := range b.Pieces {
			if p.Alive && p.X == 0 && p.Y == 6 {
				living++
				if p.Owner != OwnerBottom {
					t.Fatalf("surviving piece at (0,6) has wrong owner: %+v", p)
				}
			}
		}
		if living != 1 {
			t.Fatalf("expected exactly one living piece at (0,6), got %d", living)
		}
		if got := len(b.Pieces); got != 2*StarterSetSize {
			t.Fatalf("captured pieces must stay in the collection, got %d pieces", got)
		}
	})

	t.Run("move onto own cell still counts", func(t *testing.T) {
		b := DefaultBoard()
		captured, err := b.MovePiece(Move{FromX: 1, FromY: 0, ToX: 1, ToY: 0})
		if err != nil {
			t.Fatalf("MovePiece returned error: %v", err)
		}
		if captured {
			t.Fatal("a piece must not capture itself")
		}
		if b.Moves != 1 {
			t.Fatalf("expected move counter 1, got %d", b.Moves)
		}
	})
}

func TestSerializeRoundTrip(t *testing.T) {
	b := DefaultBoard()
	if _, err := b.MovePiece(Move{FromX: 1, FromY: 1, ToX: 1, ToY: 3}); err != nil {
		t.Fatalf("MovePiece returned error: %v", err)
	}
	if _, err := b.MovePiece(Move{FromX: 1, FromY: 3, ToX: 1, ToY: 6}); err != nil {
		t.Fatalf("MovePiece returned error: %v", err)
	}

	blob, err := b.Serialize()
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}

	restored, err := DeserializeBoard(blob)
	if err != nil {
		t.Fatalf("DeserializeBoard returned error: %v", err)
	}
	if !reflect.DeepEqual(b, restored) {
		t.Fatalf("round trip lost data:\n got %+v\nwant %+v", restored, b)
	}
	if b.Checksum() != restored.Checksum() {
		t.Fatal("round trip changed the checksum")
	}
}

func TestDeserializeMalformed(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{name: "not json", blob: "{nope"},
		{name: "unknown piece type", blob: `{"pieces":[{"x":0,"y":0,"owner":1,"type":"dragon","alive":true}],"moves":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DeserializeBoard([]byte(tt.blob)); err == nil {
				t.Fatal("expected error for malformed blob")
			}
		})
	}
}

func TestOwners(t *testing.T) {
	if owners := NewBoard().Owners(); owners != nil {
		t.Fatalf("empty board should have no owners, got %v", owners)
	}

	b := DefaultBoard()
	if owners := b.Owners(); !reflect.DeepEqual(owners, []int{OwnerBottom, OwnerTop}) {
		t.Fatalf("expected owners [1 2], got %v", owners)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := DefaultBoard()
	clone := b.Clone()

	clone.Pieces[0].X = 99
	clone.Moves = 42

	if b.Pieces[0].X == 99 || b.Moves == 42 {
		t.Fatal("mutating a clone reached the original board")
	}
}
