package domain

import (
	"encoding/binary"
	"hash/fnv"
	"strconv"
)

// Checksum returns the deterministic fingerprint of the board. It is the
// sole desync detector between server and clients: a cheap scalar summary,
// not a cryptographic digest.
//
// The result is the sum of one FNV-1a hash per living-or-dead piece plus a
// hash of the move counter. Addition commutes, so two boards with the same
// pieces in any collection order fingerprint identically, and the value can
// never depend on memory layout.
func (b *Board) Checksum() uint32 {
	sum := hashMoveCounter(b.Moves)
	for i := range b.Pieces {
		sum += hashPiece(&b.Pieces[i])
	}
	return sum
}

func hashMoveCounter(moves int) uint32 {
	h := fnv.New32a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(moves))
	_, _ = h.Write(buf[:])
	return h.Sum32()
}

func hashPiece(p *Piece) uint32 {
	h := fnv.New32a()
	alive := byte(0)
	if p.Alive {
		alive = 1
	}
	_, _ = h.Write([]byte(strconv.Itoa(p.X)))
	_, _ = h.Write([]byte{':'})
	_, _ = h.Write([]byte(strconv.Itoa(p.Y)))
	_, _ = h.Write([]byte{':'})
	_, _ = h.Write([]byte(strconv.Itoa(p.Owner)))
	_, _ = h.Write([]byte{':'})
	_, _ = h.Write([]byte(p.Type))
	_, _ = h.Write([]byte{':', alive})
	return h.Sum32()
}
