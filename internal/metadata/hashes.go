package metadata

import "fmt"

// HashSize is the length in bytes of a single SHA-1 piece hash.
const HashSize = 20

// PieceHashes holds the concatenated piece hashes of a torrent as one flat
// buffer, indexable by piece index.
type PieceHashes struct {
	buf []byte
}

// NewPieceHashes wraps a buffer of concatenated 20-byte hashes. The buffer
// length must be a multiple of HashSize.
func NewPieceHashes(buf []byte) (PieceHashes, error) {
	if len(buf)%HashSize != 0 {
		return PieceHashes{}, fmt.Errorf("%w: pieces length %d is not a multiple of %d", ErrInvalidPieceHashes, len(buf), HashSize)
	}

	return PieceHashes{buf: buf}, nil
}

// Count returns the number of pieces.
func (p PieceHashes) Count() int {
	return len(p.buf) / HashSize
}

// Piece returns the hash of the piece at the given index. The index must be
// in [0, Count); anything else panics.
func (p PieceHashes) Piece(index int) [HashSize]byte {
	var hash [HashSize]byte
	copy(hash[:], p.buf[index*HashSize:(index+1)*HashSize])

	return hash
}
