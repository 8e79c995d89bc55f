package metadata

import (
	"encoding/hex"
	"time"
)

// InfoHash is the SHA-1 digest of the canonical encoding of a torrent's info
// dictionary. It is the torrent's identity: two documents describing the same
// content have equal info hashes no matter how their tracker or comment
// sections differ.
type InfoHash [HashSize]byte

func (h InfoHash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether the hash is unset. A decoded torrent always carries
// a non-zero hash; the zero value only occurs on a Torrent that was never
// produced by a successful decode.
func (h InfoHash) IsZero() bool {
	return h == InfoHash{}
}

// Tier is an ordered group of tracker URLs tried together before falling back
// to the next tier. URL order within a tier is shuffled once at decode time.
type Tier []string

// Torrent is the decoded, validated model of a torrent document. It is built
// in a single decode pass and must be treated as read-only afterwards; the one
// exception is patching Name and Size when merging metadata obtained from
// another source, such as a magnet-derived fetch.
type Torrent struct {
	InfoHash    InfoHash
	Name        string
	Size        int64
	PieceLength int64
	Pieces      PieceHashes
	Private     bool

	Source string
	SHA1   []byte
	ED2K   []byte

	Publisher    string
	PublisherURL string
	Comment      string
	CreatedBy    string
	CreationDate time.Time
	Encoding     string

	Tiers    []Tier
	Files    []FileDescriptor
	WebSeeds []string

	// Raw value trees kept for extensions the core never interprets.
	AzureusProperties interface{}
	Nodes             interface{}
}

// Equal reports whether both torrents identify the same content. Identity is
// defined solely over the info hash; a torrent without one is never equal to
// anything, including another torrent without one.
func (t *Torrent) Equal(other *Torrent) bool {
	if other == nil {
		return false
	}
	if t.InfoHash.IsZero() || other.InfoHash.IsZero() {
		return false
	}

	return t.InfoHash == other.InfoHash
}

// SetName patches the torrent's name from another source, such as the display
// name of the magnet link it was resolved from. The explicit method marks the
// one sanctioned mutation besides SetSize; everything else is read-only after
// decode.
func (t *Torrent) SetName(name string) {
	t.Name = name
}

// SetSize patches the total size from another source, such as a magnet link's
// exact-length parameter.
func (t *Torrent) SetSize(size int64) {
	t.Size = size
}

// TotalLength returns the sum of all file lengths.
func (t *Torrent) TotalLength() int64 {
	var total int64
	for _, file := range t.Files {
		total += file.Length
	}

	return total
}
