package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	var a, b InfoHash
	copy(a[:], "aaaaaaaaaaaaaaaaaaaa")
	copy(b[:], "bbbbbbbbbbbbbbbbbbbb")

	sameContent := &Torrent{InfoHash: a, Name: "copy one", Comment: "from tracker A"}
	sameContentOtherSource := &Torrent{InfoHash: a, Name: "copy two", Comment: "from tracker B"}
	otherContent := &Torrent{InfoHash: b}

	assert.True(t, sameContent.Equal(sameContentOtherSource))
	assert.False(t, sameContent.Equal(otherContent))
	assert.False(t, sameContent.Equal(nil))
}

func TestEqualWithoutInfoHash(t *testing.T) {
	// A torrent that never went through a successful decode has no identity
	// and is equal to nothing, not even another one like it.
	empty := &Torrent{}
	alsoEmpty := &Torrent{}

	assert.False(t, empty.Equal(alsoEmpty))
	assert.False(t, empty.Equal(empty))
}

func TestInfoHashString(t *testing.T) {
	var h InfoHash
	copy(h[:], []byte{0xba, 0x3e, 0xfa, 0xe8, 0xc4, 0xd8, 0x4a, 0xad, 0xbf, 0xca, 0xc7, 0x56, 0xf7, 0xee, 0xb5, 0x6b, 0x9e, 0x1f, 0xc2, 0x21})

	assert.Equal(t, "ba3efae8c4d84aadbfcac756f7eeb56b9e1fc221", h.String())
	assert.False(t, h.IsZero())
	assert.True(t, InfoHash{}.IsZero())
}

func TestTotalLength(t *testing.T) {
	torrent := Torrent{
		Files: []FileDescriptor{
			{Length: 1024000},
			{Length: 512000},
		},
	}

	assert.Equal(t, int64(1536000), torrent.TotalLength())
}
