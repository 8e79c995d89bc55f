package metadata

import (
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const btihPrefix = "urn:btih:"

// Magnet is the decoded form of a magnet link. It identifies a torrent before
// its info dictionary is available; a client resolves it by fetching the info
// bytes from the swarm and handing them to DecodeInfoBytes, then patching the
// torrent's Name and Size from DisplayName and Size when they were missing.
type Magnet struct {
	InfoHash    InfoHash
	DisplayName string
	Trackers    []string
	Size        int64
}

// ParseMagnet decodes a magnet URI. The exact topic must be a v1 BitTorrent
// info hash, given as 40 hex or 32 base32 characters.
func ParseMagnet(uri string) (*Magnet, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if u.Scheme != "magnet" {
		return nil, fmt.Errorf("%w: scheme %q is not magnet", ErrMalformedDocument, u.Scheme)
	}

	params := u.Query()

	xt := params.Get("xt")
	if !strings.HasPrefix(xt, btihPrefix) {
		return nil, fmt.Errorf("%w: exact topic %q is not a bittorrent info hash", ErrMalformedDocument, xt)
	}

	hash, err := parseInfoHash(strings.TrimPrefix(xt, btihPrefix))
	if err != nil {
		return nil, err
	}

	m := &Magnet{
		InfoHash:    hash,
		DisplayName: params.Get("dn"),
		Trackers:    params["tr"],
	}

	if xl := params.Get("xl"); xl != "" {
		size, err := strconv.ParseInt(xl, 10, 64)
		if err != nil || size < 0 {
			return nil, fmt.Errorf("%w: exact length %q", ErrInvalidFieldValue, xl)
		}
		m.Size = size
	}

	return m, nil
}

func parseInfoHash(s string) (InfoHash, error) {
	var hash InfoHash

	switch len(s) {
	case 40:
		raw, err := hex.DecodeString(s)
		if err != nil {
			return InfoHash{}, fmt.Errorf("%w: info hash %q", ErrInvalidFieldValue, s)
		}
		copy(hash[:], raw)
	case 32:
		raw, err := base32.StdEncoding.DecodeString(strings.ToUpper(s))
		if err != nil {
			return InfoHash{}, fmt.Errorf("%w: info hash %q", ErrInvalidFieldValue, s)
		}
		copy(hash[:], raw)
	default:
		return InfoHash{}, fmt.Errorf("%w: info hash %q has length %d", ErrInvalidFieldValue, s, len(s))
	}

	return hash, nil
}
