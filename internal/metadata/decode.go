package metadata

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/jackpal/bencode-go"
)

// Decoder decodes bencoded torrent documents. The zero value is ready to use.
// Rand, when set, replaces the process-wide randomness used to shuffle tracker
// URLs inside a tier; tests set a seeded source to make shuffles predictable.
type Decoder struct {
	Rand *rand.Rand
}

// Parse reads and decodes the torrent document at path.
func Parse(path string) (*Torrent, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Decode(file)
}

// Decode decodes a bencoded torrent document with default randomness.
func Decode(r io.Reader) (*Torrent, error) {
	var d Decoder
	return d.Decode(r)
}

// Decode decodes a bencoded torrent document into a Torrent. Decoding is
// all-or-nothing: any failure aborts the whole decode and no partial model is
// returned. Unknown keys at any level are ignored.
func (d *Decoder) Decode(r io.Reader) (*Torrent, error) {
	value, err := bencode.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	root, ok := value.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: top-level value is not a dictionary", ErrMalformedDocument)
	}

	return d.decodeRoot(root)
}

// DecodeBytes decodes a torrent document held in memory.
func (d *Decoder) DecodeBytes(data []byte) (*Torrent, error) {
	return d.Decode(bytes.NewReader(data))
}

// DecodeInfoBytes builds a Torrent from a bare bencoded info dictionary, the
// payload a client obtains over metadata exchange when resolving a magnet
// link. The result has no announce tiers; callers merge trackers from the
// magnet link itself.
func (d *Decoder) DecodeInfoBytes(data []byte) (*Torrent, error) {
	value, err := bencode.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	dict, ok := value.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: info is not a dictionary", ErrMalformedDocument)
	}

	t := &Torrent{}
	if t.InfoHash, err = hashInfo(dict); err != nil {
		return nil, err
	}
	if err := decodeInfo(dict, t); err != nil {
		return nil, err
	}
	t.Files = assignPieceRanges(t.Files, t.PieceLength)

	return t, nil
}

func (d *Decoder) decodeRoot(root map[string]interface{}) (*Torrent, error) {
	t := &Torrent{}

	var (
		announce     string
		announceList []interface{}
		comment      utf8String
		publisherURL utf8String
		hasInfo      bool
	)

	for key, value := range root {
		switch key {
		case "announce":
			if s, ok := value.(string); ok {
				announce = s
			}
		case "announce-list":
			if list, ok := value.([]interface{}); ok {
				announceList = list
			}
		case "creation date":
			if seconds, ok := value.(int64); ok {
				t.CreationDate = epochStart.Add(time.Duration(seconds) * time.Second)
			}
		case "comment":
			if s, ok := value.(string); ok {
				comment.set(s)
			}
		case "comment.utf-8":
			if s, ok := value.(string); ok {
				comment.setUTF8(s)
			}
		case "publisher-url":
			if s, ok := value.(string); ok {
				publisherURL.set(s)
			}
		case "publisher-url.utf-8":
			if s, ok := value.(string); ok {
				publisherURL.setUTF8(s)
			}
		case "created by":
			if s, ok := value.(string); ok {
				t.CreatedBy = s
			}
		case "encoding":
			if s, ok := value.(string); ok {
				t.Encoding = s
			}
		case "httpseeds", "url-list":
			t.WebSeeds = append(t.WebSeeds, webSeeds(value)...)
		case "azureus_properties":
			t.AzureusProperties = value
		case "nodes":
			t.Nodes = value
		case "info":
			dict, ok := value.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%w: info is not a dictionary", ErrMalformedDocument)
			}

			var err error
			if t.InfoHash, err = hashInfo(dict); err != nil {
				return nil, err
			}
			if err := decodeInfo(dict, t); err != nil {
				return nil, err
			}
			hasInfo = true
		default:
			// Unknown keys never fail a decode. A top-level "name" lands
			// here too: the name comes only from inside info.
		}
	}

	if !hasInfo {
		return nil, fmt.Errorf("%w: document has no info dictionary", ErrMalformedDocument)
	}

	t.Comment = comment.value
	t.PublisherURL = publisherURL.value
	t.Files = assignPieceRanges(t.Files, t.PieceLength)
	t.Tiers = buildTiers(announce, announceList, d.shuffle)

	return t, nil
}

// decodeInfo populates piece layout, privacy, checksums and the file list
// from the info dictionary. A non-empty "files" list is the sole multi-file
// trigger; otherwise the torrent is single-file and a one-entry file list is
// synthesized from the info-level "length" and name.
func decodeInfo(dict map[string]interface{}, t *Torrent) error {
	pieceLength, ok := dict["piece length"].(int64)
	if !ok {
		return fmt.Errorf(`%w: "piece length"`, ErrMissingRequiredField)
	}
	if pieceLength <= 0 {
		return fmt.Errorf("%w: piece length %d", ErrInvalidFieldValue, pieceLength)
	}
	t.PieceLength = pieceLength

	pieces, ok := dict["pieces"].(string)
	if !ok {
		return fmt.Errorf(`%w: "pieces"`, ErrMissingRequiredField)
	}
	hashes, err := NewPieceHashes([]byte(pieces))
	if err != nil {
		return err
	}
	t.Pieces = hashes

	if private, ok := dict["private"].(int64); ok && private == 1 {
		t.Private = true
	}
	if source, ok := dict["source"].(string); ok {
		t.Source = source
	}
	if sum, ok := dict["sha1"].(string); ok {
		t.SHA1 = []byte(sum)
	}
	if sum, ok := dict["ed2k"].(string); ok {
		t.ED2K = []byte(sum)
	}

	var name, publisher utf8String
	if s, ok := dict["name"].(string); ok {
		name.set(s)
	}
	if s, ok := dict["name.utf-8"].(string); ok {
		name.setUTF8(s)
	}
	if s, ok := dict["publisher"].(string); ok {
		publisher.set(s)
	}
	if s, ok := dict["publisher.utf-8"].(string); ok {
		publisher.setUTF8(s)
	}
	t.Name = name.value
	t.Publisher = publisher.value

	if list, ok := dict["files"].([]interface{}); ok && len(list) > 0 {
		files, total, err := decodeFileList(list)
		if err != nil {
			return err
		}
		t.Files = files
		t.Size = total

		return nil
	}

	// Single-file: the info-level length and name describe the one file. A
	// coexisting "length" next to a non-empty "files" list was handled above;
	// here it is authoritative.
	length, ok := dict["length"].(int64)
	if !ok {
		return fmt.Errorf(`%w: "length"`, ErrMissingRequiredField)
	}
	if length < 0 {
		return fmt.Errorf("%w: length %d", ErrInvalidFieldValue, length)
	}

	file := FileDescriptor{
		Path:     t.Name,
		Length:   length,
		Priority: PriorityNormal,
	}
	if sum, ok := dict["md5sum"].(string); ok {
		file.MD5 = []byte(sum)
	}
	if sum, ok := dict["ed2k"].(string); ok {
		file.ED2K = []byte(sum)
	}
	if sum, ok := dict["sha1"].(string); ok {
		file.SHA1 = []byte(sum)
	}

	t.Files = []FileDescriptor{file}
	t.Size = length

	return nil
}

// hashInfo computes the SHA-1 digest of the canonical re-encoding of the info
// value. Hashing the re-encoding rather than the original byte span makes
// identity independent of key order in the input.
func hashInfo(dict map[string]interface{}) (InfoHash, error) {
	var buf bytes.Buffer
	if err := bencode.Marshal(&buf, dict); err != nil {
		return InfoHash{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	return sha1.Sum(buf.Bytes()), nil
}

func (d *Decoder) shuffle(n int, swap func(i, j int)) {
	if d.Rand != nil {
		d.Rand.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}

func webSeeds(value interface{}) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []interface{}:
		urls := make([]string, 0, len(v))
		for _, u := range v {
			if s, ok := u.(string); ok {
				urls = append(urls, s)
			}
		}
		return urls
	}

	return nil
}

// epochStart is the single accumulation baseline for creation dates.
var epochStart = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// utf8String resolves the precedence of a "<key>.utf-8" / "<key>" field pair:
// the UTF-8 variant always wins when present and non-empty, in either
// document order; the legacy variant never overrides it.
type utf8String struct {
	value string
	utf8  bool
}

func (s *utf8String) set(v string) {
	if !s.utf8 {
		s.value = v
	}
}

func (s *utf8String) setUTF8(v string) {
	if v != "" {
		s.value = v
		s.utf8 = true
	}
}
