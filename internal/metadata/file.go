package metadata

import (
	"fmt"
	"strings"
)

// Priority is the download priority of a single file. It is a client-side
// default, never read from the document.
type Priority int

const (
	PriorityDoNotDownload Priority = iota
	PriorityLow
	PriorityNormal
	PriorityHigh
)

// FileDescriptor describes one file of the content set. StartPiece and
// EndPiece are the inclusive range of piece indices the file spans; adjacent
// files may share a boundary piece.
type FileDescriptor struct {
	Path   string
	Length int64

	MD5  []byte
	ED2K []byte
	SHA1 []byte

	StartPiece int
	EndPiece   int
	Priority   Priority
}

// decodeFileList converts the "files" value of a multi-file info dictionary
// into file descriptors in declaration order, accumulating the total size.
// Piece ranges are assigned later, once the full list is known.
func decodeFileList(list []interface{}) ([]FileDescriptor, int64, error) {
	files := make([]FileDescriptor, 0, len(list))
	var total int64

	for i, entry := range list {
		dict, ok := entry.(map[string]interface{})
		if !ok {
			return nil, 0, fmt.Errorf("%w: file entry %d is not a dictionary", ErrInvalidFieldValue, i)
		}

		length, ok := dict["length"].(int64)
		if !ok {
			return nil, 0, fmt.Errorf("%w: file entry %d has no length", ErrMissingRequiredField, i)
		}
		if length < 0 {
			return nil, 0, fmt.Errorf("%w: file entry %d has negative length %d", ErrInvalidFieldValue, i, length)
		}

		file := FileDescriptor{
			Path:     filePath(dict),
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

		total += length
		files = append(files, file)
	}

	return files, total, nil
}

// filePath joins the path segments of a file entry with "/". The "path.utf-8"
// variant wins over the legacy "path" key when present and non-empty.
func filePath(dict map[string]interface{}) string {
	var path utf8String
	if segments, ok := dict["path"].([]interface{}); ok {
		path.set(joinSegments(segments))
	}
	if segments, ok := dict["path.utf-8"].([]interface{}); ok {
		path.setUTF8(joinSegments(segments))
	}

	return strings.TrimSuffix(path.value, "/")
}

func joinSegments(segments []interface{}) string {
	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		if s, ok := segment.(string); ok {
			parts = append(parts, s)
		}
	}

	return strings.Join(parts, "/")
}

// assignPieceRanges computes the inclusive piece range of every file from the
// running byte total, in declaration order. A file whose cumulative end falls
// exactly on a piece boundary ends at that piece, not the next one; the next
// file starts on its predecessor's end piece since boundaries rarely align
// with file edges. A zero-length file gets a degenerate range equal to the
// previous file's end index. The input is not modified.
func assignPieceRanges(files []FileDescriptor, pieceLength int64) []FileDescriptor {
	out := make([]FileDescriptor, len(files))
	copy(out, files)

	var total int64
	start := 0
	for i := range out {
		total += out[i].Length

		end := int(total / pieceLength)
		if total%pieceLength == 0 {
			end--
		}
		if end < start {
			end = start
		}

		out[i].StartPiece = start
		out[i].EndPiece = end
		start = end
	}

	return out
}
