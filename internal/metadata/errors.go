package metadata

import "errors"

var (
	// ErrMalformedDocument means the input is not valid bencoding, the top
	// level is not a dictionary, or the info dictionary is missing or of the
	// wrong type. Without a decodable info section no identity is derivable.
	ErrMalformedDocument = errors.New("metadata: malformed document")

	// ErrInvalidPieceHashes means the pieces value length is not a multiple
	// of the 20-byte SHA-1 size.
	ErrInvalidPieceHashes = errors.New("metadata: invalid piece hashes")

	// ErrMissingRequiredField means a required field such as "piece length"
	// or a single-file "length" is absent or of the wrong type.
	ErrMissingRequiredField = errors.New("metadata: missing required field")

	// ErrInvalidFieldValue means a field is present but semantically invalid,
	// such as a non-positive piece length.
	ErrInvalidFieldValue = errors.New("metadata: invalid field value")
)
