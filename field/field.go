package field

import (
	"errors"

	"github.com/danmuck/wirestack/wire"
)

var (
	ErrInvalidPresenceFlag = errors.New("field: invalid presence flag")
	ErrValueTooLong        = errors.New("field: value exceeds encodable length")
)

// Field is a single typed, serializable value.
//
// Decode reads from the front of the cursor and fails with
// wire.ErrNotEnoughData when the cursor holds fewer bytes than the field
// requires, consuming nothing in that case. Encode writes the value's
// exact serialized form; against a bounded sink a shortfall is
// wire.ErrBufferOverflow.
type Field interface {
	Encode(s wire.Sink) error
	Decode(r *wire.Reader) error

	// Len is the serialized length of the current value.
	Len() int

	// Valid reports whether the current value satisfies the field's
	// constraints. It is pure and side-effect free.
	Valid() bool

	// Refresh recomputes any state derived from sibling data (count
	// prefixes and the like) and reports whether anything changed.
	Refresh() bool
}
