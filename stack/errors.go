package stack

import "errors"

var (
	// ErrProtocol is a structural mismatch: bad sync marker, checksum
	// failure, or a frame whose declared length cannot hold its own
	// metadata. The byte range is unusable; callers typically drop one
	// byte and resynchronize.
	ErrProtocol = errors.New("stack: protocol error")

	// ErrInvalidMsgID is returned when the decoded id has no registry
	// entry. The read consumes exactly through the id field.
	ErrInvalidMsgID = errors.New("stack: unknown message id")

	// ErrUpdateRequired is returned by a write through an append-only
	// sink: size and checksum hold dummies until Update runs over a
	// random-access view of the produced bytes.
	ErrUpdateRequired = errors.New("stack: update pass required")

	// ErrMsgAllocFailure is returned in in-place allocation mode when
	// the single message slot is still occupied.
	ErrMsgAllocFailure = errors.New("stack: in-place message slot occupied")

	// ErrFrameTooLarge is returned on write when the encoded frame
	// content does not fit the size field's width.
	ErrFrameTooLarge = errors.New("stack: frame exceeds size field capacity")
)
