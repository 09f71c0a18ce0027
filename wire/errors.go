package wire

import "errors"

var (
	ErrNotEnoughData  = errors.New("wire: not enough data")
	ErrBufferOverflow = errors.New("wire: output buffer overflow")
	ErrBadOffset      = errors.New("wire: offset out of range")
	ErrBadWidth       = errors.New("wire: integer width out of range")
)
