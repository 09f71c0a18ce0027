package demo

import (
	"github.com/danmuck/wirestack/checksum"
	"github.com/danmuck/wirestack/message"
	"github.com/danmuck/wirestack/stack"
	"github.com/danmuck/wirestack/wire"
)

// Wire geometry of the reference protocol.
const (
	SizeWidth     = 2
	IDWidth       = 1
	ChecksumWidth = 2
)

// SyncMarker opens every frame.
var SyncMarker = []byte{0xAB, 0xBC}

// Order is the protocol-wide byte order.
const Order = wire.BigEndian

// Message ids.
const (
	MsgIDRawData       message.ID = 1
	MsgIDIntValues     message.ID = 2
	MsgIDEnumValues    message.ID = 3
	MsgIDBitmaskValues message.ID = 4
	MsgIDBitfields     message.ID = 5
	MsgIDStrings       message.ID = 6
	MsgIDLists         message.ID = 7
	MsgIDOptionals     message.ID = 8
	MsgIDFloatValues   message.ID = 9
)

// NewRegistry builds the reference message registry. The entry set is
// static, so a duplicate id would be a programming error.
func NewRegistry() *message.Registry {
	return message.MustRegistry(
		message.Entry{ID: MsgIDRawData, New: func() message.Message { return NewRawData() }},
		message.Entry{ID: MsgIDIntValues, New: func() message.Message { return NewIntValues() }},
		message.Entry{ID: MsgIDEnumValues, New: func() message.Message { return NewEnumValues() }},
		message.Entry{ID: MsgIDBitmaskValues, New: func() message.Message { return NewBitmaskValues() }},
		message.Entry{ID: MsgIDBitfields, New: func() message.Message { return NewBitfields() }},
		message.Entry{ID: MsgIDStrings, New: func() message.Message { return NewStrings() }},
		message.Entry{ID: MsgIDLists, New: func() message.Message { return NewLists() }},
		message.Entry{ID: MsgIDOptionals, New: func() message.Message { return NewOptionals() }},
		message.Entry{ID: MsgIDFloatValues, New: func() message.Message { return NewFloatValues() }},
	)
}

// NewStack composes the reference protocol stack over the reference
// registry.
func NewStack(opts ...stack.Option) (*stack.Stack, error) {
	return NewStackWith(NewRegistry(), opts...)
}

// NewStackWith composes the reference framing around a caller-supplied
// registry.
func NewStackWith(reg *message.Registry, opts ...stack.Option) (*stack.Stack, error) {
	layers := stack.NewSyncPrefix(SyncMarker,
		stack.NewSize(SizeWidth, Order,
			stack.NewMsgID(reg, IDWidth, Order,
				stack.NewChecksum(checksum.Additive{Width: ChecksumWidth}, ChecksumWidth, Order, stack.CoverFromSize,
					stack.NewPayload()))))
	return stack.New(layers, reg, opts...)
}
