package demo

import (
	"github.com/danmuck/wirestack/field"
	"github.com/danmuck/wirestack/message"
)

// RawData carries an opaque byte blob; the frame's length field bounds it.
type RawData struct {
	Payload *field.Raw
}

func NewRawData() *RawData {
	return &RawData{Payload: field.NewRaw()}
}

func (m *RawData) ID() message.ID { return MsgIDRawData }

func (m *RawData) Name() string { return "RawData" }

func (m *RawData) Fields() []field.Field {
	return []field.Field{m.Payload}
}

// IntValues exercises unsigned and signed fixed-width integers.
type IntValues struct {
	Serial  *field.Uint // 2B
	Delta   *field.Int  // 1B, -100..100
	Counter *field.Uint // 4B
}

func NewIntValues() *IntValues {
	return &IntValues{
		Serial:  field.NewUint(2, Order),
		Delta:   field.NewInt(1, Order).WithRange(-100, 100),
		Counter: field.NewUint(4, Order),
	}
}

func (m *IntValues) ID() message.ID { return MsgIDIntValues }

func (m *IntValues) Name() string { return "IntValues" }

func (m *IntValues) Fields() []field.Field {
	return []field.Field{m.Serial, m.Delta, m.Counter}
}

// EnumValues carries a device status and, for faults, the cause code.
type EnumValues struct {
	Status *field.Enum // 1B: idle, active, fault
	Cause  *field.Enum // 1B: none, or a fault cause
}

const (
	StatusIdle   = 0
	StatusActive = 1
	StatusFault  = 2

	CauseNone     = 0
	CauseOverheat = 1
	CauseBrownout = 2
)

func NewEnumValues() *EnumValues {
	return &EnumValues{
		Status: field.NewEnum(1, Order, StatusIdle, StatusActive, StatusFault),
		Cause:  field.NewEnum(1, Order, CauseNone, CauseOverheat, CauseBrownout),
	}
}

func (m *EnumValues) ID() message.ID { return MsgIDEnumValues }

func (m *EnumValues) Name() string { return "EnumValues" }

func (m *EnumValues) Fields() []field.Field {
	return []field.Field{m.Status, m.Cause}
}

// ValidateFields: a fault must name its cause, and only a fault may.
func (m *EnumValues) ValidateFields() bool {
	if m.Status.Value() == StatusFault {
		return m.Cause.Value() != CauseNone
	}
	return m.Cause.Value() == CauseNone
}

// BitmaskValues exercises reserved-bit validation.
type BitmaskValues struct {
	Flags *field.Bitmask // 1B, upper nibble reserved
	Caps  *field.Bitmask // 2B, upper byte reserved
}

func NewBitmaskValues() *BitmaskValues {
	return &BitmaskValues{
		Flags: field.NewBitmask(1, Order, 0xF0),
		Caps:  field.NewBitmask(2, Order, 0xFF00),
	}
}

func (m *BitmaskValues) ID() message.ID { return MsgIDBitmaskValues }

func (m *BitmaskValues) Name() string { return "BitmaskValues" }

func (m *BitmaskValues) Fields() []field.Field {
	return []field.Field{m.Flags, m.Caps}
}

// Bitfields packs a 3-bit priority and a 5-bit channel into one byte.
type Bitfields struct {
	Packed *field.Bitfield
}

const (
	BitPriority = 0
	BitChannel  = 1
)

func NewBitfields() *Bitfields {
	return &Bitfields{
		Packed: field.NewBitfield(1, Order,
			field.BitMember{Name: "priority", Bits: 3},
			field.BitMember{Name: "channel", Bits: 5},
		),
	}
}

func (m *Bitfields) ID() message.ID { return MsgIDBitfields }

func (m *Bitfields) Name() string { return "Bitfields" }

func (m *Bitfields) Fields() []field.Field {
	return []field.Field{m.Packed}
}

// Strings exercises both string encodings.
type Strings struct {
	Label *field.String // 1B length prefix
	Tag   *field.String // fixed 4B, zero padded
}

func NewStrings() *Strings {
	return &Strings{
		Label: field.NewString(1, Order),
		Tag:   field.NewFixedString(4),
	}
}

func (m *Strings) ID() message.ID { return MsgIDStrings }

func (m *Strings) Name() string { return "Strings" }

func (m *Strings) Fields() []field.Field {
	return []field.Field{m.Label, m.Tag}
}

// Lists carries a count-prefixed sequence of 2-byte readings.
type Lists struct {
	Readings *field.List
}

func NewLists() *Lists {
	return &Lists{
		Readings: field.NewList(1, Order, func() field.Field {
			return field.NewUint(2, Order)
		}),
	}
}

func (m *Lists) ID() message.ID { return MsgIDLists }

func (m *Lists) Name() string { return "Lists" }

func (m *Lists) Fields() []field.Field {
	return []field.Field{m.Readings}
}

// Optionals exercises both presence modes: Scale carries an explicit
// tag, Extra trails the payload and exists only when bytes remain.
type Optionals struct {
	Scale *field.Optional
	Extra *field.Optional
}

func NewOptionals() *Optionals {
	return &Optionals{
		Scale: field.NewOptional(field.NewUint(2, Order), field.Tagged),
		Extra: field.NewOptional(field.NewUint(2, Order), field.ExistsByDefault),
	}
}

func (m *Optionals) ID() message.ID { return MsgIDOptionals }

func (m *Optionals) Name() string { return "Optionals" }

func (m *Optionals) Fields() []field.Field {
	return []field.Field{m.Scale, m.Extra}
}

// FloatValues exercises single and double precision.
type FloatValues struct {
	Ratio   *field.Float // 4B
	Precise *field.Float // 8B
}

func NewFloatValues() *FloatValues {
	return &FloatValues{
		Ratio:   field.NewFloat(4, Order),
		Precise: field.NewFloat(8, Order),
	}
}

func (m *FloatValues) ID() message.ID { return MsgIDFloatValues }

func (m *FloatValues) Name() string { return "FloatValues" }

func (m *FloatValues) Fields() []field.Field {
	return []field.Field{m.Ratio, m.Precise}
}
