package message

import (
	"github.com/danmuck/wirestack/field"
	"github.com/danmuck/wirestack/wire"
)

// ID is the numeric message identifier carried by the framing stack. The
// serialized width is a property of the id layer, not of the message.
type ID uint32

// Message is a named bundle of fields. A message owns its fields
// exclusively; Fields returns them in wire order.
type Message interface {
	ID() ID
	Name() string
	Fields() []field.Field
}

// Validator is the optional message-level validity hook. When a Message
// implements it, Valid requires it in addition to per-field validity.
type Validator interface {
	ValidateFields() bool
}

// Read decodes m's fields in declaration order from r. The first field
// failure aborts and propagates; fields decoded before the failure keep
// whatever state decode produced — callers discard the message on error.
func Read(m Message, r *wire.Reader) error {
	for _, f := range m.Fields() {
		if err := f.Decode(r); err != nil {
			return err
		}
	}
	return nil
}

// Write encodes m's fields in declaration order into s.
func Write(m Message, s wire.Sink) error {
	for _, f := range m.Fields() {
		if err := f.Encode(s); err != nil {
			return err
		}
	}
	return nil
}

// Length is the serialized payload length of m: the sum of its field
// lengths.
func Length(m Message) int {
	n := 0
	for _, f := range m.Fields() {
		n += f.Len()
	}
	return n
}

// Valid is the conjunction of every field's validity plus the optional
// message-level validator.
func Valid(m Message) bool {
	for _, f := range m.Fields() {
		if !f.Valid() {
			return false
		}
	}
	if v, ok := m.(Validator); ok {
		return v.ValidateFields()
	}
	return true
}

// Refresh recomputes derived field state across m and reports whether
// anything changed. It is idempotent: a second call with no intervening
// mutation changes nothing.
func Refresh(m Message) bool {
	changed := false
	for _, f := range m.Fields() {
		if f.Refresh() {
			changed = true
		}
	}
	return changed
}

// Equal reports structural equality: same id and all fields equal. Field
// encoding is deterministic and injective for a given message type, so
// the comparison is done over the serialized forms.
func Equal(a, b Message) bool {
	if a.ID() != b.ID() {
		return false
	}
	as := wire.NewAppendSink()
	bs := wire.NewAppendSink()
	if Write(a, as) != nil || Write(b, bs) != nil {
		return false
	}
	if len(as.Bytes()) != len(bs.Bytes()) {
		return false
	}
	for i, c := range as.Bytes() {
		if bs.Bytes()[i] != c {
			return false
		}
	}
	return true
}
