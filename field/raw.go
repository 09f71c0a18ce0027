package field

import "github.com/danmuck/wirestack/wire"

// Raw is a variable-length opaque byte field with no length prefix of its
// own. Decode consumes everything left on the cursor, so it only makes
// sense as the last field of a message whose frame carries the length.
type Raw struct {
	data []byte
}

func NewRaw() *Raw { return &Raw{} }

func (f *Raw) WithValue(v []byte) *Raw {
	f.Set(v)
	return f
}

func (f *Raw) Value() []byte { return f.data }

func (f *Raw) Set(v []byte) {
	f.data = append(f.data[:0], v...)
}

func (f *Raw) Encode(s wire.Sink) error {
	return s.Write(f.data)
}

func (f *Raw) Decode(r *wire.Reader) error {
	b, err := r.Bytes(r.Remaining())
	if err != nil {
		return err
	}
	f.data = append(f.data[:0], b...)
	return nil
}

func (f *Raw) Len() int { return len(f.data) }

func (f *Raw) Valid() bool { return true }

func (f *Raw) Refresh() bool { return false }
