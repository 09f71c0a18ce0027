package field

import "github.com/danmuck/wirestack/wire"

// Bytes is a fixed-size opaque byte array field.
type Bytes struct {
	Size int

	data []byte
}

func NewBytes(size int) *Bytes {
	return &Bytes{Size: size, data: make([]byte, size)}
}

func (f *Bytes) WithValue(v []byte) *Bytes {
	f.Set(v)
	return f
}

// Value returns the current contents. The slice aliases field storage.
func (f *Bytes) Value() []byte { return f.data }

// Set copies v, truncating or zero-padding to the fixed size.
func (f *Bytes) Set(v []byte) {
	n := copy(f.data, v)
	for i := n; i < f.Size; i++ {
		f.data[i] = 0
	}
}

func (f *Bytes) Encode(s wire.Sink) error {
	return s.Write(f.data)
}

func (f *Bytes) Decode(r *wire.Reader) error {
	b, err := r.Bytes(f.Size)
	if err != nil {
		return err
	}
	copy(f.data, b)
	return nil
}

func (f *Bytes) Len() int { return f.Size }

func (f *Bytes) Valid() bool { return true }

func (f *Bytes) Refresh() bool { return false }
