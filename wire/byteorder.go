package wire

// ByteOrder selects how multi-byte integers are laid out on the wire.
// Unlike encoding/binary it handles arbitrary widths from 1 to 8 bytes,
// which protocol fields routinely use (3-byte lengths, 1-byte ids).
type ByteOrder int

const (
	BigEndian ByteOrder = iota
	LittleEndian
)

// MaxIntWidth is the widest integer a single field may occupy.
const MaxIntWidth = 8

func (o ByteOrder) String() string {
	if o == LittleEndian {
		return "little"
	}
	return "big"
}

// PutUint writes v into b using the order. len(b) is the field width;
// v is truncated to that width.
func (o ByteOrder) PutUint(b []byte, v uint64) {
	n := len(b)
	if o == BigEndian {
		for i := n - 1; i >= 0; i-- {
			b[i] = byte(v)
			v >>= 8
		}
		return
	}
	for i := 0; i < n; i++ {
		b[i] = byte(v)
		v >>= 8
	}
}

// Uint reads an unsigned integer of width len(b) from b using the order.
func (o ByteOrder) Uint(b []byte) uint64 {
	var v uint64
	if o == BigEndian {
		for _, c := range b {
			v = v<<8 | uint64(c)
		}
		return v
	}
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// Mask returns the value mask for an integer of the given byte width.
func Mask(width int) uint64 {
	if width >= MaxIntWidth {
		return ^uint64(0)
	}
	return 1<<(8*width) - 1
}
