package field

import "github.com/danmuck/wirestack/wire"

// PresenceMode controls how an Optional decides whether its inner field
// is on the wire.
type PresenceMode int

const (
	// ExistsByDefault serializes no flag: the inner field is present
	// whenever bytes remain on the cursor, absent otherwise.
	ExistsByDefault PresenceMode = iota
	// Tagged serializes a one-byte presence flag ahead of the inner
	// field. Any flag value other than 0 or 1 is a decode error.
	Tagged
)

// Optional wraps another field that may be absent from the wire.
type Optional struct {
	Inner Field
	Mode  PresenceMode

	present bool
}

func NewOptional(inner Field, mode PresenceMode) *Optional {
	return &Optional{Inner: inner, Mode: mode}
}

func (f *Optional) Present() bool { return f.present }

func (f *Optional) SetPresent(on bool) { f.present = on }

func (f *Optional) Encode(s wire.Sink) error {
	if f.Mode == Tagged {
		flag := uint64(0)
		if f.present {
			flag = 1
		}
		if err := s.WriteUint(flag, 1, wire.BigEndian); err != nil {
			return err
		}
	}
	if !f.present {
		return nil
	}
	return f.Inner.Encode(s)
}

func (f *Optional) Decode(r *wire.Reader) error {
	switch f.Mode {
	case Tagged:
		flag, err := r.Uint(1, wire.BigEndian)
		if err != nil {
			return err
		}
		switch flag {
		case 0:
			f.present = false
			return nil
		case 1:
			f.present = true
			return f.Inner.Decode(r)
		default:
			return ErrInvalidPresenceFlag
		}
	default:
		if r.Remaining() == 0 {
			f.present = false
			return nil
		}
		f.present = true
		return f.Inner.Decode(r)
	}
}

func (f *Optional) Len() int {
	n := 0
	if f.Mode == Tagged {
		n = 1
	}
	if f.present {
		n += f.Inner.Len()
	}
	return n
}

func (f *Optional) Valid() bool {
	if !f.present {
		return true
	}
	return f.Inner.Valid()
}

func (f *Optional) Refresh() bool {
	if !f.present {
		return false
	}
	return f.Inner.Refresh()
}
