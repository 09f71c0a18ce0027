package stack

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/danmuck/wirestack/message"
	"github.com/danmuck/wirestack/wire"
)

// Stack is the ordered composition of layers for one protocol, from the
// sync prefix down to the payload. It is a pure transform over
// caller-supplied buffers: no I/O, no history, no internal concurrency.
// A Stack must not be driven from more than one goroutine at a time when
// in-place allocation is enabled.
type Stack struct {
	outer Layer
	reg   *message.Registry
	log   zerolog.Logger

	inPlace  bool
	occupied bool
	pool     map[message.ID]message.Message
}

type Option func(*Stack)

// WithInPlaceAllocation pre-constructs one instance of every registered
// message at build time and serves reads from that fixed pool. At most
// one message may be allocated at a time; a second Read before the first
// handle's Release fails with ErrMsgAllocFailure.
func WithInPlaceAllocation() Option {
	return func(s *Stack) { s.inPlace = true }
}

// WithLogger enables trace-level layer diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Stack) { s.log = log }
}

// New composes a stack from its outermost layer and the registry the id
// layer dispatches against.
func New(outer Layer, reg *message.Registry, opts ...Option) (*Stack, error) {
	if outer == nil {
		return nil, errors.New("stack: nil outer layer")
	}
	if reg == nil {
		return nil, errors.New("stack: nil registry")
	}
	s := &Stack{outer: outer, reg: reg, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	if s.inPlace {
		s.pool = make(map[message.ID]message.Message, reg.Len())
		for _, id := range reg.IDs() {
			ctor, _ := reg.Lookup(id)
			s.pool[id] = ctor()
		}
	}
	return s, nil
}

// Registry exposes the read-only id lookup table.
func (s *Stack) Registry() *message.Registry { return s.reg }

// Read strips layers outside-in from the front of buf, allocating and
// decoding one message. It returns the handle and the bytes consumed.
// On error the handle is nil; for ErrInvalidMsgID the consumed count
// still reflects the bytes read through the id field.
func (s *Stack) Read(buf []byte) (*Handle, int, error) {
	st := &readState{
		s:          s,
		r:          wire.NewReader(buf),
		sizeAt:     -1,
		idAt:       -1,
		frameEnd:   -1,
		payloadEnd: -1,
	}
	if err := s.outer.read(st); err != nil {
		s.log.Trace().Err(err).Int("consumed", st.r.Offset()).Msg("frame read failed")
		return nil, st.r.Offset(), err
	}
	s.log.Trace().
		Uint32("id", uint32(st.msg.ID())).
		Str("msg", st.msg.Name()).
		Int("consumed", st.r.Offset()).
		Msg("frame read")
	return &Handle{msg: st.msg, release: st.release}, st.r.Offset(), nil
}

// Write serializes msg into buf with all layers wrapped around it,
// patching the size and checksum fields in place. It returns the bytes
// written. A too-small buf fails with wire.ErrBufferOverflow; bytes up
// to the returned count may have been touched, nothing beyond.
func (s *Stack) Write(msg message.Message, buf []byte) (int, error) {
	return s.WriteTo(msg, wire.NewWriter(buf))
}

// WriteTo serializes msg into an arbitrary sink. When the sink has no
// random access the size and checksum fields are written as dummies and
// ErrUpdateRequired is returned; the caller runs Update over the
// produced bytes once a random-access view exists.
func (s *Stack) WriteTo(msg message.Message, sink wire.Sink) (int, error) {
	message.Refresh(msg)
	st := &writeState{
		s:      s,
		sink:   sink,
		msg:    msg,
		sizeAt: -1,
		idAt:   -1,
	}
	if p, ok := sink.(wire.Patcher); ok {
		st.patcher = p
	}
	if err := s.outer.write(st); err != nil {
		return sink.Offset(), err
	}
	for _, fixup := range st.fixups {
		if err := fixup(); err != nil {
			return sink.Offset(), err
		}
	}
	if st.needsUpdate {
		return sink.Offset(), ErrUpdateRequired
	}
	s.log.Trace().
		Uint32("id", uint32(msg.ID())).
		Int("written", sink.Offset()).
		Msg("frame written")
	return sink.Offset(), nil
}

// Update rewrites the size and checksum fields of one complete frame in
// window. The window must span exactly one frame, sync marker through
// checksum, as produced by a WriteTo that returned ErrUpdateRequired.
func (s *Stack) Update(window []byte) error {
	st := &updateState{buf: window, sizeAt: -1, idAt: -1}
	return s.outer.update(st)
}

// Length is the full frame length msg would serialize to: layer overhead
// plus the sum of field lengths.
func (s *Stack) Length(msg message.Message) int {
	return s.outer.overhead() + message.Length(msg)
}

func (s *Stack) allocate(id message.ID, ctor message.Constructor) (message.Message, func(), error) {
	if !s.inPlace {
		return ctor(), nil, nil
	}
	if s.occupied {
		return nil, nil, ErrMsgAllocFailure
	}
	s.occupied = true
	return s.pool[id], func() { s.occupied = false }, nil
}
