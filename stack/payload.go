package stack

import (
	"errors"
	"fmt"

	"github.com/danmuck/wirestack/message"
	"github.com/danmuck/wirestack/wire"
)

// payloadLayer is the innermost layer: it hands the frame's remaining
// byte range to the allocated message for field-by-field decode, and on
// write asks the message to serialize itself.
type payloadLayer struct{}

func NewPayload() Layer { return payloadLayer{} }

func (payloadLayer) read(st *readState) error {
	end := st.payloadLimit()
	n := end - st.r.Offset()
	if n < 0 {
		return fmt.Errorf("%w: negative payload length", ErrProtocol)
	}
	b, err := st.r.Bytes(n)
	if err != nil {
		return err
	}
	sub := wire.NewReader(b)
	if err := message.Read(st.msg, sub); err != nil {
		// Inside a frame whose length was already validated, a field
		// shortfall is structural, not a buffering condition. Only a
		// stack with no size layer can genuinely be starved here.
		if errors.Is(err, wire.ErrNotEnoughData) && st.frameEnd < 0 {
			return err
		}
		return fmt.Errorf("%w: payload decode: %w", ErrProtocol, err)
	}
	if sub.Remaining() > 0 {
		return fmt.Errorf("%w: %d trailing payload bytes", ErrProtocol, sub.Remaining())
	}
	return nil
}

func (payloadLayer) write(st *writeState) error {
	return message.Write(st.msg, st.sink)
}

func (payloadLayer) update(st *updateState) error { return nil }

func (payloadLayer) overhead() int { return 0 }
