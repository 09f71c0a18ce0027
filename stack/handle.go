package stack

import "github.com/danmuck/wirestack/message"

// Handle owns one decoded message. In in-place allocation mode the
// message storage belongs to the Stack's single slot; Release must run
// before the next Read can succeed. Release is idempotent, and in heap
// mode it is a no-op.
//
// Using the message after Release is a caller bug in in-place mode: the
// storage is reused by the next Read.
type Handle struct {
	msg      message.Message
	release  func()
	released bool
}

// Msg returns the decoded message, or nil after Release in in-place mode.
func (h *Handle) Msg() message.Message {
	if h.released {
		return nil
	}
	return h.msg
}

// Release returns the message storage to the stack.
func (h *Handle) Release() {
	if h.released {
		return
	}
	h.released = true
	if h.release != nil {
		h.release()
	}
}
