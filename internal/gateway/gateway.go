package gateway

import (
	"github.com/roach88/morf/internal/morph"
)

// Gateway is the fixed contract of a tagging engine.
type Gateway interface {
	// Configure applies the flag set for the next sentence. It must be
	// called before Submit on every analysis call.
	Configure(flags Flags) error

	// Submit queues one word, tagged with its submission ordinal.
	Submit(word string, ordinal int) error

	// Flush returns the next event. ok is false once the stream is
	// exhausted.
	Flush() (ev morph.Event, ok bool, err error)
}

// Op names the gateway operations, used by call logs and the wire format.
type Op string

const (
	OpConfigure Op = "configure"
	OpSubmit    Op = "submit"
	OpFlush     Op = "flush"
)
