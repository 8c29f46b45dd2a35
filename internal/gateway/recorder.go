package gateway

import (
	"github.com/roach88/morf/internal/morph"
)

// Recording is what a Recorder captured during one analysis call.
type Recording struct {
	Flags  Flags
	Events []morph.Event
}

// Recorder wraps a Gateway and captures the applied flags and every event
// it emitted. Configure starts a new recording. Events of no known kind are
// passed through but not captured; the run outcome already names them.
type Recorder struct {
	inner Gateway
	rec   Recording
}

// NewRecorder wraps inner.
func NewRecorder(inner Gateway) *Recorder {
	return &Recorder{inner: inner}
}

func (r *Recorder) Configure(flags Flags) error {
	r.rec = Recording{Flags: append(Flags(nil), flags...)}
	return r.inner.Configure(flags)
}

func (r *Recorder) Submit(word string, ordinal int) error {
	return r.inner.Submit(word, ordinal)
}

func (r *Recorder) Flush() (morph.Event, bool, error) {
	ev, ok, err := r.inner.Flush()
	if err == nil && ok && morph.EventKind(ev) != "" {
		r.rec.Events = append(r.rec.Events, ev)
	}
	return ev, ok, err
}

// Recording returns a copy of the current capture.
func (r *Recorder) Recording() Recording {
	return Recording{
		Flags:  append(Flags(nil), r.rec.Flags...),
		Events: append([]morph.Event(nil), r.rec.Events...),
	}
}
