package gateway

import (
	"fmt"
	"sync"

	"github.com/roach88/morf/internal/morph"
)

// Call is one recorded gateway invocation.
type Call struct {
	Op      Op
	Flags   Flags
	Word    string
	Ordinal int
}

// Scripted is a Gateway that replays a fixed event stream. Submitted words
// are recorded but do not influence the stream.
//
// Every Configure carrying FlagClearPriorState reloads the full script, so
// one Scripted can serve several sequential analysis calls.
type Scripted struct {
	mu       sync.Mutex
	script   []morph.Event
	queue    *eventQueue
	rejected Flags
	flushErr error
	calls    []Call
}

// ScriptedOption configures a Scripted gateway.
type ScriptedOption func(*Scripted)

// WithRejectedFlags makes Configure fail when any of flags is requested.
func WithRejectedFlags(flags ...Flag) ScriptedOption {
	return func(s *Scripted) {
		s.rejected = NewFlags(flags...)
	}
}

// WithFlushError makes Flush fail with err once the script is exhausted,
// instead of reporting end of stream.
func WithFlushError(err error) ScriptedOption {
	return func(s *Scripted) {
		s.flushErr = err
	}
}

// NewScripted creates a gateway that replays events in order.
func NewScripted(events []morph.Event, opts ...ScriptedOption) *Scripted {
	s := &Scripted{
		script: append([]morph.Event(nil), events...),
		queue:  newEventQueue(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.queue.Enqueue(s.script...)
	return s
}

// Configure validates flags and, on clear-prior-state, rewinds the script.
func (s *Scripted) Configure(flags Flags) error {
	s.mu.Lock()
	s.calls = append(s.calls, Call{Op: OpConfigure, Flags: append(Flags(nil), flags...)})
	s.mu.Unlock()

	if err := flags.Validate(); err != nil {
		return err
	}

	var hit Flags
	for _, f := range flags {
		if s.rejected.Has(f) {
			hit = append(hit, f)
		}
	}
	if len(hit) > 0 {
		return &ConfigurationError{
			Flags: flags,
			Err:   fmt.Errorf("engine refused %v", hit.Strings()),
		}
	}

	if flags.Has(FlagClearPriorState) {
		s.queue.Reset()
		s.queue.Enqueue(s.script...)
	}
	return nil
}

// Submit records the word.
func (s *Scripted) Submit(word string, ordinal int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Op: OpSubmit, Word: word, Ordinal: ordinal})
	return nil
}

// Flush returns the next scripted event.
func (s *Scripted) Flush() (morph.Event, bool, error) {
	s.mu.Lock()
	s.calls = append(s.calls, Call{Op: OpFlush})
	s.mu.Unlock()

	if ev, ok := s.queue.TryDequeue(); ok {
		return ev, true, nil
	}
	if s.flushErr != nil {
		return nil, false, &ProtocolError{Op: OpFlush, Err: s.flushErr}
	}
	return nil, false, nil
}

// Calls returns a copy of every recorded invocation.
func (s *Scripted) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallCount returns how many times op was invoked.
func (s *Scripted) CallCount(op Op) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Pending returns the number of events not yet flushed.
func (s *Scripted) Pending() int {
	return s.queue.Len()
}
