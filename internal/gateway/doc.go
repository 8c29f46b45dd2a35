// Package gateway defines the contract of the external tagging engine and
// provides the implementations morf drives it through.
//
// A Gateway is configured once per analysis call, receives the words of one
// sentence, and is then flushed repeatedly until end of stream. Every Flush
// yields one event:
//
//	gw.Configure(flags)
//	gw.Submit("kuni", 0)
//	gw.Submit("siiani", 1)
//	for {
//		ev, ok, err := gw.Flush()
//		...
//	}
//
// Implementations:
//   - Scripted replays a fixed event stream (tests, replay)
//   - Process talks to an engine executable over JSON lines
//   - Table answers from a compiled lexicon
//   - Recorder wraps any Gateway and captures what it emitted
//
// A Gateway instance holds per-sentence state and is not safe for
// concurrent use. Give each goroutine its own instance.
package gateway
