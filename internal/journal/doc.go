// Package journal records analysis runs in the store and replays them.
//
// A run captures everything needed to reproduce an analysis without the
// engine: the tokens, the applied flags, the analyzer settings and the
// engine's event stream. Replay feeds the recorded stream back through a
// scripted gateway and compares the result hash with the recorded one.
//
// Runs are stamped by a logical clock that resumes from the store's highest
// seq, so ordering never depends on wall time.
package journal
