package analyzer

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/morf/internal/morph"
)

// Reconciler maps the engine's event stream onto a word list, merging
// records the engine read as one unit. Single-use, not safe for concurrent
// use.
type Reconciler struct {
	words     morph.WordList
	block     []morph.Analysis
	haveBlock bool
	anchor    int
	deleted   int

	cleanRoot bool
	logger    *slog.Logger
}

// ReconcilerOption configures a Reconciler.
type ReconcilerOption func(*Reconciler)

// KeepRawRoots stores the engine's annotated root in Analysis.Root instead
// of the cleaned one.
func KeepRawRoots() ReconcilerOption {
	return func(r *Reconciler) {
		r.cleanRoot = false
	}
}

// ReconcileLogger sets the logger for merge tracing (DEBUG level).
func ReconcileLogger(logger *slog.Logger) ReconcilerOption {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

// NewReconciler starts a reconciliation pass over words. The records are
// mutated in place.
func NewReconciler(words morph.WordList, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		words:     words,
		anchor:    noPosition,
		cleanRoot: true,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Apply consumes one event.
func (r *Reconciler) Apply(ev morph.Event) error {
	switch e := ev.(type) {
	case morph.AnalysisBlockEvent:
		r.applyBlock(e.Candidates)
		return nil
	case *morph.AnalysisBlockEvent:
		if e == nil {
			return r.unknownEvent(ev)
		}
		r.applyBlock(e.Candidates)
		return nil
	case morph.IndexEvent:
		return r.applyIndex(e.Ordinal)
	case *morph.IndexEvent:
		if e == nil {
			return r.unknownEvent(ev)
		}
		return r.applyIndex(e.Ordinal)
	default:
		return r.unknownEvent(ev)
	}
}

func (r *Reconciler) applyBlock(candidates []morph.RawAnalysis) {
	block := make([]morph.Analysis, len(candidates))
	for i, c := range candidates {
		block[i] = morph.NewAnalysis(c, r.cleanRoot)
	}
	r.block = block
	r.haveBlock = true
	r.anchor = noPosition
}

func (r *Reconciler) applyIndex(ordinal int) error {
	if !r.haveBlock {
		return r.fail(ErrCodeIndexBeforeBlock, ordinal, ordinal-r.deleted, "index event before any analysis block")
	}

	pos := ordinal - r.deleted
	if pos < 0 || pos >= len(r.words) {
		return r.fail(ErrCodeOrdinalOutOfRange, ordinal, pos,
			fmt.Sprintf("position %d outside word list of %d", pos, len(r.words)))
	}

	if r.anchor != noPosition && pos <= r.anchor {
		return r.fail(ErrCodeContinuationOrder, ordinal, pos,
			fmt.Sprintf("continuation at %d does not follow anchor %d", pos, r.anchor))
	}

	rec := r.words[pos]
	if rec.Resolved {
		return r.fail(ErrCodeDuplicateResolution, ordinal, pos,
			fmt.Sprintf("%q already has an analysis block", rec.Text))
	}

	if r.anchor == noPosition {
		rec.Analyses = r.block
		rec.Resolved = true
		r.anchor = pos
		return nil
	}

	anchor := r.words[r.anchor]
	anchor.Text += " " + rec.Text
	r.words = r.words.Remove(pos)
	r.deleted++

	r.logger.Debug("merged continuation",
		"ordinal", ordinal,
		"position", pos,
		"anchor", r.anchor,
		"deleted", r.deleted,
		"text", anchor.Text)
	return nil
}

func (r *Reconciler) unknownEvent(ev morph.Event) error {
	return r.fail(ErrCodeUnknownEvent, -1, -1, fmt.Sprintf("unsupported event %T", ev))
}

func (r *Reconciler) fail(code ReconciliationErrorCode, ordinal, pos int, msg string) *ReconciliationError {
	return &ReconciliationError{
		Code:       code,
		Message:    msg,
		Ordinal:    ordinal,
		Position:   pos,
		ListLength: len(r.words),
		Deleted:    r.deleted,
		Anchor:     r.anchor,
	}
}

// Words returns the word list in its current state.
func (r *Reconciler) Words() morph.WordList {
	return r.words
}

// Deleted returns the number of records merged away.
func (r *Reconciler) Deleted() int {
	return r.deleted
}

// Unresolved returns the number of records that never received a block.
func (r *Reconciler) Unresolved() int {
	n := 0
	for _, w := range r.words {
		if !w.Resolved {
			n++
		}
	}
	return n
}
