package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/roach88/morf/internal/morph"
	"github.com/roach88/morf/internal/query"
)

func TestWriteRun_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	want := createTestRun("run-1", 1)

	if err := s.WriteRun(ctx, want); err != nil {
		t.Fatalf("WriteRun() failed: %v", err)
	}

	got, err := s.ReadRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("ReadRun() failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadRun() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteRun_PointerEvents(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	run := createTestRun("run-1", 1)
	run.Events = []morph.Event{
		&morph.AnalysisBlockEvent{},
		&morph.IndexEvent{Ordinal: 0},
	}

	if err := s.WriteRun(ctx, run); err != nil {
		t.Fatalf("WriteRun() failed: %v", err)
	}
	got, err := s.ReadRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("ReadRun() failed: %v", err)
	}

	want := []morph.Event{
		morph.AnalysisBlockEvent{Candidates: []morph.RawAnalysis{}},
		morph.IndexEvent{Ordinal: 0},
	}
	if diff := cmp.Diff(want, got.Events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteRun_NilEvent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	run := createTestRun("run-1", 1)
	run.Events = []morph.Event{(*morph.IndexEvent)(nil)}

	if err := s.WriteRun(ctx, run); err == nil {
		t.Fatal("WriteRun() with nil event succeeded")
	}
	if _, err := s.ReadRun(ctx, "run-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadRun() error = %v, want ErrNotFound", err)
	}
}

func TestWriteRun_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first := createTestRun("run-1", 1)
	if err := s.WriteRun(ctx, first); err != nil {
		t.Fatalf("first WriteRun() failed: %v", err)
	}

	second := createTestRun("run-1", 1)
	second.Outcome = "INTERNAL"
	if err := s.WriteRun(ctx, second); err != nil {
		t.Fatalf("second WriteRun() failed: %v", err)
	}

	got, err := s.ReadRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("ReadRun() failed: %v", err)
	}
	if got.Outcome != OutcomeOK {
		t.Errorf("Outcome = %q, want first write kept", got.Outcome)
	}
	if len(got.Tokens) != 2 {
		t.Errorf("Tokens = %v, want no duplicates", got.Tokens)
	}
}

func TestWriteRun_MissingID(t *testing.T) {
	s := createTestStore(t)
	run := createTestRun("", 1)

	if err := s.WriteRun(context.Background(), run); err == nil {
		t.Error("expected error for missing id")
	}
}

func TestWriteRun_FailedRunHasNoWords(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run := createTestRun("run-err", 1)
	run.Outcome = "DUPLICATE_RESOLUTION"
	run.ErrorMessage = "ordinal 0 already resolved"
	run.ResultHash = ""
	run.Words = nil

	if err := s.WriteRun(ctx, run); err != nil {
		t.Fatalf("WriteRun() failed: %v", err)
	}
	got, err := s.ReadRun(ctx, "run-err")
	if err != nil {
		t.Fatalf("ReadRun() failed: %v", err)
	}
	if got.OK() {
		t.Error("OK() = true for failed run")
	}
	if got.ErrorMessage != run.ErrorMessage {
		t.Errorf("ErrorMessage = %q", got.ErrorMessage)
	}
	if got.Words == nil || len(got.Words) != 0 {
		t.Errorf("Words = %#v, want empty non-nil", got.Words)
	}
}

func TestReadRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadRun(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadRun() error = %v, want ErrNotFound", err)
	}
}

func TestLatestRunAndMaxSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if _, err := s.LatestRun(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("LatestRun() on empty store error = %v, want ErrNotFound", err)
	}
	if seq, err := s.MaxSeq(ctx); err != nil || seq != 0 {
		t.Errorf("MaxSeq() = %d, %v; want 0, nil", seq, err)
	}

	for i, id := range []string{"b", "a", "c"} {
		if err := s.WriteRun(ctx, createTestRun(id, int64(i+1))); err != nil {
			t.Fatalf("WriteRun(%s) failed: %v", id, err)
		}
	}

	latest, err := s.LatestRun(ctx)
	if err != nil {
		t.Fatalf("LatestRun() failed: %v", err)
	}
	if latest.ID != "c" {
		t.Errorf("LatestRun().ID = %q, want c", latest.ID)
	}
	if seq, _ := s.MaxSeq(ctx); seq != 3 {
		t.Errorf("MaxSeq() = %d, want 3", seq)
	}
}

func TestListRuns_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	empty, err := s.ListRuns(ctx)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("ListRuns() on empty store = %#v, %v", empty, err)
	}

	if err := s.WriteRun(ctx, createTestRun("z", 2)); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteRun(ctx, createTestRun("y", 1)); err != nil {
		t.Fatal(err)
	}

	got, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	want := []RunSummary{
		{ID: "y", Seq: 1, Sentence: "ma laulan", Outcome: OutcomeOK, ResultHash: "result-hash", WordCount: 2},
		{ID: "z", Seq: 2, Sentence: "ma laulan", Outcome: OutcomeOK, ResultHash: "result-hash", WordCount: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ListRuns() mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	for i, id := range []string{"run-1", "run-2"} {
		if err := s.WriteRun(ctx, createTestRun(id, int64(i+1))); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("by lemma across runs", func(t *testing.T) {
		hits, err := s.Search(ctx, query.Search{Filter: query.Equals{Field: query.FieldLemma, Value: "laulma"}})
		if err != nil {
			t.Fatalf("Search() failed: %v", err)
		}
		if len(hits) != 2 {
			t.Fatalf("len(hits) = %d, want 2", len(hits))
		}
		if hits[0].RunID != "run-1" || hits[1].RunID != "run-2" {
			t.Errorf("hits not ordered by seq: %s, %s", hits[0].RunID, hits[1].RunID)
		}
		want := Hit{
			RunID: "run-1", Seq: 1, Position: 1, Text: "laulan", Index: 0,
			Analysis: createTestRun("x", 0).Words[1].Analyses[0],
		}
		if diff := cmp.Diff(want, hits[0]); diff != "" {
			t.Errorf("hit mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("prefix restricted to run", func(t *testing.T) {
		hits, err := s.Search(ctx, query.Search{
			Filter: query.Prefix{Field: query.FieldRoot, Value: "mi"},
			RunID:  "run-2",
		})
		if err != nil {
			t.Fatalf("Search() failed: %v", err)
		}
		if len(hits) != 1 || hits[0].RunID != "run-2" || hits[0].Text != "ma" {
			t.Errorf("hits = %+v", hits)
		}
	})

	t.Run("limit", func(t *testing.T) {
		hits, err := s.Search(ctx, query.Search{Limit: 3})
		if err != nil {
			t.Fatalf("Search() failed: %v", err)
		}
		if len(hits) != 3 {
			t.Errorf("len(hits) = %d, want 3", len(hits))
		}
	})

	t.Run("no match is empty", func(t *testing.T) {
		hits, err := s.Search(ctx, query.Search{Filter: query.Equals{Field: query.FieldPartOfSpeech, Value: "Z"}})
		if err != nil {
			t.Fatalf("Search() failed: %v", err)
		}
		if hits == nil || len(hits) != 0 {
			t.Errorf("hits = %#v, want empty non-nil", hits)
		}
	})

	t.Run("invalid filter", func(t *testing.T) {
		if _, err := s.Search(ctx, query.Search{Filter: query.And{}}); err == nil {
			t.Error("expected validation error")
		}
	})
}
