package query

import (
	"testing"

	"github.com/csheth/docquery/internal/api"
)

func TestControllerHappyPath(t *testing.T) {
	t.Parallel()

	var c Controller
	if c.Phase() != PhaseIdle {
		t.Fatalf("fresh controller should be idle, got %v", c.Phase())
	}

	seq, ok := c.Submit(api.QueryRequest{Query: "q", MaxResults: 5})
	if !ok {
		t.Fatal("submit from idle must be accepted")
	}
	if c.Phase() != PhaseSubmitting {
		t.Fatalf("phase = %v, want submitting", c.Phase())
	}

	result := &api.QueryResult{Answer: "forty-two", ProcessingTime: 0.5}
	if res := c.Resolve(seq, result, nil); res != ResolutionApplied {
		t.Fatalf("resolution = %v, want applied", res)
	}
	if c.Phase() != PhaseSucceeded {
		t.Fatalf("phase = %v, want succeeded", c.Phase())
	}
	if c.Result() != result {
		t.Fatal("result not stored")
	}
}

func TestControllerRejectsReentrantSubmit(t *testing.T) {
	t.Parallel()

	var c Controller
	seq, _ := c.Submit(api.QueryRequest{Query: "first"})

	if _, ok := c.Submit(api.QueryRequest{Query: "second"}); ok {
		t.Fatal("submit while submitting must be a no-op")
	}
	if c.Request().Query != "first" {
		t.Fatalf("in-flight request replaced: %q", c.Request().Query)
	}

	// The original submission still resolves normally.
	if res := c.Resolve(seq, &api.QueryResult{Answer: "a"}, nil); res != ResolutionApplied {
		t.Fatalf("resolution = %v, want applied", res)
	}
}

func TestControllerFailureCarriesTaxonomy(t *testing.T) {
	t.Parallel()

	var c Controller
	seq, _ := c.Submit(api.QueryRequest{Query: "q"})
	err := &api.Error{Kind: api.KindNotFound, StatusCode: 404, Message: "document not found"}

	if res := c.Resolve(seq, nil, err); res != ResolutionApplied {
		t.Fatalf("resolution = %v, want applied", res)
	}
	if c.Phase() != PhaseFailed {
		t.Fatalf("phase = %v, want failed", c.Phase())
	}
	failure := c.Failure()
	if failure == nil || failure.Kind != api.KindNotFound || failure.Message != "document not found" {
		t.Fatalf("failure not preserved: %#v", failure)
	}
}

func TestControllerDiscardsStaleResponse(t *testing.T) {
	t.Parallel()

	var c Controller
	staleSeq, _ := c.Submit(api.QueryRequest{Query: "old"})
	c.Resolve(staleSeq, nil, &api.Error{Kind: api.KindNetwork, Message: "timeout"})

	// The user retries; the newer submission is now the only one that counts.
	freshSeq, ok := c.Submit(api.QueryRequest{Query: "old"})
	if !ok {
		t.Fatal("resubmission from a terminal phase must be accepted")
	}

	// The hung request from the first submission finally completes.
	if res := c.Resolve(staleSeq, &api.QueryResult{Answer: "stale"}, nil); res != ResolutionStale {
		t.Fatalf("stale resolution = %v, want discarded", res)
	}
	if c.Phase() != PhaseSubmitting {
		t.Fatalf("stale response changed phase to %v", c.Phase())
	}
	if c.Result() != nil {
		t.Fatal("stale result leaked into state")
	}

	if res := c.Resolve(freshSeq, &api.QueryResult{Answer: "fresh"}, nil); res != ResolutionApplied {
		t.Fatalf("fresh resolution = %v, want applied", res)
	}
	if c.Result().Answer != "fresh" {
		t.Fatalf("answer = %q, want fresh", c.Result().Answer)
	}
}

func TestControllerDiscardsDuplicateResolve(t *testing.T) {
	t.Parallel()

	var c Controller
	seq, _ := c.Submit(api.QueryRequest{Query: "q"})
	c.Resolve(seq, &api.QueryResult{Answer: "first"}, nil)

	if res := c.Resolve(seq, &api.QueryResult{Answer: "second"}, nil); res != ResolutionStale {
		t.Fatalf("duplicate resolution = %v, want discarded", res)
	}
	if c.Result().Answer != "first" {
		t.Fatalf("duplicate resolve overwrote result: %q", c.Result().Answer)
	}
}

func TestControllerNewSubmissionDiscardsHistory(t *testing.T) {
	t.Parallel()

	var c Controller
	seq, _ := c.Submit(api.QueryRequest{Query: "q"})
	c.Resolve(seq, &api.QueryResult{Answer: "a"}, nil)

	if _, ok := c.Submit(api.QueryRequest{Query: "q2"}); !ok {
		t.Fatal("submit from succeeded must be accepted")
	}
	if c.Result() != nil || c.Failure() != nil {
		t.Fatal("prior outcome must be discarded on resubmission")
	}
	if c.Phase() != PhaseSubmitting {
		t.Fatalf("phase = %v, want submitting", c.Phase())
	}
}

func TestControllerSequenceIsMonotonic(t *testing.T) {
	t.Parallel()

	var c Controller
	var last uint64
	for i := 0; i < 5; i++ {
		seq, ok := c.Submit(api.QueryRequest{Query: "q"})
		if !ok {
			t.Fatalf("submit %d rejected", i)
		}
		if seq <= last {
			t.Fatalf("sequence not monotonic: %d after %d", seq, last)
		}
		last = seq
		c.Resolve(seq, &api.QueryResult{}, nil)
	}
}
