package query

import "github.com/csheth/docquery/internal/api"

// Phase is the controller's position in the submission lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Resolution reports what Resolve did with a completed submission.
type Resolution int

const (
	// ResolutionApplied means the outcome now drives the controller state.
	ResolutionApplied Resolution = iota
	// ResolutionStale means the response belonged to a superseded submission
	// and was discarded. Stale discards are internal; they never surface.
	ResolutionStale
)

// Controller sequences query submissions: at most one is active at a time,
// and a response is only applied when it belongs to the newest submission.
// It is a pure state machine; all I/O lives with the caller, which pairs
// each Submit with exactly one later Resolve carrying the same sequence
// number.
//
// Identical payloads can be submitted back to back, so staleness is judged
// by sequence number alone, never by request identity.
type Controller struct {
	phase   Phase
	seq     uint64
	request api.QueryRequest
	result  *api.QueryResult
	failure *api.Error
}

// Phase reports the current lifecycle phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Active reports whether a submission is in flight.
func (c *Controller) Active() bool {
	return c.phase == PhaseSubmitting
}

// Result returns the latest applied result, or nil outside PhaseSucceeded.
func (c *Controller) Result() *api.QueryResult {
	return c.result
}

// Failure returns the latest applied failure, or nil outside PhaseFailed.
func (c *Controller) Failure() *api.Error {
	return c.failure
}

// Request returns the request of the current submission.
func (c *Controller) Request() api.QueryRequest {
	return c.request
}

// Seq returns the sequence number of the newest submission.
func (c *Controller) Seq() uint64 {
	return c.seq
}

// Submit starts a new submission and returns its sequence number. While a
// submission is in flight it is a no-op and reports ok=false: re-entrant
// submission is rejected, not queued. From a terminal phase it discards the
// prior outcome entirely.
func (c *Controller) Submit(request api.QueryRequest) (seq uint64, ok bool) {
	if c.phase == PhaseSubmitting {
		return 0, false
	}
	c.seq++
	c.phase = PhaseSubmitting
	c.request = request
	c.result = nil
	c.failure = nil
	return c.seq, true
}

// Resolve applies the outcome of submission seq. Outcomes for anything but
// the newest submission are discarded without touching state; so are
// late outcomes arriving after a newer submission has already resolved.
func (c *Controller) Resolve(seq uint64, result *api.QueryResult, err error) Resolution {
	if seq != c.seq || c.phase != PhaseSubmitting {
		return ResolutionStale
	}
	if err != nil {
		c.phase = PhaseFailed
		c.failure = api.AsError(err)
		return ResolutionApplied
	}
	c.phase = PhaseSucceeded
	c.result = result
	return ResolutionApplied
}
