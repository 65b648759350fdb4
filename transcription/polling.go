package transcription

import (
	"context"
	"net/http"
	"time"
)

// PollPolicy describes how a job-polling adapter waits between status
// checks. Fixed-interval polling is a policy with Factor 1.
type PollPolicy struct {
	// Initial is the delay before the first poll.
	Initial time.Duration
	// Factor multiplies the interval after every poll. Values <= 1 keep
	// the interval fixed.
	Factor float64
	// Max caps the interval once backoff has grown it.
	Max time.Duration
	// Timeout is the hard wall-clock budget measured from job creation.
	Timeout time.Duration
}

// FixedPollPolicy returns a policy that polls at a constant interval.
func FixedPollPolicy(interval, timeout time.Duration) PollPolicy {
	return PollPolicy{Initial: interval, Factor: 1, Max: interval, Timeout: timeout}
}

// PollOutcome is reported by the per-poll function.
type PollOutcome int

const (
	// PollContinue means the job is not terminal yet; keep polling.
	PollContinue PollOutcome = iota
	// PollDone means the job reached a terminal-success state.
	PollDone
)

// Poll runs fn on the policy's schedule until it reports PollDone, returns
// an error, the wall-clock timeout elapses, or ctx is cancelled.
//
// The timeout produces API_REQUEST_FAILED(504) and no further polls occur;
// the backend job is abandoned, not cancelled server-side. Context
// cancellation between polls surfaces as NETWORK_ERROR. fn owns the
// tolerate-and-continue decision for decode hiccups: log and return
// PollContinue to keep waiting.
func Poll(ctx context.Context, policy PollPolicy, fn func(ctx context.Context) (PollOutcome, error)) error {
	deadline := time.Now().Add(policy.Timeout)
	interval := policy.Initial

	for {
		if err := sleep(ctx, interval); err != nil {
			return NetworkError(err)
		}
		if time.Now().After(deadline) {
			return APIRequestFailed(http.StatusGatewayTimeout, "transcription job timed out")
		}

		outcome, err := fn(ctx)
		if err != nil {
			return err
		}
		if outcome == PollDone {
			return nil
		}

		interval = nextInterval(interval, policy)
	}
}

func nextInterval(current time.Duration, policy PollPolicy) time.Duration {
	if policy.Factor <= 1 {
		return current
	}
	next := time.Duration(float64(current) * policy.Factor)
	if policy.Max > 0 && next > policy.Max {
		next = policy.Max
	}
	return next
}

// sleep waits for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
