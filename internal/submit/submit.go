// Package submit runs the submit -> poll -> grade flow for one problem,
// including the pre-flight duplicate check against the latest record.
package submit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hyj0824/ojAssistant/client"
)

// State of the submission flow. The flow moves strictly forward:
// Ready -> CheckingDuplicate -> (Cancelled | Submitting) -> Polling ->
// (Accepted | Rejected | Timeout | PollFailure).
type State int

const (
	StateReady State = iota
	StateCheckingDuplicate
	StateCancelled
	StateSubmitting
	StatePolling
	StateAccepted
	StateRejected
	StateTimeout
	StatePollFailure
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateCheckingDuplicate:
		return "checking duplicate"
	case StateCancelled:
		return "cancelled"
	case StateSubmitting:
		return "submitting"
	case StatePolling:
		return "polling"
	case StateAccepted:
		return "accepted"
	case StateRejected:
		return "rejected"
	case StateTimeout:
		return "timeout"
	case StatePollFailure:
		return "poll failure"
	default:
		return "unknown"
	}
}

const (
	// defaultTimeLimitMS is assumed when the problem does not declare
	// a Java time limit.
	defaultTimeLimitMS = 2000
	maxPollAttempts    = 10
	maxPollWait        = 5 * time.Second
)

// ErrGradingTimeout means the judge was still running after all poll
// attempts. The submission itself went through; the user should check
// the platform later.
var ErrGradingTimeout = errors.New("grading still pending, check the platform later")

// initialWait derives the first poll delay from the problem's Java time
// limit: the judge cannot possibly answer sooner than one full run.
func initialWait(timeLimitMS int) time.Duration {
	if timeLimitMS <= 0 {
		timeLimitMS = defaultTimeLimitMS
	}
	return time.Duration(timeLimitMS) * time.Millisecond
}

// nextWait grows the delay by half, capped at maxPollWait.
func nextWait(prev time.Duration) time.Duration {
	next := prev + prev/2
	if next > maxPollWait {
		return maxPollWait
	}
	return next
}

// Request identifies one submission attempt.
type Request struct {
	CourseID   int
	HomeworkID int
	ProblemID  int
	// Java time limit in ms; 0 falls back to the default.
	TimeLimitMS int
	// filename (with extension) -> source text
	Files map[string]string
}

// Outcome is the terminal result of a submission flow.
type Outcome struct {
	State State
	// set when State is StateCancelled because of an identical prior
	// submission
	Duplicate *Duplicate
	// set on StateAccepted / StateRejected
	Result *client.GradingResult
}

// ConfirmFunc is consulted after the duplicate check and before anything
// is sent to the server. Returning false aborts the flow; once the
// submit call is out there is no cancelling.
type ConfirmFunc func() bool

// Submitter drives submissions through an authenticated client.
type Submitter struct {
	client *client.Client
	log    *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

func New(c *client.Client, logger *slog.Logger) *Submitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Submitter{
		client: c,
		log:    logger,
		sleep:  sleepCtx,
	}
}

// Run executes the whole flow for one problem. records is the problem's
// submission history, newest first, used for duplicate suppression.
func (s *Submitter) Run(ctx context.Context, req Request, records []client.SubmissionRecord, confirm ConfirmFunc) (*Outcome, error) {
	if dup := DetectDuplicate(req.Files, records); dup != nil {
		s.log.Debug("duplicate submission suppressed", "recordId", dup.RecordID)
		return &Outcome{State: StateCancelled, Duplicate: dup}, nil
	}

	if confirm != nil && !confirm() {
		return &Outcome{State: StateCancelled}, nil
	}

	s.log.Debug("submitting", "problemId", req.ProblemID, "files", len(req.Files))
	res, err := s.client.Submit(req.HomeworkID, req.ProblemID, req.CourseID, req.Files)
	if err != nil {
		return nil, fmt.Errorf("submission failed: %w", err)
	}

	return s.poll(ctx, res.RecordID, req)
}

// poll queries the grading result until it leaves the pending state,
// waiting longer between attempts as the judge keeps running.
func (s *Submitter) poll(ctx context.Context, recordID int, req Request) (*Outcome, error) {
	wait := initialWait(req.TimeLimitMS)

	for attempt := 1; attempt <= maxPollAttempts; attempt++ {
		s.log.Debug("waiting for verdict", "attempt", attempt, "wait", wait)
		if err := s.sleep(ctx, wait); err != nil {
			return &Outcome{State: StatePollFailure}, err
		}

		result, err := s.client.Result(recordID, req.CourseID, req.HomeworkID)
		if err != nil {
			return &Outcome{State: StatePollFailure}, fmt.Errorf("failed to fetch grading result: %w", err)
		}

		if result.ResultState == client.ResultPending {
			wait = nextWait(wait)
			continue
		}

		result.RecordID = recordID
		st := StateRejected
		if result.FullyAccepted() {
			st = StateAccepted
		}
		return &Outcome{State: st, Result: result}, nil
	}

	return &Outcome{State: StateTimeout}, ErrGradingTimeout
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
