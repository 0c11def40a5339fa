package assistant

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/havancuong2003/FptTrackingCapstone-sub001/core"
)

const (
	defaultPollInterval = 2 * time.Second
	defaultMaxAttempts  = 60
)

type (
	// Poller submits assistant tasks and drives their status checks. Each
	// submitted task gets one Handle and one polling goroutine; the loop
	// performs checks serially, so at most one check is ever in flight per
	// task.
	Poller struct {
		backend     Backend
		interval    time.Duration
		maxAttempts int
		logger      core.Logger
	}

	// Handle is the caller's grip on a polled task. Cancel is idempotent and
	// safe to call from teardown paths; once a terminal state is reached no
	// further transition occurs, even for a check already in flight.
	Handle struct {
		taskID string
		cancel context.CancelFunc

		mu    sync.Mutex
		state TaskState
		done  chan struct{}
	}
)

func NewPoller(backend Backend, conf *core.Config, logger core.Logger) *Poller {
	interval := conf.Assistant.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	maxAttempts := conf.Assistant.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &Poller{backend: backend, interval: interval, maxAttempts: maxAttempts, logger: logger}
}

// Submit sends the prompt to the backend and starts polling for its result.
// Polling deliberately outlives the submitting request's context: the caller
// holds the Handle, not the request.
func (p *Poller) Submit(ctx context.Context, prompt, groupID string) (*Handle, error) {
	taskID, err := p.backend.SubmitTask(ctx, prompt, groupID)
	if err != nil {
		return nil, errors.Wrap(err, "submitting assistant task")
	}
	if taskID == "" {
		// keep the handle addressable; polling will time out on its own
		taskID = uuid.New().String()
	}

	pollCtx, cancel := context.WithCancel(context.Background())
	h := &Handle{
		taskID: taskID,
		cancel: cancel,
		state:  TaskState{TaskID: taskID, Status: StatusPending},
		done:   make(chan struct{}),
	}
	go p.poll(pollCtx, h)
	return h, nil
}

func (p *Poller) poll(ctx context.Context, h *Handle) {
	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	for attempts := 0; ; {
		select {
		case <-ctx.Done():
			h.finish(StatusCancelled, "", "")
			return
		case <-timer.C:
		}

		res, err := p.backend.TaskResult(ctx, h.taskID)
		if ctx.Err() != nil {
			// response landed after cancellation: discard it
			h.finish(StatusCancelled, "", "")
			return
		}

		switch {
		case err == nil && (res.Status == StatusCompleted || (res.Status == "" && res.Result != "")):
			h.finish(StatusCompleted, res.Result, "")
			return

		case err == nil && res.Status == StatusFailed:
			msg := res.Message
			if msg == "" {
				msg = "assistant task failed"
			}
			h.finish(StatusFailed, "", msg)
			return

		case err == nil && (res.Status == StatusPending || res.Status == StatusProcessing || res.Status == ""):
			h.progress(res.Status)

		case err != nil && errors.Cause(err) == ErrTaskNotReady:
			// tolerated: the task record may not be queryable yet

		case err != nil:
			h.finish(StatusFailed, "", err.Error())
			return

		default:
			h.finish(StatusFailed, "", fmt.Sprintf("unexpected task status %q", res.Status))
			return
		}

		attempts++
		h.setAttempts(attempts)
		if attempts >= p.maxAttempts {
			p.logger.Warn(fmt.Sprintf("assistant: task %s timed out after %d checks", h.taskID, attempts))
			h.finish(StatusTimedOut, "", "the assistant did not answer in time")
			return
		}
		timer.Reset(p.interval)
	}
}

func (h *Handle) TaskID() string { return h.taskID }

// Done is closed when the task reaches any terminal state.
func (h *Handle) Done() <-chan struct{} { return h.done }

func (h *Handle) State() TaskState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Cancel stops polling. The cancelled state is visible immediately; a check
// already awaiting the backend discards its response on arrival.
func (h *Handle) Cancel() {
	h.cancel()
	h.finish(StatusCancelled, "", "")
}

// finish applies a terminal transition; it is a no-op once terminal.
func (h *Handle) finish(status Status, result, errMsg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state.Status.Terminal() {
		return
	}
	h.state.Status = status
	h.state.Result = result
	h.state.Error = errMsg
	close(h.done)
}

func (h *Handle) progress(status Status) {
	if status == "" {
		status = StatusProcessing
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state.Status.Terminal() {
		return
	}
	h.state.Status = status
}

func (h *Handle) setAttempts(n int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Attempts = n
}
