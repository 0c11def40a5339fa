package assistant

import (
	"context"

	"github.com/pkg/errors"
)

// Status of an assistant task. Completed, Failed, Cancelled and TimedOut are
// terminal: no transition ever leaves them.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
	StatusTimedOut   Status = "timeout"
)

func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled, StatusTimedOut:
		return true
	}
	return false
}

// ErrTaskNotReady marks a status lookup the backend could not serve yet (the
// task record may not be queryable immediately after submission). The poller
// retries these within its attempt budget.
var ErrTaskNotReady = errors.New("assistant task not ready")

// TaskResult is one status-check response from the backend.
type TaskResult struct {
	Status  Status `json:"status"`
	Result  string `json:"result"`
	Message string `json:"message"`
}

// Backend submits assistant tasks and serves status checks. Implemented by
// the capstone API client.
type Backend interface {
	SubmitTask(ctx context.Context, prompt, groupID string) (string, error)
	TaskResult(ctx context.Context, taskID string) (TaskResult, error)
}

// TaskState is a snapshot of a polled task.
type TaskState struct {
	TaskID   string `json:"task_id"`
	Status   Status `json:"status"`
	Result   string `json:"result,omitempty"`
	Error    string `json:"error,omitempty"`
	Attempts int    `json:"attempts"`
}
