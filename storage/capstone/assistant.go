package capstone

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/assistant"
)

var _ assistant.Backend = (*Client)(nil)

type (
	submitTaskDTO struct {
		Prompt  string `json:"prompt"`
		GroupID string `json:"groupId"`
	}

	submitTaskResponseDTO struct {
		TaskID string `json:"taskId"`
	}

	taskResultDTO struct {
		Status  string `json:"status"`
		Result  string `json:"result"`
		Message string `json:"message"`
	}
)

func (c *Client) SubmitTask(ctx context.Context, prompt, groupID string) (string, error) {
	var dto submitTaskResponseDTO
	if err := c.send(ctx, http.MethodPost, "/ai/tasks", submitTaskDTO{Prompt: prompt, GroupID: groupID}, &dto); err != nil {
		return "", errors.Wrap(err, "submitting AI task")
	}
	return dto.TaskID, nil
}

// TaskResult checks a submitted task. 404/400 map to ErrTaskNotReady: right
// after submission the backend's task record may not be queryable yet, and
// the poller retries those within its budget.
func (c *Client) TaskResult(ctx context.Context, taskID string) (assistant.TaskResult, error) {
	var dto taskResultDTO
	if err := c.get(ctx, "/ai/tasks/"+taskID, &dto); err != nil {
		switch statusCode(err) {
		case http.StatusNotFound, http.StatusBadRequest:
			return assistant.TaskResult{}, assistant.ErrTaskNotReady
		}
		return assistant.TaskResult{}, errors.Wrap(err, "checking AI task")
	}
	return assistant.TaskResult{
		Status:  assistant.Status(dto.Status),
		Result:  dto.Result,
		Message: dto.Message,
	}, nil
}
