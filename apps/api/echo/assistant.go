package echoapi

import (
	"net/http"
	"sort"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/havancuong2003/FptTrackingCapstone-sub001/core"
	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/assistant"
)

type (
	assistantAPI struct {
		poller *assistant.Poller

		mu      sync.Mutex
		handles map[string]*assistant.Handle
	}

	askForm struct {
		Prompt string `json:"prompt"`
	}
)

func registerAssistantAPI(g *echo.Group, jwt echo.MiddlewareFunc, poller *assistant.Poller) {
	api := &assistantAPI{poller: poller, handles: make(map[string]*assistant.Handle)}

	g.POST("/groups/:id/assistant", api.ask, jwt, supervisorMiddleware())
	g.GET("/assistant", api.list, jwt, adminMiddleware())

	ag := g.Group("/assistant/:taskId", jwt)
	ag.GET("", api.state)
	ag.DELETE("", api.cancel, supervisorMiddleware())
}

// ask submits a prompt for background processing and returns the task ID the
// client polls with. The answer is never ready synchronously.
func (api *assistantAPI) ask(ctx echo.Context) error {
	var form askForm
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding assistant form")
	}
	if core.CleanString(form.Prompt) == "" {
		return core.NewValidationError(
			errors.New("invalid assistant request"),
			core.FieldError{Field: "prompt", Error: "a prompt is required"},
		)
	}

	h, err := api.poller.Submit(ctx.Request().Context(), form.Prompt, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "submitting assistant task")
	}

	api.mu.Lock()
	api.handles[h.TaskID()] = h
	api.mu.Unlock()

	return ctx.JSON(http.StatusAccepted, echo.Map{"task_id": h.TaskID(), "status": h.State().Status})
}

// list is the operations view over every task this instance has accepted,
// terminal ones included.
func (api *assistantAPI) list(ctx echo.Context) error {
	api.mu.Lock()
	states := make([]assistant.TaskState, 0, len(api.handles))
	for _, h := range api.handles {
		states = append(states, h.State())
	}
	api.mu.Unlock()

	sort.Slice(states, func(i, j int) bool { return states[i].TaskID < states[j].TaskID })
	return ctx.JSON(http.StatusOK, states)
}

func (api *assistantAPI) state(ctx echo.Context) error {
	h, ok := api.handle(ctx.Param("taskId"))
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, h.State())
}

// cancel stops a running task. The handle stays addressable afterwards so a
// client still polling sees the cancelled state instead of a 404.
func (api *assistantAPI) cancel(ctx echo.Context) error {
	h, ok := api.handle(ctx.Param("taskId"))
	if !ok {
		return errHttpNotFound
	}
	h.Cancel()
	return ctx.NoContent(http.StatusNoContent)
}

func (api *assistantAPI) handle(taskID string) (*assistant.Handle, bool) {
	api.mu.Lock()
	defer api.mu.Unlock()
	h, ok := api.handles[taskID]
	return h, ok
}
