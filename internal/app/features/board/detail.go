// internal/app/features/board/detail.go
package board

import (
	"errors"
	"html/template"
	"net/http"

	uierrors "github.com/campushub/campushub/internal/app/features/errors"
	"github.com/campushub/campushub/internal/app/system/taskboard"
	"github.com/campushub/campushub/internal/app/system/viewdata"
	"github.com/campushub/campushub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

type taskDetailData struct {
	viewdata.BaseVM
	Task        *models.Task
	Description template.HTML
	Group       *models.Group
	CanEdit     bool
	Error       string

	Statuses   []models.Status
	Priorities []models.Priority
}

// ServeTaskDetail handles GET /board/tasks/{id}: the full task page with
// subtasks, comments, activity, and the edit form for staff.
func (h *Handler) ServeTaskDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	task, err := h.Board.TaskByID(id)
	if err != nil {
		var nfe *taskboard.NotFoundError
		if errors.As(err, &nfe) {
			uierrors.RenderNotFound(w, r, "That task no longer exists.", "/board")
			return
		}
		h.ErrLog.LogServerError(w, r, "task lookup failed", err, "Unable to load the task.", "/board")
		return
	}

	data := taskDetailData{
		BaseVM: viewdata.NewBaseVM(r, task.Name, "/board"),
		Task:   task,
		// Description is sanitized on write; see parseTaskFields.
		Description: template.HTML(task.Description),
		Group:       findGroup(h.Board.Snapshot(), task.GroupID),
		Error:       query.Get(r, "error"),
		Statuses:    models.Statuses,
		Priorities:  models.Priorities,
	}
	data.CanEdit = canEdit(data.Role)

	templates.Render(w, r, "board_task_detail", data)
}

func findGroup(groups []*models.Group, id string) *models.Group {
	for _, g := range groups {
		if g.ID == id {
			return g
		}
	}
	return nil
}
