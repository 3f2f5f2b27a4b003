// internal/app/features/board/forms.go
package board

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	uierrors "github.com/campushub/campushub/internal/app/features/errors"
	"github.com/campushub/campushub/internal/app/system/auth"
	"github.com/campushub/campushub/internal/app/system/htmlsanitize"
	"github.com/campushub/campushub/internal/app/system/inputval"
	"github.com/campushub/campushub/internal/app/system/normalize"
	"github.com/campushub/campushub/internal/app/system/taskboard"
	"github.com/campushub/campushub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// taskFormInput defines validation rules shared by the quick-add and
// subtask forms.
type taskFormInput struct {
	Name          string `validate:"required,max=200" label:"Name"`
	Description   string `validate:"max=5000" label:"Description"`
	DueDate       string `validate:"date" label:"Due date"`
	AssigneeName  string `validate:"max=120" label:"Assignee"`
	Department    string `validate:"max=120" label:"Department"`
	TimelineStart string `validate:"date" label:"Timeline start"`
	TimelineEnd   string `validate:"date" label:"Timeline end"`
}

// parseTaskFields turns a submitted form into TaskFields. It returns a
// user-facing message when the form is invalid, empty otherwise.
func parseTaskFields(r *http.Request, actor string) (taskboard.TaskFields, string) {
	in := taskFormInput{
		Name:          strings.TrimSpace(r.FormValue("name")),
		Description:   r.FormValue("description"),
		DueDate:       r.FormValue("due_date"),
		AssigneeName:  strings.TrimSpace(r.FormValue("assignee")),
		Department:    r.FormValue("department"),
		TimelineStart: r.FormValue("timeline_start"),
		TimelineEnd:   r.FormValue("timeline_end"),
	}
	if res := inputval.Validate(in); res.HasErrors() {
		return taskboard.TaskFields{}, res.First()
	}

	fields := taskboard.TaskFields{
		Name:        htmlsanitize.PlainText(in.Name),
		Description: htmlsanitize.Sanitize(in.Description),
		Assignee:    models.Assignee{Name: htmlsanitize.PlainText(in.AssigneeName)},
		Department:  normalize.Department(in.Department),
		Tags:        splitTags(r.FormValue("tags")),
		Actor:       actor,
	}

	if s := r.FormValue("status"); s != "" {
		st, ok := models.ParseStatus(s)
		if !ok {
			return taskboard.TaskFields{}, "Unknown status."
		}
		fields.Status = st
	}
	if p := r.FormValue("priority"); p != "" {
		pr, ok := models.ParsePriority(p)
		if !ok {
			return taskboard.TaskFields{}, "Unknown priority."
		}
		fields.Priority = pr
	}
	if v := r.FormValue("progress"); v != "" {
		n, err := inputval.ParseProgress(v)
		if err != nil {
			return taskboard.TaskFields{}, "Progress must be a whole number from 0 to 100."
		}
		fields.Progress = n
	}

	fields.DueDate, _ = inputval.ParseDate(in.DueDate)

	start, _ := inputval.ParseDate(in.TimelineStart)
	end, _ := inputval.ParseDate(in.TimelineEnd)
	switch {
	case start.IsZero() && end.IsZero():
		// no timeline
	case start.IsZero() || end.IsZero():
		return taskboard.TaskFields{}, "A timeline needs both a start and an end date."
	default:
		fields.Timeline = &models.TaskTimeline{StartDate: start, EndDate: end}
	}

	return fields, ""
}

func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, htmlsanitize.PlainText(t))
		}
	}
	return tags
}

// actorName returns the display name recorded in activity entries.
func actorName(r *http.Request) string {
	if u, ok := auth.CurrentUser(r); ok {
		return u.Name
	}
	return ""
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /board/tasks – quick add                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCreateTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/board")
		return
	}
	view, q := currentView(r), parseQuery(r)

	fields, msg := parseTaskFields(r, actorName(r))
	if msg != "" {
		h.redirectWithError(w, r, view, q, msg)
		return
	}

	groupID := r.FormValue("group")
	if _, err := h.Board.CreateTask(groupID, fields); err != nil {
		h.mutationError(w, r, err, view, q)
		return
	}

	h.redirectBack(w, r, boardURL(view, q, ""))
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /board/tasks/{id} – detail patch                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleUpdateTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/board")
		return
	}
	id := chi.URLParam(r, "id")
	detailURL := "/board/tasks/" + id

	patch, msg := parseTaskPatch(r, actorName(r))
	if msg != "" {
		h.redirectBack(w, r, detailURL+"?error="+url.QueryEscape(msg))
		return
	}

	if _, err := h.Board.UpdateTask(id, patch); err != nil {
		var ve *taskboard.ValidationError
		if errors.As(err, &ve) {
			h.redirectBack(w, r, detailURL+"?error="+url.QueryEscape(ve.Reason))
			return
		}
		h.mutationError(w, r, err, ViewList, taskboard.Query{})
		return
	}

	h.redirectBack(w, r, detailURL)
}

// parseTaskPatch builds a partial update from the submitted fields only:
// an absent input leaves the field untouched, an empty one clears it where
// clearing makes sense.
func parseTaskPatch(r *http.Request, actor string) (taskboard.TaskPatch, string) {
	patch := taskboard.TaskPatch{Actor: actor}
	form := r.PostForm

	if v, ok := formValue(form, "name"); ok {
		name := htmlsanitize.PlainText(v)
		if res := inputval.Validate(taskFormInput{Name: name}); res.HasErrors() {
			return taskboard.TaskPatch{}, res.First()
		}
		patch.Name = &name
	}
	if v, ok := formValue(form, "description"); ok {
		desc := htmlsanitize.Sanitize(v)
		patch.Description = &desc
	}
	if v, ok := formValue(form, "status"); ok {
		st, k := models.ParseStatus(v)
		if !k {
			return taskboard.TaskPatch{}, "Unknown status."
		}
		patch.Status = &st
	}
	if v, ok := formValue(form, "priority"); ok {
		pr, k := models.ParsePriority(v)
		if !k {
			return taskboard.TaskPatch{}, "Unknown priority."
		}
		patch.Priority = &pr
	}
	if v, ok := formValue(form, "progress"); ok {
		n, err := inputval.ParseProgress(v)
		if err != nil {
			return taskboard.TaskPatch{}, "Progress must be a whole number from 0 to 100."
		}
		patch.Progress = &n
	}
	if v, ok := formValue(form, "due_date"); ok {
		d, k := inputval.ParseDate(v)
		if !k {
			return taskboard.TaskPatch{}, "Due date must be YYYY-MM-DD."
		}
		patch.DueDate = &d
	}
	if v, ok := formValue(form, "assignee"); ok {
		patch.Assignee = &models.Assignee{Name: htmlsanitize.PlainText(v)}
	}
	if v, ok := formValue(form, "department"); ok {
		dep := normalize.Department(v)
		patch.Department = &dep
	}
	if v, ok := formValue(form, "tags"); ok {
		tags := splitTags(v)
		patch.Tags = &tags
	}

	startRaw, hasStart := formValue(form, "timeline_start")
	endRaw, hasEnd := formValue(form, "timeline_end")
	if hasStart || hasEnd {
		start, okS := inputval.ParseDate(startRaw)
		end, okE := inputval.ParseDate(endRaw)
		if !okS || !okE {
			return taskboard.TaskPatch{}, "Timeline dates must be YYYY-MM-DD."
		}
		switch {
		case start.IsZero() && end.IsZero():
			patch.ClearTimeline = true
		case start.IsZero() || end.IsZero():
			return taskboard.TaskPatch{}, "A timeline needs both a start and an end date."
		default:
			patch.Timeline = &models.TaskTimeline{StartDate: start, EndDate: end}
		}
	}

	return patch, ""
}

func formValue(form map[string][]string, key string) (string, bool) {
	vs, ok := form[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return strings.TrimSpace(vs[0]), true
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /board/tasks/{id}/delete                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/board")
		return
	}
	view, q := currentView(r), parseQuery(r)

	if err := h.Board.DeleteTask(chi.URLParam(r, "id")); err != nil {
		h.mutationError(w, r, err, view, q)
		return
	}

	h.redirectBack(w, r, boardURL(view, q, ""))
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /board/tasks/{id}/subtasks                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleAddSubtask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/board")
		return
	}
	id := chi.URLParam(r, "id")
	detailURL := "/board/tasks/" + id

	fields, msg := parseTaskFields(r, actorName(r))
	if msg != "" {
		h.redirectBack(w, r, detailURL+"?error="+url.QueryEscape(msg))
		return
	}

	if _, err := h.Board.AddSubtask(id, fields); err != nil {
		var ve *taskboard.ValidationError
		if errors.As(err, &ve) {
			h.redirectBack(w, r, detailURL+"?error="+url.QueryEscape(ve.Reason))
			return
		}
		h.mutationError(w, r, err, ViewList, taskboard.Query{})
		return
	}

	h.redirectBack(w, r, detailURL)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /board/tasks/{id}/toggle                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleToggleSubtasks(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/board")
		return
	}
	view, q := currentView(r), parseQuery(r)

	if err := h.Board.ToggleExpansion(chi.URLParam(r, "id")); err != nil {
		h.mutationError(w, r, err, view, q)
		return
	}

	h.redirectBack(w, r, boardURL(view, q, ""))
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /board/tasks/{id}/comments                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/board")
		return
	}
	id := chi.URLParam(r, "id")
	detailURL := "/board/tasks/" + id

	content := htmlsanitize.PlainText(r.FormValue("content"))
	if content == "" {
		h.redirectBack(w, r, detailURL+"?error="+url.QueryEscape("A comment needs some text."))
		return
	}

	if _, err := h.Board.AddComment(id, actorName(r), content); err != nil {
		h.mutationError(w, r, err, ViewList, taskboard.Query{})
		return
	}

	h.redirectBack(w, r, detailURL)
}

/*─────────────────────────────────────────────────────────────────────────────*
| shared error + redirect plumbing                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// mutationError maps taskboard errors onto user-facing responses: bad input
// goes back to the board with a message, unknown ids get the 404 page, and
// anything else is a logged server error.
func (h *Handler) mutationError(w http.ResponseWriter, r *http.Request, err error, view string, q taskboard.Query) {
	var (
		ve  *taskboard.ValidationError
		nfe *taskboard.NotFoundError
		ime *taskboard.InvalidMoveError
	)
	switch {
	case errors.As(err, &ve):
		h.redirectWithError(w, r, view, q, ve.Reason)
	case errors.As(err, &ime):
		h.redirectWithError(w, r, view, q, ime.Reason)
	case errors.As(err, &nfe):
		uierrors.HTMXError(w, r, http.StatusNotFound, err.Error(), func() {
			uierrors.RenderNotFound(w, r, "That "+nfe.Kind+" no longer exists.", boardURL(view, q, ""))
		})
	default:
		h.ErrLog.LogServerError(w, r, "board mutation failed", err, "Something went wrong updating the board.", boardURL(view, q, ""))
	}
}

func (h *Handler) redirectWithError(w http.ResponseWriter, r *http.Request, view string, q taskboard.Query, msg string) {
	h.Log.Warn("board input rejected", zap.String("reason", msg), zap.String("path", r.URL.Path))
	uierrors.HTMXError(w, r, http.StatusUnprocessableEntity, msg, func() {
		http.Redirect(w, r, boardURL(view, q, msg), http.StatusSeeOther)
	})
}

// redirectBack sends the browser to target, using HX-Redirect for HTMX
// requests so the full page swaps.
func (h *Handler) redirectBack(w http.ResponseWriter, r *http.Request, target string) {
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
