// internal/app/features/board/move.go
package board

import (
	"encoding/json"
	"net/http"

	"github.com/campushub/campushub/internal/app/system/taskboard"
)

// moveRequest is the wire form of a finished drag gesture. Container keys
// are "groupId" (list/table rows) or "groupId:status-key" (board columns);
// indexes are positions in the currently filtered view. A null destination
// means the drag was cancelled.
type moveRequest struct {
	Source      moveLocation  `json:"source"`
	Destination *moveLocation `json:"destination"`
}

type moveLocation struct {
	Container string `json:"container"`
	Index     int    `json:"index"`
}

// HandleMove handles POST /board/move. The active filter comes along in
// the query string so filtered indexes translate to store positions.
func (h *Handler) HandleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode move request", err, "Invalid move request.", "/board")
		return
	}

	drag, err := toDragResult(req)
	if err != nil {
		h.mutationError(w, r, err, currentView(r), parseQuery(r))
		return
	}

	if err := h.Engine.Apply(drag, parseQuery(r)); err != nil {
		h.mutationError(w, r, err, currentView(r), parseQuery(r))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toDragResult(req moveRequest) (taskboard.DragResult, error) {
	src, err := taskboard.ParseContainerKey(req.Source.Container)
	if err != nil {
		return taskboard.DragResult{}, err
	}
	drag := taskboard.DragResult{
		Source: taskboard.DragLocation{Container: src, Index: req.Source.Index},
	}
	if req.Destination != nil {
		dst, err := taskboard.ParseContainerKey(req.Destination.Container)
		if err != nil {
			return taskboard.DragResult{}, err
		}
		drag.Destination = &taskboard.DragLocation{Container: dst, Index: req.Destination.Index}
	}
	return drag, nil
}
