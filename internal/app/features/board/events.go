// internal/app/features/board/events.go
package board

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// ServeEvents streams board change events to the client as server-sent
// events. Open tabs listen here and refetch the board when anything
// changes, so edits made by one user show up for everyone.
func (h *Handler) ServeEvents(w http.ResponseWriter, r *http.Request) {
	if h.Hub == nil {
		http.Error(w, "event stream unavailable", http.StatusNotFound)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, cancel := h.Hub.Subscribe()
	defer cancel()

	// Tell the client the stream is live before the first change arrives.
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case c, open := <-events:
			if !open {
				// Dropped for falling behind; the client reconnects.
				return
			}
			payload, err := json.Marshal(map[string]string{
				"task_id": c.TaskID,
				"kind":    string(c.Kind),
			})
			if err != nil {
				h.Log.Warn("encode board event failed", zap.Error(err))
				continue
			}
			fmt.Fprintf(w, "event: board\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
