// internal/app/system/taskboard/drag.go
package taskboard

import (
	"strings"

	"github.com/campushub/campushub/internal/domain/models"
)

// ContainerRef addresses a droppable region with typed fields instead of
// an opaque key string. Table and timeline containers address a whole
// group (Status nil); board containers address one status column within a
// group. The wire form is parsed here and nowhere else.
type ContainerRef struct {
	GroupID string
	Status  *models.Status
}

// ParseContainerKey decodes the wire form "groupId" or
// "groupId:status-key" produced by the drag-and-drop front end.
func ParseContainerKey(key string) (ContainerRef, error) {
	groupID, statusKey, found := strings.Cut(key, ":")
	if groupID == "" {
		return ContainerRef{}, invalidMoveErr("empty container key")
	}
	if !found {
		return ContainerRef{GroupID: groupID}, nil
	}
	st, ok := models.ParseStatus(statusKey)
	if !ok {
		return ContainerRef{}, invalidMoveErr("unknown status %q in container key %q", statusKey, key)
	}
	return ContainerRef{GroupID: groupID, Status: &st}, nil
}

// Key returns the wire form of the container reference.
func (c ContainerRef) Key() string {
	if c.Status == nil {
		return c.GroupID
	}
	return c.GroupID + ":" + c.Status.ColumnKey()
}

// DragLocation is one endpoint of a drag gesture: a container plus an
// index into that container's projected (filtered/sorted) task list.
type DragLocation struct {
	Container ContainerRef
	Index     int
}

// DragResult carries a finished drag gesture. A nil Destination means the
// task was dropped outside any valid container and the gesture is a no-op.
type DragResult struct {
	Source      DragLocation
	Destination *DragLocation
}

// Engine interprets drag gestures into single Store.Move calls. It owns
// the translation from projected indexes (what the user sees through the
// active filter) to store indexes (positions in the unfiltered sequence).
type Engine struct {
	store *Store
}

// NewEngine returns a drag engine committing against the given store.
func NewEngine(store *Store) *Engine {
	return &Engine{store: store}
}

// Apply resolves the gesture under the active query and commits it as one
// Store.Move call. Any failure (vanished destination group, out-of-bounds
// index) leaves the board exactly as it was before the drag.
func (e *Engine) Apply(drag DragResult, q Query) error {
	if drag.Destination == nil {
		return nil
	}

	snapshot := e.store.Snapshot()

	src := drag.Source
	srcVisible, err := containerTasks(snapshot, src.Container, q)
	if err != nil {
		return err
	}
	if src.Index < 0 || src.Index >= len(srcVisible) {
		return invalidMoveErr("source index %d out of bounds for container %s", src.Index, src.Container.Key())
	}
	task := srcVisible[src.Index]

	dst := *drag.Destination
	destStatus := task.Status
	if dst.Container.Status != nil {
		destStatus = *dst.Container.Status
	}

	storeIdx, err := storeIndex(snapshot, dst, q, task.ID)
	if err != nil {
		return err
	}

	return e.store.Move(task.ID, dst.Container.GroupID, destStatus, storeIdx)
}

// containerTasks returns the projected task list a container displays:
// the group's sequence run through the shared filter/sort, narrowed to the
// container's status column for board containers.
func containerTasks(snapshot []*models.Group, ref ContainerRef, q Query) ([]*models.Task, error) {
	g := findGroup(snapshot, ref.GroupID)
	if g == nil {
		return nil, invalidMoveErr("container group %s does not exist", ref.GroupID)
	}
	visible := Project(g.Tasks, q)
	if ref.Status == nil {
		return visible, nil
	}
	col := visible[:0:0]
	for _, t := range visible {
		if t.Status == *ref.Status {
			col = append(col, t)
		}
	}
	return col, nil
}

// storeIndex maps a projected insertion index back to an index within the
// unfiltered destination sequence by counting matching-filtered
// predecessors. The dragged task is excluded on both sides, so the result
// is an index into the sequence after removal, which is what Store.Move
// expects.
func storeIndex(snapshot []*models.Group, dst DragLocation, q Query, draggedID string) (int, error) {
	g := findGroup(snapshot, dst.Container.GroupID)
	if g == nil {
		return 0, invalidMoveErr("destination group %s does not exist", dst.Container.GroupID)
	}

	visible, err := containerTasks(snapshot, dst.Container, q)
	if err != nil {
		return 0, err
	}
	visibleIDs := make(map[string]bool, len(visible))
	for _, t := range visible {
		if t.ID != draggedID {
			visibleIDs[t.ID] = true
		}
	}
	if dst.Index < 0 || dst.Index > len(visibleIDs) {
		return 0, invalidMoveErr("destination index %d out of bounds for container %s", dst.Index, dst.Container.Key())
	}

	// Walk the underlying sequence (minus the dragged task); the store
	// index is where the count of visible predecessors reaches dst.Index.
	idx := 0
	seen := 0
	for _, t := range g.Tasks {
		if t.ID == draggedID {
			continue
		}
		if seen == dst.Index && visibleIDs[t.ID] {
			return idx, nil
		}
		if visibleIDs[t.ID] {
			seen++
		}
		idx++
	}
	// Insertion after every visible task lands at the tail.
	return idx, nil
}

func findGroup(groups []*models.Group, id string) *models.Group {
	for _, g := range groups {
		if g.ID == id {
			return g
		}
	}
	return nil
}
