// internal/app/system/workers/boardsaver.go
package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	boardstore "github.com/campushub/campushub/internal/app/store/boards"
	"github.com/campushub/campushub/internal/app/system/taskboard"
	"go.uber.org/zap"
)

// BoardSaver is a background worker that persists the task board to Mongo.
// It subscribes to the in-memory store and marks itself dirty on every
// change; an interval loop then writes the current snapshot. Mutations are
// never blocked on the database and save failures are log-only: the
// in-memory board stays authoritative and the next tick retries.
type BoardSaver struct {
	board    *taskboard.Store
	boards   *boardstore.Store
	log      *zap.Logger
	boardID  string
	name     string
	interval time.Duration
	dirty    atomic.Bool
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewBoardSaver creates a board persistence worker. interval is how often
// a dirty board is flushed (e.g., 2 seconds).
func NewBoardSaver(board *taskboard.Store, boards *boardstore.Store, logger *zap.Logger, boardID, name string, interval time.Duration) *BoardSaver {
	return &BoardSaver{
		board:    board,
		boards:   boards,
		log:      logger,
		boardID:  boardID,
		name:     name,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start subscribes to board changes and begins the flush loop.
func (w *BoardSaver) Start() {
	w.board.Subscribe(func(taskboard.Change) {
		w.dirty.Store(true)
	})
	w.wg.Add(1)
	go w.run()
	w.log.Info("board saver started",
		zap.String("board_id", w.boardID),
		zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop, flushes any pending snapshot, and waits
// for the loop to finish.
func (w *BoardSaver) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.flush()
	w.log.Info("board saver stopped")
}

func (w *BoardSaver) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *BoardSaver) flush() {
	if !w.dirty.Swap(false) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snapshot := w.board.Snapshot()
	if err := w.boards.Save(ctx, w.boardID, w.name, snapshot); err != nil {
		// Leave the board marked dirty so the next tick retries.
		w.dirty.Store(true)
		w.log.Error("failed to save board snapshot", zap.Error(err))
		return
	}
	w.log.Debug("board snapshot saved", zap.Int("groups", len(snapshot)))
}
