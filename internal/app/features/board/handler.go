// internal/app/features/board/handler.go
package board

import (
	uierrors "github.com/campushub/campushub/internal/app/features/errors"
	"github.com/campushub/campushub/internal/app/system/notify"
	"github.com/campushub/campushub/internal/app/system/taskboard"
	"go.uber.org/zap"
)

// Handler serves the task board: the four read views, the mutation
// endpoints that feed the in-memory store, and the change event stream.
type Handler struct {
	Board  *taskboard.Store
	Engine *taskboard.Engine
	Hub    *notify.Hub
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(board *taskboard.Store, hub *notify.Hub, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Board:  board,
		Engine: taskboard.NewEngine(board),
		Hub:    hub,
		ErrLog: errLog,
		Log:    logger,
	}
}
