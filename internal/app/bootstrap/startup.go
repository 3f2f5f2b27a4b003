// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campushub/campushub/internal/app/resources"
	boardstore "github.com/campushub/campushub/internal/app/store/boards"
	pagestore "github.com/campushub/campushub/internal/app/store/pages"
	userstore "github.com/campushub/campushub/internal/app/store/users"
	"github.com/campushub/campushub/internal/app/system/authutil"
	"github.com/campushub/campushub/internal/app/system/notify"
	"github.com/campushub/campushub/internal/app/system/taskboard"
	"github.com/campushub/campushub/internal/app/system/workers"
	"github.com/campushub/campushub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Shared runtime state created during Startup and consumed by BuildHandler
// and Shutdown. The board lives in memory; the saver flushes it back to
// MongoDB in the background.
var (
	boardState *taskboard.Store
	boardSaver *workers.BoardSaver
	changeHub  *notify.Hub
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It is the
// place to load shared resources (like templates), warm caches, or perform
// any app-wide setup that depends on config and backends.
//
// CampusHub loads the shared templates, seeds/loads the operations board
// into memory, and starts the background saver that persists board changes.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	if err := ensureManager(ctx, deps, appCfg.ManagerEmail, appCfg.ManagerPassword, logger); err != nil {
		return err
	}

	if err := pagestore.New(deps.CampusHubMongoDatabase).EnsureDefaults(ctx); err != nil {
		return fmt.Errorf("seed site pages: %w", err)
	}

	store := boardstore.New(deps.CampusHubMongoDatabase)
	board, err := store.EnsureDefault(ctx)
	if err != nil {
		return fmt.Errorf("load board: %w", err)
	}
	logger.Info("board loaded",
		zap.String("board_id", board.ID),
		zap.Int("groups", len(board.Groups)))

	boardState = taskboard.NewStore(board.Groups)

	changeHub = notify.NewHub(logger)
	boardState.Subscribe(changeHub.Broadcast)

	boardSaver = workers.NewBoardSaver(boardState, store, logger, board.ID, board.Name, appCfg.BoardSaveInterval)
	boardSaver.Start()

	return nil
}

// ensureManager promotes (or creates) the configured manager account so a
// fresh deployment always has someone who can run the board. No-op when the
// email is not configured.
func ensureManager(ctx context.Context, deps DBDeps, email, password string, logger *zap.Logger) error {
	if email == "" {
		return nil
	}

	db := deps.CampusHubMongoDatabase
	users := userstore.New(db)

	existing, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == models.RoleManager {
			return nil
		}
		_, err := db.Collection("users").UpdateOne(ctx,
			bson.M{"_id": existing.ID},
			bson.M{"$set": bson.M{
				"role":       models.RoleManager,
				"status":     "active",
				"updated_at": time.Now(),
			}})
		if err != nil {
			return fmt.Errorf("promote manager: %w", err)
		}
		logger.Info("promoted existing user to manager", zap.String("email", email))
		return nil

	case errors.Is(err, mongo.ErrNoDocuments):
		hash := ""
		if password != "" {
			hash, err = authutil.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hash manager password: %w", err)
			}
		}
		_, err := users.Create(ctx, models.User{
			FullName:     "Portal Manager",
			Email:        email,
			Role:         models.RoleManager,
			Status:       "active",
			PasswordHash: hash,
		})
		if err != nil {
			return fmt.Errorf("create manager: %w", err)
		}
		logger.Info("created manager account", zap.String("email", email))
		return nil

	default:
		return fmt.Errorf("look up manager: %w", err)
	}
}
