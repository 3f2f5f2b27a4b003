// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down DB connections and other resources.
//
// The board saver is stopped first so any pending board state is flushed
// while the MongoDB connection is still up.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if boardSaver != nil {
		logger.Info("stopping board saver")
		boardSaver.Stop()
	}
	if changeHub != nil {
		changeHub.Close()
	}

	if deps.CampusHubMongoClient != nil {
		logger.Info("disconnecting CampusHub MongoDB client")
		if err := deps.CampusHubMongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
