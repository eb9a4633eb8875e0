// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down the background sweeper and the MongoDB
// connection.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if sessionCleanup != nil {
		sessionCleanup.Stop()
	}

	if deps.WaitlistMongoClient != nil {
		logger.Info("disconnecting waitlist MongoDB client")
		if err := deps.WaitlistMongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
