// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	oauthstatestore "github.com/dalemusser/waitlist/internal/app/store/oauthstate"
	sessionstore "github.com/dalemusser/waitlist/internal/app/store/sessions"
	"github.com/dalemusser/waitlist/internal/app/system/workers"
	"go.uber.org/zap"
)

// cleanupInterval is how often the sweeper purges expired sessions and
// OAuth state tokens. The TTL indexes do the real work; this covers the
// gap when the TTL monitor lags.
const cleanupInterval = time.Hour

// sessionCleanup is the background sweeper started in Startup and
// stopped in Shutdown. The hooks carry no custom state, so it lives at
// package level.
var sessionCleanup *workers.SessionCleanup

// Startup runs one-time application initialization after DB connection
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.WaitlistMongoDatabase
	sessionCleanup = workers.NewSessionCleanup(
		sessionstore.New(db), oauthstatestore.New(db), logger, cleanupInterval)
	sessionCleanup.Start()
	return nil
}
