package nakama

import (
	"context"
	"database/sql"

	"whist/internal/app"
	"whist/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule loads the game config and wires RPCs and hooks for Nakama
// runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)

	path := env[envConfigPath]
	if path == "" {
		path = defaultConfigPath
	}
	if err := config.LoadGameConfig(path); err != nil {
		logger.Warn("InitModule: Could not load game config from %s: %v", path, err)
	}
	gameConfig = config.GetGameConfig()

	secret, issuer := env[envTicketSecret], defaultIssuer
	if gameConfig != nil {
		if secret == "" {
			secret = gameConfig.TicketSecret
		}
		if gameConfig.TicketIssuer != "" {
			issuer = gameConfig.TicketIssuer
		}
	}
	if secret == "" {
		return runtime.NewError("ticket secret is not configured", codeFailedPrecondition)
	}
	ticketSealer = app.NewTicketSealer(secret, issuer, gameConfig.TicketTTL())

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}
	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	logger.Info("Whist Go module loaded (default variant %s).", gameConfig.Variant())
	return nil
}
