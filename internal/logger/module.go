package logger

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module wires the slog application logger and the zap container logger.
var Module = fx.Options(
	fx.Provide(New, NewZap),
	fx.Invoke(registerSync),
)

func registerSync(lc fx.Lifecycle, l *zap.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			// stderr sync fails with EINVAL on some terminals
			_ = l.Sync()
			return nil
		},
	})
}
