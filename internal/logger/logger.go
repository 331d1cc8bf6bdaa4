package logger

import (
	"log/slog"
	"os"

	"go.uber.org/zap"
)

// New creates a preconfigured slog.Logger.
func New() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", "stockease"))
}

// NewZap creates the production zap logger used for container events.
func NewZap() (*zap.Logger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return l.Named("fx"), nil
}
