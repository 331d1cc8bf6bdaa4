package carrier

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/stockease/internal/config"
)

// Module exposes the carrier client to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.CarrierAPIAddress, p.Logger)
}
