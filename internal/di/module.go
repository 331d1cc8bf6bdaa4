package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/stockease/internal/adapter/carrier"
	"github.com/polkiloo/stockease/internal/app"
	"github.com/polkiloo/stockease/internal/config"
	"github.com/polkiloo/stockease/internal/logger"
	"github.com/polkiloo/stockease/internal/pkg/auth"
	"github.com/polkiloo/stockease/internal/pkg/pricing"
	"github.com/polkiloo/stockease/internal/server/http/router"
	"github.com/polkiloo/stockease/internal/storage/postgres"
	"github.com/polkiloo/stockease/internal/usecase"
)

// Module composes the full application graph. Extra options are appended
// last so callers can replace any provided component.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		pricing.Module,
		postgres.Module,
		carrier.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
