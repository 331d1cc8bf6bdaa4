package pricing

import (
	"go.uber.org/fx"

	"github.com/polkiloo/stockease/internal/config"
)

// Module provides the delivery option catalog and the cart calculator.
var Module = fx.Provide(
	newCatalog,
	newCalculator,
)

func newCatalog(cfg *config.Config) (*Catalog, error) {
	if cfg.DeliveryOptionsFile == "" {
		return DefaultCatalog(), nil
	}
	return LoadCatalog(cfg.DeliveryOptionsFile)
}

func newCalculator(cfg *config.Config) *Calculator {
	return NewCalculator(cfg.TaxRate)
}
