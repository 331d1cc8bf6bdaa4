package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/stockease/internal/config"
	"github.com/polkiloo/stockease/internal/pkg/payment"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCatalogUseCase,
	NewCartUseCase,
	NewCheckoutUseCase,
	NewOrderUseCase,
	NewDeliveryUseCase,
	newPaymentValidator,
	func(u *AuthUseCase) SessionProvider { return u },
)

func newPaymentValidator(cfg *config.Config) *payment.Validator {
	return payment.NewValidator(payment.WithLuhn(cfg.RequireCardLuhn))
}
