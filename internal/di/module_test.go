package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/stockease/internal/adapter/carrier"
	"github.com/polkiloo/stockease/internal/app"
	"github.com/polkiloo/stockease/internal/config"
	"github.com/polkiloo/stockease/internal/domain/repository"
	"github.com/polkiloo/stockease/internal/pkg/pricing"
	"github.com/polkiloo/stockease/internal/storage/postgres"
	"github.com/polkiloo/stockease/internal/test"
	"github.com/polkiloo/stockease/internal/usecase"
	"github.com/polkiloo/stockease/internal/worker"
)

func testConfig() *config.Config {
	return &config.Config{
		RunAddress:           ":0",
		DatabaseURI:          "postgres://stub",
		CarrierAPIAddress:    "http://localhost",
		JWTSecret:            "secret",
		TokenTTL:             time.Hour,
		TrackingPollInterval: time.Millisecond,
		WorkerPoolSize:       1,
		PollBatchSize:        1,
		ShutdownTimeout:      time.Millisecond,
		TaxRate:              pricing.DefaultTaxRate,
	}
}

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	carts := &test.CartRepositoryStub{}

	var (
		facade   *app.StorefrontFacade
		sessions usecase.SessionProvider
		tracker  *worker.DeliveryTracker
		engine   *gin.Engine
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(testConfig()),
			fx.Replace(slog.New(slog.NewJSONHandler(io.Discard, nil))),
			fx.Replace(zap.NewNop()),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.UserRepository(test.NewUserRepositoryStub())),
			fx.Replace(repository.SessionRepository(&test.SessionRepositoryStub{})),
			fx.Replace(repository.ProductRepository(&test.ProductRepositoryStub{})),
			fx.Replace(repository.CartRepository(carts)),
			fx.Replace(repository.OrderRepository(&test.OrderRepositoryStub{Carts: carts})),
			fx.Replace(repository.DeliveryRepository(&test.DeliveryRepositoryStub{})),
			fx.Replace(carrier.Client(test.ShipmentProviderStub{})),
		),
		fx.Populate(&facade, &sessions, &tracker, &engine),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	if facade == nil || sessions == nil || tracker == nil || engine == nil {
		t.Fatal("expected storefront components to be constructed")
	}
	if options := facade.DeliveryOptions(); len(options) == 0 {
		t.Fatal("expected delivery options to be wired")
	}
}

func TestModuleRejectsMissingDeliveryOptionsFile(t *testing.T) {
	cfg := testConfig()
	cfg.DeliveryOptionsFile = "does-not-exist.yaml"

	var catalog *pricing.Catalog
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(&postgres.Storage{}),
		),
		fx.Populate(&catalog),
	)
	if fxApp.Err() == nil {
		t.Fatal("expected missing delivery options file to fail graph construction")
	}
}
