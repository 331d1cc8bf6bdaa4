package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress           string
	DatabaseURI          string
	CarrierAPIAddress    string
	JWTSecret            string
	TokenTTL             time.Duration
	TrackingPollInterval time.Duration
	WorkerPoolSize       int
	PollBatchSize        int
	ShutdownTimeout      time.Duration
	TaxRate              decimal.Decimal
	RequireCardLuhn      bool
	DeliveryOptionsFile  string
}

const (
	defaultRunAddress           = ":8080"
	defaultJWTSecret            = "change-me-in-production"
	defaultTokenTTL             = 24 * time.Hour
	defaultTrackingPollInterval = 5 * time.Second
	defaultWorkerPoolSize       = 4
	defaultShutdownTimeout      = 10 * time.Second
	defaultPollBatchSize        = 32
	defaultTaxRate              = "0.08"

	dotEnvFile = ".env"
)

// Load parses configuration from flags, environment variables and an optional .env file.
// Variables already present in the process environment take precedence over .env.
func Load() (*Config, error) {
	lookup, err := withDotEnv(os.LookupEnv, dotEnvFile)
	if err != nil {
		return nil, err
	}
	return load(os.Args[1:], lookup)
}

type envLookup func(string) (string, bool)

func withDotEnv(lookup envLookup, path string) (envLookup, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return lookup, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		CarrierAPIAddress:    getString(lookup, "CARRIER_API_ADDRESS", ""),
		JWTSecret:            getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:             getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		TrackingPollInterval: getDuration(lookup, "TRACKING_POLL_INTERVAL", defaultTrackingPollInterval),
		WorkerPoolSize:       getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		PollBatchSize:        getInt(lookup, "POLL_BATCH_SIZE", defaultPollBatchSize),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		RequireCardLuhn:      getBool(lookup, "REQUIRE_CARD_LUHN", false),
		DeliveryOptionsFile:  getString(lookup, "DELIVERY_OPTIONS_FILE", ""),
	}

	fs := flag.NewFlagSet("stockease", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		pollIntervalStr    = cfg.TrackingPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		taxRateStr         = getString(lookup, "TAX_RATE", defaultTaxRate)
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.CarrierAPIAddress, "c", cfg.CarrierAPIAddress, "Carrier tracking API base URL")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Auth token lifetime")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent tracking workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between carrier polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.PollBatchSize, "poll-batch", cfg.PollBatchSize, "Maximum deliveries per polling batch")
	fs.StringVar(&taxRateStr, "tax-rate", taxRateStr, "Sales tax rate applied to the subtotal")
	fs.BoolVar(&cfg.RequireCardLuhn, "require-luhn", cfg.RequireCardLuhn, "Reject card numbers failing the Luhn checksum")
	fs.StringVar(&cfg.DeliveryOptionsFile, "delivery-options", cfg.DeliveryOptionsFile, "YAML file with delivery options")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.TrackingPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.TaxRate, err = decimal.NewFromString(strings.TrimSpace(taxRateStr)); err != nil {
		return nil, fmt.Errorf("invalid tax rate: %w", err)
	}
	if cfg.TaxRate.IsNegative() {
		return nil, fmt.Errorf("tax rate must not be negative")
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.PollBatchSize <= 0 {
		cfg.PollBatchSize = defaultPollBatchSize
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.TrackingPollInterval <= 0 {
		cfg.TrackingPollInterval = defaultTrackingPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.CarrierAPIAddress == "" {
		return nil, fmt.Errorf("carrier API address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
