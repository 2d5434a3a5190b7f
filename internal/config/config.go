// Package config reads the server settings from POSADMIN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nikolayk812/posadmin/internal/domain"
	"golang.org/x/text/currency"
)

const (
	EnvAddr                 = "POSADMIN_ADDR"
	EnvDatabaseURL          = "POSADMIN_DATABASE_URL"
	EnvAuthToken            = "POSADMIN_AUTH_TOKEN"
	EnvTimezone             = "POSADMIN_TIMEZONE"
	EnvCurrency             = "POSADMIN_CURRENCY"
	EnvReversalPricing      = "POSADMIN_REVERSAL_PRICING"
	EnvIdempotencyCacheSize = "POSADMIN_IDEMPOTENCY_CACHE_SIZE"
	EnvShutdownTimeout      = "POSADMIN_SHUTDOWN_TIMEOUT"
	EnvLogLevel             = "POSADMIN_LOG_LEVEL"
)

type Config struct {
	Addr        string
	DatabaseURL string
	// AuthToken protects every route when set
	AuthToken            string
	Location             *time.Location
	Currency             currency.Unit
	ReversalPricing      domain.ReversalPricing
	IdempotencyCacheSize int
	ShutdownTimeout      time.Duration
	LogLevel             slog.Level
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup reads the configuration through lookup, which has the signature of os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	var (
		cfg  Config
		errs []error
		err  error
	)

	cfg.Addr = get(EnvAddr, ":8080")
	cfg.AuthToken = get(EnvAuthToken, "")

	cfg.DatabaseURL = get(EnvDatabaseURL, "")
	if cfg.DatabaseURL == "" {
		errs = append(errs, fmt.Errorf("%s is empty", EnvDatabaseURL))
	}

	tz := get(EnvTimezone, "UTC")
	if cfg.Location, err = time.LoadLocation(tz); err != nil {
		errs = append(errs, fmt.Errorf("%s[%s]: %w", EnvTimezone, tz, err))
	} else if cfg.Location.String() == "Local" {
		errs = append(errs, fmt.Errorf("%s must name a zone, not Local", EnvTimezone))
	}

	code := get(EnvCurrency, "USD")
	if cfg.Currency, err = currency.ParseISO(code); err != nil {
		errs = append(errs, fmt.Errorf("%s[%s]: %w", EnvCurrency, code, err))
	}

	pricing := get(EnvReversalPricing, string(domain.ReversalPricingLive))
	if cfg.ReversalPricing, err = domain.ToReversalPricing(pricing); err != nil {
		errs = append(errs, fmt.Errorf("%s[%s]: %w", EnvReversalPricing, pricing, err))
	}

	size := get(EnvIdempotencyCacheSize, "10000")
	if cfg.IdempotencyCacheSize, err = strconv.Atoi(size); err != nil || cfg.IdempotencyCacheSize <= 0 {
		errs = append(errs, fmt.Errorf("%s[%s] must be a positive integer", EnvIdempotencyCacheSize, size))
	}

	timeout := get(EnvShutdownTimeout, "10s")
	if cfg.ShutdownTimeout, err = time.ParseDuration(timeout); err != nil {
		errs = append(errs, fmt.Errorf("%s[%s]: %w", EnvShutdownTimeout, timeout, err))
	}

	level := get(EnvLogLevel, "info")
	if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
		errs = append(errs, fmt.Errorf("%s[%s]: %w", EnvLogLevel, level, err))
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	return cfg, nil
}
