package config

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Database.ConnString == "" {
		return errors.New("database.conn_string is required (POSTGRES_CONN_STR)")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.RequestTimeout < 0 {
		return errors.New("server.request_timeout must be >= 0")
	}

	if c.Redis.LockTTL < 0 {
		return errors.New("redis.lock_ttl must be >= 0")
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level is invalid: %w", err)
	}

	if c.League.TotalBudget < 1 {
		return errors.New("league.total_budget must be >= 1")
	}
	if c.League.BenchSlots < 0 {
		return errors.New("league.bench_slots must be >= 0")
	}

	return c.validateValuation()
}

func (c *Config) validateValuation() error {
	v := c.Valuation
	if v.CoverageFloor < 0 || v.CoverageFloor > 1 {
		return errors.New("valuation.coverage_floor must be between 0 and 1")
	}
	if v.PriceExponent <= 0 {
		return errors.New("valuation.price_exponent must be > 0")
	}
	if v.TopCapMin < 1 {
		return errors.New("valuation.top_cap_min must be >= 1")
	}
	if v.TopCapMax < v.TopCapMin {
		return errors.New("valuation.top_cap_max must be >= valuation.top_cap_min")
	}
	if v.FactorMin <= 0 || v.FactorMax < v.FactorMin {
		return errors.New("valuation.factor_min must be > 0 and <= valuation.factor_max")
	}
	if v.EliteWindow < 1 {
		return errors.New("valuation.elite_window must be >= 1")
	}
	if v.ReplacementWindow < 1 {
		return errors.New("valuation.replacement_window must be >= 1")
	}
	return nil
}
