package config

import (
	"time"

	"github.com/jchen-way/DraftOptimizer/lock"
	"github.com/jchen-way/DraftOptimizer/model"
)

const (
	DefaultPort            = 3000
	DefaultCORSOrigin      = "http://localhost:3000"
	DefaultRequestTimeout  = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultLogLevel        = "info"
)

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{DefaultCORSOrigin}
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = DefaultRequestTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if c.Redis.LockTTL == 0 {
		c.Redis.LockTTL = lock.DefaultTTL
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}

	if c.League.TotalBudget == 0 {
		c.League.TotalBudget = model.DefaultTotalBudget
	}
	if c.League.BenchSlots < 0 {
		c.League.BenchSlots = model.DefaultBenchSlots
	}
}
