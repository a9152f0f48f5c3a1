// Package repository provides the initialization for repository implementations
package repository

import (
	"github.com/openedu/crooms/internal/config"
	"github.com/openedu/crooms/internal/repository/memory"
	"github.com/openedu/crooms/internal/repository/redis"
)

// NewRepository creates the booking store selected by configuration:
// Redis/Valkey when enabled, otherwise the in-memory store.
func NewRepository(cfg config.RedisConfig) (Repository, error) {
	if cfg.Enabled {
		return redis.NewRepository(cfg)
	}
	return memory.NewRepository(), nil
}
