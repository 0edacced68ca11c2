package cache

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ArnavMhatre/vtcalapp/internal/config"
	"github.com/ArnavMhatre/vtcalapp/internal/core/domain"
	"github.com/ArnavMhatre/vtcalapp/internal/core/ports/out"
)

// SectionCacheAdapter - LRU-кэш секций по CRN
// Секции справочника неизменяемы в пределах семестра,
// поэтому повторные CRN не ходят во внешний сервис
type SectionCacheAdapter struct {
	cache  *lru.Cache[string, *domain.Section]
	mu     sync.RWMutex
	logger out.LoggerPort
}

func NewSectionCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*SectionCacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	sections, err := lru.New[string, *domain.Section](cfg.Cache.SectionsSize)
	if err != nil {
		logger.Error("cache.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.SectionsSize,
		})
		return nil, err
	}

	return &SectionCacheAdapter{
		cache:  sections,
		logger: logger.WithModule("CacheAdapter"),
	}, nil
}

func (c *SectionCacheAdapter) GetSection(ctx context.Context, crn string) (*domain.Section, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	section, exists := c.cache.Get(crn)
	if !exists {
		c.logger.Debug("cache.get.miss", out.LogFields{
			"crn": crn,
		})
		return nil, false
	}

	c.logger.Debug("cache.get.hit", out.LogFields{
		"crn": crn,
	})
	return section, true
}

func (c *SectionCacheAdapter) StoreSection(ctx context.Context, crn string, section domain.Section) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.store", out.LogFields{
		"crn": crn,
	})

	c.cache.Add(crn, &section)
}

func (c *SectionCacheAdapter) InvalidateSection(ctx context.Context, crn string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Remove(crn)
}
