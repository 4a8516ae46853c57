package cache

import (
	"context"
	"sync"
	"time"

	"github.com/cabinet-rdv/clinic-booking-engine/internal/config"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/domain"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/ports/out"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheAdapter кэширует классификацию дней (DayInfo) по дате
// Списки слотов сюда не попадают: доступность всегда пересчитывается
type CacheAdapter struct {
	cache    *lru.Cache[string, domain.DayInfo]
	location *time.Location
	mu       sync.RWMutex
	logger   out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	lruCache, err := lru.New[string, domain.DayInfo](cfg.Cache.DaysSize)
	if err != nil {
		logger.Error("cache.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.DaysSize,
		})
		return nil, err
	}

	return &CacheAdapter{
		cache:    lruCache,
		location: cfg.Location,
		logger:   logger.WithModule("CacheAdapter"),
	}, nil
}

func (c *CacheAdapter) dateKey(date time.Time) string {
	return date.In(c.location).Format("2006-01-02")
}

func (c *CacheAdapter) GetDayInfo(ctx context.Context, date time.Time) (*domain.DayInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info, exists := c.cache.Get(c.dateKey(date))
	if !exists {
		c.logger.Debug("cache.day_info.miss", out.LogFields{
			"date": c.dateKey(date),
		})
		return nil, false
	}

	return &info, true
}

func (c *CacheAdapter) StoreDayInfo(ctx context.Context, date time.Time, info domain.DayInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Add(c.dateKey(date), info)
}

func (c *CacheAdapter) InvalidateDayInfoCache(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.day_info.invalidate_all", out.LogFields{})
	c.cache.Purge()
}
