package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"stayledger/internal/domain"
)

type QueryService struct {
	repo     domain.RevenueRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.RevenueRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

// revenueKey builds the tenant-scoped cache key. Tenant id comes before
// property id: property ids are only unique within a tenant, so a key without
// the tenant would leak one tenant's figures to another.
func revenueKey(tenantID, propertyID string) string {
	return fmt.Sprintf("revenue:%s:%s", tenantID, propertyID)
}

// GetRevenueSummary is the cache-aside read path. A hit is trusted as-is; on
// a miss the summary is recomputed and stored with the configured TTL. Two
// concurrent misses for the same key may both recompute; last writer wins,
// which is fine because the computation is a pure function of stored data.
func (s *QueryService) GetRevenueSummary(ctx context.Context, propertyID, tenantID string) (domain.RevenueSummary, error) {
	key := revenueKey(tenantID, propertyID)
	var rs domain.RevenueSummary
	if ok, err := s.cache.Get(ctx, key, &rs); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed, treating as miss")
	} else if ok {
		return rs, nil
	}

	rs, err := s.repo.TotalRevenue(ctx, propertyID, tenantID)
	if err != nil {
		return domain.RevenueSummary{}, fmt.Errorf("%w: property %s tenant %s: %v",
			domain.ErrAggregationFailed, propertyID, tenantID, err)
	}

	// Best-effort: a failed write must not fail the read.
	if err := s.cache.Set(ctx, key, rs, int(s.cacheTTL.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed, returning fresh result")
	}
	return rs, nil
}

// GetMonthlyRevenue sums check-ins falling inside [start, end) of the given
// month, with boundaries interpreted in the property's local timezone.
// Monthly figures are not cached; only the total summary has a cache entry.
func (s *QueryService) GetMonthlyRevenue(ctx context.Context, propertyID, tenantID string, month, year int) (decimal.Decimal, error) {
	start, end, err := MonthBounds(month, year)
	if err != nil {
		return decimal.Decimal{}, err
	}
	total, err := s.repo.MonthlyRevenue(ctx, propertyID, tenantID, start, end)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: property %s tenant %s month %d-%02d: %v",
			domain.ErrAggregationFailed, propertyID, tenantID, year, month, err)
	}
	return total, nil
}

// InvalidateRevenue drops the cached summary so the next read recomputes.
func (s *QueryService) InvalidateRevenue(ctx context.Context, propertyID, tenantID string) {
	_ = s.cache.Del(ctx, revenueKey(tenantID, propertyID))
}
