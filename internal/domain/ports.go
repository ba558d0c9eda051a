package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type RevenueRepository interface {
	// Read paths
	TotalRevenue(ctx context.Context, propertyID, tenantID string) (RevenueSummary, error)
	MonthlyRevenue(ctx context.Context, propertyID, tenantID string, start, end time.Time) (decimal.Decimal, error)

	// Write paths (seeding and test fixtures)
	InsertProperty(ctx context.Context, p Property) error
	InsertReservation(ctx context.Context, r Reservation) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
