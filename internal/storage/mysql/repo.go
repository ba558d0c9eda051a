package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"stayledger/internal/adapters/observability"
	"stayledger/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// TotalRevenue sums every reservation for the (property, tenant) pair.
// No matching rows is a valid zero result, not an error.
func (r *Repo) TotalRevenue(ctx context.Context, propertyID, tenantID string) (domain.RevenueSummary, error) {
	start := time.Now()
	row := r.db.QueryRowContext(ctx, totalRevenueSQL, propertyID, tenantID)

	var totalRaw string
	var count int
	err := row.Scan(&totalRaw, &count)
	observability.ObserveQuery("total_revenue", err, time.Since(start))
	if err == sql.ErrNoRows {
		return domain.ZeroSummary(propertyID, tenantID), nil
	}
	if err != nil {
		return domain.RevenueSummary{}, fmt.Errorf("total revenue query: %w", err)
	}

	// Scan the DECIMAL column as text and parse exactly; going through
	// float64 here would reintroduce binary rounding drift.
	total, err := decimal.NewFromString(totalRaw)
	if err != nil {
		return domain.RevenueSummary{}, fmt.Errorf("parse total %q: %w", totalRaw, err)
	}
	return domain.RevenueSummary{
		PropertyID: propertyID,
		TenantID:   tenantID,
		Total:      total,
		Currency:   domain.Currency,
		Count:      count,
	}, nil
}

// MonthlyRevenue sums reservations whose check-in, converted to the
// property's timezone, falls in [start, end). SUM over zero rows yields NULL,
// which maps to an exact 0.00 rather than an absent total.
func (r *Repo) MonthlyRevenue(ctx context.Context, propertyID, tenantID string, start, end time.Time) (decimal.Decimal, error) {
	qstart := time.Now()
	row := r.db.QueryRowContext(ctx, monthlyRevenueSQL, propertyID, tenantID, start, end)

	var totalRaw sql.NullString
	err := row.Scan(&totalRaw)
	observability.ObserveQuery("monthly_revenue", err, time.Since(qstart))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("monthly revenue query: %w", err)
	}
	if !totalRaw.Valid {
		return decimal.New(0, -2), nil
	}
	total, err := decimal.NewFromString(totalRaw.String)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse total %q: %w", totalRaw.String, err)
	}
	return total, nil
}

func (r *Repo) InsertProperty(ctx context.Context, p domain.Property) error {
	_, err := r.db.ExecContext(ctx, insertPropertySQL,
		p.ID,
		p.TenantID,
		valStr(p.Name),
		p.Timezone,
	)
	return err
}

func (r *Repo) InsertReservation(ctx context.Context, rv domain.Reservation) error {
	_, err := r.db.ExecContext(ctx, insertReservationSQL,
		rv.PropertyID,
		rv.TenantID,
		valStr(rv.GuestName),
		rv.CheckInDate.UTC(),
		rv.TotalAmount.String(),
	)
	return err
}
