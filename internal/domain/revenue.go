package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is fixed for this deployment; no multi-currency support.
const Currency = "USD"

type Property struct {
	ID       string
	TenantID string
	Name     *string
	Timezone string // IANA name, e.g. America/New_York
}

// Reservation check-in instants are stored timezone-naive but are
// semantically UTC.
type Reservation struct {
	ID          int64
	PropertyID  string
	TenantID    string
	GuestName   *string
	CheckInDate time.Time
	TotalAmount decimal.Decimal
}

// RevenueSummary is the computed read model for one (tenant, property) pair.
// Total serializes as a quoted decimal string so the exact scale survives the
// cache boundary ("1000.00" never becomes 1000).
type RevenueSummary struct {
	PropertyID string          `json:"property_id"`
	TenantID   string          `json:"tenant_id"`
	Total      decimal.Decimal `json:"total"`
	Currency   string          `json:"currency"`
	Count      int             `json:"count"`
}

// ZeroSummary is the valid result for a property with no reservations.
func ZeroSummary(propertyID, tenantID string) RevenueSummary {
	return RevenueSummary{
		PropertyID: propertyID,
		TenantID:   tenantID,
		Total:      decimal.New(0, -2), // "0.00"
		Currency:   Currency,
		Count:      0,
	}
}
