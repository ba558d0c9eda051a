package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"

	redisad "stayledger/internal/adapters/redis"
	"stayledger/internal/domain"
)

func newSummary(t *testing.T, total string) domain.RevenueSummary {
	t.Helper()
	d, err := decimal.NewFromString(total)
	if err != nil {
		t.Fatalf("parse %q: %v", total, err)
	}
	return domain.RevenueSummary{
		PropertyID: "prop-002",
		TenantID:   "t-9",
		Total:      d,
		Currency:   domain.Currency,
		Count:      4,
	}
}

func TestCache_SetGetRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	in := newSummary(t, "4975.50")
	if err := c.Set(ctx, "revenue:t-9:prop-002", in, 300); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out domain.RevenueSummary
	ok, err := c.Get(ctx, "revenue:t-9:prop-002", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatalf("expected hit")
	}
	if out.Total.String() != "4975.50" {
		t.Fatalf("decimal string not preserved across cache: %q", out.Total.String())
	}
	if out.PropertyID != in.PropertyID || out.TenantID != in.TenantID || out.Count != in.Count {
		t.Fatalf("round-trip mismatch: %+v vs %+v", out, in)
	}
}

func TestCache_MissOnAbsentKey(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)

	var out domain.RevenueSummary
	ok, err := c.Get(context.Background(), "revenue:t-9:prop-404", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected miss")
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Set(ctx, "revenue:t-9:prop-002", newSummary(t, "4975.50"), 300); err != nil {
		t.Fatalf("set: %v", err)
	}

	// Still present just inside the window.
	mr.FastForward(299 * time.Second)
	var out domain.RevenueSummary
	if ok, _ := c.Get(ctx, "revenue:t-9:prop-002", &out); !ok {
		t.Fatalf("expected hit before TTL elapses")
	}

	// Logically absent after the 300s window.
	mr.FastForward(2 * time.Second)
	if ok, _ := c.Get(ctx, "revenue:t-9:prop-002", &out); ok {
		t.Fatalf("expected miss after TTL expiry")
	}
}

func TestCache_Del(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Set(ctx, "revenue:t-9:prop-002", newSummary(t, "4975.50"), 300); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Del(ctx, "revenue:t-9:prop-002"); err != nil {
		t.Fatalf("del: %v", err)
	}
	var out domain.RevenueSummary
	if ok, _ := c.Get(ctx, "revenue:t-9:prop-002", &out); ok {
		t.Fatalf("expected miss after delete")
	}
}
