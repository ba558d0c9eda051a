package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	httpserver "stayledger/internal/adapters/http_server"
	"stayledger/internal/app"
	"stayledger/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	summaries map[string]domain.RevenueSummary // keyed tenant|property
	err       error
}

func (f *fakeRepo) TotalRevenue(ctx context.Context, propertyID, tenantID string) (domain.RevenueSummary, error) {
	if f.err != nil {
		return domain.RevenueSummary{}, f.err
	}
	if rs, ok := f.summaries[tenantID+"|"+propertyID]; ok {
		return rs, nil
	}
	return domain.ZeroSummary(propertyID, tenantID), nil
}

func (f *fakeRepo) MonthlyRevenue(ctx context.Context, propertyID, tenantID string, start, end time.Time) (decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Decimal{}, f.err
	}
	d, _ := decimal.NewFromString("750.25")
	return d, nil
}

func (f *fakeRepo) InsertProperty(ctx context.Context, p domain.Property) error       { return nil }
func (f *fakeRepo) InsertReservation(ctx context.Context, r domain.Reservation) error { return nil }

type nopCache struct{}

func (nopCache) Get(ctx context.Context, key string, dst any) (bool, error) { return false, nil }
func (nopCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	return nil
}
func (nopCache) Del(ctx context.Context, key string) error { return nil }

func newTestServer(repo domain.RevenueRepository) *httptest.Server {
	q := app.NewQueryService(repo, nopCache{}, 5*time.Minute)
	srv := httpserver.New(100)
	srv.MountHandlers(&httpserver.Handlers{Q: q})
	return httptest.NewServer(srv.Mux())
}

func get(t *testing.T, url, tenant string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if tenant != "" {
		req.Header.Set(httpserver.TenantHeader, tenant)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	return res
}

// ---- tests ----

func TestGetRevenue_OK(t *testing.T) {
	total, _ := decimal.NewFromString("4975.50")
	repo := &fakeRepo{summaries: map[string]domain.RevenueSummary{
		"t-9|prop-002": {PropertyID: "prop-002", TenantID: "t-9", Total: total, Currency: "USD", Count: 4},
	}}
	ts := newTestServer(repo)
	defer ts.Close()

	res := get(t, ts.URL+"/v1/properties/prop-002/revenue", "t-9")
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}

	var body struct {
		PropertyID string `json:"property_id"`
		TenantID   string `json:"tenant_id"`
		Total      string `json:"total"`
		Currency   string `json:"currency"`
		Count      int    `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != "4975.50" || body.Count != 4 || body.Currency != "USD" || body.TenantID != "t-9" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestGetRevenue_MissingTenantHeader(t *testing.T) {
	ts := newTestServer(&fakeRepo{})
	defer ts.Close()

	res := get(t, ts.URL+"/v1/properties/prop-002/revenue", "")
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without tenant header, got %d", res.StatusCode)
	}
}

func TestGetRevenue_AggregationFailure(t *testing.T) {
	ts := newTestServer(&fakeRepo{err: errors.New("connection refused")})
	defer ts.Close()

	res := get(t, ts.URL+"/v1/properties/prop-002/revenue", "t-9")
	defer res.Body.Close()
	if res.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("expected problem+json, got %s", ct)
	}
}

func TestGetRevenue_ETagNotModified(t *testing.T) {
	total, _ := decimal.NewFromString("1000.00")
	repo := &fakeRepo{summaries: map[string]domain.RevenueSummary{
		"t-1|prop-001": {PropertyID: "prop-001", TenantID: "t-1", Total: total, Currency: "USD", Count: 3},
	}}
	ts := newTestServer(repo)
	defer ts.Close()

	res := get(t, ts.URL+"/v1/properties/prop-001/revenue", "t-1")
	res.Body.Close()
	etag := res.Header.Get("ETag")
	if etag == "" {
		t.Fatalf("expected ETag header")
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/properties/prop-001/revenue", nil)
	req.Header.Set(httpserver.TenantHeader, "t-1")
	req.Header.Set("If-None-Match", etag)
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer res2.Body.Close()
	if res2.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", res2.StatusCode)
	}
}

func TestGetMonthlyRevenue_Validation(t *testing.T) {
	ts := newTestServer(&fakeRepo{})
	defer ts.Close()

	for _, q := range []string{
		"month=13&year=2024",
		"month=0&year=2024",
		"month=3&year=24",
		"year=2024",
	} {
		res := get(t, ts.URL+"/v1/properties/prop-001/revenue/monthly?"+q, "t-1")
		res.Body.Close()
		if res.StatusCode != http.StatusBadRequest {
			t.Fatalf("query %q: expected 400, got %d", q, res.StatusCode)
		}
	}
}

func TestGetMonthlyRevenue_OK(t *testing.T) {
	ts := newTestServer(&fakeRepo{})
	defer ts.Close()

	res := get(t, ts.URL+"/v1/properties/prop-001/revenue/monthly?month=3&year=2024", "t-1")
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var body struct {
		Month int    `json:"month"`
		Year  int    `json:"year"`
		Total string `json:"total"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Month != 3 || body.Year != 2024 || body.Total != "750.25" {
		t.Fatalf("unexpected body: %+v", body)
	}
}
