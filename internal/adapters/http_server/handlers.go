package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"stayledger/internal/app"
	"stayledger/internal/domain"
)

type Handlers struct{ Q *app.QueryService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/properties/{id}/revenue", h.getRevenue)
	s.mux.Get("/v1/properties/{id}/revenue/monthly", h.getMonthlyRevenue)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func tenantID(w http.ResponseWriter, r *http.Request) (string, bool) {
	t := r.Header.Get(TenantHeader)
	if t == "" {
		writeProblem(w, http.StatusBadRequest, "Missing Tenant", TenantHeader+" header is required")
		return "", false
	}
	return t, true
}

func (h *Handlers) getRevenue(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "id")
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}

	resp, err := h.Q.GetRevenueSummary(r.Context(), propertyID, tenant)
	if err != nil {
		log.Error().Err(err).Str("property_id", propertyID).Msg("revenue summary failed")
		writeProblem(w, http.StatusServiceUnavailable, "Aggregation Unavailable", "revenue could not be computed")
		return
	}

	etag, body := calcETagAndBody(resp)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write getRevenue body")
	}
}

type monthlyResponse struct {
	PropertyID string          `json:"property_id"`
	TenantID   string          `json:"tenant_id"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Total      decimal.Decimal `json:"total"`
	Currency   string          `json:"currency"`
}

func (h *Handlers) getMonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "id")
	tenant, ok := tenantID(w, r)
	if !ok {
		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeProblem(w, http.StatusBadRequest, "Invalid month", "month must be an integer between 1 and 12")
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1970 || year > 9999 {
		writeProblem(w, http.StatusBadRequest, "Invalid year", "year must be a four-digit integer")
		return
	}

	total, err := h.Q.GetMonthlyRevenue(r.Context(), propertyID, tenant, month, year)
	if err != nil {
		if errors.Is(err, domain.ErrAggregationFailed) {
			log.Error().Err(err).Str("property_id", propertyID).Msg("monthly revenue failed")
			writeProblem(w, http.StatusServiceUnavailable, "Aggregation Unavailable", "revenue could not be computed")
			return
		}
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(monthlyResponse{
		PropertyID: propertyID,
		TenantID:   tenant,
		Month:      month,
		Year:       year,
		Total:      total,
		Currency:   domain.Currency,
	}); err != nil {
		log.Error().Err(err).Msg("failed to write getMonthlyRevenue body")
	}
}
