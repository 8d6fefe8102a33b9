package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sahyog/freightbook-api/internal/calc"
	"github.com/sahyog/freightbook-api/internal/models"
	"github.com/sahyog/freightbook-api/internal/repository"
)

const balanceCacheTTL = 15 * time.Minute

// CompanySummary is the per-company outstanding rollup shown on the
// balances screen.
type CompanySummary struct {
	CompanyName    string  `json:"company_name"`
	Outstanding    float64 `json:"outstanding"`
	TotalRecords   int     `json:"total_records"`
	PaidRecords    int     `json:"paid_records"`
	PendingRecords int     `json:"pending_records"`
}

// Overview is the dashboard headline block
type Overview struct {
	TotalRecords       int     `json:"total_records"`
	TotalAmount        float64 `json:"total_amount"`
	PaidAmount         float64 `json:"paid_amount"`
	UnpaidAmount       float64 `json:"unpaid_amount"`
	TotalFreight       float64 `json:"total_freight"`
	TotalOutstanding   float64 `json:"total_outstanding"`
	CompaniesOwing     int     `json:"companies_owing"`
	PendingSettlements int     `json:"pending_settlements"`
	UniqueTrucks       int     `json:"unique_trucks"`
	UniqueTransports   int     `json:"unique_transports"`
	UniqueDestinations int     `json:"unique_destinations"`
	AvgAmount          float64 `json:"avg_amount"`
	PaidPercentage     float64 `json:"paid_percentage"`
}

// BalanceService aggregates outstanding balances per transport company.
// Summaries are cached because the balances screen polls and the rollup
// walks the whole record set.
type BalanceService struct {
	repo repository.RecordRepository

	mu       sync.RWMutex
	cached   []CompanySummary
	cachedAt time.Time
	overview *Overview
}

// NewBalanceService creates a new balance service
func NewBalanceService(repo repository.RecordRepository) *BalanceService {
	return &BalanceService{repo: repo}
}

// CompanySummaries returns the per-company rollup, serving a cached copy
// when it is fresh enough.
func (s *BalanceService) CompanySummaries(ctx context.Context) ([]CompanySummary, error) {
	s.mu.RLock()
	if s.cached != nil && time.Since(s.cachedAt) < balanceCacheTTL {
		out := make([]CompanySummary, len(s.cached))
		copy(out, s.cached)
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	return s.RefreshCache(ctx)
}

// RefreshCache rebuilds the summary cache from the database
func (s *BalanceService) RefreshCache(ctx context.Context) ([]CompanySummary, error) {
	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	summaries := summarize(records)

	s.mu.Lock()
	s.cached = summaries
	s.cachedAt = time.Now()
	s.overview = nil
	s.mu.Unlock()

	out := make([]CompanySummary, len(summaries))
	copy(out, summaries)
	return out, nil
}

// CompanyOutstanding returns the outstanding amount for one company
func (s *BalanceService) CompanyOutstanding(ctx context.Context, company string) (float64, error) {
	summaries, err := s.CompanySummaries(ctx)
	if err != nil {
		return 0, err
	}
	for _, sum := range summaries {
		if sum.CompanyName == company {
			return sum.Outstanding, nil
		}
	}
	return 0, nil
}

// DashboardOverview returns the headline totals for the dashboard
func (s *BalanceService) DashboardOverview(ctx context.Context) (*Overview, error) {
	s.mu.RLock()
	if s.overview != nil && time.Since(s.cachedAt) < balanceCacheTTL {
		ov := *s.overview
		s.mu.RUnlock()
		return &ov, nil
	}
	s.mu.RUnlock()

	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	ov := &Overview{TotalRecords: len(records)}
	trucks := make(map[string]struct{})
	transports := make(map[string]struct{})
	destinations := make(map[string]struct{})
	paidCount := 0
	for i := range records {
		r := &records[i]
		ov.TotalAmount += calc.ParseAmount(r.Total)
		ov.TotalFreight += calc.ParseAmount(r.FreightAmount)

		// Settled records carry their value in netamount; fall back to the
		// gross total when the net was never derived.
		settled := calc.ParseAmount(r.NetAmount)
		if r.NetAmount == "" {
			settled = calc.ParseAmount(r.Total)
		}
		if r.IsPaid() {
			paidCount++
			ov.PaidAmount += settled
		} else {
			ov.PendingSettlements++
			ov.UnpaidAmount += settled
		}

		if r.TruckNo != "" {
			trucks[r.TruckNo] = struct{}{}
		}
		if r.Transport != "" {
			transports[r.Transport] = struct{}{}
		}
		if r.Destination != "" {
			destinations[r.Destination] = struct{}{}
		}
	}
	ov.UniqueTrucks = len(trucks)
	ov.UniqueTransports = len(transports)
	ov.UniqueDestinations = len(destinations)
	if len(records) > 0 {
		ov.AvgAmount = ov.TotalAmount / float64(len(records))
		ov.PaidPercentage = float64(paidCount) / float64(len(records)) * 100
	}
	for _, sum := range summarize(records) {
		ov.TotalOutstanding += sum.Outstanding
		if sum.Outstanding > 0 {
			ov.CompaniesOwing++
		}
	}

	s.mu.Lock()
	s.overview = ov
	s.mu.Unlock()

	out := *ov
	return &out, nil
}

// summarize groups records by transport company and totals the outstanding
// balance of unpaid ones. Records with no company name are skipped. The
// result is sorted largest outstanding first, ties keeping first-seen order.
func summarize(records []models.TransportRecord) []CompanySummary {
	index := make(map[string]int)
	summaries := make([]CompanySummary, 0)

	for i := range records {
		r := &records[i]
		if strings.TrimSpace(r.Transport) == "" {
			continue
		}

		pos, ok := index[r.Transport]
		if !ok {
			pos = len(summaries)
			index[r.Transport] = pos
			summaries = append(summaries, CompanySummary{CompanyName: r.Transport})
		}

		sum := &summaries[pos]
		sum.TotalRecords++
		if r.IsPaid() {
			sum.PaidRecords++
			continue
		}
		sum.PendingRecords++
		if out := calc.Outstanding(r); out > 0 {
			sum.Outstanding += out
		}
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Outstanding > summaries[j].Outstanding
	})

	return summaries
}
