// Package dashboard computes the home-page summary from repository
// listings. It owns no storage of its own.
package dashboard

import (
	"context"
	"time"

	"edr/internal/core/types"
	"edr/internal/domain"
	"edr/internal/domain/audit"
	"edr/internal/domain/interventions"
	"edr/internal/domain/inventory"
	"edr/internal/domain/quotes"
)

// PipelineEntry is the quote total aggregated for one status.
type PipelineEntry struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// Summary is the dashboard payload.
type Summary struct {
	InterventionsByStatus   map[string]int           `json:"interventionsByStatus"`
	InterventionsByPriority map[string]int           `json:"interventionsByPriority"`
	OpenInterventions       int                      `json:"openInterventions"`
	CompletedThisMonth      int                      `json:"completedThisMonth"`
	QuotePipeline           map[string]PipelineEntry `json:"quotePipeline"`
	LowStockCount           int                      `json:"lowStockCount"`
	RecentActivity          []audit.Entry            `json:"recentActivity"`
	GeneratedAt             time.Time                `json:"generatedAt"`
}

// Service aggregates module data for the dashboard.
type Service struct {
	interventions interventions.Repository
	quotes        quotes.Repository
	inventory     inventory.Repository
	trail         audit.Trail
	activityLimit int
}

// NewService creates a new dashboard service.
func NewService(
	intervRepo interventions.Repository,
	quoteRepo quotes.Repository,
	invRepo inventory.Repository,
	trail audit.Trail,
) *Service {
	if trail == nil {
		trail = audit.NopTrail{}
	}
	return &Service{
		interventions: intervRepo,
		quotes:        quoteRepo,
		inventory:     invRepo,
		trail:         trail,
		activityLimit: 10,
	}
}

// Compute builds the summary. Archived records are excluded from every
// count except completed-this-month, which follows the status label.
func (s *Service) Compute(ctx context.Context) (*Summary, error) {
	now := time.Now().UTC()
	summary := &Summary{
		InterventionsByStatus:   make(map[string]int),
		InterventionsByPriority: make(map[string]int),
		QuotePipeline:           make(map[string]PipelineEntry),
		GeneratedAt:             now,
	}

	if err := s.addInterventions(ctx, summary, now); err != nil {
		return nil, err
	}
	if err := s.addQuotes(ctx, summary); err != nil {
		return nil, err
	}
	if err := s.addInventory(ctx, summary); err != nil {
		return nil, err
	}

	recent, err := s.trail.Recent(ctx, s.activityLimit)
	if err != nil {
		return nil, err
	}
	summary.RecentActivity = recent

	return summary, nil
}

func (s *Service) addInterventions(ctx context.Context, summary *Summary, now time.Time) error {
	result, err := s.interventions.List(ctx, domain.All(false))
	if err != nil {
		return err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for _, iv := range result.Items {
		summary.InterventionsByStatus[string(iv.Status)]++
		summary.InterventionsByPriority[string(iv.Priority)]++

		switch iv.Status {
		case interventions.StatusCompleted:
			if !iv.UpdatedAt.Before(monthStart) {
				summary.CompletedThisMonth++
			}
		case interventions.StatusCancelled:
		default:
			summary.OpenInterventions++
		}
	}
	return nil
}

func (s *Service) addQuotes(ctx context.Context, summary *Summary) error {
	result, err := s.quotes.List(ctx, domain.All(false))
	if err != nil {
		return err
	}

	totals := make(map[string]types.Money)
	for _, q := range result.Items {
		key := string(q.Status)
		entry := summary.QuotePipeline[key]
		entry.Count++
		summary.QuotePipeline[key] = entry
		totals[key] = totals[key].Add(types.NewMoney(q.Total))
	}
	for key, entry := range summary.QuotePipeline {
		entry.Total = types.Float64(types.Round2(totals[key]))
		summary.QuotePipeline[key] = entry
	}
	return nil
}

func (s *Service) addInventory(ctx context.Context, summary *Summary) error {
	result, err := s.inventory.List(ctx, domain.All(false))
	if err != nil {
		return err
	}
	for _, item := range result.Items {
		if item.LowStock() {
			summary.LowStockCount++
		}
	}
	return nil
}
