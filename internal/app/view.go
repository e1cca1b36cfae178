package app

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/query"
	"github.com/alexanderramin/leadflow/internal/repository"
	"github.com/alexanderramin/leadflow/internal/service"
)

// Collection names a filterable list in the view state.
type Collection string

const (
	CollectionLeads         Collection = "leads"
	CollectionOpportunities Collection = "opportunities"
	CollectionActivities    Collection = "activities"
)

// ViewState is what a UI needs between calls: the active filter per
// collection and the last computed dashboard.
type ViewState struct {
	Filters        map[Collection]query.Query `json:"filters"`
	Dashboard      *service.DashboardStats    `json:"dashboard,omitempty"`
	DashboardAt    *time.Time                 `json:"dashboardAt,omitempty"`
	DashboardStale bool                       `json:"dashboardStale"`
}

func newViewState() ViewState {
	return ViewState{Filters: map[Collection]query.Query{
		CollectionLeads:         {},
		CollectionOpportunities: {},
		CollectionActivities:    {},
	}}
}

// View returns a copy of the current view state.
func (s *Service) View() ViewState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.view
	out.Filters = make(map[Collection]query.Query, len(s.view.Filters))
	for k, v := range s.view.Filters {
		out.Filters[k] = v
	}
	return out
}

// SetFilter validates q against the collection's fields and stores it for
// the Current* queries.
func (s *Service) SetFilter(ctx context.Context, c Collection, q query.Query) Envelope[query.Query] {
	env := execute(ctx, s, "view.set_filter", map[string]any{"collection": string(c)}, func(context.Context) (query.Query, error) {
		checked, err := checkQuery(c, q)
		if err != nil {
			return query.Query{}, err
		}
		s.mu.Lock()
		s.view.Filters[c] = checked
		s.mu.Unlock()
		return checked, nil
	})
	return env
}

func checkQuery(c Collection, q query.Query) (query.Query, error) {
	switch c {
	case CollectionLeads:
		return repository.LeadFields.Check(q)
	case CollectionOpportunities:
		return repository.OpportunityFields.Check(q)
	case CollectionActivities:
		return repository.ActivityFields.Check(q)
	default:
		return q, domain.NewValidationError("invalid filter target",
			domain.FieldError{Field: "collection", Msg: fmt.Sprintf("unknown collection %q", c)})
	}
}

func (s *Service) currentFilter(c Collection) query.Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view.Filters[c]
}

func (s *Service) CurrentLeads(ctx context.Context) Envelope[[]*domain.Lead] {
	return s.GetLeads(ctx, s.currentFilter(CollectionLeads))
}

func (s *Service) CurrentOpportunities(ctx context.Context) Envelope[[]*domain.Opportunity] {
	return s.GetOpportunities(ctx, s.currentFilter(CollectionOpportunities))
}

func (s *Service) CurrentActivities(ctx context.Context) Envelope[[]*domain.Activity] {
	return s.GetActivities(ctx, s.currentFilter(CollectionActivities))
}

func (s *Service) markDashboardStale() {
	s.mu.Lock()
	s.view.DashboardStale = true
	s.mu.Unlock()
}

func (s *Service) cacheDashboard(stats *service.DashboardStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at := stats.GeneratedAt
	s.view.Dashboard = stats
	s.view.DashboardAt = &at
	s.view.DashboardStale = false
}
