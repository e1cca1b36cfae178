package app

import (
	"context"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/query"
	"github.com/alexanderramin/leadflow/internal/scoring"
	"github.com/alexanderramin/leadflow/internal/service"
)

// LeadDetail is a lead with its activity timeline, newest first.
type LeadDetail struct {
	Lead       *domain.Lead       `json:"lead"`
	Activities []*domain.Activity `json:"activities"`
}

func (s *Service) GetLead(ctx context.Context, id string) Envelope[*LeadDetail] {
	return execute(ctx, s, "lead.get", map[string]any{"lead_id": id}, func(ctx context.Context) (*LeadDetail, error) {
		l, err := s.leads.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		acts, err := s.activities.ListByLead(ctx, id)
		if err != nil {
			return nil, err
		}
		return &LeadDetail{Lead: l, Activities: acts}, nil
	})
}

func (s *Service) GetLeads(ctx context.Context, q query.Query) Envelope[[]*domain.Lead] {
	return executePage(ctx, s, "lead.list", q, s.leads.Query)
}

func (s *Service) LeadHistory(ctx context.Context, id string) Envelope[[]*domain.LifecycleEvent] {
	return execute(ctx, s, "lead.history", map[string]any{"lead_id": id}, func(ctx context.Context) ([]*domain.LifecycleEvent, error) {
		return s.leads.History(ctx, id)
	})
}

// ScoreLead previews the score of a prospective lead without storing it.
func (s *Service) ScoreLead(ctx context.Context, in scoring.Input) Envelope[scoring.Result] {
	return execute(ctx, s, "lead.score", nil, func(context.Context) (scoring.Result, error) {
		return scoring.Explain(in), nil
	})
}

func (s *Service) GetOpportunity(ctx context.Context, id string) Envelope[*domain.Opportunity] {
	return execute(ctx, s, "opportunity.get", map[string]any{"opportunity_id": id}, func(ctx context.Context) (*domain.Opportunity, error) {
		return s.opportunities.GetByID(ctx, id)
	})
}

func (s *Service) GetOpportunities(ctx context.Context, q query.Query) Envelope[[]*domain.Opportunity] {
	return executePage(ctx, s, "opportunity.list", q, s.opportunities.Query)
}

func (s *Service) GetActivities(ctx context.Context, q query.Query) Envelope[[]*domain.Activity] {
	return executePage(ctx, s, "activity.list", q, s.activities.Query)
}

// GetDashboard computes the dashboard and caches it in the view state.
func (s *Service) GetDashboard(ctx context.Context) Envelope[*service.DashboardStats] {
	env := execute(ctx, s, "dashboard.get", nil, s.dashboard.Stats)
	if env.Success {
		s.cacheDashboard(env.Data)
	}
	return env
}

// RefreshDashboard recomputes the dashboard. A failure is logged and answered
// with the cached dashboard; the view state is left as it was.
func (s *Service) RefreshDashboard(ctx context.Context) Envelope[*service.DashboardStats] {
	env := s.GetDashboard(ctx)
	if env.Success {
		return env
	}

	s.logger.WarnContext(ctx, "dashboard refresh failed, serving cached view",
		"error_kind", string(env.Error.Kind), "error", env.Error.Message)
	view := s.View()
	out := Envelope[*service.DashboardStats]{Success: true, Data: view.Dashboard}
	if view.Dashboard == nil {
		out.Message = "dashboard unavailable: " + env.Error.Message
	} else {
		out.Message = "showing cached dashboard from " + view.DashboardAt.Format("2006-01-02 15:04:05 MST")
	}
	return out
}
