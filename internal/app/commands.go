package app

import (
	"context"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/service"
)

// StatusChange asks for a lead status move.
type StatusChange struct {
	Status domain.LeadStatus `json:"status"`
	Reason string            `json:"reason,omitempty"`
}

// StageChange asks for an opportunity stage move. A nil probability takes
// the stage default.
type StageChange struct {
	Stage       domain.OpportunityStage `json:"stage"`
	Probability *int                    `json:"probability,omitempty"`
	Reason      string                  `json:"reason,omitempty"`
}

func (s *Service) CreateLead(ctx context.Context, in domain.Lead) Envelope[*domain.Lead] {
	env := execute(ctx, s, "lead.create", map[string]any{"source": string(in.Source)}, func(ctx context.Context) (*domain.Lead, error) {
		l := in
		if err := s.leads.Create(ctx, &l); err != nil {
			return nil, err
		}
		return &l, nil
	})
	if env.Success {
		env.Message = "lead " + env.Data.LeadNumber + " created"
		s.markDashboardStale()
	}
	return env
}

func (s *Service) UpdateLead(ctx context.Context, id string, patch domain.LeadPatch) Envelope[*domain.Lead] {
	env := execute(ctx, s, "lead.update", map[string]any{"lead_id": id}, func(ctx context.Context) (*domain.Lead, error) {
		return s.leads.Update(ctx, id, patch)
	})
	if env.Success {
		s.markDashboardStale()
	}
	return env
}

func (s *Service) ChangeLeadStatus(ctx context.Context, id string, in StatusChange) Envelope[*domain.Lead] {
	fields := map[string]any{"lead_id": id, "status": string(in.Status)}
	env := execute(ctx, s, "lead.change_status", fields, func(ctx context.Context) (*domain.Lead, error) {
		return s.leads.ChangeStatus(ctx, id, in.Status, in.Reason)
	})
	if env.Success {
		s.markDashboardStale()
	}
	return env
}

func (s *Service) ConvertLead(ctx context.Context, id string, overrides domain.ConversionOverrides) Envelope[*service.ConversionResult] {
	env := execute(ctx, s, "lead.convert", map[string]any{"lead_id": id}, func(ctx context.Context) (*service.ConversionResult, error) {
		return s.conversion.Convert(ctx, id, overrides)
	})
	if env.Success {
		env.Message = "lead " + env.Data.Lead.DisplayID() + " converted to " + env.Data.Opportunity.DisplayID()
		s.markDashboardStale()
	}
	return env
}

func (s *Service) DeleteLead(ctx context.Context, id string) Envelope[string] {
	env := execute(ctx, s, "lead.delete", map[string]any{"lead_id": id}, func(ctx context.Context) (string, error) {
		return id, s.leads.Delete(ctx, id)
	})
	if env.Success {
		env.Message = "lead deleted"
		s.markDashboardStale()
	}
	return env
}

func (s *Service) CreateOpportunity(ctx context.Context, in domain.Opportunity) Envelope[*domain.Opportunity] {
	env := execute(ctx, s, "opportunity.create", map[string]any{"lead_id": in.LeadID}, func(ctx context.Context) (*domain.Opportunity, error) {
		o := in
		if err := s.opportunities.Create(ctx, &o); err != nil {
			return nil, err
		}
		return &o, nil
	})
	if env.Success {
		env.Message = "opportunity " + env.Data.OpportunityNumber + " created"
		s.markDashboardStale()
	}
	return env
}

func (s *Service) UpdateOpportunity(ctx context.Context, id string, patch domain.OpportunityPatch) Envelope[*domain.Opportunity] {
	env := execute(ctx, s, "opportunity.update", map[string]any{"opportunity_id": id}, func(ctx context.Context) (*domain.Opportunity, error) {
		return s.opportunities.Update(ctx, id, patch)
	})
	if env.Success {
		s.markDashboardStale()
	}
	return env
}

func (s *Service) MoveOpportunityStage(ctx context.Context, id string, in StageChange) Envelope[*domain.Opportunity] {
	fields := map[string]any{"opportunity_id": id, "stage": string(in.Stage)}
	env := execute(ctx, s, "opportunity.move_stage", fields, func(ctx context.Context) (*domain.Opportunity, error) {
		return s.opportunities.ChangeStage(ctx, id, in.Stage, in.Probability, in.Reason)
	})
	if env.Success {
		s.markDashboardStale()
	}
	return env
}

func (s *Service) LogActivity(ctx context.Context, in domain.Activity) Envelope[*domain.Activity] {
	fields := map[string]any{"type": string(in.Type), "lead_id": in.LeadID, "opportunity_id": in.OpportunityID}
	env := execute(ctx, s, "activity.log", fields, func(ctx context.Context) (*domain.Activity, error) {
		a := in
		if err := s.activities.Create(ctx, &a); err != nil {
			return nil, err
		}
		return &a, nil
	})
	if env.Success {
		s.markDashboardStale()
	}
	return env
}

func (s *Service) UpdateActivityStatus(ctx context.Context, id string, status domain.ActivityStatus) Envelope[*domain.Activity] {
	fields := map[string]any{"activity_id": id, "status": string(status)}
	env := execute(ctx, s, "activity.update_status", fields, func(ctx context.Context) (*domain.Activity, error) {
		return s.activities.UpdateStatus(ctx, id, status)
	})
	if env.Success {
		s.markDashboardStale()
	}
	return env
}
