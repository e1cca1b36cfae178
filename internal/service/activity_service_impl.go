package service

import (
	"context"
	"time"

	"github.com/alexanderramin/leadflow/internal/db"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/idgen"
	"github.com/alexanderramin/leadflow/internal/query"
	"github.com/alexanderramin/leadflow/internal/repository"
)

// contactTypes are the activity types that count as reaching the lead.
var contactTypes = map[domain.ActivityType]bool{
	domain.ActivityCall:    true,
	domain.ActivityEmail:   true,
	domain.ActivityMeeting: true,
}

type activityService struct {
	activities repository.ActivityRepo
	uow        db.UnitOfWork
	ids        *idgen.Generator
	actors     ActorProvider
}

func NewActivityService(activities repository.ActivityRepo, uow db.UnitOfWork, ids *idgen.Generator, actors ActorProvider) ActivityService {
	return &activityService{activities: activities, uow: uow, ids: ids, actors: actors}
}

func (s *activityService) Create(ctx context.Context, a *domain.Activity) error {
	a.ApplyDefaults()
	if err := a.Validate(); err != nil {
		return err
	}

	now := s.ids.Now()
	a.ID = s.ids.NewID(idgen.PrefixActivity)
	a.Version = 0
	if a.Status == domain.ActivityCompleted && a.CompletedDate == nil {
		a.CompletedDate = &now
	}
	a.CreatedBy = s.actors.ActorID(ctx)
	a.CreatedAt = now
	a.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLeads := repository.NewJSONLeadRepo(tx)
		if a.LeadID != "" {
			if err := requireLinked(ctx, txLeads.GetByID, "leadId", a.LeadID); err != nil {
				return err
			}
		}
		if a.OpportunityID != "" {
			if err := requireLinked(ctx, repository.NewJSONOpportunityRepo(tx).GetByID, "opportunityId", a.OpportunityID); err != nil {
				return err
			}
		}
		if err := repository.NewJSONActivityRepo(tx).Create(ctx, a); err != nil {
			return err
		}
		if a.LeadID != "" && a.Status == domain.ActivityCompleted && contactTypes[a.Type] {
			return touchLastContacted(ctx, txLeads, a.LeadID, *a.CompletedDate)
		}
		return nil
	})
}

func (s *activityService) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	return s.activities.GetByID(ctx, id)
}

func (s *activityService) UpdateStatus(ctx context.Context, id string, status domain.ActivityStatus) (*domain.Activity, error) {
	var updated *domain.Activity
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txActs := repository.NewJSONActivityRepo(tx)
		a, err := txActs.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := domain.CheckActivityTransition(a.ID, a.Status, status); err != nil {
			return err
		}
		if a.Status == status {
			updated = a
			return nil
		}

		now := s.ids.Now()
		a.Status = status
		a.UpdatedAt = now
		if status == domain.ActivityCompleted {
			a.CompletedDate = &now
		}
		if err := txActs.Update(ctx, a); err != nil {
			return err
		}
		if a.LeadID != "" && status == domain.ActivityCompleted && contactTypes[a.Type] {
			if err := touchLastContacted(ctx, repository.NewJSONLeadRepo(tx), a.LeadID, now); err != nil {
				return err
			}
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *activityService) Complete(ctx context.Context, id string) (*domain.Activity, error) {
	return s.UpdateStatus(ctx, id, domain.ActivityCompleted)
}

func (s *activityService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewJSONActivityRepo(tx).Delete(ctx, id)
	})
}

func (s *activityService) Query(ctx context.Context, q query.Query) (query.Page[*domain.Activity], error) {
	return s.activities.Query(ctx, q)
}

func (s *activityService) ListByLead(ctx context.Context, leadID string) ([]*domain.Activity, error) {
	return s.activities.ListByLead(ctx, leadID)
}

func (s *activityService) ListByOpportunity(ctx context.Context, opportunityID string) ([]*domain.Activity, error) {
	return s.activities.ListByOpportunity(ctx, opportunityID)
}

// touchLastContacted moves the lead's lastContactedAt forward to at.
func touchLastContacted(ctx context.Context, leads repository.LeadRepo, leadID string, at time.Time) error {
	l, err := leads.GetByID(ctx, leadID)
	if err != nil {
		return err
	}
	if l.LastContactedAt != nil && !l.LastContactedAt.Before(at) {
		return nil
	}
	l.LastContactedAt = &at
	return leads.Update(ctx, l)
}
