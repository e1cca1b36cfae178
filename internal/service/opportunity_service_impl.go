package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/leadflow/internal/db"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/idgen"
	"github.com/alexanderramin/leadflow/internal/query"
	"github.com/alexanderramin/leadflow/internal/repository"
)

type opportunityService struct {
	opportunities repository.OpportunityRepo
	lifecycles    repository.LifecycleRepo
	uow           db.UnitOfWork
	ids           *idgen.Generator
	actors        ActorProvider
}

func NewOpportunityService(opportunities repository.OpportunityRepo, lifecycles repository.LifecycleRepo, uow db.UnitOfWork, ids *idgen.Generator, actors ActorProvider) OpportunityService {
	return &opportunityService{opportunities: opportunities, lifecycles: lifecycles, uow: uow, ids: ids, actors: actors}
}

func (s *opportunityService) Create(ctx context.Context, o *domain.Opportunity) error {
	o.ApplyDefaults()
	if err := o.Validate(); err != nil {
		return err
	}

	actor := s.actors.ActorID(ctx)
	now := s.ids.Now()
	o.ID = s.ids.NewID(idgen.PrefixOpportunity)
	o.OpportunityNumber = ""
	o.Version = 0
	if o.Stage.IsClosed() {
		o.ActualCloseDate = &now
	}
	o.CreatedAt = now
	o.UpdatedAt = now
	o.CreatedBy = actor
	o.UpdatedBy = actor

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if o.LeadID != "" {
			if err := requireLinked(ctx, repository.NewJSONLeadRepo(tx).GetByID, "leadId", o.LeadID); err != nil {
				return err
			}
		}
		number, err := allocateNumber(ctx, tx, idgen.NumberOpportunity, now)
		if err != nil {
			return err
		}
		o.OpportunityNumber = number
		if err := repository.NewJSONOpportunityRepo(tx).Create(ctx, o); err != nil {
			return err
		}

		audit := newAuditTrail(tx, s.ids, actor, now)
		desc := fmt.Sprintf("%s at %s (%d%%)", o.Name, o.Stage, o.Probability)
		if _, err := audit.activity(ctx, domain.ActivityOpportunityCreated, "Opportunity created", desc, o.LeadID, o.ID); err != nil {
			return err
		}
		return audit.transition(ctx, domain.EntityOpportunity, o.ID, "", string(o.Stage), "created")
	})
}

func (s *opportunityService) GetByID(ctx context.Context, id string) (*domain.Opportunity, error) {
	return s.opportunities.GetByID(ctx, id)
}

func (s *opportunityService) Update(ctx context.Context, id string, patch domain.OpportunityPatch) (*domain.Opportunity, error) {
	return s.update(ctx, id, patch, "")
}

func (s *opportunityService) ChangeStage(ctx context.Context, id string, stage domain.OpportunityStage, probability *int, reason string) (*domain.Opportunity, error) {
	return s.update(ctx, id, domain.OpportunityPatch{Stage: &stage, Probability: probability}, reason)
}

func (s *opportunityService) update(ctx context.Context, id string, patch domain.OpportunityPatch, reason string) (*domain.Opportunity, error) {
	actor := s.actors.ActorID(ctx)
	var updated *domain.Opportunity
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txOpps := repository.NewJSONOpportunityRepo(tx)

		o, err := txOpps.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := checkVersion(domain.EntityOpportunity, id, patch.Version, o.Version); err != nil {
			return err
		}

		now := s.ids.Now()
		patch.ApplyTo(o)
		if patch.Stage != nil {
			if err := domain.CheckStageTransition(o.ID, o.Stage, *patch.Stage); err != nil {
				return err
			}
		}
		if patch.Stage != nil && *patch.Stage != o.Stage {
			from := o.Stage
			o.SetStage(*patch.Stage, patch.Probability, now)

			audit := newAuditTrail(tx, s.ids, actor, now)
			subject := fmt.Sprintf("Stage changed from %s to %s", from, o.Stage)
			if _, err := audit.activity(ctx, domain.ActivityStageChange, subject, reason, o.LeadID, o.ID); err != nil {
				return err
			}
			if err := audit.transition(ctx, domain.EntityOpportunity, o.ID, string(from), string(o.Stage), reason); err != nil {
				return err
			}
		}
		if err := o.Validate(); err != nil {
			return err
		}

		o.UpdatedAt = now
		o.UpdatedBy = actor
		if err := txOpps.Update(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *opportunityService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewJSONOpportunityRepo(tx).Delete(ctx, id)
	})
}

func (s *opportunityService) Query(ctx context.Context, q query.Query) (query.Page[*domain.Opportunity], error) {
	return s.opportunities.Query(ctx, q)
}

func (s *opportunityService) History(ctx context.Context, id string) ([]*domain.LifecycleEvent, error) {
	if _, err := s.opportunities.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.lifecycles.ListByEntity(ctx, domain.EntityOpportunity, id)
}

// requireLinked reports a missing referenced record as a validation error on
// field.
func requireLinked[T any](ctx context.Context, get func(context.Context, string) (T, error), field, id string) error {
	_, err := get(ctx, id)
	if err == nil {
		return nil
	}
	if domain.KindOf(err) == domain.KindNotFound {
		return domain.NewValidationError("linked record does not exist",
			domain.FieldError{Field: field, Msg: fmt.Sprintf("%q not found", id)})
	}
	return err
}
