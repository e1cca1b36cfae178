package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/leadflow/internal/db"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/idgen"
	"github.com/alexanderramin/leadflow/internal/query"
	"github.com/alexanderramin/leadflow/internal/repository"
	"github.com/alexanderramin/leadflow/internal/scoring"
)

type leadService struct {
	leads      repository.LeadRepo
	lifecycles repository.LifecycleRepo
	uow        db.UnitOfWork
	ids        *idgen.Generator
	actors     ActorProvider
}

func NewLeadService(leads repository.LeadRepo, lifecycles repository.LifecycleRepo, uow db.UnitOfWork, ids *idgen.Generator, actors ActorProvider) LeadService {
	return &leadService{leads: leads, lifecycles: lifecycles, uow: uow, ids: ids, actors: actors}
}

func (s *leadService) Create(ctx context.Context, l *domain.Lead) error {
	l.ApplyDefaults()
	if err := l.Validate(); err != nil {
		return err
	}
	if l.Status == domain.LeadConverted {
		return domain.NewStateError(domain.EntityLead, l.ID, "use lead conversion to mark a lead converted")
	}

	actor := s.actors.ActorID(ctx)
	now := s.ids.Now()
	// Identity is always server-assigned.
	l.ID = s.ids.NewID(idgen.PrefixLead)
	l.LeadNumber = ""
	l.Version = 0
	l.Score = scoring.Score(scoring.InputFromLead(l))
	if l.Rating == "" {
		l.Rating = domain.RatingForScore(l.Score)
	}
	l.ConvertedAt = nil
	l.ConversionValue = nil
	l.OpportunityID = ""
	l.CreatedAt = now
	l.UpdatedAt = now
	l.CreatedBy = actor
	l.UpdatedBy = actor
	if l.AssignedTo == "" {
		l.AssignedTo = actor
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		number, err := allocateNumber(ctx, tx, idgen.NumberLead, now)
		if err != nil {
			return err
		}
		l.LeadNumber = number
		if err := repository.NewJSONLeadRepo(tx).Create(ctx, l); err != nil {
			return err
		}

		audit := newAuditTrail(tx, s.ids, actor, now)
		desc := fmt.Sprintf("%s via %s, score %d (%s)", l.FullName(), l.Source, l.Score, l.Rating)
		if _, err := audit.activity(ctx, domain.ActivityLeadCreated, "Lead created", desc, l.ID, ""); err != nil {
			return err
		}
		return audit.transition(ctx, domain.EntityLead, l.ID, "", string(l.Status), "created")
	})
}

func (s *leadService) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	return s.leads.GetByID(ctx, id)
}

func (s *leadService) Update(ctx context.Context, id string, patch domain.LeadPatch) (*domain.Lead, error) {
	return s.update(ctx, id, patch, "")
}

func (s *leadService) ChangeStatus(ctx context.Context, id string, to domain.LeadStatus, reason string) (*domain.Lead, error) {
	return s.update(ctx, id, domain.LeadPatch{Status: &to}, reason)
}

func (s *leadService) update(ctx context.Context, id string, patch domain.LeadPatch, reason string) (*domain.Lead, error) {
	actor := s.actors.ActorID(ctx)
	var updated *domain.Lead
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLeads := repository.NewJSONLeadRepo(tx)

		l, err := txLeads.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := checkVersion(domain.EntityLead, id, patch.Version, l.Version); err != nil {
			return err
		}

		now := s.ids.Now()
		patch.ApplyTo(l)
		if patch.TouchesScore() {
			l.Score = scoring.Score(scoring.InputFromLead(l))
			if patch.Rating == nil {
				l.Rating = domain.RatingForScore(l.Score)
			}
		}
		if err := l.Validate(); err != nil {
			return err
		}

		if patch.Status != nil {
			audit := newAuditTrail(tx, s.ids, actor, now)
			if err := moveLeadStatus(ctx, audit, l, *patch.Status, reason); err != nil {
				return err
			}
		}

		l.UpdatedAt = now
		l.UpdatedBy = actor
		if err := txLeads.Update(ctx, l); err != nil {
			return err
		}
		updated = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// moveLeadStatus applies a status change through the state machine and
// records it. Same-status moves leave no trace.
func moveLeadStatus(ctx context.Context, audit *auditTrail, l *domain.Lead, to domain.LeadStatus, reason string) error {
	if err := domain.CheckLeadTransition(l.ID, l.Status, to); err != nil {
		return err
	}
	if l.Status == to {
		return nil
	}
	from := l.Status
	l.Status = to
	if to == domain.LeadContacted {
		now := audit.now
		l.LastContactedAt = &now
	}

	subject := fmt.Sprintf("Status changed from %s to %s", from, to)
	if _, err := audit.activity(ctx, domain.ActivityStatusChange, subject, reason, l.ID, l.OpportunityID); err != nil {
		return err
	}
	return audit.transition(ctx, domain.EntityLead, l.ID, string(from), string(to), reason)
}

func (s *leadService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewJSONLeadRepo(tx).Delete(ctx, id)
	})
}

func (s *leadService) Query(ctx context.Context, q query.Query) (query.Page[*domain.Lead], error) {
	return s.leads.Query(ctx, q)
}

func (s *leadService) History(ctx context.Context, id string) ([]*domain.LifecycleEvent, error) {
	if _, err := s.leads.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.lifecycles.ListByEntity(ctx, domain.EntityLead, id)
}
