package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/leadflow/internal/db"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/idgen"
	"github.com/alexanderramin/leadflow/internal/repository"
)

type conversionService struct {
	uow      db.UnitOfWork
	ids      *idgen.Generator
	actors   ActorProvider
	observer UseCaseObserver
}

func NewConversionService(uow db.UnitOfWork, ids *idgen.Generator, actors ActorProvider, observers ...UseCaseObserver) ConversionService {
	return &conversionService{
		uow:      uow,
		ids:      ids,
		actors:   actors,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Convert turns a lead into a qualification-stage opportunity. The
// opportunity, the lead update and the audit records commit together; any
// failure leaves both records as they were.
func (s *conversionService) Convert(ctx context.Context, leadID string, overrides domain.ConversionOverrides) (*ConversionResult, error) {
	fields := map[string]any{"lead_id": leadID}
	var result *ConversionResult
	err := Observe(ctx, s.observer, "lead.convert", fields, func() error {
		res, err := s.convert(ctx, leadID, overrides)
		if err != nil {
			return err
		}
		fields["opportunity_id"] = res.Opportunity.ID
		fields["amount"] = res.Opportunity.Amount
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *conversionService) convert(ctx context.Context, leadID string, overrides domain.ConversionOverrides) (*ConversionResult, error) {
	if overrides.Amount != nil && *overrides.Amount < 0 {
		return nil, domain.NewValidationError("invalid conversion",
			domain.FieldError{Field: "amount", Msg: "must be >= 0"})
	}

	actor := s.actors.ActorID(ctx)
	var out ConversionResult
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLeads := repository.NewJSONLeadRepo(tx)
		txOpps := repository.NewJSONOpportunityRepo(tx)

		lead, err := txLeads.GetByID(ctx, leadID)
		if err != nil {
			return err
		}
		if err := domain.CheckConvertible(lead); err != nil {
			return err
		}

		now := s.ids.Now()
		amount := 0.0
		switch {
		case overrides.Amount != nil:
			amount = *overrides.Amount
		case lead.EstimatedValue != nil:
			amount = *lead.EstimatedValue
		}

		opp := &domain.Opportunity{
			ID:                s.ids.NewID(idgen.PrefixOpportunity),
			Name:              domain.CoalesceStr(overrides.Name, domain.ConversionName(lead)),
			LeadID:            lead.ID,
			Stage:             domain.StageQualification,
			Probability:       domain.StageQualification.DefaultProbability(),
			Amount:            amount,
			ExpectedCloseDate: overrides.ExpectedCloseDate,
			Owner:             domain.CoalesceStr(overrides.Owner, lead.AssignedTo),
			CreatedBy:         actor,
			UpdatedBy:         actor,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := opp.Validate(); err != nil {
			return err
		}
		number, err := allocateNumber(ctx, tx, idgen.NumberOpportunity, now)
		if err != nil {
			return err
		}
		opp.OpportunityNumber = number
		if err := txOpps.Create(ctx, opp); err != nil {
			return fmt.Errorf("creating opportunity: %w", err)
		}

		from := lead.Status
		lead.Status = domain.LeadConverted
		lead.ConvertedAt = &now
		lead.ConversionValue = &amount
		lead.OpportunityID = opp.ID
		lead.UpdatedAt = now
		lead.UpdatedBy = actor
		if err := txLeads.Update(ctx, lead); err != nil {
			return fmt.Errorf("updating lead: %w", err)
		}

		audit := newAuditTrail(tx, s.ids, actor, now)
		desc := fmt.Sprintf("%s converted to %s (%.2f)", lead.DisplayID(), opp.DisplayID(), amount)
		if _, err := audit.activity(ctx, domain.ActivityConversion, "Lead converted to opportunity", desc, lead.ID, opp.ID); err != nil {
			return err
		}
		if err := audit.transition(ctx, domain.EntityLead, lead.ID, string(from), string(lead.Status), "converted to "+opp.DisplayID()); err != nil {
			return err
		}
		if err := audit.transition(ctx, domain.EntityOpportunity, opp.ID, "", string(opp.Stage), "converted from "+lead.DisplayID()); err != nil {
			return err
		}

		out = ConversionResult{Lead: lead, Opportunity: opp}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
