package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/leadflow/internal/db"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/idgen"
	"github.com/alexanderramin/leadflow/internal/repository"
)

// auditTrail writes workflow activities and lifecycle events inside the
// caller's transaction, so they commit or roll back with the change itself.
type auditTrail struct {
	ids        *idgen.Generator
	actor      string
	now        time.Time
	activities repository.ActivityRepo
	lifecycles repository.LifecycleRepo
}

func newAuditTrail(tx db.DBTX, ids *idgen.Generator, actor string, now time.Time) *auditTrail {
	return &auditTrail{
		ids:        ids,
		actor:      actor,
		now:        now,
		activities: repository.NewJSONActivityRepo(tx),
		lifecycles: repository.NewJSONLifecycleRepo(tx),
	}
}

func (a *auditTrail) activity(ctx context.Context, typ domain.ActivityType, subject, description, leadID, opportunityID string) (*domain.Activity, error) {
	act := domain.NewAuditActivity(typ, subject, description, a.actor, a.now)
	act.ID = a.ids.NewID(idgen.PrefixActivity)
	act.LeadID = leadID
	act.OpportunityID = opportunityID
	if err := a.activities.Create(ctx, &act); err != nil {
		return nil, fmt.Errorf("recording %s activity: %w", typ, err)
	}
	return &act, nil
}

func (a *auditTrail) transition(ctx context.Context, entity domain.EntityType, id, from, to, reason string) error {
	ev := &domain.LifecycleEvent{
		ID:         a.ids.NewID(idgen.PrefixCRM),
		EntityType: entity,
		EntityID:   id,
		From:       from,
		To:         to,
		ChangedBy:  a.actor,
		ChangedAt:  a.now,
		Reason:     reason,
	}
	if err := a.lifecycles.Append(ctx, ev); err != nil {
		return fmt.Errorf("recording %s lifecycle: %w", entity, err)
	}
	return nil
}

// allocateNumber draws the next human record number for prefix from the
// per-year counter in tx.
func allocateNumber(ctx context.Context, tx db.DBTX, prefix string, now time.Time) (string, error) {
	seq, err := repository.NewJSONSequenceRepo(tx).NextSeq(ctx, prefix, now.Year())
	if err != nil {
		return "", fmt.Errorf("allocating %s number: %w", prefix, err)
	}
	return idgen.FormatNumber(prefix, now.Year(), seq), nil
}

// checkVersion rejects a patch that was prepared against an older record.
func checkVersion(entity domain.EntityType, id string, expected *int, stored int) error {
	if expected != nil && *expected != stored {
		return domain.NewConflictError(entity, id, *expected, stored)
	}
	return nil
}
