package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpportunityService_CreateDefaults(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	o := &domain.Opportunity{Name: "Warehouse move", Amount: 42000}
	require.NoError(t, env.opps.Create(ctx, o))
	assert.Equal(t, domain.StageProspecting, o.Stage)
	assert.Equal(t, 10, o.Probability)
	assert.Equal(t, "OPP20260001", o.OpportunityNumber)
	assert.Equal(t, "tester", o.CreatedBy)

	staged := &domain.Opportunity{Name: "Late entry", Stage: domain.StageProposal}
	require.NoError(t, env.opps.Create(ctx, staged))
	assert.Equal(t, 60, staged.Probability, "stage default when none given")
	assert.Equal(t, "OPP20260002", staged.OpportunityNumber)

	acts, err := env.activities.ListByOpportunity(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, domain.ActivityOpportunityCreated, acts[0].Type)
}

func TestOpportunityService_CreateValidation(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	err := env.opps.Create(ctx, &domain.Opportunity{Amount: -5, Probability: 120})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Len(t, domain.FieldsOf(err), 3)

	err = env.opps.Create(ctx, &domain.Opportunity{Name: "Orphan", LeadID: "lead_nowhere"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	require.Len(t, domain.FieldsOf(err), 1)
	assert.Equal(t, "leadId", domain.FieldsOf(err)[0].Field)
}

func TestOpportunityService_ChangeStage(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	o := &domain.Opportunity{Name: "Piano move", Amount: 1500}
	require.NoError(t, env.opps.Create(ctx, o))

	got, err := env.opps.ChangeStage(ctx, o.ID, domain.StageNeedsAnalysis, nil, "site visit booked")
	require.NoError(t, err)
	assert.Equal(t, 40, got.Probability)

	got, err = env.opps.ChangeStage(ctx, o.ID, domain.StageNegotiation, domain.Ptr(70), "")
	require.NoError(t, err)
	assert.Equal(t, 70, got.Probability, "explicit probability wins")

	_, err = env.opps.ChangeStage(ctx, o.ID, domain.StageQualification, nil, "")
	assert.True(t, errors.Is(err, domain.ErrState), "stages only move forward")

	got, err = env.opps.ChangeStage(ctx, o.ID, domain.StageClosedWon, nil, "signed")
	require.NoError(t, err)
	assert.Equal(t, 100, got.Probability)
	require.NotNil(t, got.ActualCloseDate)
	assert.Equal(t, fixedNow, *got.ActualCloseDate)

	_, err = env.opps.ChangeStage(ctx, o.ID, domain.StageClosedLost, nil, "")
	assert.True(t, errors.Is(err, domain.ErrState), "closed stages are final")

	_, err = env.opps.ChangeStage(ctx, o.ID, domain.OpportunityStage("limbo"), nil, "")
	assert.True(t, errors.Is(err, domain.ErrValidation))

	history, err := env.opps.History(ctx, o.ID)
	require.NoError(t, err)
	var path []string
	for _, e := range history {
		path = append(path, e.To)
	}
	assert.Equal(t, []string{"prospecting", "needs_analysis", "negotiation", "closed_won"}, path)
}

func TestOpportunityService_Update(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	o := &domain.Opportunity{Name: "Flat move"}
	require.NoError(t, env.opps.Create(ctx, o))

	amount := 3200.0
	owner := "dispatcher"
	stage := domain.StageQualification
	got, err := env.opps.Update(ctx, o.ID, domain.OpportunityPatch{Amount: &amount, Owner: &owner, Stage: &stage, Version: domain.Ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, 3200.0, got.Amount)
	assert.Equal(t, "dispatcher", got.Owner)
	assert.Equal(t, 25, got.Probability)
	assert.Equal(t, 2, got.Version)

	_, err = env.opps.Update(ctx, o.ID, domain.OpportunityPatch{Amount: &amount, Version: domain.Ptr(1)})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	negative := -1.0
	_, err = env.opps.Update(ctx, o.ID, domain.OpportunityPatch{Amount: &negative})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	require.NoError(t, env.opps.Delete(ctx, o.ID))
	_, err = env.opps.GetByID(ctx, o.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestOpportunityService_Create_IgnoresCallerIdentity(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	first := &domain.Opportunity{ID: "opportunity_x", OpportunityNumber: "OPP20260001", Version: 3, Name: "First"}
	second := &domain.Opportunity{ID: "opportunity_x", OpportunityNumber: "OPP20260001", Version: 3, Name: "Second"}
	require.NoError(t, env.opps.Create(ctx, first))
	require.NoError(t, env.opps.Create(ctx, second))

	assert.NotEqual(t, "opportunity_x", first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "OPP20260001", first.OpportunityNumber)
	assert.Equal(t, "OPP20260002", second.OpportunityNumber)
	assert.Equal(t, 1, second.Version)
}
