package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_UsesEstimatedValue(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	l := newLeadInput("Ada")
	l.Company = "Engines Ltd"
	l.AssignedTo = "rep-3"
	l.EstimatedValue = domain.Ptr(80000.0)
	require.NoError(t, env.leads.Create(ctx, l))

	res, err := env.conversion.Convert(ctx, l.ID, domain.ConversionOverrides{})
	require.NoError(t, err)

	opp := res.Opportunity
	assert.Equal(t, 80000.0, opp.Amount)
	assert.Equal(t, domain.StageQualification, opp.Stage)
	assert.Equal(t, 25, opp.Probability)
	assert.Equal(t, l.ID, opp.LeadID)
	assert.Equal(t, "Ada Mover – Engines Ltd", opp.Name)
	assert.Equal(t, "rep-3", opp.Owner)
	assert.Equal(t, "OPP20260001", opp.OpportunityNumber)

	lead, err := env.leads.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadConverted, lead.Status)
	require.NotNil(t, lead.ConvertedAt)
	require.NotNil(t, lead.ConversionValue)
	assert.Equal(t, 80000.0, *lead.ConversionValue)
	assert.Equal(t, opp.ID, lead.OpportunityID)

	all, err := env.oppRepo.List(ctx)
	require.NoError(t, err)
	var linked int
	for _, o := range all {
		if o.LeadID == l.ID {
			linked++
		}
	}
	assert.Equal(t, 1, linked, "exactly one opportunity per converted lead")

	acts, err := env.activities.ListByOpportunity(ctx, opp.ID)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, domain.ActivityConversion, acts[0].Type)
	assert.Equal(t, l.ID, acts[0].LeadID)

	history, err := env.leads.History(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "converted", history[len(history)-1].To)
	oppHistory, err := env.opps.History(ctx, opp.ID)
	require.NoError(t, err)
	require.Len(t, oppHistory, 1)
	assert.Equal(t, "qualification", oppHistory[0].To)
}

func TestConvert_OverridesWin(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	l := newLeadInput("Grace")
	l.EstimatedValue = domain.Ptr(10000.0)
	require.NoError(t, env.leads.Create(ctx, l))

	res, err := env.conversion.Convert(ctx, l.ID, domain.ConversionOverrides{
		Amount: domain.Ptr(12500.0),
		Name:   "Office relocation",
		Owner:  "closer",
	})
	require.NoError(t, err)
	assert.Equal(t, 12500.0, res.Opportunity.Amount)
	assert.Equal(t, "Office relocation", res.Opportunity.Name)
	assert.Equal(t, "closer", res.Opportunity.Owner)
	assert.Equal(t, 12500.0, *res.Lead.ConversionValue)
}

func TestConvert_NoValueDefaultsToZeroAndMoveName(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	l := newLeadInput("Solo")
	require.NoError(t, env.leads.Create(ctx, l))

	res, err := env.conversion.Convert(ctx, l.ID, domain.ConversionOverrides{})
	require.NoError(t, err)
	assert.Zero(t, res.Opportunity.Amount)
	assert.Equal(t, "Solo Mover – Move", res.Opportunity.Name)
}

func TestConvert_RejectsTerminalAndMissingLeads(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	_, err := env.conversion.Convert(ctx, "lead_missing", domain.ConversionOverrides{})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	l := newLeadInput("Twice")
	require.NoError(t, env.leads.Create(ctx, l))
	_, err = env.conversion.Convert(ctx, l.ID, domain.ConversionOverrides{})
	require.NoError(t, err)
	_, err = env.conversion.Convert(ctx, l.ID, domain.ConversionOverrides{})
	assert.True(t, errors.Is(err, domain.ErrState))

	lost := newLeadInput("Lost")
	require.NoError(t, env.leads.Create(ctx, lost))
	_, err = env.leads.ChangeStatus(ctx, lost.ID, domain.LeadLost, "")
	require.NoError(t, err)
	_, err = env.conversion.Convert(ctx, lost.ID, domain.ConversionOverrides{})
	assert.True(t, errors.Is(err, domain.ErrState))

	opps, err := env.oppRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, opps, 1)
}

func TestConvert_NegativeOverrideRejected(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	l := newLeadInput("Neg")
	require.NoError(t, env.leads.Create(ctx, l))
	_, err := env.conversion.Convert(ctx, l.ID, domain.ConversionOverrides{Amount: domain.Ptr(-1.0)})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

// Save order inside a conversion: #1 sequences, #2 opportunities,
// #3 leads, #4 activities, #5 lifecycles.
func TestConvert_RollsBackWhenLaterWriteFails(t *testing.T) {
	for _, failOn := range []int32{3, 4, 5} {
		t.Run(fmt.Sprintf("fail on save %d", failOn), func(t *testing.T) {
			store := testutil.NewTestStore(t)
			setup := setupServicesWithUoW(t, store, testutil.NewTestUoW(store))
			ctx := context.Background()

			l := newLeadInput("Atomic")
			l.EstimatedValue = domain.Ptr(5000.0)
			require.NoError(t, setup.leads.Create(ctx, l))
			_, err := setup.leads.ChangeStatus(ctx, l.ID, domain.LeadQualified, "")
			require.NoError(t, err)

			failing := setupServicesWithUoW(t, store, &testutil.FailOnNthSaveUoW{
				Store:  store,
				FailOn: failOn,
				Err:    fmt.Errorf("injected failure"),
			})
			_, err = failing.conversion.Convert(ctx, l.ID, domain.ConversionOverrides{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "injected failure")

			lead, err := setup.leads.GetByID(ctx, l.ID)
			require.NoError(t, err)
			assert.Equal(t, domain.LeadQualified, lead.Status, "lead unchanged")
			assert.Nil(t, lead.ConvertedAt)
			assert.Empty(t, lead.OpportunityID)

			opps, err := setup.oppRepo.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, opps, "no orphaned opportunity")

			res, err := setup.conversion.Convert(ctx, l.ID, domain.ConversionOverrides{})
			require.NoError(t, err, "a manual retry succeeds")
			assert.Equal(t, "OPP20260001", res.Opportunity.OpportunityNumber, "rolled back number is reused")
		})
	}
}

func TestConvert_ReportsToObserver(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	var buf bytes.Buffer
	svc := NewConversionService(testutil.NewTestUoW(env.store), env.ids, env.actors, NewLogUseCaseObserver(&buf))

	l := newLeadInput("Observed")
	require.NoError(t, env.leads.Create(ctx, l))
	res, err := svc.Convert(ctx, l.ID, domain.ConversionOverrides{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "use_case=lead.convert")
	assert.Contains(t, out, "success=true")
	assert.Contains(t, out, "lead_id="+l.ID)
	assert.Contains(t, out, "opportunity_id="+res.Opportunity.ID)

	buf.Reset()
	_, err = svc.Convert(ctx, l.ID, domain.ConversionOverrides{})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "success=false")
	assert.Contains(t, buf.String(), "error_kind=state")
	assert.NotContains(t, buf.String(), "opportunity_id=")
}
