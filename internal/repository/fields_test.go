package repository

import (
	"context"
	"sort"
	"testing"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/query"
	"github.com/alexanderramin/leadflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkFilterKeys filters on every categorical key of fields using the first
// seed's value and expects exactly the seeds that share it.
func checkFilterKeys[T any](t *testing.T, fields query.Fields[T], seeds []T, id func(T) string,
	run func(query.Query) (query.Page[T], error)) {
	t.Helper()
	require.NotEmpty(t, seeds)

	keys := make([]string, 0, len(fields.Categorical))
	for k := range fields.Categorical {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		get := fields.Categorical[key]
		t.Run(key, func(t *testing.T) {
			want := get(seeds[0])
			require.NotEmpty(t, want, "first seed needs a value for %s", key)

			var expected []string
			for _, s := range seeds {
				if get(s) == want {
					expected = append(expected, id(s))
				}
			}
			require.Less(t, len(expected), len(seeds), "seeds must differ on %s", key)

			page, err := run(query.Query{Filters: map[string]string{key: want}, Limit: 100})
			require.NoError(t, err)

			var got []string
			for _, item := range page.Data {
				assert.Equal(t, want, get(item))
				got = append(got, id(item))
			}
			assert.ElementsMatch(t, expected, got)
			assert.Equal(t, len(expected), page.Pagination.Total)
		})
	}
}

func withRating(r domain.LeadRating) testutil.LeadOption {
	return func(l *domain.Lead) { l.Rating = r }
}

func withTimeline(tl domain.Timeline) testutil.LeadOption {
	return func(l *domain.Lead) { l.Timeline = tl }
}

func TestLeadFields_EveryFilterKey(t *testing.T) {
	repo := NewJSONLeadRepo(testutil.NewTestStore(t))
	ctx := context.Background()

	seeds := []*domain.Lead{
		testutil.NewTestLead("Ada", testutil.WithLeadStatus(domain.LeadQualified), testutil.WithSource(domain.SourceReferral),
			withRating(domain.RatingHot), testutil.WithAssignedTo("rep-1"), withTimeline(domain.TimelineImmediate)),
		testutil.NewTestLead("Ben", testutil.WithLeadStatus(domain.LeadNew), testutil.WithSource(domain.SourceWebsite),
			withRating(domain.RatingCold), testutil.WithAssignedTo("rep-2"), withTimeline(domain.TimelineThreeMo)),
		testutil.NewTestLead("Cy", testutil.WithLeadStatus(domain.LeadQualified), testutil.WithSource(domain.SourceWebsite),
			withRating(domain.RatingHot), testutil.WithAssignedTo("rep-1"), withTimeline(domain.TimelineOneYear)),
	}
	for _, l := range seeds {
		require.NoError(t, repo.Create(ctx, l))
	}

	checkFilterKeys(t, LeadFields, seeds, func(l *domain.Lead) string { return l.ID },
		func(q query.Query) (query.Page[*domain.Lead], error) { return repo.Query(ctx, q) })
}

func TestOpportunityFields_EveryFilterKey(t *testing.T) {
	repo := NewJSONOpportunityRepo(testutil.NewTestStore(t))
	ctx := context.Background()

	withOwner := func(owner string) testutil.OpportunityOption {
		return func(o *domain.Opportunity) { o.Owner = owner }
	}
	seeds := []*domain.Opportunity{
		testutil.NewTestOpportunity("Office", testutil.WithStage(domain.StageProposal), withOwner("closer"), testutil.WithOpportunityLead("lead_a")),
		testutil.NewTestOpportunity("Flat", testutil.WithStage(domain.StageProspecting), withOwner("closer"), testutil.WithOpportunityLead("lead_b")),
		testutil.NewTestOpportunity("Depot", testutil.WithStage(domain.StageProposal), withOwner("rep-5"), testutil.WithOpportunityLead("lead_b")),
	}
	for _, o := range seeds {
		require.NoError(t, repo.Create(ctx, o))
	}

	checkFilterKeys(t, OpportunityFields, seeds, func(o *domain.Opportunity) string { return o.ID },
		func(q query.Query) (query.Page[*domain.Opportunity], error) { return repo.Query(ctx, q) })
}

func TestActivityFields_EveryFilterKey(t *testing.T) {
	repo := NewJSONActivityRepo(testutil.NewTestStore(t))
	ctx := context.Background()

	by := func(actor string) testutil.ActivityOption {
		return func(a *domain.Activity) { a.CreatedBy = actor }
	}
	ofType := func(kind domain.ActivityType) testutil.ActivityOption {
		return func(a *domain.Activity) { a.Type = kind }
	}
	seeds := []*domain.Activity{
		testutil.NewTestActivity("Survey call", ofType(domain.ActivityCall), testutil.WithActivityStatus(domain.ActivityCompleted),
			testutil.WithActivityLead("lead_a"), testutil.WithActivityOpportunity("opportunity_a"), by("rep-1")),
		testutil.NewTestActivity("Quote email", ofType(domain.ActivityEmail), testutil.WithActivityStatus(domain.ActivityScheduled),
			testutil.WithActivityLead("lead_b"), testutil.WithActivityOpportunity("opportunity_b"), by("rep-2")),
		testutil.NewTestActivity("Follow-up", ofType(domain.ActivityCall), testutil.WithActivityStatus(domain.ActivityScheduled),
			testutil.WithActivityLead("lead_a"), testutil.WithActivityOpportunity("opportunity_b"), by("rep-2")),
	}
	for _, a := range seeds {
		require.NoError(t, repo.Create(ctx, a))
	}

	checkFilterKeys(t, ActivityFields, seeds, func(a *domain.Activity) string { return a.ID },
		func(q query.Query) (query.Page[*domain.Activity], error) { return repo.Query(ctx, q) })
}
