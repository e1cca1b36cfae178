package service

import (
	"testing"
	"time"

	"github.com/alexanderramin/leadflow/internal/db"
	"github.com/alexanderramin/leadflow/internal/idgen"
	"github.com/alexanderramin/leadflow/internal/repository"
	"github.com/alexanderramin/leadflow/internal/testutil"
)

var fixedNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

type testEnv struct {
	store      *db.Store
	leadRepo   *repository.JSONLeadRepo
	oppRepo    *repository.JSONOpportunityRepo
	actRepo    *repository.JSONActivityRepo
	lifeRepo   *repository.JSONLifecycleRepo
	ids        *idgen.Generator
	actors     ActorProvider
	leads      LeadService
	opps       OpportunityService
	activities ActivityService
	conversion ConversionService
	dashboard  DashboardService
}

// setupServices wires every service over one in-memory store with a fixed
// clock and "tester" as the fallback actor.
func setupServices(t *testing.T) *testEnv {
	t.Helper()
	store := testutil.NewTestStore(t)
	return setupServicesWithUoW(t, store, testutil.NewTestUoW(store))
}

func setupServicesWithUoW(t *testing.T, store *db.Store, uow db.UnitOfWork) *testEnv {
	t.Helper()
	env := &testEnv{
		store:    store,
		leadRepo: repository.NewJSONLeadRepo(store),
		oppRepo:  repository.NewJSONOpportunityRepo(store),
		actRepo:  repository.NewJSONActivityRepo(store),
		lifeRepo: repository.NewJSONLifecycleRepo(store),
		ids:      idgen.New(idgen.WithClock(func() time.Time { return fixedNow })),
		actors:   NewActorProvider("tester"),
	}
	env.leads = NewLeadService(env.leadRepo, env.lifeRepo, uow, env.ids, env.actors)
	env.opps = NewOpportunityService(env.oppRepo, env.lifeRepo, uow, env.ids, env.actors)
	env.activities = NewActivityService(env.actRepo, uow, env.ids, env.actors)
	env.conversion = NewConversionService(uow, env.ids, env.actors)
	env.dashboard = NewDashboardService(env.leadRepo, env.oppRepo, env.actRepo, func() time.Time { return fixedNow })
	return env
}
