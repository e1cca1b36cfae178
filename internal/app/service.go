package app

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/alexanderramin/leadflow/internal/db"
	"github.com/alexanderramin/leadflow/internal/idgen"
	"github.com/alexanderramin/leadflow/internal/query"
	"github.com/alexanderramin/leadflow/internal/repository"
	"github.com/alexanderramin/leadflow/internal/service"
)

// Deps are the services behind the façade.
type Deps struct {
	Leads         service.LeadService
	Opportunities service.OpportunityService
	Activities    service.ActivityService
	Conversion    service.ConversionService
	Dashboard     service.DashboardService
	Observer      service.UseCaseObserver
	Logger        *slog.Logger
}

// Options configure NewFromStore.
type Options struct {
	Actor    string
	Clock    func() time.Time
	Logger   *slog.Logger
	Observer service.UseCaseObserver
}

// Service is the application façade. Every exported method returns an
// envelope; errors and panics never escape it.
type Service struct {
	leads         service.LeadService
	opportunities service.OpportunityService
	activities    service.ActivityService
	conversion    service.ConversionService
	dashboard     service.DashboardService
	observer      service.UseCaseObserver
	logger        *slog.Logger

	mu   sync.RWMutex
	view ViewState
}

func New(d Deps) *Service {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Observer == nil {
		d.Observer = service.NoopUseCaseObserver{}
	}
	return &Service{
		leads:         d.Leads,
		opportunities: d.Opportunities,
		activities:    d.Activities,
		conversion:    d.Conversion,
		dashboard:     d.Dashboard,
		observer:      d.Observer,
		logger:        d.Logger.With("component", "app"),
		view:          newViewState(),
	}
}

// NewFromStore wires repositories and services over store.
func NewFromStore(store *db.Store, opts Options) *Service {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	observer := opts.Observer
	if observer == nil {
		observer = service.NewSlogUseCaseObserver(logger)
	}

	leadRepo := repository.NewJSONLeadRepo(store)
	oppRepo := repository.NewJSONOpportunityRepo(store)
	actRepo := repository.NewJSONActivityRepo(store)
	lifeRepo := repository.NewJSONLifecycleRepo(store)
	uow := db.NewUnitOfWork(store)
	ids := idgen.New(idgen.WithClock(clock))
	actors := service.NewActorProvider(opts.Actor)

	return New(Deps{
		Leads:         service.NewLeadService(leadRepo, lifeRepo, uow, ids, actors),
		Opportunities: service.NewOpportunityService(oppRepo, lifeRepo, uow, ids, actors),
		Activities:    service.NewActivityService(actRepo, uow, ids, actors),
		Conversion:    service.NewConversionService(uow, ids, actors),
		Dashboard:     service.NewDashboardService(leadRepo, oppRepo, actRepo, clock),
		Observer:      observer,
		Logger:        logger,
	})
}

// execute runs one use case, converts its error into the envelope and
// reports it to the observer.
func execute[T any](ctx context.Context, s *Service, name string, fields map[string]any, fn func(context.Context) (T, error)) (env Envelope[T]) {
	started := time.Now().UTC()
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: unexpected failure: %v", name, r)
			s.logger.ErrorContext(ctx, "use case panicked", "use_case", name, "panic", r, "stack", string(debug.Stack()))
			env = failure[T](err)
		}
		s.observer.ObserveUseCase(ctx, service.UseCaseEvent{
			Name:      name,
			Duration:  time.Since(started),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
			StartedAt: started,
		})
	}()

	data, err := fn(ctx)
	if err != nil {
		return failure[T](err)
	}
	return succeed(data)
}

// executePage is execute for paginated queries.
func executePage[T any](ctx context.Context, s *Service, name string, q query.Query, fn func(context.Context, query.Query) (query.Page[T], error)) Envelope[[]T] {
	var pagination query.Pagination
	fields := map[string]any{"page": q.Page, "limit": q.Limit}
	if q.Search != "" {
		fields["search"] = q.Search
	}
	env := execute(ctx, s, name, fields, func(ctx context.Context) ([]T, error) {
		page, err := fn(ctx, q)
		if err != nil {
			return nil, err
		}
		pagination = page.Pagination
		return page.Data, nil
	})
	if env.Success {
		env.Pagination = &pagination
	}
	return env
}
