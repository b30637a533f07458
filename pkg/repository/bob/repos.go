package bob

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/stephenafamo/bob"

	"github.com/mpapenbr/race-engineer-service-go/pkg/repository/api"
	"github.com/mpapenbr/race-engineer-service-go/pkg/repository/bob/engine"
	"github.com/mpapenbr/race-engineer-service-go/pkg/repository/bob/event"
	"github.com/mpapenbr/race-engineer-service-go/pkg/repository/bob/lap"
	"github.com/mpapenbr/race-engineer-service-go/pkg/repository/bob/session"
	"github.com/mpapenbr/race-engineer-service-go/pkg/repository/bob/setup"
	"github.com/mpapenbr/race-engineer-service-go/pkg/repository/bob/tire"
)

type bobRepositories struct {
	eventRepository   api.EventRepository
	sessionRepository api.SessionRepository
	lapRepository     api.LapRepository
	tireRepository    api.TireRepository
	engineRepository  api.EngineRepository
	setupRepository   api.SetupRepository
}

var _ api.Repositories = (*bobRepositories)(nil)

func NewRepositoriesFromPool(pool *pgxpool.Pool) api.Repositories {
	return NewRepositories(bob.NewDB(stdlib.OpenDBFromPool(pool)))
}

func NewRepositories(db bob.DB) api.Repositories {
	return &bobRepositories{
		eventRepository:   event.NewEventRepository(db),
		sessionRepository: session.NewSessionRepository(db),
		lapRepository:     lap.NewLapRepository(db),
		tireRepository:    tire.NewTireRepository(db),
		engineRepository:  engine.NewEngineRepository(db),
		setupRepository:   setup.NewSetupRepository(db),
	}
}

func (r *bobRepositories) Event() api.EventRepository {
	return r.eventRepository
}

func (r *bobRepositories) Session() api.SessionRepository {
	return r.sessionRepository
}

func (r *bobRepositories) Lap() api.LapRepository {
	return r.lapRepository
}

func (r *bobRepositories) Tire() api.TireRepository {
	return r.tireRepository
}

func (r *bobRepositories) Engine() api.EngineRepository {
	return r.engineRepository
}

func (r *bobRepositories) Setup() api.SetupRepository {
	return r.setupRepository
}
