package api

import (
	"context"
	"errors"

	"github.com/mpapenbr/race-engineer-service-go/pkg/model"
)

var ErrNoRows = errors.New("no rows in result set")

type Repositories interface {
	Event() EventRepository
	Session() SessionRepository
	Lap() LapRepository
	Tire() TireRepository
	Engine() EngineRepository
	Setup() SetupRepository
}

// EventRepository manages race events.
// Create and Update set the generated fields (id, timestamps) on the passed record.
type EventRepository interface {
	Create(ctx context.Context, event *model.RaceEvent) error
	LoadByID(ctx context.Context, id int) (*model.RaceEvent, error)
	LoadAll(ctx context.Context) ([]*model.RaceEvent, error)
	Update(ctx context.Context, event *model.RaceEvent) error
	DeleteByID(ctx context.Context, id int) (int, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	LoadByID(ctx context.Context, id int) (*model.Session, error)
	LoadByEventID(ctx context.Context, eventID int) ([]*model.Session, error)
	// NextSessionNumber returns the next free number for the session type
	NextSessionNumber(ctx context.Context, eventID int, t model.SessionType) (int, error)
	Update(ctx context.Context, session *model.Session) error
	DeleteByID(ctx context.Context, id int) (int, error)
}

// LapRepository returns laps ordered by lap number
type LapRepository interface {
	Create(ctx context.Context, lap *model.Lap) error
	LoadByID(ctx context.Context, id int) (*model.Lap, error)
	LoadBySessionID(ctx context.Context, sessionID int) ([]*model.Lap, error)
	Update(ctx context.Context, lap *model.Lap) error
	DeleteByID(ctx context.Context, id int) (int, error)
}

type TireRepository interface {
	Create(ctx context.Context, tire *model.TireData) error
	LoadByID(ctx context.Context, id int) (*model.TireData, error)
	LoadBySessionID(ctx context.Context, sessionID int) ([]*model.TireData, error)
	DeleteByID(ctx context.Context, id int) (int, error)
}

type EngineRepository interface {
	Create(ctx context.Context, engine *model.EngineData) error
	LoadByID(ctx context.Context, id int) (*model.EngineData, error)
	LoadBySessionID(ctx context.Context, sessionID int) ([]*model.EngineData, error)
	DeleteByID(ctx context.Context, id int) (int, error)
}

type SetupRepository interface {
	Create(ctx context.Context, setup *model.SetupData) error
	LoadByID(ctx context.Context, id int) (*model.SetupData, error)
	LoadBySessionID(ctx context.Context, sessionID int) ([]*model.SetupData, error)
	DeleteByID(ctx context.Context, id int) (int, error)
}

type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
