//nolint:whitespace // can't make both editor and linter happy
package session

import (
	"context"
	"time"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/scan"

	"github.com/mpapenbr/race-engineer-service-go/pkg/model"
	"github.com/mpapenbr/race-engineer-service-go/pkg/repository/api"
	"github.com/mpapenbr/race-engineer-service-go/pkg/repository/bob/util"
)

type (
	repo struct {
		conn bob.Executor
	}
)

var (
	_     api.SessionRepository = (*repo)(nil)
	table                       = util.Table{
		Name:      "session",
		Generated: []string{"id", "created_at", "updated_at"},
		Data: []string{
			"event_id", "session_type", "session_number", "duration",
			"fuel_start", "fuel_per_lap", "fuel_consumed", "tire_set",
			"best_lap_time", "session_status", "notes",
		},
	}
)

func NewSessionRepository(conn bob.Executor) api.SessionRepository {
	return &repo{
		conn: conn,
	}
}

// Create stores the session. A session number < 1 is replaced by the next
// free number for the session type within the event.
func (r *repo) Create(ctx context.Context, s *model.Session) error {
	if s.SessionNumber < 1 {
		num, err := r.NextSessionNumber(ctx, s.EventID, s.SessionType)
		if err != nil {
			return err
		}
		s.SessionNumber = num
	}
	ret, err := util.Insert[util.Tracked](ctx, r.getExecutor(ctx), table,
		s.EventID, s.SessionType, s.SessionNumber, s.Duration,
		s.FuelStart, s.FuelPerLap, s.FuelConsumed, s.TireSet,
		s.BestLapTime, s.SessionStatus, s.Notes)
	if err != nil {
		return err
	}
	s.ID = ret.ID
	s.CreatedAt = ret.CreatedAt
	s.UpdatedAt = ret.UpdatedAt
	return nil
}

func (r *repo) LoadByID(ctx context.Context, id int) (*model.Session, error) {
	return util.LoadByID[model.Session](ctx, r.getExecutor(ctx), table, id)
}

func (r *repo) LoadByEventID(ctx context.Context, eventID int) (
	[]*model.Session, error,
) {
	return util.LoadWhere[model.Session](ctx, r.getExecutor(ctx), table,
		"event_id", eventID, "id")
}

func (r *repo) NextSessionNumber(
	ctx context.Context,
	eventID int,
	t model.SessionType,
) (int, error) {
	q := psql.RawQuery(`
select coalesce(max(session_number), 0) + 1 from session
where event_id=? and session_type=?`,
		psql.Arg(eventID),
		psql.Arg(string(t)),
	)
	return bob.One(ctx, r.getExecutor(ctx), q, scan.SingleColumnMapper[int])
}

func (r *repo) Update(ctx context.Context, s *model.Session) error {
	q := psql.RawQuery(`
update session set session_type=?, session_number=?, duration=?,
  fuel_start=?, fuel_per_lap=?, fuel_consumed=?, tire_set=?,
  best_lap_time=?, session_status=?, notes=?, updated_at=now()
where id=?
returning updated_at`,
		psql.Arg(string(s.SessionType)),
		psql.Arg(s.SessionNumber),
		psql.Arg(s.Duration),
		psql.Arg(s.FuelStart),
		psql.Arg(s.FuelPerLap),
		psql.Arg(s.FuelConsumed),
		psql.Arg(s.TireSet),
		psql.Arg(s.BestLapTime),
		psql.Arg(s.SessionStatus),
		psql.Arg(s.Notes),
		psql.Arg(s.ID),
	)
	ret, err := bob.One(ctx, r.getExecutor(ctx), q, scan.SingleColumnMapper[time.Time])
	if err != nil {
		return util.MapNoRows(err, table.Name, s.ID)
	}
	s.UpdatedAt = ret
	return nil
}

// deletes an entry from the database, returns number of rows deleted.
func (r *repo) DeleteByID(ctx context.Context, id int) (int, error) {
	return util.DeleteByID(ctx, r.getExecutor(ctx), table, id)
}

func (r *repo) getExecutor(ctx context.Context) bob.Executor {
	return util.Executor(ctx, r.conn)
}
