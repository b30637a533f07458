//nolint:whitespace // can't make both editor and linter happy
package event

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
	_     api.EventRepository = (*repo)(nil)
	table                     = util.Table{
		Name:      "race_event",
		Generated: []string{"id", "created_at", "updated_at"},
		Data: []string{
			"name", "track", "track_length", "date_start", "date_end",
			"weather", "notes",
		},
	}
)

func NewEventRepository(conn bob.Executor) api.EventRepository {
	return &repo{
		conn: conn,
	}
}

func (r *repo) Create(ctx context.Context, event *model.RaceEvent) error {
	ret, err := util.Insert[util.Tracked](ctx, r.getExecutor(ctx), table,
		event.Name, event.Track, event.TrackLength, event.DateStart, event.DateEnd,
		event.Weather, event.Notes)
	if err != nil {
		return err
	}
	event.ID = ret.ID
	event.CreatedAt = ret.CreatedAt
	event.UpdatedAt = ret.UpdatedAt
	return nil
}

func (r *repo) LoadByID(ctx context.Context, id int) (*model.RaceEvent, error) {
	return util.LoadByID[model.RaceEvent](ctx, r.getExecutor(ctx), table, id)
}

func (r *repo) LoadAll(ctx context.Context) ([]*model.RaceEvent, error) {
	return util.LoadWhere[model.RaceEvent](ctx, r.getExecutor(ctx), table,
		"", nil, "id")
}

func (r *repo) Update(ctx context.Context, event *model.RaceEvent) error {
	q := psql.RawQuery(`
update race_event set name=?, track=?, track_length=?, date_start=?, date_end=?,
  weather=?, notes=?, updated_at=now()
where id=?
returning updated_at`,
		psql.Arg(event.Name),
		psql.Arg(event.Track),
		psql.Arg(event.TrackLength),
		psql.Arg(event.DateStart),
		psql.Arg(event.DateEnd),
		psql.Arg(event.Weather),
		psql.Arg(event.Notes),
		psql.Arg(event.ID),
	)
	ret, err := bob.One(ctx, r.getExecutor(ctx), q, scan.SingleColumnMapper[time.Time])
	if err != nil {
		return util.MapNoRows(err, table.Name, event.ID)
	}
	event.UpdatedAt = ret
	return nil
}

// deletes an entry from the database, returns number of rows deleted.
// Sessions and their records are removed by the database (on delete cascade).
func (r *repo) DeleteByID(ctx context.Context, id int) (int, error) {
	return util.DeleteByID(ctx, r.getExecutor(ctx), table, id)
}

func (r *repo) getExecutor(ctx context.Context) bob.Executor {
	return util.Executor(ctx, r.conn)
}
