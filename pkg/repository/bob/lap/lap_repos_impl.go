//nolint:whitespace // can't make both editor and linter happy
package lap

import (
	"context"
	"database/sql"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"

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
	_     api.LapRepository = (*repo)(nil)
	table                   = util.Table{
		Name:      "lap",
		Generated: []string{"id", "created_at"},
		Data: []string{
			"session_id", "lap_number", "lap_time",
			"sector1", "sector2", "sector3", "sector4",
			"fuel_consumed", "tire_set", "lap_status", "notes",
		},
	}
)

func NewLapRepository(conn bob.Executor) api.LapRepository {
	return &repo{
		conn: conn,
	}
}

func (r *repo) Create(ctx context.Context, lap *model.Lap) error {
	ret, err := util.Insert[util.Created](ctx, r.getExecutor(ctx), table,
		lap.SessionID, lap.LapNumber, lap.LapTime,
		lap.Sector1, lap.Sector2, lap.Sector3, lap.Sector4,
		lap.FuelConsumed, lap.TireSet, lap.LapStatus, lap.Notes)
	if err != nil {
		return err
	}
	lap.ID = ret.ID
	lap.CreatedAt = ret.CreatedAt
	return nil
}

func (r *repo) LoadByID(ctx context.Context, id int) (*model.Lap, error) {
	return util.LoadByID[model.Lap](ctx, r.getExecutor(ctx), table, id)
}

func (r *repo) LoadBySessionID(ctx context.Context, sessionID int) (
	[]*model.Lap, error,
) {
	return util.LoadWhere[model.Lap](ctx, r.getExecutor(ctx), table,
		"session_id", sessionID, "lap_number", "id")
}

func (r *repo) Update(ctx context.Context, lap *model.Lap) error {
	q := psql.RawQuery(`
update lap set lap_number=?, lap_time=?, sector1=?, sector2=?, sector3=?, sector4=?,
  fuel_consumed=?, tire_set=?, lap_status=?, notes=?
where id=?`,
		psql.Arg(lap.LapNumber),
		psql.Arg(lap.LapTime),
		psql.Arg(lap.Sector1),
		psql.Arg(lap.Sector2),
		psql.Arg(lap.Sector3),
		psql.Arg(lap.Sector4),
		psql.Arg(lap.FuelConsumed),
		psql.Arg(lap.TireSet),
		psql.Arg(lap.LapStatus),
		psql.Arg(lap.Notes),
		psql.Arg(lap.ID),
	)
	res, err := q.Exec(ctx, r.getExecutor(ctx))
	if err != nil {
		return err
	}
	n, err := util.RowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return util.MapNoRows(sql.ErrNoRows, table.Name, lap.ID)
	}
	return nil
}

// deletes an entry from the database, returns number of rows deleted.
func (r *repo) DeleteByID(ctx context.Context, id int) (int, error) {
	return util.DeleteByID(ctx, r.getExecutor(ctx), table, id)
}

func (r *repo) getExecutor(ctx context.Context) bob.Executor {
	return util.Executor(ctx, r.conn)
}
