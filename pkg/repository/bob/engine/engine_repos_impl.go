//nolint:whitespace // can't make both editor and linter happy
package engine

import (
	"context"

	"github.com/stephenafamo/bob"

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
	_     api.EngineRepository = (*repo)(nil)
	table                      = util.Table{
		Name:      "engine_data",
		Generated: []string{"id", "created_at"},
		Data: []string{
			"session_id", "engine_map", "rpm_limit", "oil_temp", "water_temp",
			"fuel_consumption_rate", "notes",
		},
	}
)

func NewEngineRepository(conn bob.Executor) api.EngineRepository {
	return &repo{
		conn: conn,
	}
}

func (r *repo) Create(ctx context.Context, e *model.EngineData) error {
	ret, err := util.Insert[util.Created](ctx, r.getExecutor(ctx), table,
		e.SessionID, e.EngineMap, e.RpmLimit, e.OilTemp, e.WaterTemp,
		e.FuelConsumptionRate, e.Notes)
	if err != nil {
		return err
	}
	e.ID = ret.ID
	e.CreatedAt = ret.CreatedAt
	return nil
}

func (r *repo) LoadByID(ctx context.Context, id int) (*model.EngineData, error) {
	return util.LoadByID[model.EngineData](ctx, r.getExecutor(ctx), table, id)
}

func (r *repo) LoadBySessionID(ctx context.Context, sessionID int) (
	[]*model.EngineData, error,
) {
	return util.LoadWhere[model.EngineData](ctx, r.getExecutor(ctx), table,
		"session_id", sessionID, "id")
}

// deletes an entry from the database, returns number of rows deleted.
func (r *repo) DeleteByID(ctx context.Context, id int) (int, error) {
	return util.DeleteByID(ctx, r.getExecutor(ctx), table, id)
}

func (r *repo) getExecutor(ctx context.Context) bob.Executor {
	return util.Executor(ctx, r.conn)
}
