//nolint:whitespace // can't make both editor and linter happy
package tire

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
	_     api.TireRepository = (*repo)(nil)
	table                    = util.Table{
		Name:      "tire_data",
		Generated: []string{"id", "created_at"},
		Data: []string{
			"session_id", "tire_position", "tire_set", "pressure_cold", "pressure_hot",
			"temp_inner", "temp_middle", "temp_outer", "wear_level", "notes",
		},
	}
)

func NewTireRepository(conn bob.Executor) api.TireRepository {
	return &repo{
		conn: conn,
	}
}

func (r *repo) Create(ctx context.Context, t *model.TireData) error {
	ret, err := util.Insert[util.Created](ctx, r.getExecutor(ctx), table,
		t.SessionID, t.TirePosition, t.TireSet, t.PressureCold, t.PressureHot,
		t.TempInner, t.TempMiddle, t.TempOuter, t.WearLevel, t.Notes)
	if err != nil {
		return err
	}
	t.ID = ret.ID
	t.CreatedAt = ret.CreatedAt
	return nil
}

func (r *repo) LoadByID(ctx context.Context, id int) (*model.TireData, error) {
	return util.LoadByID[model.TireData](ctx, r.getExecutor(ctx), table, id)
}

func (r *repo) LoadBySessionID(ctx context.Context, sessionID int) (
	[]*model.TireData, error,
) {
	return util.LoadWhere[model.TireData](ctx, r.getExecutor(ctx), table,
		"session_id", sessionID, "id")
}

// deletes an entry from the database, returns number of rows deleted.
func (r *repo) DeleteByID(ctx context.Context, id int) (int, error) {
	return util.DeleteByID(ctx, r.getExecutor(ctx), table, id)
}

func (r *repo) getExecutor(ctx context.Context) bob.Executor {
	return util.Executor(ctx, r.conn)
}
