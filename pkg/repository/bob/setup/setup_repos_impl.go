//nolint:whitespace // can't make both editor and linter happy
package setup

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
	_     api.SetupRepository = (*repo)(nil)
	table                     = util.Table{
		Name:      "setup_data",
		Generated: []string{"id", "created_at"},
		Data: []string{
			"session_id",
			"front_wing", "rear_wing", "front_ride_height", "rear_ride_height",
			"front_spring_rate", "rear_spring_rate",
			"front_damper_compression", "rear_damper_compression",
			"front_damper_rebound", "rear_damper_rebound",
			"front_anti_roll_bar", "rear_anti_roll_bar",
			"camber_front_left", "camber_front_right",
			"camber_rear_left", "camber_rear_right",
			"toe_front", "toe_rear", "brake_balance", "notes",
		},
	}
)

func NewSetupRepository(conn bob.Executor) api.SetupRepository {
	return &repo{
		conn: conn,
	}
}

func (r *repo) Create(ctx context.Context, s *model.SetupData) error {
	ret, err := util.Insert[util.Created](ctx, r.getExecutor(ctx), table,
		s.SessionID,
		s.FrontWing, s.RearWing, s.FrontRideHeight, s.RearRideHeight,
		s.FrontSpringRate, s.RearSpringRate,
		s.FrontDamperCompression, s.RearDamperCompression,
		s.FrontDamperRebound, s.RearDamperRebound,
		s.FrontAntiRollBar, s.RearAntiRollBar,
		s.CamberFrontLeft, s.CamberFrontRight,
		s.CamberRearLeft, s.CamberRearRight,
		s.ToeFront, s.ToeRear, s.BrakeBalance, s.Notes)
	if err != nil {
		return err
	}
	s.ID = ret.ID
	s.CreatedAt = ret.CreatedAt
	return nil
}

func (r *repo) LoadByID(ctx context.Context, id int) (*model.SetupData, error) {
	return util.LoadByID[model.SetupData](ctx, r.getExecutor(ctx), table, id)
}

func (r *repo) LoadBySessionID(ctx context.Context, sessionID int) (
	[]*model.SetupData, error,
) {
	return util.LoadWhere[model.SetupData](ctx, r.getExecutor(ctx), table,
		"session_id", sessionID, "id")
}

// deletes an entry from the database, returns number of rows deleted.
func (r *repo) DeleteByID(ctx context.Context, id int) (int, error) {
	return util.DeleteByID(ctx, r.getExecutor(ctx), table, id)
}

func (r *repo) getExecutor(ctx context.Context) bob.Executor {
	return util.Executor(ctx, r.conn)
}
