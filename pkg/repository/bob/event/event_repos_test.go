//nolint:funlen // ok for this test code
package event

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/samber/lo"
	"github.com/stephenafamo/bob"
	"gotest.tools/v3/assert"

	"github.com/mpapenbr/race-engineer-service-go/pkg/model"
	"github.com/mpapenbr/race-engineer-service-go/pkg/repository/api"
	"github.com/mpapenbr/race-engineer-service-go/pkg/repository/bob/session"
	"github.com/mpapenbr/race-engineer-service-go/testsupport/basedata"
	"github.com/mpapenbr/race-engineer-service-go/testsupport/testdb"
)

func TestCreateAndLoad(t *testing.T) {
	pool := testdb.InitTestDB()
	r := NewEventRepository(bob.NewDB(stdlib.OpenDBFromPool(pool)))
	ctx := context.Background()

	e := basedata.SampleEvent()
	assert.NilError(t, r.Create(ctx, e))
	assert.Assert(t, e.ID > 0)
	assert.Assert(t, !e.CreatedAt.IsZero())

	got, err := r.LoadByID(ctx, e.ID)
	assert.NilError(t, err)
	assert.Equal(t, got.Name, e.Name)
	assert.Equal(t, *got.TrackLength, *e.TrackLength)
	assert.Assert(t, got.DateStart.Equal(e.DateStart))
	assert.Assert(t, got.Notes == nil)

	_, err = r.LoadByID(ctx, e.ID+1)
	assert.Assert(t, errors.Is(err, api.ErrNoRows))
}

func TestLoadAll(t *testing.T) {
	pool := testdb.InitTestDB()
	r := NewEventRepository(bob.NewDB(stdlib.OpenDBFromPool(pool)))
	ctx := context.Background()

	for _, name := range []string{"first", "second"} {
		e := basedata.SampleEvent()
		e.Name = name
		assert.NilError(t, r.Create(ctx, e))
	}
	got, err := r.LoadAll(ctx)
	assert.NilError(t, err)
	assert.DeepEqual(t,
		lo.Map(got, func(e *model.RaceEvent, _ int) string { return e.Name }),
		[]string{"first", "second"})
}

func TestUpdate(t *testing.T) {
	pool := testdb.InitTestDB()
	r := NewEventRepository(bob.NewDB(stdlib.OpenDBFromPool(pool)))
	ctx := context.Background()

	e := basedata.SampleEvent()
	assert.NilError(t, r.Create(ctx, e))
	e.Name = "renamed"
	e.Weather = nil
	e.Notes = lo.ToPtr("some notes")
	assert.NilError(t, r.Update(ctx, e))

	got, err := r.LoadByID(ctx, e.ID)
	assert.NilError(t, err)
	assert.Equal(t, got.Name, "renamed")
	assert.Assert(t, got.Weather == nil)
	assert.Equal(t, *got.Notes, "some notes")
	assert.Assert(t, !got.UpdatedAt.Before(got.CreatedAt))

	e.ID = 9999
	assert.Assert(t, errors.Is(r.Update(ctx, e), api.ErrNoRows))
}

func TestDeleteCascades(t *testing.T) {
	pool := testdb.InitTestDB()
	db := bob.NewDB(stdlib.OpenDBFromPool(pool))
	r := NewEventRepository(db)
	ctx := context.Background()

	e := basedata.SampleEvent()
	assert.NilError(t, r.Create(ctx, e))
	s := basedata.SampleSession(e.ID)
	assert.NilError(t, session.NewSessionRepository(db).Create(ctx, s))

	n, err := r.DeleteByID(ctx, e.ID)
	assert.NilError(t, err)
	assert.Equal(t, n, 1)

	var count int
	assert.NilError(t, pool.QueryRow(ctx,
		"select count(*) from session where id=$1", s.ID).Scan(&count))
	assert.Equal(t, count, 0)

	n, err = r.DeleteByID(ctx, e.ID)
	assert.NilError(t, err)
	assert.Equal(t, n, 0)
}
