// Package util contains the query helpers shared by the bob repositories.
package util

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/mpapenbr/race-engineer-service-go/pkg/repository/api"
	bobCtx "github.com/mpapenbr/race-engineer-service-go/pkg/repository/bob/context"
)

type (
	// Created receives the generated columns of an insert
	Created struct {
		ID        int       `db:"id"`
		CreatedAt time.Time `db:"created_at"`
	}
	// Tracked receives the generated columns of an insert into a table
	// which also tracks updates
	Tracked struct {
		ID        int       `db:"id"`
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	// Table describes the columns of a table.
	// Data contains the columns written by an insert.
	Table struct {
		Name      string
		Generated []string
		Data      []string
	}
)

// All returns the generated and data columns of the table
func (t Table) All() []string {
	return append(append([]string{}, t.Generated...), t.Data...)
}

// Executor returns the executor of a running transaction if ctx has one.
func Executor(ctx context.Context, conn bob.Executor) bob.Executor {
	if executor := bobCtx.FromContext(ctx); executor != nil {
		return executor
	}
	return conn
}

func ColumnEQ(column string, value any) bob.Expression {
	return psql.Quote(column).EQ(psql.Arg(value))
}

//nolint:whitespace // editor/linter issue
func LoadByID[T any](
	ctx context.Context,
	exec bob.Executor,
	t Table,
	id int,
) (*T, error) {
	q := psql.Select(
		sm.Columns(lo.ToAnySlice(t.All())...),
		sm.From(t.Name),
		sm.Where(ColumnEQ("id", id)),
	)
	ret, err := bob.One(ctx, exec, q, scan.StructMapper[T]())
	if err != nil {
		return nil, MapNoRows(err, t.Name, id)
	}
	return &ret, nil
}

// LoadWhere returns all rows where column equals value, ordered by orderBy
//
//nolint:whitespace // editor/linter issue
func LoadWhere[T any](
	ctx context.Context,
	exec bob.Executor,
	t Table,
	column string,
	value any,
	orderBy ...string,
) ([]*T, error) {
	mods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(lo.ToAnySlice(t.All())...),
		sm.From(t.Name),
	}
	if column != "" {
		mods = append(mods, sm.Where(ColumnEQ(column, value)))
	}
	for _, o := range orderBy {
		mods = append(mods, sm.OrderBy(psql.Quote(o)).Asc())
	}
	data, err := bob.All(ctx, exec, psql.Select(mods...), scan.StructMapper[T]())
	if err != nil {
		return nil, err
	}
	ret := make([]*T, len(data))
	for i := range data {
		ret[i] = &data[i]
	}
	return ret, nil
}

// Insert stores values into the data columns of t and returns the
// generated columns mapped to R
//
//nolint:whitespace // editor/linter issue
func Insert[R any](
	ctx context.Context,
	exec bob.Executor,
	t Table,
	values ...any,
) (R, error) {
	if len(values) != len(t.Data) {
		var zero R
		return zero, fmt.Errorf("insert %s: got %d values for %d columns",
			t.Name, len(values), len(t.Data))
	}
	q := psql.Insert(
		im.Into(t.Name, t.Data...),
		im.Values(lo.Map(values, func(v any, _ int) bob.Expression {
			return psql.Arg(v)
		})...),
		im.Returning(lo.ToAnySlice(t.Generated)...),
	)
	return bob.One(ctx, exec, q, scan.StructMapper[R]())
}

// DeleteByID returns the number of deleted rows
//
//nolint:whitespace // editor/linter issue
func DeleteByID(
	ctx context.Context,
	exec bob.Executor,
	t Table,
	id int,
) (int, error) {
	ret, err := psql.Delete(
		dm.From(t.Name),
		dm.Where(ColumnEQ("id", id)),
	).Exec(ctx, exec)
	if err != nil {
		return 0, err
	}
	return RowsAffected(ret)
}

// RowsAffected returns the number of rows changed by a statement
func RowsAffected(res sql.Result) (int, error) {
	n, err := res.RowsAffected()
	return int(n), err
}

// MapNoRows converts sql.ErrNoRows into api.ErrNoRows
func MapNoRows(err error, table string, id int) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s %d", api.ErrNoRows, table, id)
	}
	return err
}
