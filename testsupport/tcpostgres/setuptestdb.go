//nolint:errcheck // testsetup
package tcpostgres

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mpapenbr/race-engineer-service-go/pkg/db/migrate"
	database "github.com/mpapenbr/race-engineer-service-go/pkg/db/postgres"
)

// SetupTestDb starts a postgres container (reused between test runs)
// and returns a pool for the migrated database
func SetupTestDb() *pgxpool.Pool {
	ctx := context.Background()
	container, err := SetupPostgres(ctx, WithName("race-engineer-service-test"))
	if err != nil {
		log.Fatal(err)
	}
	dbURL, err := container.ConnectionString(ctx)
	if err != nil {
		log.Fatal(err)
	}
	return migrateAndConnect(dbURL)
}

// SetupExternalTestDb uses the database referenced by TESTDB_URL
func SetupExternalTestDb() *pgxpool.Pool {
	return migrateAndConnect(os.Getenv("TESTDB_URL"))
}

func migrateAndConnect(dbURL string) *pgxpool.Pool {
	if err := migrate.MigrateDb(dbURL); err != nil {
		log.Fatal(err)
	}
	return database.InitWithURL(dbURL)
}

// ClearAllTables removes all records. Child tables are removed by cascade.
func ClearAllTables(pool *pgxpool.Pool) {
	pool.Exec(context.Background(),
		"truncate table race_event restart identity cascade")
}
