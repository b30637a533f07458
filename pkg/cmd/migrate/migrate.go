package migrate

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/race-engineer-service-go/log"
	"github.com/mpapenbr/race-engineer-service-go/pkg/config"
	dbmigrate "github.com/mpapenbr/race-engineer-service-go/pkg/db/migrate"
	"github.com/mpapenbr/race-engineer-service-go/pkg/utils"
)

func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "performs database migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startMigration(cmd)
		},
	}

	cmd.Flags().StringVarP(&config.MigrationSourceURL,
		"migration-source-url",
		"m",
		"",
		"url to migration files (default: migrations embedded in the binary)")

	return cmd
}

func startMigration(cmd *cobra.Command) error {
	// wait for database
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}
	if postgresAddr := utils.ExtractFromDBURL(config.DB); postgresAddr != "" {
		if err = utils.WaitForTCP(cmd.Context(), postgresAddr, timeout); err != nil {
			log.Error("database not ready", log.ErrorField(err))
			return err
		}
	}

	if config.MigrationSourceURL == "" {
		log.Info("Using embedded migration files")
		err = dbmigrate.MigrateDb(config.DB)
	} else {
		log.Info("Using migrations files at", log.String("source", config.MigrationSourceURL))
		err = dbmigrate.MigrateFromSource(config.MigrationSourceURL, config.DB)
	}
	if err != nil {
		log.Error("Migration failed", log.ErrorField(err))
		return err
	}
	log.Info("Database is up to date")
	return nil
}
