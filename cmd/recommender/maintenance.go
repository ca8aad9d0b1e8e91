package main

import (
	"errors"
	"fmt"
	"time"

	"talent-match/internal/database/migration"
	dbpostgres "talent-match/internal/database/postgres"
	"talent-match/internal/database/seeder"

	"github.com/spf13/cobra"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete recommendations past their expiry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.stop()

		c, err := e.container()
		if err != nil {
			return err
		}
		defer c.Close()

		n, err := c.Recommendations.PurgeExpired(e.ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "purged=%d\n", n)
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.stop()

		db, err := dbpostgres.Connect(e.ctx, e.cfg.Database, e.logger)
		if err != nil {
			return err
		}
		defer db.Close()

		start := time.Now()
		runner := migration.Runner{Dir: e.cfg.Database.MigrationsDir, Logger: e.logger}
		if err := runner.Run(e.ctx, db.SQLDB()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "migrations applied in %s\n", time.Since(start).Round(time.Millisecond))
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the skill catalog, and demo jobs and candidates with --demo",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		demo, _ := cmd.Flags().GetBool("demo")

		e, err := setup()
		if err != nil {
			return err
		}
		defer e.stop()

		if demo && e.cfg.App.Environment == "production" {
			return errors.New("refusing to seed demo data in production")
		}

		db, err := dbpostgres.Connect(e.ctx, e.cfg.Database, e.logger)
		if err != nil {
			return err
		}
		defer db.Close()

		seeders := seeder.Defaults()
		if demo {
			seeders = seeder.WithDemo()
		}
		if err := (seeder.Runner{Seeders: seeders, Logger: e.logger.Named("seeder")}).Run(e.ctx, db); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d sets\n", len(seeders))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(purgeCmd, migrateCmd, seedCmd)

	seedCmd.Flags().Bool("demo", false, "also seed a demo recruiter, jobs and candidates")
}
