package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/udisondev/mugo/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dsn := cfg.Database.DSN()
		if err := db.RunMigrations(cmd.Context(), dsn); err != nil {
			return err
		}
		version, err := db.MigrationVersion(cmd.Context(), dsn)
		if err != nil {
			return err
		}
		slog.Info("database migrations applied", "version", version)
		return nil
	},
}

var revisionsCmd = &cobra.Command{
	Use:   "revisions",
	Short: "List stored configuration revisions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		database, err := db.New(cmd.Context(), cfg.Database.DSN())
		if err != nil {
			return err
		}
		defer database.Close()

		revisions, err := database.Documents().Revisions(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tFINGERPRINT\tLABEL\tCREATED")
		for _, rev := range revisions {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				rev.ID, hex.EncodeToString(rev.Fingerprint[:8]), rev.Label, rev.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}
