package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/udisondev/mugo/internal/data"
	"github.com/udisondev/mugo/internal/db"
)

var importLabel string

var importCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Store game data documents as a new database revision",
	Long: `Import reads the YAML documents of a data directory, validates them
and stores them in the database. Importing unchanged documents is a no-op.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importLabel, "label", "", "Revision label")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dir := cfg.DataDir
	if len(args) == 1 {
		dir = args[0]
	}

	docs, err := data.DirSource{Dir: dir}.LoadDocuments(ctx)
	if err != nil {
		return err
	}
	// Битые документы в БД не попадают.
	if _, err := data.Parse(ctx, docs); err != nil {
		return fmt.Errorf("validating %s: %w", dir, err)
	}

	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer database.Close()

	rev, created, err := database.Documents().SaveDocuments(ctx, docs, importLabel)
	if err != nil {
		return err
	}
	slog.Info("documents imported",
		"revision", rev.ID,
		"fingerprint", hex.EncodeToString(rev.Fingerprint[:]),
		"documents", len(docs),
		"created", created)
	return nil
}
