package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dangerclosesec/polar/policy/migration"
	"github.com/spf13/cobra"
)

func openStore(ctx context.Context) (*sql.DB, *migration.PostgresStore, error) {
	db, err := migration.Open(ctx, connString())
	if err != nil {
		return nil, nil, err
	}
	return db, migration.NewPostgresStore(db), nil
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the database schema",
	Long:  `Initialize the database schema for policy versions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := store.InitializeSchema(cmd.Context()); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Schema initialized successfully")
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate [file]",
	Short: "Apply a policy to the database",
	Long:  `Parse a .polar file and store it as a new policy version.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]
		ctx := cmd.Context()

		model, err := loadModel(filePath)
		if err != nil {
			return err
		}

		db, store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := store.InitializeSchema(ctx); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}

		description := fmt.Sprintf("Migration from %s at %s",
			filepath.Base(filePath), time.Now().Format(time.RFC3339))

		out := cmd.OutOrStdout()
		result, err := migration.NewMigrator(store, logger).Apply(ctx, model, description)
		if errors.Is(err, migration.ErrNoChanges) {
			fmt.Fprintln(out, "No changes detected. Migration skipped.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "Migration applied successfully")
		if verbose {
			fmt.Fprintln(out, "\nChanges:")
			fmt.Fprintln(out, result.Diff.String())
		}
		fmt.Fprintf(out, "Current version: %d\n", result.Version)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the current policy version",
	Long:  `Show the current policy version in the database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		version, err := store.CurrentVersion(ctx)
		if err != nil {
			return fmt.Errorf("failed to get current version: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Current policy version: %d\n", version)

		if verbose {
			versions, err := store.History(ctx)
			if err != nil {
				return fmt.Errorf("failed to get version history: %w", err)
			}

			fmt.Fprintln(out, "\nVersion history:")
			fmt.Fprintln(out, "----------------")
			for _, v := range versions {
				fmt.Fprintf(out, "Version %d (applied %s)\n", v.Version, v.AppliedAt.Format(time.RFC3339))
				fmt.Fprintf(out, "  Source: %s\n", v.SourceFile)
				fmt.Fprintf(out, "  Description: %s\n\n", v.Description)
			}
		}
		return nil
	},
}
