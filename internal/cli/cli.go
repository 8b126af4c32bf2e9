// Package cli implements the cmcctl maintenance commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/httpsniic/sistema-cmc-server/config"
	"github.com/httpsniic/sistema-cmc-server/internal/infra/db"
)

const (
	connectAttempts = 6
	connectBackoff  = 800 * time.Millisecond
	commandTimeout  = 2 * time.Minute
)

// Opener returns a database handle and the function that releases it.
type Opener func(ctx context.Context) (*gorm.DB, func(), error)

// RetryOpener connects with retries, backing off 800ms times the attempt.
func RetryOpener(cfg *config.DatabaseConfig) Opener {
	return func(ctx context.Context) (*gorm.DB, func(), error) {
		database, err := db.ConnectWithRetry(ctx, cfg, connectAttempts, connectBackoff)
		if err != nil {
			return nil, nil, err
		}
		release := func() {
			if err := database.Close(); err != nil {
				slog.Warn("Failed to close database connection", "error", err)
			}
		}
		return database.DB(), release, nil
	}
}

// NewRootCmd builds the cmcctl command tree.
func NewRootCmd(cfg *config.Config, open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "cmcctl",
		Short:         "Maintenance tools for the Sistema CMC database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		NewMigrateCmd(open),
		NewResetMasterCmd(open),
		NewReportCmd(cfg, open),
	)
	return root
}

// withDB runs fn against an open database under the command timeout.
func withDB(cmd *cobra.Command, open Opener, fn func(ctx context.Context, gdb *gorm.DB) error) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, commandTimeout)
	defer cancel()

	gdb, release, err := open(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer release()

	return fn(ctx, gdb)
}
