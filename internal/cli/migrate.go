package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/auth"
	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/store"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/adapters"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/persistence"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/persistence/model"
)

// NewMigrateCmd creates the schema and seeds stores and the master user.
func NewMigrateCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables, seed the stores and the master user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd, open, func(ctx context.Context, gdb *gorm.DB) error {
				if err := gdb.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
					return fmt.Errorf("failed to run auto-migration: %w", err)
				}
				slog.Info("Database migrations completed successfully")

				stores, err := store.NewSeedStoresUseCase(persistence.NewStoreRepository(gdb)).Execute(ctx)
				if err != nil {
					return err
				}

				master, err := auth.NewEnsureMasterUserUseCase(
					persistence.NewUserRepository(gdb),
					adapters.NewPasswordService(),
				).Execute(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Migração concluída: %d lojas\n", stores)
				if master.Created {
					fmt.Fprintf(out, "Usuário %s criado\n", master.User.Username)
				} else {
					fmt.Fprintf(out, "Usuário %s já existe\n", master.User.Username)
				}
				return nil
			})
		},
	}
}
