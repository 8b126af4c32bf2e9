package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/auth"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/adapters"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/persistence"
)

// NewResetMasterCmd overwrites the master account's password.
func NewResetMasterCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-master [password]",
		Short: "Reset the master user's password (default " + auth.DefaultResetPassword + ")",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := auth.DefaultResetPassword
			if len(args) == 1 {
				password = args[0]
			}

			return withDB(cmd, open, func(ctx context.Context, gdb *gorm.DB) error {
				out, err := auth.NewResetMasterPasswordUseCase(
					persistence.NewUserRepository(gdb),
					adapters.NewPasswordService(),
				).Execute(ctx, auth.ResetMasterPasswordInput{NewPassword: password})
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Senha do usuário %s redefinida\n", out.User.Username)
				return nil
			})
		},
	}
}
