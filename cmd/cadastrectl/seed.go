package main

import (
	"fmt"
	"os"

	"cadastre/internal/usecase"

	"github.com/spf13/cobra"
)

const adminPasswordEnv = "CADASTRE_ADMIN_PASSWORD"

func newSeedCmd() *cobra.Command {
	input := usecase.SeedInput{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert permissions, the admin role, default lookups and the first administrator",
		Long: "Seed is safe to run repeatedly; rows that already exist are kept.\n" +
			"The admin password may be passed through " + adminPasswordEnv + " instead of a flag.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if input.AdminPassword == "" {
				input.AdminPassword = os.Getenv(adminPasswordEnv)
			}

			var seeder usecase.SeedUsecase

			return runWithApp(cmd.Context(), func() error {
				result, err := seeder.Seed(cmd.Context(), &input)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "permissions created: %d\n", result.PermissionsCreated)
				fmt.Fprintf(out, "lookups created:     %d\n", result.LookupsCreated)
				fmt.Fprintf(out, "admin role created:  %t\n", result.AdminRoleCreated)
				fmt.Fprintf(out, "admin user created:  %t\n", result.AdminUserCreated)

				return nil
			}, &seeder)
		},
	}

	cmd.Flags().StringVar(&input.AdminUsername, "admin-username", "", "username of the first administrator; empty skips the account")
	cmd.Flags().StringVar(&input.AdminEmail, "admin-email", "", "email of the first administrator")
	cmd.Flags().StringVar(&input.AdminPassword, "admin-password", "", "password of the first administrator")

	return cmd
}
