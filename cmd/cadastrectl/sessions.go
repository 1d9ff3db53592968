package main

import (
	"fmt"

	"cadastre/internal/usecase"

	"github.com/spf13/cobra"
)

func newPurgeSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge-sessions",
		Short: "Delete staff sessions whose refresh token has expired",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var authUC usecase.AuthUsecase

			return runWithApp(cmd.Context(), func() error {
				purged, err := authUC.PurgeExpiredSessions(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "sessions purged: %d\n", purged)

				return nil
			}, &authUC)
		},
	}
}
