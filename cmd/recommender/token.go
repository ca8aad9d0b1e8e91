package main

import (
	"fmt"

	"talent-match/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Actual version can be specified in build command.
var version = "unknown"

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Issue an access token for local testing of the HTTP API",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}
		role, _ := cmd.Flags().GetString("role")
		email, _ := cmd.Flags().GetString("email")

		e, err := setup()
		if err != nil {
			return err
		}
		defer e.stop()

		svc := jwt.NewHMACService(e.cfg.JWT.AccessSecret, e.cfg.JWT.RefreshSecret, e.cfg.JWT.AccessExpiresIn, e.cfg.JWT.RefreshExpiresIn)
		tok, err := svc.GenerateAccessToken(userID, email, role)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", cliName, version)
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd, versionCmd)

	tokenCmd.Flags().String("role", jwt.RoleCandidate, "token role: candidate or recruiter")
	tokenCmd.Flags().String("email", "", "email claim")
}
