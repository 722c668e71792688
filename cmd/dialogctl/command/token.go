package command

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"liyu1981.xyz/dialog-service/pkg/auth"
	"liyu1981.xyz/dialog-service/pkg/common"
)

var (
	tokenUser     string
	tokenTTL      time.Duration
	tokenOperator bool
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sign a bearer token for a user with DIALOG_JWT_SECRET",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.JWTSecret == "" {
			return fmt.Errorf("%s is not set", common.EnvKeyDialogJwtSecret)
		}
		verifier := auth.NewVerifier(cfg.JWTSecret, false)
		sign := verifier.Sign
		if tokenOperator {
			sign = verifier.SignOperator
		}
		signed, err := sign(tokenUser, tokenTTL)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), signed)
		return err
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "user id put in the token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	tokenCmd.Flags().BoolVar(&tokenOperator, "operator", false, "issue an operator token, e.g. for rate limit changes")
	_ = tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}
