package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/HeitorVic/my-wallet/internal/auth"
)

var (
	tokenIdentity string
	tokenTTL      time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token for an identity",
	Long:  `Mint a signed access token using the JWT_SECRET the server was started with. Meant for local and self-hosted setups.`,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenIdentity, "identity", "i", "", "Identity the token grants access to (required)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	tokenCmd.MarkFlagRequired("identity")
}

func runToken(cmd *cobra.Command, args []string) error {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}

	signed, err := auth.NewVerifier(secret).Issue(tokenIdentity, tokenTTL)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), signed)
	return nil
}
