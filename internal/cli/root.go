// Package cli implements the walletctl command line client for the
// wallet API: statement export/import and local token issuing.
package cli

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	serverURL string
	token     string

	year  int
	month int
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "walletctl",
	Short: "Command line client for the wallet API",
	Long:  `walletctl talks to a running wallet server: export and import monthly CSV statements, and mint access tokens for local use.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		if token == "" {
			token = os.Getenv("WALLET_TOKEN")
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	now := time.Now().UTC()

	RootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:8081", "Base URL of the wallet server")
	RootCmd.PersistentFlags().StringVarP(&token, "token", "t", "", "Access token (defaults to WALLET_TOKEN)")

	for _, c := range []*cobra.Command{exportCmd, importCmd} {
		c.Flags().IntVarP(&year, "year", "y", now.Year(), "Statement year")
		c.Flags().IntVarP(&month, "month", "m", int(now.Month()), "Statement month (1-12)")
	}

	RootCmd.AddCommand(exportCmd, importCmd, tokenCmd)
}

func requireToken() error {
	if token == "" {
		return fmt.Errorf("no access token: pass --token or set WALLET_TOKEN")
	}
	return nil
}

func authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+token)
}

func httpClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}
