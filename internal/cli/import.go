package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [csv-file]",
	Short: "Upload a CSV statement into a month",
	Long:  `Upload a semicolon-delimited CSV statement. Rows dated outside the target month are discarded by the server.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	if err := requireToken(); err != nil {
		return err
	}

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open statement file: %w", err)
	}
	defer file.Close()

	url := fmt.Sprintf("%s/api/statement/import?year=%d&month=%d", serverURL, year, month)
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, url, file)
	if err != nil {
		return err
	}
	authorize(req)
	req.Header.Set("Content-Type", "text/csv")

	resp, err := httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("upload statement: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("server returned %s: %s", resp.Status, body)
	}

	var result struct {
		Imported int `json:"imported"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions into %02d/%d\n", result.Imported, month, year)
	return nil
}
