package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/HeitorVic/my-wallet/internal/statement"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download a month's statement as CSV",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", ".", "Output directory or file path")
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := requireToken(); err != nil {
		return err
	}

	url := fmt.Sprintf("%s/api/statement/export?year=%d&month=%d", serverURL, year, month)
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	authorize(req)

	resp, err := httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("request statement: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("server returned %s: %s", resp.Status, body)
	}

	path := exportOutput
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, statement.Filename(year, month))
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	n, err := io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("write statement: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", path, n)
	return nil
}
