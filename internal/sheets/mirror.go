// Package sheets appends wallet change events to a Google Sheets journal.
// The sheet is an audit trail, not a source of truth; rows are only ever
// appended.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/HeitorVic/my-wallet/internal/config"
	"github.com/HeitorVic/my-wallet/internal/core"
	"github.com/HeitorVic/my-wallet/internal/events"
)

// JournalHeader is the first row of a fresh journal sheet
var JournalHeader = []any{"Registrado em", "Operação", "Conta", "ID", "Data", "Descrição", "Categoria", "Tipo", "Método", "Valor"}

type Mirror struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// New creates a journal mirror from the configuration. Credentials come
// from GOOGLE_CREDENTIALS_JSON or GOOGLE_CREDENTIALS_FILE.
func New(ctx context.Context, cfg *config.Config) (*Mirror, error) {
	if strings.TrimSpace(cfg.GoogleSpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheetName := strings.TrimSpace(cfg.GoogleSheetName)
	if sheetName == "" {
		sheetName = "Extrato"
	}

	var credentialsJSON []byte
	switch {
	case strings.TrimSpace(cfg.GoogleCredentialsJSON) != "":
		credentialsJSON = []byte(cfg.GoogleCredentialsJSON)
	case strings.TrimSpace(cfg.GoogleCredentialsFile) != "":
		data, err := os.ReadFile(cfg.GoogleCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_CREDENTIALS_JSON or GOOGLE_CREDENTIALS_FILE)")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Mirror{
		svc:           svc,
		spreadsheetID: cfg.GoogleSpreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// AppendEvent writes one journal row for the event
func (m *Mirror) AppendEvent(ctx context.Context, event *events.TransactionEvent) error {
	if m.svc == nil {
		return errors.New("sheets service not initialized")
	}

	// Find the next empty row from the sheet dimensions
	rng := fmt.Sprintf("%s!A:A", m.sheetName)
	resp, err := m.svc.Spreadsheets.Values.Get(m.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get sheet dimensions for %s: %w", m.sheetName, err)
	}

	nextRow := len(resp.Values) + 1
	if nextRow == 1 {
		// Fresh sheet: write the header first
		headerRange := fmt.Sprintf("%s!A1:J1", m.sheetName)
		vr := &gsheet.ValueRange{Values: [][]any{JournalHeader}}
		_, err = m.svc.Spreadsheets.Values.Update(m.spreadsheetID, headerRange, vr).
			ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("write journal header: %w", err)
		}
		nextRow = 2
	}

	dataRange := fmt.Sprintf("%s!A%d:J%d", m.sheetName, nextRow, nextRow)
	vr := &gsheet.ValueRange{Values: [][]any{JournalRow(event)}}
	_, err = m.svc.Spreadsheets.Values.Update(m.spreadsheetID, dataRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append journal row to %s: %w", m.sheetName, err)
	}

	return nil
}

// JournalRow renders the journal columns for one event
func JournalRow(event *events.TransactionEvent) []any {
	tx := event.Transaction

	tipo := "Despesa"
	if tx.Type == core.Income {
		tipo = "Receita"
	}

	amount := tx.Amount
	if event.Op == events.OpDeleted {
		// deleted records journal a negated amount
		amount = -amount
	}

	return []any{
		event.Timestamp.UTC().Format("02/01/2006 15:04:05"),
		event.Op,
		event.Owner,
		tx.ID,
		tx.Date.ISO(),
		tx.Description,
		tx.Category,
		tipo,
		tx.Method,
		amount,
	}
}
