package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/HeitorVic/my-wallet/internal/core"
	"github.com/HeitorVic/my-wallet/internal/events"
	applog "github.com/HeitorVic/my-wallet/internal/log"
	"github.com/HeitorVic/my-wallet/internal/statement"
)

// maxStatementSize caps uploaded CSV bodies at 2 MiB
const maxStatementSize = 2 << 20

func (s *Server) handleExportStatement(w http.ResponseWriter, r *http.Request) {
	year, month := monthQuery(r)

	list, err := s.store.List(r.Context(), owner(r))
	if err != nil {
		s.storeError(w, r, err, "export statement")
		return
	}

	body := statement.Encode(core.MonthTransactions(list, year, month))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", statement.Filename(year, month)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handleImportStatement(w http.ResponseWriter, r *http.Request) {
	year, month := monthQuery(r)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxStatementSize+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read request body")
		return
	}
	if len(body) > maxStatementSize {
		writeError(w, http.StatusRequestEntityTooLarge, "statement too large")
		return
	}

	drafts := statement.Decode(body, year, month)
	if len(drafts) == 0 {
		writeJSON(w, http.StatusOK, map[string]int{"imported": 0})
		return
	}

	created, err := s.store.CreateMany(r.Context(), owner(r), drafts)
	if err != nil {
		s.storeError(w, r, err, "import statement")
		return
	}

	s.invalidateSummaries(owner(r))
	for _, tx := range created {
		s.publishEvent(r, events.OpCreated, tx)
	}

	slog.InfoContext(r.Context(), "statement imported",
		applog.FieldCount, len(created),
		applog.FieldYear, year,
		applog.FieldMonth, month)
	writeJSON(w, http.StatusOK, map[string]int{"imported": len(created)})
}
