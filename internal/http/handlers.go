package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/HeitorVic/my-wallet/internal/auth"
	"github.com/HeitorVic/my-wallet/internal/categories"
	"github.com/HeitorVic/my-wallet/internal/core"
	"github.com/HeitorVic/my-wallet/internal/events"
	applog "github.com/HeitorVic/my-wallet/internal/log"
	"github.com/HeitorVic/my-wallet/internal/store"
)

type createRequest struct {
	core.Draft
	Installments int `json:"installments"`
}

func owner(r *http.Request) string {
	identity, _ := auth.IdentityFromContext(r.Context())
	return identity
}

// monthQuery reads year/month query parameters, defaulting to the current
// UTC month
func monthQuery(r *http.Request) (year, month int) {
	now := time.Now().UTC()
	year, month = now.Year(), int(now.Month())
	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 1 && m <= 12 {
			month = m
		}
	}
	return year, month
}

// sanitizeInput removes control characters and trims whitespace
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// normalizeDraft applies the form defaults: a missing method becomes
// debit and a missing category falls back to the type's first registry
// entry. A submitted method is kept as-is, income included.
func normalizeDraft(d core.Draft) core.Draft {
	d.Description = sanitizeInput(d.Description)
	d.Category = sanitizeInput(d.Category)
	if d.Category == "" {
		d.Category = categories.DefaultFor(d.Type)
	}
	if d.Method == "" {
		d.Method = core.MethodDebit
	}
	return d
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context(), owner(r))
	if err != nil {
		s.storeError(w, r, err, "list transactions")
		return
	}

	q := r.URL.Query()
	if q.Get("year") != "" || q.Get("month") != "" {
		year, month := monthQuery(r)
		list = core.FilterMonth(list, year, month, q.Get("category"), q.Get("method"))
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	draft := normalizeDraft(req.Draft)
	if err := draft.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var created []core.Transaction
	var err error
	if req.Installments >= 2 {
		// Splitting is a credit-purchase feature only
		if draft.Type != core.Expense || draft.Method != core.MethodCredit {
			writeError(w, http.StatusUnprocessableEntity, "installments are only available for credit card expenses")
			return
		}
		var drafts []core.Draft
		drafts, err = core.SplitInstallments(draft, req.Installments)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		created, err = s.store.CreateMany(r.Context(), owner(r), drafts)
	} else {
		var tx core.Transaction
		tx, err = s.store.Create(r.Context(), owner(r), draft)
		created = []core.Transaction{tx}
	}
	if err != nil {
		s.storeError(w, r, err, "create transaction")
		return
	}

	s.invalidateSummaries(owner(r))
	for _, tx := range created {
		s.publishEvent(r, events.OpCreated, tx)
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var draft core.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	draft = normalizeDraft(draft)
	if err := draft.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	updated, err := s.store.Update(r.Context(), owner(r), id, draft)
	if err != nil {
		s.storeError(w, r, err, "update transaction")
		return
	}

	s.invalidateSummaries(owner(r))
	s.publishEvent(r, events.OpUpdated, updated)

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	// Read the record first so the mirror event carries the full snapshot
	var snapshot core.Transaction
	if list, err := s.store.List(r.Context(), owner(r)); err == nil {
		for _, tx := range list {
			if tx.ID == id {
				snapshot = tx
				break
			}
		}
	}

	if err := s.store.Delete(r.Context(), owner(r), id); err != nil {
		s.storeError(w, r, err, "delete transaction")
		return
	}

	s.invalidateSummaries(owner(r))
	if snapshot.ID == "" {
		snapshot.ID = id
	}
	s.publishEvent(r, events.OpDeleted, snapshot)

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	year, month := monthQuery(r)
	key := s.summaryKey(owner(r), year, month)

	if payload, found := s.summaryCache.Get(key); found {
		slog.DebugContext(r.Context(), "summary cache hit", applog.FieldYear, year, applog.FieldMonth, month)
		writeJSON(w, http.StatusOK, payload)
		return
	}

	list, err := s.store.List(r.Context(), owner(r))
	if err != nil {
		s.storeError(w, r, err, "summarize month")
		return
	}

	summary := core.Summarize(list, year, month)
	payload := summaryPayload{
		Year:      year,
		Month:     month,
		MonthName: categories.MonthName(month),
		Income:    summary.Income,
		Expense:   summary.Expense,
		Balance:   summary.Balance,
		Credit:    summary.CreditExpense,
		Breakdown: []breakdownEntry{},
	}
	for _, ct := range core.Breakdown(list, year, month) {
		payload.Breakdown = append(payload.Breakdown, breakdownEntry{Name: ct.Category, Value: ct.Total})
	}

	s.summaryCache.Set(key, payload)
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"expense": categories.ExpenseCategories,
		"income":  categories.IncomeCategories,
		"methods": categories.PaymentMethods,
		"months":  categories.MonthNames,
	})
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.store.Preferences(r.Context(), owner(r))
	if err != nil {
		s.storeError(w, r, err, "load preferences")
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (s *Server) handleSavePreferences(w http.ResponseWriter, r *http.Request) {
	var prefs store.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if prefs.Theme != "dark" && prefs.Theme != "light" {
		writeError(w, http.StatusUnprocessableEntity, "theme must be dark or light")
		return
	}

	if err := s.store.SavePreferences(r.Context(), owner(r), prefs); err != nil {
		s.storeError(w, r, err, "save preferences")
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// publishEvent forwards a committed change to the mirror queue. Publishing
// is best effort; the write already succeeded.
func (s *Server) publishEvent(r *http.Request, op string, tx core.Transaction) {
	if s.publisher == nil {
		return
	}
	event := events.NewTransactionEvent(op, owner(r), tx)
	if err := s.publisher.Publish(r.Context(), event); err != nil {
		slog.ErrorContext(r.Context(), "failed to publish transaction event",
			applog.FieldError, err,
			applog.FieldOperation, op,
			applog.FieldTransaction, tx.ID)
	}
}

func (s *Server) storeError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "transaction not found")
	case errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrNegativeAmount),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidInstallments):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.ErrorContext(r.Context(), "store operation failed", applog.FieldOperation, action, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
