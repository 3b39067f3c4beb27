// Package sqlite persists the wallet in a local SQLite database using the
// pure-Go modernc driver. Live subscriptions are served from an in-process
// broadcast hub fed by the write path.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/HeitorVic/my-wallet/internal/core"
	"github.com/HeitorVic/my-wallet/internal/store"
)

const timeLayout = time.RFC3339Nano

type Store struct {
	db  *sql.DB
	hub *store.Hub
}

// New opens (or creates) the database at dbPath and applies pending
// migrations.
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, hub: store.NewHub()}, nil
}

func (s *Store) List(ctx context.Context, owner string) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, description, amount, type, category, method, date, created_at, updated_at
		FROM transactions
		WHERE owner = ?
		ORDER BY date DESC, created_at DESC, id ASC`, owner)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if out == nil {
		out = []core.Transaction{}
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, owner string, draft core.Draft) (core.Transaction, error) {
	created, err := s.CreateMany(ctx, owner, []core.Draft{draft})
	if err != nil {
		return core.Transaction{}, err
	}
	return created[0], nil
}

func (s *Store) CreateMany(ctx context.Context, owner string, drafts []core.Draft) ([]core.Transaction, error) {
	for _, d := range drafts {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	now := time.Now().UTC()
	created := make([]core.Transaction, 0, len(drafts))
	for _, d := range drafts {
		tx := core.Transaction{
			ID:          uuid.NewString(),
			Description: d.Description,
			Amount:      d.Amount,
			Type:        d.Type,
			Category:    d.Category,
			Method:      d.Method,
			Date:        d.Date,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		_, err := dbTx.ExecContext(ctx, `
			INSERT INTO transactions (id, owner, description, amount, type, category, method, date, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			tx.ID, owner, tx.Description, tx.Amount, string(tx.Type), tx.Category, tx.Method,
			tx.Date.ISO(), now.Format(timeLayout), now.Format(timeLayout))
		if err != nil {
			return nil, fmt.Errorf("insert transaction: %w", err)
		}
		created = append(created, tx)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	s.publish(ctx, owner)
	return created, nil
}

func (s *Store) Update(ctx context.Context, owner, id string, draft core.Draft) (core.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return core.Transaction{}, err
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET description = ?, amount = ?, type = ?, category = ?, method = ?, date = ?, updated_at = ?
		WHERE owner = ? AND id = ?`,
		draft.Description, draft.Amount, string(draft.Type), draft.Category, draft.Method,
		draft.Date.ISO(), now.Format(timeLayout), owner, id)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	if affected == 0 {
		return core.Transaction{}, store.ErrNotFound
	}

	tx, err := s.get(ctx, owner, id)
	if err != nil {
		return core.Transaction{}, err
	}

	s.publish(ctx, owner)
	return tx, nil
}

func (s *Store) Delete(ctx context.Context, owner, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE owner = ? AND id = ?`, owner, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	s.publish(ctx, owner)
	return nil
}

func (s *Store) Subscribe(ctx context.Context, owner string) (store.Subscription, error) {
	return s.hub.Subscribe(owner, func() ([]core.Transaction, error) {
		return s.List(ctx, owner)
	})
}

func (s *Store) Preferences(ctx context.Context, owner string) (store.Preferences, error) {
	var prefs store.Preferences
	var privacy int
	err := s.db.QueryRowContext(ctx,
		`SELECT theme, privacy_mode FROM preferences WHERE owner = ?`, owner).
		Scan(&prefs.Theme, &privacy)
	if errors.Is(err, sql.ErrNoRows) {
		return store.DefaultPreferences(), nil
	}
	if err != nil {
		return store.Preferences{}, fmt.Errorf("load preferences: %w", err)
	}
	prefs.PrivacyMode = privacy != 0
	return prefs, nil
}

func (s *Store) SavePreferences(ctx context.Context, owner string, prefs store.Preferences) error {
	privacy := 0
	if prefs.PrivacyMode {
		privacy = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (owner, theme, privacy_mode) VALUES (?, ?, ?)
		ON CONFLICT (owner) DO UPDATE SET theme = excluded.theme, privacy_mode = excluded.privacy_mode`,
		owner, prefs.Theme, privacy)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	s.hub.Close()
	return s.db.Close()
}

func (s *Store) get(ctx context.Context, owner, id string) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, description, amount, type, category, method, date, created_at, updated_at
		FROM transactions
		WHERE owner = ? AND id = ?`, owner, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, store.ErrNotFound
	}
	return tx, err
}

// publish pushes a fresh snapshot to the owner's subscribers. Failures to
// reread the list after a committed write are swallowed; the next write
// delivers a consistent snapshot again.
func (s *Store) publish(ctx context.Context, owner string) {
	snapshot, err := s.List(ctx, owner)
	if err != nil {
		return
	}
	s.hub.Publish(owner, snapshot)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (core.Transaction, error) {
	var tx core.Transaction
	var txType, date, createdAt, updatedAt string
	err := row.Scan(&tx.ID, &tx.Description, &tx.Amount, &txType, &tx.Category, &tx.Method,
		&date, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Transaction{}, err
		}
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}

	tx.Type = core.TransactionType(txType)
	if tx.Date, err = core.ParseISODate(date); err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored date %q: %w", date, err)
	}
	if tx.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return core.Transaction{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	if tx.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return core.Transaction{}, fmt.Errorf("parse updated_at %q: %w", updatedAt, err)
	}
	return tx, nil
}
