// Package store defines the persistence ports of the wallet and a factory
// that builds a concrete backend (memory, sqlite or mongo) from configuration.
package store

import (
	"context"
	"errors"

	"github.com/HeitorVic/my-wallet/internal/core"
)

var (
	// ErrNotFound is returned when a transaction id does not exist for the owner
	ErrNotFound = errors.New("transaction not found")

	// ErrClosed is returned by operations on a closed store
	ErrClosed = errors.New("store is closed")
)

// Preferences holds the per-owner presentation settings
type Preferences struct {
	Theme       string `json:"theme" bson:"theme"`
	PrivacyMode bool   `json:"privacyMode" bson:"privacy_mode"`
}

// DefaultPreferences returns the settings used before an owner saves any
func DefaultPreferences() Preferences {
	return Preferences{Theme: "dark", PrivacyMode: false}
}

// Subscription is a live feed of an owner's transaction list. Every change
// delivers a fresh full snapshot on Snapshots; slow consumers only ever see
// the latest state.
type Subscription interface {
	// Snapshots delivers the current full list after every change.
	// The channel is closed when the subscription stops.
	Snapshots() <-chan []core.Transaction

	// Stop cancels the subscription and closes the snapshot channel
	Stop()
}

// TransactionStore is the persistence port for transaction records.
// All operations are scoped to a single owner; no call ever observes
// another owner's data.
type TransactionStore interface {
	// List returns all transactions of the owner ordered by date descending
	List(ctx context.Context, owner string) ([]core.Transaction, error)

	// Create persists a new transaction built from the draft
	Create(ctx context.Context, owner string, draft core.Draft) (core.Transaction, error)

	// CreateMany persists all drafts or none of them
	CreateMany(ctx context.Context, owner string, drafts []core.Draft) ([]core.Transaction, error)

	// Update overwrites the stored fields of an existing transaction
	Update(ctx context.Context, owner, id string, draft core.Draft) (core.Transaction, error)

	// Delete removes a transaction permanently
	Delete(ctx context.Context, owner, id string) error

	// Subscribe opens a live snapshot feed for the owner. The first
	// snapshot carries the current list.
	Subscribe(ctx context.Context, owner string) (Subscription, error)
}

// PreferenceStore is the persistence port for presentation settings
type PreferenceStore interface {
	// Preferences returns the owner's settings, or the defaults when
	// nothing was saved yet
	Preferences(ctx context.Context, owner string) (Preferences, error)

	// SavePreferences overwrites the owner's settings
	SavePreferences(ctx context.Context, owner string, prefs Preferences) error
}

// Store is the full persistence surface a backend must provide
type Store interface {
	TransactionStore
	PreferenceStore

	// Close releases the backend's resources
	Close(ctx context.Context) error
}
