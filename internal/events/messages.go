package events

import (
	"encoding/json"
	"time"

	"github.com/HeitorVic/my-wallet/internal/core"
)

// Operation names carried by transaction events
const (
	OpCreated = "created"
	OpUpdated = "updated"
	OpDeleted = "deleted"
)

// TransactionEvent describes one committed change to an owner's wallet.
// It carries the full record snapshot so consumers never need to read the
// store back.
type TransactionEvent struct {
	Op          string           `json:"op"`
	Owner       string           `json:"owner"`
	Transaction core.Transaction `json:"transaction"`
	Timestamp   time.Time        `json:"timestamp"`
}

// NewTransactionEvent creates an event for a committed change
func NewTransactionEvent(op, owner string, tx core.Transaction) *TransactionEvent {
	return &TransactionEvent{
		Op:          op,
		Owner:       owner,
		Transaction: tx,
		Timestamp:   time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionEventFromJSON decodes an event from JSON bytes
func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var e TransactionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
