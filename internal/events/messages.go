package events

import (
	"encoding/json"
	"time"

	"fintrack/internal/core"
)

// ExpenseChangeMessage describes one committed ledger mutation. The
// full record is carried so consumers never need to read the ledger's
// medium back.
type ExpenseChangeMessage struct {
	Op         string             `json:"op"` // add, update, delete
	Record     core.ExpenseRecord `json:"record"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// NewExpenseChangeMessage stamps a change message with the current time.
func NewExpenseChangeMessage(op string, rec core.ExpenseRecord) *ExpenseChangeMessage {
	return &ExpenseChangeMessage{
		Op:         op,
		Record:     rec,
		OccurredAt: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseChangeMessageFromJSON decodes a message from JSON bytes.
func ExpenseChangeMessageFromJSON(data []byte) (*ExpenseChangeMessage, error) {
	var msg ExpenseChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
