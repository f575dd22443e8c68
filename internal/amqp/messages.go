package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"expenses/internal/core"
)

type EventType string

const (
	EventExpenseCreated EventType = "expense.created"
	EventExpenseDeleted EventType = "expense.deleted"
)

// ExpenseEvent carries the full expense so consumers never read the
// publisher's store.
type ExpenseEvent struct {
	Type        EventType       `json:"type"`
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    core.Category   `json:"category"`
	Date        string          `json:"date"`
	Timestamp   time.Time       `json:"timestamp"`
}

func NewExpenseEvent(t EventType, e core.Expense) *ExpenseEvent {
	return &ExpenseEvent{
		Type:        t,
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        e.Date,
		Timestamp:   time.Now().UTC(),
	}
}

// Expense returns the domain value carried by the event.
func (m *ExpenseEvent) Expense() core.Expense {
	return core.Expense{
		ID:          m.ID,
		Description: m.Description,
		Amount:      m.Amount,
		Category:    m.Category,
		Date:        m.Date,
	}
}

func (m *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var msg ExpenseEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	switch msg.Type {
	case EventExpenseCreated, EventExpenseDeleted:
	default:
		return nil, fmt.Errorf("unknown event type %q", msg.Type)
	}
	if msg.ID <= 0 {
		return nil, fmt.Errorf("event without expense id")
	}
	// A created event that can never be mirrored must not be redelivered.
	if msg.Type == EventExpenseCreated {
		if err := msg.Expense().Validate(); err != nil {
			return nil, fmt.Errorf("invalid expense in event %d: %w", msg.ID, err)
		}
	}
	return &msg, nil
}
