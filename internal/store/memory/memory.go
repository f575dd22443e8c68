package memory

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"expenses/internal/core"
	"expenses/internal/ports"
)

// Store keeps the expense collection in memory. IDs come from a counter that
// never reuses a value, even after deletions.
type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Expense
}

var _ ports.ExpenseStore = (*Store)(nil)

func New() *Store {
	return &Store{nextID: 1}
}

// seedFile is the YAML layout of a seed file.
type seedFile struct {
	Expenses []seedExpense `yaml:"expenses"`
}

type seedExpense struct {
	Description string `yaml:"description"`
	Amount      string `yaml:"amount"`
	Category    string `yaml:"category"`
	Date        string `yaml:"date"`
}

// NewFromFile returns a store seeded from a YAML file. A missing file yields
// an empty store; every seeded entry goes through the form validator.
func NewFromFile(path string) (*Store, error) {
	s := New()
	if path == "" {
		return s, nil
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	for i, se := range seed.Expenses {
		d, err := core.Form{
			Description: se.Description,
			Amount:      se.Amount,
			Category:    se.Category,
			Date:        se.Date,
		}.Validate()
		if err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}
		if _, err := s.Append(context.Background(), d); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Append assigns the next id and stores the expense.
func (s *Store) Append(_ context.Context, d core.Draft) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := d.WithID(s.nextID)
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	s.nextID++
	s.items = append(s.items, e)
	return e, nil
}

// List returns a copy of the collection in insertion order.
func (s *Store) List(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.items...), nil
}

// Delete removes the expense with the given id.
func (s *Store) Delete(_ context.Context, id int64) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.items {
		if e.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return e, nil
		}
	}
	return core.Expense{}, fmt.Errorf("delete %d: %w", id, ports.ErrNotFound)
}

// Len returns the number of stored expenses.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
