package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewCardDefaults(t *testing.T) {
	e := Expense{ID: 3, Description: "Lunch at Joe's Pizza", Amount: decimal.RequireFromString("12.5"), Category: Food, Date: "2025-09-10"}
	c := NewCard(e)
	if c.Highlighted || !c.ShowCategory || c.Deletable {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.FormattedAmount() != "$12.50" {
		t.Fatalf("unexpected amount %q", c.FormattedAmount())
	}
	if c.FormattedDate() != "Sep 10, 2025" {
		t.Fatalf("unexpected date %q", c.FormattedDate())
	}
	if c.DeleteLabel() != "Delete expense Lunch at Joe's Pizza" {
		t.Fatalf("unexpected label %q", c.DeleteLabel())
	}
}

func TestNewCardOptions(t *testing.T) {
	c := NewCard(Expense{Date: "not a date"}, Highlight(true), ShowCategory(false), Deletable(true))
	if !c.Highlighted || c.ShowCategory || !c.Deletable {
		t.Fatalf("options not applied: %+v", c)
	}
	if c.FormattedDate() != "not a date" {
		t.Fatalf("expected raw date fallback, got %q", c.FormattedDate())
	}
}

func TestViewCards(t *testing.T) {
	v := Filter(sample(), Only(Food))
	cards := v.Cards(3, true)
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	for _, c := range cards {
		if c.Highlighted != (c.ID == 3) {
			t.Fatalf("card %d highlight=%v", c.ID, c.Highlighted)
		}
		if !c.Deletable {
			t.Fatalf("card %d should be deletable", c.ID)
		}
	}
}
