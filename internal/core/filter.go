package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AllLabel is the wire value of the unfiltered selection.
const AllLabel = "All"

// Selection is either All (the zero value) or a single category.
type Selection struct {
	category Category
}

// All selects every expense.
var All = Selection{}

// Only selects expenses of category c.
func Only(c Category) Selection {
	return Selection{category: c}
}

// ParseSelection accepts "", "All" or a category name.
func ParseSelection(s string) (Selection, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, AllLabel) {
		return All, nil
	}
	c, err := ParseCategory(s)
	if err != nil {
		return All, fmt.Errorf("parse selection %q: %w", s, err)
	}
	return Only(c), nil
}

func (s Selection) IsAll() bool {
	return s.category == ""
}

// Category returns the selected category; ok is false for All.
func (s Selection) Category() (c Category, ok bool) {
	return s.category, !s.IsAll()
}

func (s Selection) String() string {
	if s.IsAll() {
		return AllLabel
	}
	return string(s.category)
}

// Matches reports whether e is visible under s.
func (s Selection) Matches(e Expense) bool {
	return s.IsAll() || e.Category == s.category
}

// View is the visible subset of a collection and its aggregates.
type View struct {
	Selection Selection
	Visible   []Expense
	Total     decimal.Decimal
	Count     int
}

// Filter computes the view of expenses under sel. The input is not modified
// and relative order is preserved. Total is an exact decimal sum.
func Filter(expenses []Expense, sel Selection) View {
	v := View{
		Selection: sel,
		Visible:   make([]Expense, 0, len(expenses)),
		Total:     decimal.Zero,
	}
	for _, e := range expenses {
		if !sel.Matches(e) {
			continue
		}
		v.Visible = append(v.Visible, e)
		v.Total = v.Total.Add(e.Amount)
	}
	v.Count = len(v.Visible)
	return v
}

// Empty reports whether nothing is visible.
func (v View) Empty() bool {
	return v.Count == 0
}

// FormattedTotal is the total rounded to cents for display.
func (v View) FormattedTotal() string {
	return FormatUSD(v.Total)
}

// List owns the filter selection of an expense list. It starts at All and
// changes only through Select.
type List struct {
	selection Selection
}

func NewList() *List {
	return &List{selection: All}
}

func (l *List) Select(sel Selection) {
	l.selection = sel
}

func (l *List) Selection() Selection {
	return l.selection
}

// View applies the current selection to expenses.
func (l *List) View(expenses []Expense) View {
	return Filter(expenses, l.selection)
}
