package core

// Card is the display model of a single expense.
type Card struct {
	Expense
	Highlighted  bool
	ShowCategory bool
	Deletable    bool
}

// CardOption customizes a Card.
type CardOption func(*Card)

// Highlight visually emphasizes the card.
func Highlight(on bool) CardOption {
	return func(c *Card) { c.Highlighted = on }
}

// ShowCategory toggles the category chip.
func ShowCategory(on bool) CardOption {
	return func(c *Card) { c.ShowCategory = on }
}

// Deletable renders a delete action for the card.
func Deletable(on bool) CardOption {
	return func(c *Card) { c.Deletable = on }
}

// NewCard builds a card with the category chip shown and no highlight.
func NewCard(e Expense, opts ...CardOption) Card {
	c := Card{Expense: e, ShowCategory: true}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c Card) FormattedAmount() string {
	return FormatUSD(c.Amount)
}

func (c Card) FormattedDate() string {
	return FormatDate(c.Date)
}

// DeleteLabel is the accessible label of the delete button.
func (c Card) DeleteLabel() string {
	return "Delete expense " + c.Description
}

// Cards builds one card per visible expense, highlighting highlightID.
func (v View) Cards(highlightID int64, deletable bool) []Card {
	out := make([]Card, 0, len(v.Visible))
	for _, e := range v.Visible {
		out = append(out, NewCard(e, Highlight(e.ID == highlightID), Deletable(deletable)))
	}
	return out
}
