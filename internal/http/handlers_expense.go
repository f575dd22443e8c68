package http

import (
	"bytes"
	"errors"
	"net/http"

	"expenses/internal/core"
	"expenses/internal/log"
	"expenses/internal/ports"
)

type formView struct {
	Form       core.Form
	Categories []core.Category
	Error      string
}

type filterOption struct {
	Value, Label string
	Selected     bool
}

type listView struct {
	Total string
	Count int
	Empty bool
	Cards []core.Card
}

type indexView struct {
	Form          formView
	FilterOptions []filterOption
	List          listView
}

func newFormView(f core.Form, errMsg string) formView {
	return formView{Form: f, Categories: core.Categories(), Error: errMsg}
}

func newListView(v core.View, highlightID int64) listView {
	return listView{
		Total: v.FormattedTotal(),
		Count: v.Count,
		Empty: v.Empty(),
		Cards: v.Cards(highlightID, true),
	}
}

func filterOptions(sel core.Selection) []filterOption {
	opts := []filterOption{{Value: core.AllLabel, Label: "All Categories", Selected: sel.IsAll()}}
	for _, c := range core.Categories() {
		opts = append(opts, filterOption{Value: c.String(), Label: c.String(), Selected: sel == core.Only(c)})
	}
	return opts
}

// selectionFromRequest falls back to All on an unknown category.
func (s *Server) selectionFromRequest(r *http.Request) core.Selection {
	raw := sanitizeInput(r.URL.Query().Get("category"))
	sel, err := core.ParseSelection(raw)
	if err != nil {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Invalid category filter, showing all",
			log.FieldSelection, raw, log.FieldError, err.Error())
		return core.All
	}
	return sel
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.events.LogError(r.Context(), "Template execution failed", err, log.ComponentTemplate, log.OpRender,
			log.LogFields{"template": name})
		InternalServerError("Something went wrong. Please try again.").Write(w)
		return
	}
	NewHTMXResponse().Status(status).BodyHTML(buf.String()).Write(w)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		NotFoundError("Page not found").Write(w)
		return
	}
	if resp := RequireMethod(r, http.MethodGet, http.MethodHead); resp != nil {
		resp.Write(w)
		return
	}

	items, err := s.expenses(r.Context())
	if err != nil {
		s.events.LogError(r.Context(), "List expenses failed", err, log.ComponentStorage, log.OpList, nil)
		InternalServerError("Could not load expenses.").Write(w)
		return
	}

	sel := s.selectionFromRequest(r)
	view := core.Filter(items, sel)
	s.render(w, r, http.StatusOK, "index.html", indexView{
		Form:          newFormView(s.svc.NewForm(), ""),
		FilterOptions: filterOptions(sel),
		List:          newListView(view, highlightFromRequest(r)),
	})
}

// handleListPartial renders the summary line and cards for a selection.
func (s *Server) handleListPartial(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	items, err := s.expenses(r.Context())
	if err != nil {
		s.events.LogError(r.Context(), "List expenses failed", err, log.ComponentStorage, log.OpList, nil)
		InternalServerError("Could not load expenses.").Write(w)
		return
	}

	view := core.Filter(items, s.selectionFromRequest(r))
	log.FromContext(r.Context()).DebugContext(r.Context(), "Expense list filtered", log.NewFields().WithView(view).ToSlice()...)
	s.render(w, r, http.StatusOK, "expense_list", newListView(view, highlightFromRequest(r)))
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	form := core.Form{
		Description: sanitizeInput(r.PostForm.Get("description")),
		Amount:      sanitizeInput(r.PostForm.Get("amount")),
		Category:    sanitizeInput(r.PostForm.Get("category")),
		Date:        sanitizeInput(r.PostForm.Get("date")),
	}

	e, err := s.svc.Create(r.Context(), form)
	if ve, ok := core.AsValidationError(err); ok {
		// The submitted values stay in the form.
		var buf bytes.Buffer
		if err := s.templates.ExecuteTemplate(&buf, "expense_form", newFormView(form, ve.Message())); err != nil {
			UnprocessableEntityError(ve.Message()).Write(w)
			return
		}
		NewHTMXResponse().
			Status(http.StatusUnprocessableEntity).
			TriggerErrorNotification(ve.Message()).
			BodyHTML(buf.String()).
			Write(w)
		return
	}
	if err != nil {
		s.events.LogError(r.Context(), "Create expense failed", err, log.ComponentExpense, log.OpCreate, log.NewFields())
		InternalServerError("Could not save the expense. Please try again.").Write(w)
		return
	}

	s.invalidate()

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "expense_form", newFormView(s.svc.NewForm(), "")); err != nil {
		s.events.LogError(r.Context(), "Template execution failed", err, log.ComponentTemplate, log.OpRender, nil)
	}
	NewHTMXResponse().
		TriggerExpenseCreated(e.ID).
		TriggerFormReset().
		TriggerSuccessNotification("Added " + e.Description + " (" + core.FormatUSD(e.Amount) + ")").
		BodyHTML(buf.String()).
		Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if resp := RequireDeleteOrPOST(r); resp != nil {
		resp.Write(w)
		return
	}

	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError("Invalid request body").Write(w)
		return
	}
	rawID := p.Get("id")
	if rawID == "" {
		rawID = sanitizeInput(r.URL.Query().Get("id"))
	}
	id, err := ParseID(rawID)
	if err != nil {
		BadRequestError("Missing or invalid expense id").Write(w)
		return
	}

	if _, err := s.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			NotFoundError("Expense not found").
				TriggerErrorNotification("Expense not found").
				Write(w)
			return
		}
		s.events.LogError(r.Context(), "Delete expense failed", err, log.ComponentExpense, log.OpDelete,
			log.LogFields{log.FieldExpenseID: id})
		InternalServerError("Could not delete the expense. Please try again.").Write(w)
		return
	}

	s.invalidate()

	NewHTMXResponse().
		TriggerExpenseDeleted(id).
		TriggerSuccessNotification("Expense deleted").
		Write(w)
}
