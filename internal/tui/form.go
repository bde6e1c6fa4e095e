package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/memoria/internal/store"
)

type formMode int

const (
	formAdd formMode = iota
	formEdit
)

// formModel is the modal surface for adding and editing memories. Add
// takes file patterns plus a base comment and hands off to the ingest
// pipeline; edit pre-fills the record's fields and submits an update.
type formModel struct {
	mode   formMode
	id     string
	labels []string
	inputs []textinput.Model
	focus  int
	errMsg string
}

func newAddForm() formModel {
	patterns := textinput.New()
	patterns.Placeholder = "photos/**/*.jpg (space-separated patterns)"
	patterns.CharLimit = 0

	comment := textinput.New()
	comment.Placeholder = "base comment for the batch (optional)"
	comment.CharLimit = 0

	return formModel{
		mode:   formAdd,
		labels: []string{"Files", "Comment"},
		inputs: []textinput.Model{patterns, comment},
	}
}

func newEditForm(mem store.Memory) formModel {
	img := textinput.New()
	img.SetValue(mem.ImageContent)
	img.CharLimit = 0

	date := textinput.New()
	date.SetValue(mem.Date)
	date.CharLimit = 10

	comment := textinput.New()
	comment.SetValue(mem.Comment)
	comment.CharLimit = 0

	return formModel{
		mode:   formEdit,
		id:     mem.ID,
		labels: []string{"Image", "Date", "Comment"},
		inputs: []textinput.Model{img, date, comment},
	}
}

func (f *formModel) focusCmd() tea.Cmd {
	f.focus = 0
	return f.inputs[0].Focus()
}

func (f *formModel) next(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

// updateForm routes keys into the modal form while it is open.
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusList
		return m, nil

	case "tab", "down":
		return m, m.form.next(1)

	case "shift+tab", "up":
		return m, m.form.next(-1)

	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.form.mode {
	case formAdd:
		patterns := strings.Fields(m.form.inputs[0].Value())
		if len(patterns) == 0 {
			m.form.errMsg = "Please select at least one file."
			return m, nil
		}
		base := strings.TrimSpace(m.form.inputs[1].Value())
		m.focus = focusList
		return m, m.startIngest(patterns, base)

	case formEdit:
		fields := store.Fields{
			ImageContent: strings.TrimSpace(m.form.inputs[0].Value()),
			Date:         strings.TrimSpace(m.form.inputs[1].Value()),
			Comment:      m.form.inputs[2].Value(),
		}
		// Validation aborts before any mutation; no partial write.
		if err := fields.Validate(); err != nil {
			m.form.errMsg = err.Error()
			return m, nil
		}
		id := m.form.id
		m.focus = focusList
		err := m.store.Update(id, fields)
		if err != nil {
			// NotFound stays a logged no-op; persist failures warn.
			var perr *store.ErrPersist
			if errors.As(err, &perr) {
				return m, tea.Batch(m.refreshCmd(), m.setStatus(WarningStyle.Render(perr.Error())))
			}
			return m, m.refreshCmd()
		}
		return m, tea.Batch(m.refreshCmd(), m.setStatus("Memory updated."))
	}
	return m, nil
}

func (f formModel) view() string {
	title := "Add memories"
	if f.mode == formEdit {
		title = "Edit memory"
	}

	parts := []string{FormTitleStyle.Render(title)}
	for i, in := range f.inputs {
		label := FilterLabelStyle.Render(f.labels[i] + ": ")
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, label, in.View()))
	}
	if f.errMsg != "" {
		parts = append(parts, FormErrorStyle.Render(f.errMsg))
	}
	parts = append(parts, HelpStyle.Render("enter: save  tab: next field  esc: cancel"))

	return FormBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
