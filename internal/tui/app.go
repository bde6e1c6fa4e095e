package tui

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeanpaul/memoria/internal/config"
	"github.com/jeanpaul/memoria/internal/ingest"
	"github.com/jeanpaul/memoria/internal/render"
	"github.com/jeanpaul/memoria/internal/store"
	"github.com/jeanpaul/memoria/internal/view"
)

type focusArea int

const (
	focusList focusArea = iota
	focusSearch
	focusCutoff
	focusForm
	focusConfirm
	focusHelp
)

// Messages
type storeChangedMsg struct{}

type imageDecodedMsg struct {
	gen     int
	content string
	img     image.Image
	err     error
}

type statusExpiredMsg struct{ token int }

type ingestEvent struct {
	progress string
	done     bool
	created  int
	err      error
}

type ingestEventMsg ingestEvent

type Model struct {
	width, height int

	cfg   *config.Config
	store *store.Store
	ing   *ingest.Ingestor
	log   *zap.Logger

	table   table.Model
	search  textinput.Model
	cutoff  textinput.Model
	spinner spinner.Model
	form    formModel

	focus     focusArea
	confirmID string
	helpView  string

	visible    []store.Memory
	emptyState view.EmptyState
	selectedID string

	detail      render.Detail
	detailState render.State
	detailImg   image.Image
	loadedFor   string // imageContent the last completed decode belongs to
	gen         int    // decode generation; stale completions are dropped

	status      string
	statusPrev  string // text to restore when the transient message expires
	statusToken int

	changes  chan struct{}
	ingestCh chan ingestEvent
}

func NewModel(cfg *config.Config, st *store.Store, log *zap.Logger) Model {
	search := textinput.New()
	search.Placeholder = "search comments..."
	search.Prompt = "/ "
	search.CharLimit = 0

	cutoff := textinput.New()
	cutoff.Placeholder = "YYYY-MM-DD"
	cutoff.Prompt = "≤ "
	cutoff.CharLimit = 10

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(Teal)

	columns := []table.Column{
		{Title: " ", Width: 3},
		{Title: "Date", Width: 12},
		{Title: "Comment", Width: 40},
	}
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(DimTeal).
		BorderBottom(true).
		Foreground(Teal).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(White).
		Background(DimTeal).
		Bold(false)
	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	tbl.SetStyles(ts)

	m := Model{
		cfg:     cfg,
		store:   st,
		ing:     ingest.New(st, log),
		log:     log,
		table:   tbl,
		search:  search,
		cutoff:  cutoff,
		spinner: sp,
		detail:  render.NewDetail(cfg.ImageHeightRatio),
		helpView: renderHelp(),
		changes: make(chan struct{}, 8),
	}

	// All mutations funnel into the same notification, whether they come
	// from this UI, a headless import, or the slot watcher.
	st.OnChange(func() {
		select {
		case m.changes <- struct{}{}:
		default: // a refresh is already pending
		}
	})

	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.waitForChange())
}

func (m *Model) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		<-ch
		return storeChangedMsg{}
	}
}

// query assembles the transient filter state from the inputs.
func (m *Model) query() view.Query {
	return view.Query{Search: m.search.Value(), Cutoff: m.cutoff.Value()}
}

// refresh recomputes the visible subset, rebuilds the table rows and
// re-resolves the detail selection against the new view.
func (m *Model) refresh() tea.Cmd {
	m.visible = view.Visible(m.store.List(), m.query())
	m.emptyState = view.Empty(m.store.Len(), len(m.visible))

	rows := make([]table.Row, len(m.visible))
	for i, mem := range m.visible {
		marker := "↗"
		if mem.IsEmbedded() {
			marker = "▣"
		}
		comment := mem.Comment
		if mem.IsEmbedded() {
			comment += " [b64]"
		}
		rows[i] = table.Row{marker, mem.Date, comment}
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}

	// The selection is only re-resolved here, never re-targeted: when the
	// shown record was deleted or filtered out the detail goes back to
	// empty instead of silently jumping to a neighbor.
	return m.clearDetailIfGone()
}

// syncSelection points the detail view at the record under the cursor.
// Only explicit navigation lands here, mirroring hover-to-select.
func (m *Model) syncSelection() tea.Cmd {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.visible) {
		return m.clearDetailIfGone()
	}
	id := m.visible[cursor].ID
	if id == m.selectedID {
		return m.clearDetailIfGone()
	}
	m.selectedID = id
	return m.loadDetail()
}

// clearDetailIfGone enforces the weak-reference contract: a selection
// that is no longer visible reverts the detail view to its empty state.
func (m *Model) clearDetailIfGone() tea.Cmd {
	if _, ok := view.Resolve(m.visible, m.selectedID); !ok {
		m.selectedID = ""
		m.detailState = render.StateEmpty
		m.detailImg = nil
		m.loadedFor = ""
		// Invalidate any decode still in flight for the old selection.
		m.gen++
		return nil
	}
	// Still visible; if the record's image changed under us (edit), the
	// detail needs a fresh decode.
	mem, _ := view.Resolve(m.visible, m.selectedID)
	if mem.ImageContent != m.loadedFor && m.detailState != render.StateLoading {
		return m.loadDetail()
	}
	return nil
}

// loadDetail kicks an asynchronous decode for the current selection.
// Every request carries a generation number; a completion for an older
// generation is discarded so a slow decode can never paint over a newer
// selection.
func (m *Model) loadDetail() tea.Cmd {
	mem, ok := view.Resolve(m.visible, m.selectedID)
	if !ok {
		return m.clearDetailIfGone()
	}
	m.gen++
	gen := m.gen
	content := mem.ImageContent
	m.detailState = render.StateLoading
	m.detailImg = nil
	return func() tea.Msg {
		img, err := render.DecodeImage(content)
		return imageDecodedMsg{gen: gen, content: content, img: img, err: err}
	}
}

// setStatus shows a transient message that reverts to the previous text
// after the configured delay. The token keeps a stale expiry from
// clobbering a newer message.
func (m *Model) setStatus(text string) tea.Cmd {
	m.statusPrev = m.status
	m.status = text
	m.statusToken++
	token := m.statusToken
	return tea.Tick(m.cfg.StatusDelay(), func(time.Time) tea.Msg {
		return statusExpiredMsg{token: token}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case storeChangedMsg:
		cmds = append(cmds, m.refresh(), m.waitForChange())
		return m, tea.Batch(cmds...)

	case imageDecodedMsg:
		if msg.gen != m.gen {
			// Superseded decode; a newer selection owns the canvas now.
			return m, nil
		}
		m.loadedFor = msg.content
		if msg.err != nil {
			m.log.Warn("image decode failed", zap.Error(msg.err))
			m.detailState = render.StateImageError
			m.detailImg = nil
		} else {
			m.detailState = render.StateRendered
			m.detailImg = msg.img
		}
		return m, nil

	case statusExpiredMsg:
		if msg.token == m.statusToken {
			m.status = m.statusPrev
		}
		return m, nil

	case ingestEventMsg:
		evt := ingestEvent(msg)
		if evt.err != nil {
			m.status = ""
			return m, m.setStatus(WarningStyle.Render(evt.err.Error()))
		}
		if !evt.done {
			m.status = evt.progress
			return m, m.waitForIngest()
		}
		// Progress lines are streaming output, not a state to revert to.
		m.status = ""
		return m, m.setStatus(fmt.Sprintf("Upload complete! %d memories added.", evt.created))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal surfaces swallow everything first.
	switch m.focus {
	case focusHelp:
		m.focus = focusList
		return m, nil

	case focusConfirm:
		switch msg.String() {
		case "y", "Y", "enter":
			id := m.confirmID
			m.confirmID = ""
			m.focus = focusList
			if err := m.store.Delete(id); err != nil {
				var perr *store.ErrPersist
				if errors.As(err, &perr) {
					return m, tea.Batch(m.refreshCmd(), m.setStatus(WarningStyle.Render(perr.Error())))
				}
				return m, m.refreshCmd()
			}
			return m, tea.Batch(m.refreshCmd(), m.setStatus("Memory deleted."))
		case "n", "N", "esc":
			m.confirmID = ""
			m.focus = focusList
			return m, nil
		}
		return m, nil

	case focusForm:
		return m.updateForm(msg)

	case focusSearch:
		switch msg.String() {
		case "esc", "enter", "tab":
			m.search.Blur()
			m.focus = focusList
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		// Live filtering, keystroke by keystroke.
		return m, tea.Batch(cmd, m.refreshCmd())

	case focusCutoff:
		switch msg.String() {
		case "esc", "enter", "tab":
			m.cutoff.Blur()
			m.focus = focusList
			return m, nil
		}
		var cmd tea.Cmd
		m.cutoff, cmd = m.cutoff.Update(msg)
		return m, tea.Batch(cmd, m.refreshCmd())
	}

	// List focus.
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "/":
		m.focus = focusSearch
		return m, m.search.Focus()

	case "c":
		m.focus = focusCutoff
		return m, m.cutoff.Focus()

	case "?":
		m.focus = focusHelp
		return m, nil

	case "a":
		m.form = newAddForm()
		m.focus = focusForm
		return m, m.form.focusCmd()

	case "e":
		if mem, ok := view.Resolve(m.visible, m.currentID()); ok {
			m.form = newEditForm(mem)
			m.focus = focusForm
			return m, m.form.focusCmd()
		}
		return m, nil

	case "d", "delete":
		if id := m.currentID(); id != "" {
			m.confirmID = id
			m.focus = focusConfirm
		}
		return m, nil

	case "r":
		m.store.Reload()
		return m, m.setStatus("Reloaded from disk.")
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, tea.Batch(cmd, m.syncSelection())
}

// refreshCmd wraps refresh for use in value-receiver key handlers.
func (m *Model) refreshCmd() tea.Cmd {
	return m.refresh()
}

// currentID is the id of the row under the cursor, if any.
func (m *Model) currentID() string {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.visible) {
		return ""
	}
	return m.visible[c].ID
}

// startIngest runs a batch on its own goroutine, streaming progress back
// through the event channel. Files inside the batch are still processed
// strictly one at a time.
func (m *Model) startIngest(patterns []string, baseComment string) tea.Cmd {
	if baseComment == "" {
		baseComment = m.cfg.DefaultComment
	}
	ch := make(chan ingestEvent, 8)
	m.ingestCh = ch
	ing := m.ing
	go func() {
		defer close(ch)
		files, err := ingest.Expand(patterns)
		if err != nil {
			ch <- ingestEvent{err: err, done: true}
			return
		}
		created, err := ing.Run(files, baseComment, func(done, total int) {
			ch <- ingestEvent{progress: fmt.Sprintf("Processing %d of %d files...", done, total)}
		})
		ch <- ingestEvent{done: true, created: created, err: err}
	}()
	return m.waitForIngest()
}

func (m *Model) waitForIngest() tea.Cmd {
	ch := m.ingestCh
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return nil
		}
		return ingestEventMsg(evt)
	}
}

// layout distributes the window between the list and the detail pane.
func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	listW := m.width * 11 / 20
	bodyH := m.height - 7 // header + filter bar + status + footer
	if bodyH < 4 {
		bodyH = 4
	}
	m.table.SetWidth(listW)
	m.table.SetHeight(bodyH - 1)

	commentW := listW - 3 - 12 - 6
	if commentW < 10 {
		commentW = 10
	}
	m.table.SetColumns([]table.Column{
		{Title: " ", Width: 3},
		{Title: "Date", Width: 12},
		{Title: "Comment", Width: commentW},
	})

	m.search.Width = listW - 8
	m.cutoff.Width = 12
}

// detailSize is the canvas geometry for the current window.
func (m *Model) detailSize() (w, h int) {
	w = m.width - (m.width * 11 / 20) - 4
	h = m.height - 9
	if w < 10 {
		w = 10
	}
	if h < 6 {
		h = 6
	}
	return w, h
}

func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		TitleStyle.Render("MEMORIA"),
		CountStyle.Render(fmt.Sprintf("  %d memories, %d shown", m.store.Len(), len(m.visible))),
	)

	searchBox := FilterIdleStyle
	if m.focus == focusSearch {
		searchBox = FilterActiveStyle
	}
	cutoffBox := FilterIdleStyle
	if m.focus == focusCutoff {
		cutoffBox = FilterActiveStyle
	}
	filters := lipgloss.JoinHorizontal(lipgloss.Center,
		searchBox.Render(m.search.View()),
		" ",
		cutoffBox.Render(m.cutoff.View()),
	)

	left := m.table.View()
	switch m.emptyState {
	case view.EmptyNoMemories:
		left = EmptyMsgStyle.Render(view.MsgNoMemories)
	case view.EmptyNoMatches:
		left = EmptyMsgStyle.Render(view.MsgNoMatches)
	}

	right := DetailBoxStyle.Render(m.detailView())

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	status := m.statusLine()

	footer := HelpStyle.Render("↑/↓: browse  /: search  c: cutoff  a: add  e: edit  d: delete  ?: help  q: quit")

	main := lipgloss.JoinVertical(lipgloss.Left,
		" "+header,
		" "+filters,
		body,
		" "+status,
		" "+footer,
	)

	switch m.focus {
	case focusForm:
		return lipgloss.JoinVertical(lipgloss.Left, main, m.form.view())
	case focusHelp:
		return m.helpView
	}
	return main
}

// detailView runs the detail state machine onto a fresh canvas sized to
// the pane, so every resize re-renders with the current selection.
func (m Model) detailView() string {
	w, h := m.detailSize()
	canvas := render.NewCanvas(w, h, render.ColorBackground)

	mem, _ := view.Resolve(m.visible, m.selectedID)
	m.detail.Draw(canvas, m.detailState, mem, m.detailImg)
	return canvas.String()
}

func (m Model) statusLine() string {
	if m.focus == focusConfirm {
		return ConfirmStyle.Render("Delete this memory? It cannot be recovered. [y/n]")
	}
	if m.detailState == render.StateLoading {
		return m.spinner.View() + StatusStyle.Render(" loading image...")
	}
	if m.status != "" {
		return StatusStyle.Render(m.status)
	}
	return ""
}
