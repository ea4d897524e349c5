package listview

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// filterDebounce is how long typing must pause before a filter
// keystroke becomes a request. Coalesces rapid keystrokes into a single
// fetch and a single first-page reset.
const filterDebounce = 300 * time.Millisecond

// Page size bounds for the +/- keys.
const (
	pageSizeStep = 5
	minPageSize  = 5
	maxPageSize  = 100
)

// maxColumnWidth caps table column widths.
const maxColumnWidth = 36

var (
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	headerStyle      = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedRowStyle = lipgloss.NewStyle().Reverse(true)
	statusStyle      = lipgloss.NewStyle().Faint(true)
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// pageMsg delivers a completed fetch. key identifies the exact
// pagination state the fetch was issued for; Update drops the message
// if the view has moved on since.
type pageMsg struct {
	view    int
	key     string
	rows    []Row
	hasMore bool
	err     error
}

// debounceMsg fires when the filter input has been idle long enough.
// seq guards against earlier timers resolving after later keystrokes.
type debounceMsg struct {
	view int
	seq  int
}

// viewState is the per-view display state.
type viewState struct {
	rows     []Row
	hasMore  bool
	selected int
	loaded   bool
	errText  string
}

// Model is the interactive paginated browser.
type Model struct {
	views  []View
	states []viewState
	active int

	// values is the shared query string all instances are bound to;
	// rendered in the footer as a resumable bookmark.
	values url.Values

	spinner     spinner.Model
	filterInput textinput.Model
	filtering   bool
	loading     bool
	debounceSeq int

	width  int
	height int
}

// NewModel creates a browser over the given views, binding every view's
// instance to one shared query string.
func NewModel(values url.Values, views ...View) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.CharLimit = 80

	for _, v := range views {
		v.Instance().Bind(values)
	}

	return &Model{
		views:       views,
		states:      make([]viewState, len(views)),
		values:      values,
		spinner:     sp,
		filterInput: ti,
	}
}

// Init fetches the first page of every view.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	for i := range m.views {
		cmds = append(cmds, m.fetchCmd(i))
	}
	m.loading = true
	return tea.Batch(cmds...)
}

// Update handles messages. All pagination transitions run here, on the
// single bubbletea event loop, so no two transitions on one instance
// can interleave.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pageMsg:
		return m.handlePage(msg)

	case debounceMsg:
		if msg.view != m.active || msg.seq != m.debounceSeq {
			return m, nil
		}
		return m.applyFilter(m.filterInput.Value())

	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterKey(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// handlePage merges a completed fetch into the view it was issued for,
// unless the view's state has changed since the fetch was keyed.
func (m *Model) handlePage(msg pageMsg) (tea.Model, tea.Cmd) {
	if msg.view < 0 || msg.view >= len(m.views) {
		return m, nil
	}
	if msg.key != m.stateKey(msg.view) {
		// Stale completion for an abandoned state; the current state
		// will never look it up.
		return m, nil
	}

	state := &m.states[msg.view]
	m.loading = false
	if msg.err != nil {
		state.errText = msg.err.Error()
		return m, nil
	}
	state.rows = msg.rows
	state.hasMore = msg.hasMore
	state.loaded = true
	state.errText = ""
	if state.selected >= len(state.rows) {
		state.selected = 0
	}
	return m, nil
}

// handleKey processes navigation keys for the active view.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.views[m.active]
	inst := view.Instance()
	state := &m.states[m.active]

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.active = (m.active + 1) % len(m.views)
		if !m.states[m.active].loaded {
			return m.startFetch()
		}
		return m, nil

	case "up", "k":
		if state.selected > 0 {
			state.selected--
		}
		return m, nil

	case "down", "j":
		if state.selected < len(state.rows)-1 {
			state.selected++
		}
		return m, nil

	case "n", "right", "l":
		// Gated exactly as the engine requires: a further page must
		// exist and the last displayed item supplies the cursor.
		if !state.hasMore || len(state.rows) == 0 {
			return m, nil
		}
		last := state.rows[len(state.rows)-1].ID
		if err := inst.NextPage(last); err != nil {
			return m, nil
		}
		return m.startFetch()

	case "p", "left", "h":
		if err := inst.PrevPage(); err != nil {
			return m, nil
		}
		return m.startFetch()

	case "g":
		inst.FirstPage()
		return m.startFetch()

	case "+", "=":
		return m.resizePage(inst.PageSize() + pageSizeStep)

	case "-":
		return m.resizePage(inst.PageSize() - pageSizeStep)

	case "r":
		return m.startFetch()

	case "/":
		m.filtering = true
		m.filterInput.SetValue(view.Filter())
		m.filterInput.CursorEnd()
		return m, m.filterInput.Focus()
	}

	return m, nil
}

// handleFilterKey processes keys while the filter input is focused.
// Every edit schedules a debounce timer; only the last timer standing
// applies the filter.
func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filterInput.Blur()
		return m, nil

	case "enter":
		m.debounceSeq++
		return m.applyFilter(m.filterInput.Value())
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)

	m.debounceSeq++
	seq := m.debounceSeq
	view := m.active
	tick := tea.Tick(filterDebounce, func(time.Time) tea.Msg {
		return debounceMsg{view: view, seq: seq}
	})
	return m, tea.Batch(cmd, tick)
}

// applyFilter commits the filter to the active view (resetting it to
// its first page) and fetches.
func (m *Model) applyFilter(query string) (tea.Model, tea.Cmd) {
	m.filtering = false
	m.filterInput.Blur()
	m.views[m.active].SetFilter(strings.TrimSpace(query))
	return m.startFetch()
}

// resizePage applies a clamped page-size change; the engine resets the
// view to page 1 as part of the operation.
func (m *Model) resizePage(size int) (tea.Model, tea.Cmd) {
	if size < minPageSize {
		size = minPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	inst := m.views[m.active].Instance()
	if size == inst.PageSize() {
		return m, nil
	}
	if err := inst.SetPageSize(size); err != nil {
		return m, nil
	}
	return m.startFetch()
}

// startFetch kicks off a fetch for the active view's current state.
func (m *Model) startFetch() (tea.Model, tea.Cmd) {
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.fetchCmd(m.active))
}

// fetchCmd builds the fetch command for view idx. The state snapshot
// and key are taken here, synchronously on the event loop.
func (m *Model) fetchCmd(idx int) tea.Cmd {
	view := m.views[idx]
	key := m.stateKey(idx)
	snap := view.Instance().Snapshot()
	return func() tea.Msg {
		rows, hasMore, err := view.FetchPage(context.Background(), snap)
		return pageMsg{view: idx, key: key, rows: rows, hasMore: hasMore, err: err}
	}
}

// stateKey identifies one view's exact pagination state, filter
// included. Fetch results are merged only when the key still matches.
func (m *Model) stateKey(idx int) string {
	view := m.views[idx]
	inst := view.Instance()
	return strings.Join([]string{
		inst.Namespace(),
		strconv.Itoa(inst.Page()),
		strconv.Itoa(inst.PageSize()),
		inst.Cursor(),
		view.Filter(),
	}, "|")
}

// View renders the tab bar, the active view's table, and the status
// footer with the shareable bookmark.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	view := m.views[m.active]
	state := m.states[m.active]

	switch {
	case state.errText != "":
		b.WriteString(errorStyle.Render("error: " + state.errText))
		b.WriteString("\n")
	case m.loading && !state.loaded:
		b.WriteString(m.spinner.View() + " loading…\n")
	case len(state.rows) == 0:
		b.WriteString("No items.\n")
	default:
		b.WriteString(m.renderTable(view.Headers(), state))
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus(state))

	if m.filtering {
		b.WriteString("\n/" + m.filterInput.View())
	}

	return b.String()
}

// renderTabs draws one tab per view.
func (m *Model) renderTabs() string {
	tabs := make([]string, 0, len(m.views))
	for i, v := range m.views {
		style := inactiveTabStyle
		if i == m.active {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(v.Title()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderTable draws the active view's rows with widths fitted to the
// current page.
func (m *Model) renderTable(headers []string, state viewState) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range state.rows {
		for i, cell := range row.Columns {
			if w := runewidth.StringWidth(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] > maxColumnWidth {
			widths[i] = maxColumnWidth
		}
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(joinColumns(headers, widths)))
	b.WriteString("\n")
	for i, row := range state.rows {
		line := joinColumns(row.Columns, widths)
		if i == state.selected {
			line = selectedRowStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// joinColumns pads and truncates cells to the computed widths. Widths
// are display cells, not bytes, so multi-byte and wide runes survive
// the truncation boundary intact.
func joinColumns(cells []string, widths []int) string {
	parts := make([]string, 0, len(cells))
	for i, cell := range cells {
		w := maxColumnWidth
		if i < len(widths) {
			w = widths[i]
		}
		cell = runewidth.Truncate(cell, w, "…")
		parts = append(parts, runewidth.FillRight(cell, w))
	}
	return strings.Join(parts, "  ")
}

// renderStatus draws the pagination position, key hints, and the
// bookmark that restores every view's position.
func (m *Model) renderStatus(state viewState) string {
	inst := m.views[m.active].Instance()

	position := fmt.Sprintf("page %d · %d per page", inst.Page(), inst.PageSize())
	switch {
	case state.hasMore:
		position += " · more →"
	case state.loaded:
		position += " · end"
	}
	if m.loading && state.loaded {
		position += " · " + m.spinner.View()
	}

	hints := "n next · p prev · g first · +/- size · / filter · tab switch · q quit"

	lines := []string{
		statusStyle.Render(position),
		statusStyle.Render(hints),
	}
	if bookmark := m.values.Encode(); bookmark != "" {
		lines = append(lines, statusStyle.Render("bookmark: "+bookmark))
	}
	return strings.Join(lines, "\n")
}
