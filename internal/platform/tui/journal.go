package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/JocelynWeiss/theCell/internal/registry"
	"github.com/JocelynWeiss/theCell/internal/storage"
)

const maxJournalRuns = 100

// JournalKeyMap defines the key bindings for the journal.
type JournalKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Back, k.Quit},
	}
}

// DefaultJournalKeyMap returns default key bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next filter"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev filter"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// journalFilter selects which runs the table shows. An empty ID shows all.
type journalFilter struct {
	ID    string
	Title string
}

// JournalModel is the Bubble Tea model for the run journal.
type JournalModel struct {
	filters   []journalFilter
	cursor    int
	store     *storage.Store
	runs      []storage.RunRecord
	stats     *storage.RunStats
	best      *storage.RunRecord
	table     table.Model
	help      help.Model
	keys      JournalKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewJournalModel creates a journal model showing every variant first.
func NewJournalModel(store *storage.Store, width, height int) JournalModel {
	filters := []journalFilter{{Title: "All runs"}}
	known := make(map[string]bool)
	for _, g := range registry.List() {
		filters = append(filters, journalFilter{ID: g.ID, Title: g.Title})
		known[g.ID] = true
	}
	if store != nil {
		// Runs of variants that are no longer registered keep a filter
		if ids, err := store.GameIDs(); err == nil {
			for _, id := range ids {
				if !known[id] {
					filters = append(filters, journalFilter{ID: id, Title: id})
				}
			}
		}
	}

	m := JournalModel{
		filters: filters,
		store:   store,
		keys:    DefaultJournalKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates the runs table.
func (m *JournalModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Game", Width: 16},
		{Title: "Seed", Width: 20},
		{Title: "Result", Width: 8},
		{Title: "Score", Width: 6},
		{Title: "Moves", Width: 6},
		{Title: "Rot", Width: 4},
		{Title: "Deaths", Width: 6},
		{Title: "Time", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads runs and statistics for the current filter.
func (m *JournalModel) load() {
	m.runs, m.stats, m.best = nil, nil, nil
	if m.store != nil {
		id := m.filters[m.cursor].ID
		if runs, err := m.store.RecentRuns(id, maxJournalRuns); err == nil {
			m.runs = runs
		}
		if id != "" {
			m.stats, _ = m.store.Stats(id)
			m.best, _ = m.store.BestRun(id)
		}
	}
	m.table.SetRows(journalRows(m.runs))
	m.table.GotoTop()
}

// journalRows formats runs as table rows.
func journalRows(runs []storage.RunRecord) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		result := "dead"
		if r.Won {
			result = "escaped"
		}
		rows[i] = table.Row{
			strconv.FormatInt(r.ID, 10),
			r.GameID,
			strconv.FormatInt(r.Seed, 10),
			result,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Moves),
			strconv.Itoa(r.Rotations),
			strconv.Itoa(r.Deaths),
			r.CreatedAt.Format("15:04:05"),
		}
	}
	return rows
}

// Init initializes the journal model.
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			m.cursor = (m.cursor + 1) % len(m.filters)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			m.cursor = (m.cursor + len(m.filters) - 1) % len(m.filters)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.table.SetRows(journalRows(m.runs))
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the journal.
func (m JournalModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder
	title := fmt.Sprintf("RUN JOURNAL - %s", m.filters[m.cursor].Title)
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	if len(m.runs) == 0 {
		empty := dimStyle.Italic(true).Padding(1, 4).Render("No runs this session.\nRuns are kept in memory until you quit.")
		b.WriteString(boxStyle.Render(empty))
	} else {
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// statsLine summarizes the selected variant.
func (m JournalModel) statsLine() string {
	if m.stats == nil {
		return fmt.Sprintf("%d runs", len(m.runs))
	}
	line := fmt.Sprintf("%d runs  %d escapes  %d deaths  %.1f moves/run",
		m.stats.Runs, m.stats.Wins, m.stats.Deaths, m.stats.AvgMoves)
	if m.best != nil {
		line += fmt.Sprintf("  best %d (seed %d)", m.best.Score, m.best.Seed)
	}
	return line
}

// IsGoingBack returns true if user wants to go back to menu.
func (m JournalModel) IsGoingBack() bool {
	return m.goingBack
}

// RunJournal runs the journal screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunJournal(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewJournalModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(JournalModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
