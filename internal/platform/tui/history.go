package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// History layout constants
const (
	maxGames      = 200 // Max games to load
	historyChrome = 9   // Title, tabs, totals, borders and help
)

// historyFilters are the source tabs, "all" first.
var historyFilters = []string{
	"all",
	storage.SourceTUI,
	storage.SourceSSH,
	storage.SourceWindow,
	storage.SourceSim,
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextSource key.Binding
	PrevSource key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextSource, k.PrevSource, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextSource, k.PrevSource, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextSource: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next source"),
		),
		PrevSource: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev source"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing finished games.
type HistoryModel struct {
	all      []storage.GameRecord
	shown    []storage.GameRecord
	totals   storage.Totals
	filter   int
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	quitting bool
}

// NewHistoryModel loads recent games from store.
func NewHistoryModel(store *storage.Store, width, height int) (HistoryModel, error) {
	records, err := store.RecentGames(maxGames)
	if err != nil {
		return HistoryModel{}, err
	}
	totals, err := store.Totals()
	if err != nil {
		return HistoryModel{}, err
	}
	return newHistoryModel(records, totals, width, height), nil
}

func newHistoryModel(records []storage.GameRecord, totals storage.Totals, width, height int) HistoryModel {
	m := HistoryModel{
		all:    records,
		totals: totals,
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.applyFilter()
	return m
}

// createTable creates a new table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(historyColumns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-historyChrome, 3)),
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

func historyColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 5},
		{Title: "Source", Width: 8},
		{Title: "Pieces", Width: 8},
		{Title: "Rows", Width: 6},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 14},
	}
}

func historyRows(records []storage.GameRecord) []table.Row {
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			r.Source,
			fmt.Sprintf("%d", r.Pieces),
			fmt.Sprintf("%d", r.RowsCleared),
			formatDuration(r.Duration),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

// applyFilter narrows the loaded games to the selected source.
func (m *HistoryModel) applyFilter() {
	source := historyFilters[m.filter]
	if source == "all" {
		m.shown = m.all
	} else {
		m.shown = m.shown[:0:0]
		for _, r := range m.all {
			if r.Source == source {
				m.shown = append(m.shown, r)
			}
		}
	}
	m.table.SetRows(historyRows(m.shown))
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextSource):
			m.filter = (m.filter + 1) % len(historyFilters)
			m.applyFilter()
			return m, nil

		case key.Matches(msg, m.keys.PrevSource):
			m.filter = (m.filter + len(historyFilters) - 1) % len(historyFilters)
			m.applyFilter()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.applyFilter()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("GAME HISTORY", m.width)))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	b.WriteString(helpStyle.Render(formatTotals(m.totals)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m HistoryModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(historyFilters))
	for i, f := range historyFilters {
		if i == m.filter {
			tabs[i] = activeTabStyle.Render(f)
		} else {
			tabs[i] = tabStyle.Render(" " + f + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.shown) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No games recorded yet.\nFinish a game to see it here!")
	}

	return m.table.View()
}

// RunHistory runs the interactive history screen.
func RunHistory(store *storage.Store, width, height int) error {
	model, err := NewHistoryModel(store, width, height)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// HistoryTable renders records as a static table for non-interactive output.
func HistoryTable(records []storage.GameRecord, totals storage.Totals) string {
	t := table.New(
		table.WithColumns(historyColumns()),
		table.WithRows(historyRows(records)),
		table.WithHeight(len(records)+1),
	)
	s := table.DefaultStyles()
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
	return t.View() + "\n" + formatTotals(totals)
}

func formatTotals(t storage.Totals) string {
	if t.Games == 0 {
		return "no games"
	}
	return fmt.Sprintf("%d games, %d pieces, %d rows, best %d rows, %s played",
		t.Games, t.Pieces, t.RowsCleared, t.BestRows, formatDuration(t.PlayTime))
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d >= time.Hour {
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	}
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// centerText pads text to center it within width cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
