package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bomberman/internal/storage"
)

// maxRecapRuns is how many runs the recap table lists.
const maxRecapRuns = 50

// Recap is the session recap panel: every run the journal holds, newest
// first, with the current run marked.
type Recap struct {
	journal *storage.Journal
	runs    []storage.RunSummary
	current string
	table   table.Model
	width   int
	height  int
	err     error
}

// NewRecap creates a recap panel over the journal. A nil journal shows an
// empty panel.
func NewRecap(j *storage.Journal, width, height int) Recap {
	r := Recap{
		journal: j,
		width:   width,
		height:  height,
	}
	r.table = r.createTable()
	return r
}

// createTable creates a new table with appropriate columns.
func (r *Recap) createTable() table.Model {
	columns := []table.Column{
		{Title: " ", Width: 1},
		{Title: "Started", Width: 8},
		{Title: "Player", Width: 10},
		{Title: "Level", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Kills", Width: 5},
		{Title: "Time", Width: 6},
		{Title: "Status", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, r.height-8)), // Leave room for title, help and borders
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

// Refresh reloads runs from the journal. tickRate converts tick counts to
// seconds for the Time column.
func (r *Recap) Refresh(current string, tickRate int) {
	r.current = current
	r.runs = nil
	r.err = nil
	if r.journal != nil {
		r.runs, r.err = r.journal.Runs(maxRecapRuns)
	}
	r.updateTableRows(tickRate)
}

func (r *Recap) updateTableRows(tickRate int) {
	if tickRate <= 0 {
		tickRate = 30
	}
	rows := make([]table.Row, len(r.runs))
	for i, s := range r.runs {
		mark := ""
		if s.RunID == r.current {
			mark = "*"
		}
		status := "playing"
		if s.Over {
			status = "over"
		}
		secs := s.Ticks / tickRate
		rows[i] = table.Row{
			mark,
			s.StartedAt.Format("15:04:05"),
			truncate(s.Player, 10),
			fmt.Sprintf("%d", max(s.MaxLevel, 1)),
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Kills),
			fmt.Sprintf("%d:%02d", secs/60, secs%60),
			status,
		}
	}
	r.table.SetRows(rows)
	r.table.GotoTop()
}

// SetSize adapts the table to a new terminal size.
func (r *Recap) SetSize(width, height int) {
	r.width = width
	r.height = height
	rows := r.table.Rows()
	r.table = r.createTable()
	r.table.SetRows(rows)
}

// Update forwards scrolling keys to the table.
func (r Recap) Update(msg tea.Msg) (Recap, tea.Cmd) {
	var cmd tea.Cmd
	r.table, cmd = r.table.Update(msg)
	return r, cmd
}

// Len returns the number of listed runs.
func (r Recap) Len() int {
	return len(r.runs)
}

// View renders the panel.
func (r Recap) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("SESSION RUNS", r.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(r.width, lipgloss.Center, tableStyle.Render(r.content())))

	return b.String()
}

func (r Recap) content() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(1, 4)
	switch {
	case r.err != nil:
		return emptyStyle.Render("Journal unavailable:\n" + r.err.Error())
	case len(r.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.")
	}
	return r.table.View()
}

// centerText centers a single line of text within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "."
}
