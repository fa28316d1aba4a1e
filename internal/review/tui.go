package review

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(1, 0, 1, 2)

	itemStyle = lipgloss.NewStyle().
			Padding(0, 0, 0, 4)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			Padding(0, 0, 0, 2)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	detailBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(12)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)
)

// Lines visible in the term list before the detail pane.
const listHeight = 12

type termModel struct {
	terms  []model.DiscoveredTerm
	cursor int
	offset int // first visible list row
	detail viewport.Model
	width  int
	height int
	ready  bool
}

func newTermModel(terms []model.DiscoveredTerm) termModel {
	return termModel{terms: terms}
}

func (m termModel) Init() tea.Cmd {
	return nil
}

func (m termModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.terms)-1 {
				m.cursor++
			}
		case "pgup":
			m.cursor -= listHeight
			if m.cursor < 0 {
				m.cursor = 0
			}
		case "pgdown":
			m.cursor += listHeight
			if m.cursor >= len(m.terms) {
				m.cursor = len(m.terms) - 1
			}
		}

		if m.cursor < m.offset {
			m.offset = m.cursor
		}
		if m.cursor >= m.offset+listHeight {
			m.offset = m.cursor - listHeight + 1
		}
		m.detail.SetContent(m.detailContent())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		detailHeight := m.height - listHeight - 8
		if detailHeight < 4 {
			detailHeight = 4
		}
		if !m.ready {
			m.detail = viewport.New(msg.Width-4, detailHeight)
			m.ready = true
		} else {
			m.detail.Width = msg.Width - 4
			m.detail.Height = detailHeight
		}
		m.detail.SetContent(m.detailContent())
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m termModel) View() string {
	if len(m.terms) == 0 {
		return titleStyle.Render("Discovered Terms") + "\n" +
			itemStyle.Render("no new terms, the dictionaries cover the corpus") + "\n" +
			hintStyle.Render("q quit")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Discovered Terms (%d)", len(m.terms))))
	b.WriteString("\n")

	end := m.offset + listHeight
	if end > len(m.terms) {
		end = len(m.terms)
	}
	for i := m.offset; i < end; i++ {
		t := m.terms[i]
		label := fmt.Sprintf("%-30s %s", t.Term,
			metaStyle.Render(fmt.Sprintf("×%d  %d-gram  %s", t.Frequency, t.NgramSize, t.Source)))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + label))
		} else {
			b.WriteString(itemStyle.Render(label))
		}
		b.WriteString("\n")
	}

	if m.ready {
		b.WriteString("\n")
		b.WriteString(detailBorderStyle.Render(m.detail.View()))
	}

	b.WriteString(hintStyle.Render("↑/↓/j/k navigate  pgup/pgdn page  q quit"))
	return b.String()
}

func (m termModel) detailContent() string {
	if len(m.terms) == 0 {
		return ""
	}
	t := m.terms[m.cursor]

	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("Term", t.Term)
	row("Frequency", fmt.Sprintf("%d jobs", t.Frequency))
	row("N-gram", fmt.Sprintf("%d", t.NgramSize))
	row("Source", string(t.Source))
	if len(t.SampleTitles) > 0 {
		b.WriteString(detailLabelStyle.Render("Samples"))
		b.WriteString("\n")
		for _, title := range t.SampleTitles {
			b.WriteString("  • " + title + "\n")
		}
	}
	return b.String()
}

// Run shows the interactive term browser and blocks until the user quits.
func Run(terms []model.DiscoveredTerm) error {
	p := tea.NewProgram(newTermModel(terms), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running review TUI: %w", err)
	}
	return nil
}
