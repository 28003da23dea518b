package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bumpline/bumpline/pkg/version"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// PackageListModel is the bubbletea model for interactive package
// selection. Selected is set when the user confirms a row and stays nil
// when the picker is dismissed.
type PackageListModel struct {
	Packages []version.Package
	Cursor   int
	Selected *version.Package
	Height   int
	Offset   int
}

// NewPackageListModel creates a package list model over pkgs.
func NewPackageListModel(pkgs []version.Package) PackageListModel {
	return PackageListModel{
		Packages: pkgs,
		Cursor:   0,
		Height:   15,
		Offset:   0,
	}
}

func (m PackageListModel) Init() tea.Cmd {
	return nil
}

func (m PackageListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Packages)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = &m.Packages[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PackageListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Package"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Packages) {
		end = len(m.Packages)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Packages[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		declared := p.Config.Version
		if declared == "" {
			declared = "—"
		}

		rows = append(rows, []string{cursor, p.Module, p.Config.Name, declared, p.Dir})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Module", "Name", "Version", "Directory").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Packages) {
				return lipgloss.NewStyle()
			}
			p := m.Packages[actualIdx]
			versioned := p.Config.Version != ""
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if col == 4 {
				base = base.Foreground(colorDim)
			}

			switch {
			case isCurrent && versioned:
				if col != 4 {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Bold(true)
			case isCurrent:
				return base.Foreground(colorDim).Bold(true)
			case versioned:
				return base
			}
			return base.Foreground(colorDim)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Packages))))

	return b.String()
}

// pickPackage runs the picker and returns the chosen package, or nil when
// the user dismissed it without selecting.
func pickPackage(pkgs []version.Package) (*version.Package, error) {
	p := tea.NewProgram(NewPackageListModel(pkgs))
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	fm, ok := finalModel.(PackageListModel)
	if !ok {
		return nil, nil
	}
	return fm.Selected, nil
}
