package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aquarium214/monotorrent/internal/metadata"
)

var (
	tableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder())
	infoBoxStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Width(77)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render
)

type mode int

const (
	modeMain     mode = iota // default
	modePickFile             // show file-picker in a dialog
)

type model struct {
	table      table.Model
	help       help.Model
	keyMap     keyMap
	filepicker filepicker.Model
	uiMode     mode
	quitting   bool

	err string

	torrents []*metadata.Torrent
}

type keyMap struct {
	open key.Binding
	quit key.Binding
}

type newTorrentMsg struct {
	t *metadata.Torrent
}

type errMsg struct {
	err error
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wm, ok := msg.(tea.WindowSizeMsg); ok {
		m.help.Width = wm.Width
		m.filepicker, _ = m.filepicker.Update(msg)
	}

	switch m.uiMode {
	case modePickFile:
		return m.updatePicker(msg)
	default:
		return m.updateMain(msg)
	}
}

func (m model) updateMain(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keyMap.open):
			m.uiMode = modePickFile
			return m, m.filepicker.Init()
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	case newTorrentMsg:
		m.err = ""
		m.torrents = append(m.torrents, msg.t)
		m.updateRows()
		m.table.SetCursor(len(m.table.Rows()) - 1)
		return m, nil
	case errMsg:
		m.err = msg.err.Error()
		return m, nil
	}

	return m, nil
}

func (m model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, m.keyMap.quit) {
			m.uiMode = modeMain
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filepicker, cmd = m.filepicker.Update(msg)

	if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
		m.uiMode = modeMain

		return m, tea.Batch(cmd, m.openTorrent(path))
	}

	return m, cmd
}

func (m model) openTorrent(path string) tea.Cmd {
	return func() tea.Msg {
		t, err := metadata.Parse(path)
		if err != nil {
			return errMsg{err}
		}

		return newTorrentMsg{t}
	}
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	if m.uiMode == modePickFile {
		return "Open torrent:" + " " + m.filepicker.CurrentDirectory + "\n\n" + m.filepicker.View() + "\n"
	}

	helpView := m.help.ShortHelpView([]key.Binding{
		m.keyMap.open,
		m.keyMap.quit,
	})

	infoBox := m.updateInfoBox()

	return lipgloss.JoinVertical(lipgloss.Left, tableStyle.Render(m.table.View()), infoBox, helpView)
}

func (m *model) updateRows() {
	rows := make([]table.Row, 0, len(m.torrents))
	for i, t := range m.torrents {
		rows = append(rows, table.Row{
			fmt.Sprint(i + 1),
			t.Name,
			fmt.Sprintf("%.2fMB", float64(t.Size)/bytesInMB),
			fmt.Sprint(len(t.Files)),
			fmt.Sprint(t.Pieces.Count()),
		})
	}
	m.table.SetRows(rows)
}

const bytesInMB = 1024 * 1024

func (m *model) updateInfoBox() string {
	if m.err != "" {
		return infoBoxStyle.Render(m.err)
	}

	if len(m.torrents) == 0 {
		return infoBoxStyle.Render("No torrent")
	}

	i := m.table.Cursor()
	if i < 0 || i >= len(m.torrents) {
		return infoBoxStyle.Render("Select a torrent")
	}

	t := m.torrents[i]

	trackers := 0
	for _, tier := range t.Tiers {
		trackers += len(tier)
	}

	info := strings.Builder{}
	info.WriteString("\n")
	info.WriteString(fmt.Sprintf("Hash: %s", t.InfoHash))
	info.WriteString("\n")
	info.WriteString(fmt.Sprintf("Size: %.2fMB", float64(t.Size)/bytesInMB))
	info.WriteString("\n")
	info.WriteString(fmt.Sprintf("Trackers: %d in %d tiers", trackers, len(t.Tiers)))
	info.WriteString("\n")
	info.WriteString(fmt.Sprintf("Private: %v", t.Private))

	return infoBoxStyle.Render(info.String())
}

func configurePicker() filepicker.Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".torrent"}

	return fp
}

func configureTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 2},
		{Title: "Name", Width: 30},
		{Title: "Size", Width: 10},
		{Title: "Files", Width: 8},
		{Title: "Pieces", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(7),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func main() {
	fp := configurePicker()
	t := configureTable()

	m := model{filepicker: fp, table: t,
		keyMap: keyMap{
			open: key.NewBinding(
				key.WithKeys("o"),
				key.WithHelp("o", "open"),
			),
			quit: key.NewBinding(
				key.WithKeys("q", "ctrl+c"),
				key.WithHelp("q", "quit"),
			),
		},
		help: help.New(),
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Println("Error running program:", err)
		os.Exit(1)
	}
}
