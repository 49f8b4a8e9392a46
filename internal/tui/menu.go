package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a menu entry the user can trigger.
type Action int

const (
	ActionNone Action = iota
	ActionExportArc
	ActionExportZen
	ActionMigrate
	ActionRestore
	ActionDeleteBackups
	ActionQuit
)

type entry struct {
	action Action
	label  string
	desc   string
}

var entries = []entry{
	{ActionExportArc, "Export Arc bookmarks", "Arc sidebar to a portable HTML file"},
	{ActionExportZen, "Export Zen bookmarks", "Zen pinned tabs to a portable HTML file"},
	{ActionMigrate, "Migrate Arc to Zen", "copy Arc spaces into Zen workspaces"},
	{ActionRestore, "Restore a backup", "roll the Zen session files back"},
	{ActionDeleteBackups, "Delete backups", "remove all session snapshots"},
	{ActionQuit, "Quit", ""},
}

// Menu is the top-level action menu.
type Menu struct {
	keys   KeyMap
	styles Styles
	cursor int
	chosen Action
}

// NewMenu creates the menu with default keys and styles.
func NewMenu() Menu {
	return Menu{
		keys:   DefaultKeyMap(),
		styles: DefaultStyles(),
	}
}

// Init implements tea.Model.
func (m Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.chosen = ActionQuit
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Select):
		m.chosen = entries[m.cursor].action
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(entries)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Menu) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("arczen"))
	b.WriteString("\n\n")

	for i, e := range entries {
		style := m.styles.Item
		if i == m.cursor {
			style = m.styles.ItemSelected
		}
		b.WriteString(style.Render(e.label))
		b.WriteString("\n")
		if e.desc != "" {
			b.WriteString(m.styles.Desc.Render(e.desc))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.styles.Help.Render("j/k: move  enter: select  q: quit"))

	return m.styles.App.Render(b.String())
}

// Chosen returns the action picked by the user, ActionNone if the program
// ended without a selection.
func (m Menu) Chosen() Action {
	return m.chosen
}
