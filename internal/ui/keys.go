package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/nzaccagnino/notely/internal/i18n"
)

type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	Back      key.Binding
	Submit    key.Binding
	NextField key.Binding
	New       key.Binding
	Delete    key.Binding
	Archive   key.Binding
	Search    key.Binding
	Home      key.Binding
	Archived  key.Binding
	Refresh   key.Binding
	Logout    key.Binding
	Register  key.Binding
	Quit      key.Binding
	Help      key.Binding
}

func NewKeyMap() KeyMap {
	t := i18n.T()
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", t.KeyUp),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", t.KeyDown),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", t.KeyOpen),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", t.KeyBack),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("Ctrl+S", t.KeySubmit),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", t.KeyNextField),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", t.KeyNew),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", t.KeyDelete),
		),
		Archive: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", t.KeyArchive),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", t.KeySearch),
		),
		Home: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", t.KeyHome),
		),
		Archived: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", t.KeyArchived),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", t.KeyRefresh),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("Ctrl+L", t.KeyLogout),
		),
		Register: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("Ctrl+R", t.KeyRegister),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("Ctrl+Q", t.KeyQuit),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", t.KeyHelp),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.New, k.Search, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Back},
		{k.New, k.Delete, k.Archive, k.Search},
		{k.Home, k.Archived, k.Refresh, k.Logout},
		{k.Submit, k.NextField, k.Register, k.Help, k.Quit},
	}
}
