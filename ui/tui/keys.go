package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Delete        key.Binding
	Keep          key.Binding
	Pending       key.Binding
	Undo          key.Binding
	NextSelection key.Binding
	Reload        key.Binding
	ConfirmDelete key.Binding
	ResetKept     key.Binding
	ResetPending  key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Delete: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "delete"),
		),
		Keep: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "keep"),
		),
		Pending: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "pending"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		NextSelection: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "next album/month/year"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan and reload"),
		),
		ConfirmDelete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete marked items"),
		),
		ResetKept: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "reset kept"),
		),
		ResetPending: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "reset pending"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Delete, k.Keep, k.Pending, k.Undo, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Delete, k.Keep, k.Pending, k.Undo},
		{k.NextSelection, k.Reload, k.ConfirmDelete},
		{k.ResetKept, k.ResetPending, k.Help, k.Quit},
	}
}
