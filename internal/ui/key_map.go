package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	transfer key.Binding
	conform  key.Binding
	remove   key.Binding
	clear    key.Binding
	swap     key.Binding
	sort     key.Binding
	save     key.Binding
	restart  key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		transfer: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "transfer")),
		conform:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "conform genres")),
		remove:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear list")),
		swap:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch list")),
		sort:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "cycle sort")),
		save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		restart:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.transfer, k.conform, k.remove, k.clear},
		{k.swap, k.sort, k.save, k.quit},
	}
}
