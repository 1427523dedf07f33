package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Down     key.Binding
	Up       key.Binding
	Add      key.Binding
	Complete key.Binding
	Remove   key.Binding
	Clear    key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Down:     key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "move down")),
		Up:       key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "move up")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add a todo")),
		Complete: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tick a todo")),
		Remove:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "remove a todo")),
		Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear done list")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpLines lays the bindings out over the two keybinding lines under the title.
func (k keyMap) helpLines() [2]string {
	return [2]string{
		"Keybindings: " + joinHelp(k.Down, k.Up, k.Add),
		"             " + joinHelp(k.Complete, k.Remove, k.Clear, k.Quit),
	}
}

func joinHelp(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, "'"+h.Key+"' to "+h.Desc)
	}
	return strings.Join(parts, ", ")
}
