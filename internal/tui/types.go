package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"

	"github.com/mabhi256/jvmch/internal/jar"
)

type Model struct {
	// Data
	report *jar.Report

	// UI State
	currentTab TabType
	width      int
	height     int
	entries    list.Model
	scroll     map[TabType]int

	keys KeyMap
	help help.Model
}

type TabType int

const (
	EntriesTab TabType = iota
	EntryPointsTab
	ManifestTab
)

const lastTab = ManifestTab

func (t TabType) String() string {
	switch t {
	case EntriesTab:
		return "Entries"
	case EntryPointsTab:
		return "Entry points"
	case ManifestTab:
		return "Manifest"
	default:
		return "?"
	}
}

type KeyMap struct {
	Tab1  key.Binding
	Tab2  key.Binding
	Tab3  key.Binding
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding
	Quit  key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab1, k.Tab2, k.Tab3},
		{k.Left, k.Right, k.Up, k.Down, k.Quit},
	}
}

func k(keys []string, help, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(help, desc),
	)
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab1:  k([]string{"1"}, "1", "entries"),
		Tab2:  k([]string{"2"}, "2", "entry points"),
		Tab3:  k([]string{"3"}, "3", "manifest"),
		Left:  k([]string{"left", "h"}, "←/h", "prev tab"),
		Right: k([]string{"right", "l", "tab"}, "→/l", "next tab"),
		Up:    k([]string{"up", "k"}, "↑/k", "up"),
		Down:  k([]string{"down", "j"}, "↓/j", "down"),
		Quit:  k([]string{"q", "ctrl+c"}, "q", "quit"),
	}
}
