// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Choice is one snapshot offered by the picker.
type Choice struct {
	Label string
	Data  []byte
}

// SelectSnapshots lets the user pick two snapshots. The first one picked is
// the baseline. A nil result means the user quit.
func SelectSnapshots(items []Choice) ([]Choice, error) {
	if len(items) < 2 {
		return nil, errors.New("at least two cached requests are needed to pick from")
	}

	m, err := tea.NewProgram(pickerModel{items: items}).Run()
	if err != nil {
		return nil, fmt.Errorf("picker failed: %w", err)
	}

	pm := m.(pickerModel)
	if len(pm.selected) != 2 {
		return nil, nil
	}
	return []Choice{items[pm.selected[0]], items[pm.selected[1]]}, nil
}

type pickerModel struct {
	items    []Choice
	cursor   int
	selected []int
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			m.selected = nil
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case " ":
			if i := m.position(m.cursor); i >= 0 {
				m.selected = append(m.selected[:i:i], m.selected[i+1:]...)
			} else if len(m.selected) < 2 {
				m.selected = append(m.selected, m.cursor)
			}
		case "enter":
			if len(m.selected) == 2 {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString("Select two cached requests, baseline first:\n\n")
	for i, item := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if p := m.position(i); p >= 0 {
			mark = fmt.Sprint(p + 1)
		}
		fmt.Fprintf(&b, "%s [%s] %s\n", cursor, mark, item.Label)
	}
	b.WriteString("\nSPACE: toggle, ENTER: go, Q/ESCAPE: quit\n")
	return b.String()
}

// position returns where item i sits in the selection, or -1.
func (m pickerModel) position(i int) int {
	for p, s := range m.selected {
		if s == i {
			return p
		}
	}
	return -1
}
