// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tfctl/resfilter/internal/config"
)

// maxHistory is the number of entries kept in the history file.
const maxHistory = 1000

// Run starts the interactive console over a request snapshot.
func Run(doc []byte, title string) error {
	p := tea.NewProgram(newModel(doc, title, HistoryFile()))
	_, err := p.Run()
	return err
}

// HistoryFile returns the console history path: config "inspect.history",
// else ~/.resfilter_history.
func HistoryFile() string {
	if h, err := config.GetString("inspect.history"); err == nil && h != "" {
		return h
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".resfilter_history"
	}
	return filepath.Join(homeDir, ".resfilter_history")
}

// model is the console's Bubble Tea model.
type model struct {
	input       textinput.Model
	history     []string // everything, including earlier sessions
	histIndex   int
	histFile    string
	transcript  []string // this session's prompts and answers
	doc         []byte
	promptStyle lipgloss.Style
}

func newModel(doc []byte, title, histFile string) model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 2048
	ti.Width = 999
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorBlink)

	transcript := []string{}
	if title != "" {
		transcript = append(transcript, fmt.Sprintf("Inspecting request for %s.", title))
	}
	transcript = append(transcript, "Type 'help' for syntax, 'exit' or Ctrl+C to quit.")

	return model{
		input:       ti,
		history:     loadHistory(histFile),
		histIndex:   -1,
		histFile:    histFile,
		transcript:  transcript,
		doc:         doc,
		promptStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#00c8f0")),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			entry := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if entry == "" {
				return m, nil
			}
			if entry == "exit" || entry == "quit" {
				return m, tea.Quit
			}

			answer := helpText
			if entry != "help" {
				answer = Evaluate(m.doc, entry)
			}
			m.transcript = append(m.transcript, m.promptStyle.Render("> ")+entry, answer)
			m.history = append(m.history, entry)
			m.histIndex = -1
			saveHistory(m.histFile, m.history)
			return m, nil

		case "up":
			if len(m.history) == 0 {
				return m, nil
			}
			if m.histIndex == -1 {
				m.histIndex = len(m.history) - 1
			} else if m.histIndex > 0 {
				m.histIndex--
			}
			m.input.SetValue(m.history[m.histIndex])
			m.input.CursorEnd()
			return m, nil

		case "down":
			if len(m.history) == 0 {
				return m, nil
			}
			if m.histIndex >= 0 && m.histIndex < len(m.history)-1 {
				m.histIndex++
				m.input.SetValue(m.history[m.histIndex])
				m.input.CursorEnd()
			} else {
				m.histIndex = -1
				m.input.SetValue("")
			}
			return m, nil

		case "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	lines := append([]string{}, m.transcript...)
	lines = append(lines, m.promptStyle.Render("> ")+m.input.View())
	return strings.Join(lines, "\n")
}

const helpText = `Query syntax:
  1. JSON output (queries starting with '.')
     .                                 - The whole request
     .project.build                    - The project's build section
     .delimiters.0                     - First delimiter spec
     .delimiters[1].begin              - Bracket indexes work too

  2. List output (queries not starting with '.')
     project                           - Keys of the project
     effectiveFilters                  - One filter per line
     additionalProperties.env          - A single property

  3. Expressions (queries starting with '/' or containing parens)
     /length(effectiveFilters)         - Number of filter files
     /upper(encoding)                  - Uppercase encoding
     /keys(additionalProperties)       - Property names
     /join(":", [project.groupId, project.artifactId])

  Shortcuts:
     coordinates                       - group:artifact:version
     delimiters                        - Delimiter tokens

  Navigation:
     ↑/↓ arrows                        - Navigate command history
     Ctrl+C                            - Exit`

func loadHistory(filename string) []string {
	var history []string

	file, err := os.Open(filename)
	if err != nil {
		return history
	}
	defer file.Close() //nolint:errcheck

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			history = append(history, line)
		}
	}
	return history
}

func saveHistory(filename string, history []string) {
	start := 0
	if len(history) > maxHistory {
		start = len(history) - maxHistory
	}

	file, err := os.Create(filename)
	if err != nil {
		return
	}
	defer file.Close() //nolint:errcheck

	writer := bufio.NewWriter(file)
	for _, h := range history[start:] {
		fmt.Fprintln(writer, h)
	}
	writer.Flush() //nolint:errcheck
}
