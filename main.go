package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultPath is the task file, relative to the working directory.
const defaultPath = "todo"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "usage: todo")
		return 2
	}
	closeLog := initLogger()
	defer closeLog()

	list, err := Load(defaultPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", defaultPath, err)
		return 1
	}
	m, err := newSession(list)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	// Run restores the terminal on every exit path, including panics.
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	if s, ok := final.(session); ok && s.Err() != nil {
		fmt.Fprintln(os.Stderr, "error:", s.Err())
		return 1
	}
	logger.Info("session ended", "pending", list.PendingLen(), "completed", list.CompletedLen())
	return 0
}
