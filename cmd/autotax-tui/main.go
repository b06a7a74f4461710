package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dealdesk/autotax/internal/rules"
	"github.com/dealdesk/autotax/internal/tui"
)

func main() {
	registry, err := rules.NewRegistry()
	if err != nil {
		fmt.Printf("Error: rule table failed integrity check: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		tui.NewModel(registry),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
