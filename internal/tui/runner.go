package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run executes model as a full-screen program and returns its final state.
func Run(model tea.Model) (tea.Model, error) {
	if !IsInteractive() {
		return nil, fmt.Errorf("interactive mode requires a terminal")
	}
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, fmt.Errorf("interactive session failed: %w", err)
	}
	return final, nil
}

// Success formats a completion message with the check symbol.
func Success(message string) string {
	return SuccessStyle.Render(SymbolCheck + " " + message)
}

// Failure formats an error message with the cross symbol.
func Failure(message string) string {
	return ErrorStyle.Render(SymbolCross + " " + message)
}
