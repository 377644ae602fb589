package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Prompt hooks. Tests replace them.
var (
	isInteractive = isInteractiveTTY
	askNodePath   = promptNodePath
	confirmDelete = promptConfirmDelete
)

// isInteractiveTTY checks if stdin is connected to an interactive terminal.
func isInteractiveTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// promptNodePath asks for the first node path when the tree is empty.
func promptNodePath() (string, error) {
	var path string
	form := huh.NewInput().
		Title("No nodes yet. Create one to attach the collector to:").
		Placeholder("prod.web").
		Value(&path).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("node path is required")
			}
			return nil
		})

	if err := form.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(path), nil
}

// promptConfirmDelete asks before removing a stored collector.
func promptConfirmDelete(id int64, name string) bool {
	var confirmed bool
	form := huh.NewConfirm().
		Title(fmt.Sprintf("Delete port collector #%d (%s)?", id, name)).
		Affirmative("Delete").
		Negative("Keep").
		Value(&confirmed)

	if err := form.Run(); err != nil {
		return false
	}
	return confirmed
}
