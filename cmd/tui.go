/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/alonix-notify/internal/tui"
	"github.com/spf13/cobra"
)

// runProgram starts the bubbletea program. Tests replace it.
var runProgram = func(cmd *cobra.Command, m tea.Model) error {
	_, err := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	).Run()
	return err
}

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the feed interactively",
		Long: `Browse the feed interactively.

Swipe a notification left with h past the threshold and release with space
to delete it. Enter opens, r toggles read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				return runProgram(cmd, tui.New(cmd.Context(), a.svc))
			})
		},
	}
}
