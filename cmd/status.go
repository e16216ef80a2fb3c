/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/cristianoliveira/alonix-notify/internal/config"
	"github.com/cristianoliveira/alonix-notify/internal/status"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	var (
		format string
		tmux   bool
	)
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print a one-line unread summary for status bars",
		Long: `Print a one-line unread summary for status bars.

Nothing is printed when every notification is read.

FORMATS:
    compact      Bell and unread total (default)
    detailed     Unread count per channel
    count-only   Unread total only`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = config.Get("status_format", status.FormatCompact)
			}
			return withApp(cmd, func(a *app) error {
				line, err := status.Render(a.svc.List(cmd.Context()), status.Options{Format: format, Colors: tmux})
				if err != nil {
					return err
				}
				if line != "" {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Output format: compact, detailed, count-only (default from status_format)")
	cmd.Flags().BoolVar(&tmux, "tmux", false, "Color the output with tmux style sequences")
	return cmd
}
