/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strconv"

	"github.com/cristianoliveira/alonix-notify/internal/colors"
	"github.com/spf13/cobra"
)

func newBadgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "badge",
		Short: "Print the app icon badge count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				fmt.Fprintln(cmd.OutOrStdout(), a.svc.Badge(cmd.Context()))
				return nil
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <count>",
		Short: "Overwrite the badge count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid count %q", args[0])
			}
			return withApp(cmd, func(a *app) error {
				if res := a.svc.SetBadge(cmd.Context(), n); !res.Success {
					return res.Err()
				}
				colors.Success(fmt.Sprintf("Badge set to %d", a.svc.Badge(cmd.Context())))
				return nil
			})
		},
	})
	return cmd
}
