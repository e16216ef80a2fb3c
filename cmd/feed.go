/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/cristianoliveira/alonix-notify/internal/colors"
	"github.com/cristianoliveira/alonix-notify/internal/service"
	"github.com/spf13/cobra"
)

// newIDCmd builds a command that applies op to one notification id.
func newIDCmd(use, short, done string, op func(a *app, ctx context.Context, id string) service.Result) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				res := op(a, cmd.Context(), args[0])
				if !res.Success {
					return res.Err()
				}
				colors.Success(fmt.Sprintf("%s (ID: %s)", done, args[0]))
				return nil
			})
		},
	}
}

func newMarkReadCmd() *cobra.Command {
	return newIDCmd("mark-read", "Mark a notification as read", "Marked as read",
		func(a *app, ctx context.Context, id string) service.Result { return a.svc.MarkRead(ctx, id) })
}

func newMarkUnreadCmd() *cobra.Command {
	return newIDCmd("mark-unread", "Mark a notification as unread", "Marked as unread",
		func(a *app, ctx context.Context, id string) service.Result { return a.svc.MarkUnread(ctx, id) })
}

func newToggleCmd() *cobra.Command {
	return newIDCmd("toggle", "Flip a notification between read and unread", "Toggled",
		func(a *app, ctx context.Context, id string) service.Result { return a.svc.Toggle(ctx, id) })
}

func newDeleteCmd() *cobra.Command {
	return newIDCmd("delete", "Remove a notification from the feed", "Deleted",
		func(a *app, ctx context.Context, id string) service.Result { return a.svc.Delete(ctx, id) })
}

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <id>",
		Short: "Open a notification and print where it links to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				target, res := a.svc.Open(cmd.Context(), args[0])
				if !res.Success {
					return res.Err()
				}
				fmt.Fprint(cmd.OutOrStdout(), target.Screen)
				keys := make([]string, 0, len(target.Params))
				for k := range target.Params {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(cmd.OutOrStdout(), " %s=%s", k, target.Params[k])
				}
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			})
		},
	}
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every notification and reset the badge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				res := a.svc.ClearAll(cmd.Context())
				if !res.Success {
					colors.Warning("feed cleared but the device tray was not: " + res.Error)
					return nil
				}
				colors.Success("All notifications cleared")
				return nil
			})
		},
	}
}
