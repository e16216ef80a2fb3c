/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/alonix-notify/internal/colors"
	"github.com/cristianoliveira/alonix-notify/internal/domain"
	"github.com/cristianoliveira/alonix-notify/internal/format"
	"github.com/spf13/cobra"
)

const listLong = `List the notification feed, most recent first.

USAGE:
    alonix-notify list [OPTIONS]

OPTIONS:
    --filter <status>    Show only read or unread notifications
    --category <name>    Show only one category
    --format=<format>    Output format: simple (default), table, compact, json
    -h, --help           Show this help`

func newListCmd() *cobra.Command {
	var (
		filter   string
		category string
		output   string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		Long:  listLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filter != "" && filter != "read" && filter != "unread" {
				return fmt.Errorf("invalid filter %q (expected read or unread)", filter)
			}
			if category != "" {
				if _, err := domain.ParseCategory(category); err != nil {
					return err
				}
			}
			output = strings.ToLower(output)
			if !validFormat(output) {
				return fmt.Errorf("invalid format %q", output)
			}

			return withApp(cmd, func(a *app) error {
				records := filterRecords(a.svc.List(cmd.Context()), filter, domain.Category(category))
				if len(records) == 0 && format.FormatterType(output) != format.FormatterTypeJSON {
					colors.Info("No notifications")
					return nil
				}
				return format.NewFormatter(format.FormatterType(output)).FormatNotifications(records, cmd.OutOrStdout())
			})
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "Filter by read status: read, unread")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&output, "format", string(format.FormatterTypeSimple), "Output format")
	return cmd
}

func validFormat(name string) bool {
	for _, t := range format.FormatterTypes {
		if name == string(t) {
			return true
		}
	}
	return false
}

func filterRecords(records []domain.Record, filter string, category domain.Category) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if filter == "read" && !r.Read || filter == "unread" && r.Read {
			continue
		}
		if category != "" && r.Type != category {
			continue
		}
		out = append(out, r)
	}
	return out
}
