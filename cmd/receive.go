/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/alonix-notify/internal/colors"
	"github.com/cristianoliveira/alonix-notify/internal/domain"
	"github.com/spf13/cobra"
)

const receiveLong = `Deliver a notification as if it arrived from the push service.

USAGE:
    alonix-notify receive [OPTIONS] <title> [body...]
    echo '{"title":"...","body":"...","data":{...}}' | alonix-notify receive --stdin

The category in data selects the channel, sound and navigation target.
Unknown categories are delivered as system notifications.

OPTIONS:
    --category <name>    Notification category (default: system)
    --data key=value     Extra payload entries, repeatable
    --stdin              Read a JSON payload from standard input
    -h, --help           Show this help`

func newReceiveCmd() *cobra.Command {
	var (
		category string
		data     map[string]string
		stdin    bool
	)
	cmd := &cobra.Command{
		Use:   "receive <title> [body...]",
		Short: "Deliver an incoming notification",
		Long:  receiveLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in domain.Incoming
			if stdin {
				payload, err := readIncoming(cmd.InOrStdin())
				if err != nil {
					return err
				}
				in = payload
			} else {
				if len(args) == 0 {
					return errors.New("'receive' requires a title")
				}
				in = domain.Incoming{Title: args[0], Body: strings.Join(args[1:], " "), Data: map[string]any{}}
			}
			if in.Data == nil {
				in.Data = map[string]any{}
			}
			for k, v := range data {
				in.Data[k] = v
			}
			if category != "" {
				if _, err := domain.ParseCategory(category); err != nil {
					return err
				}
				in.Data["category"] = category
			}

			return withApp(cmd, func(a *app) error {
				receipt := a.svc.Receive(cmd.Context(), in)
				if !receipt.Success {
					colors.Warning("delivered with errors: " + receipt.Error)
				}
				colors.Success(fmt.Sprintf("Notification received (ID: %s, %s)", receipt.Record.ID, receipt.Decision.Reason))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Notification category")
	cmd.Flags().StringToStringVar(&data, "data", nil, "Extra payload entries (key=value)")
	cmd.Flags().BoolVar(&stdin, "stdin", false, "Read a JSON payload from standard input")
	return cmd
}

func readIncoming(r io.Reader) (domain.Incoming, error) {
	var in domain.Incoming
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return in, fmt.Errorf("decode payload: %w", err)
	}
	if strings.TrimSpace(in.Title) == "" {
		return in, errors.New("payload requires a title")
	}
	return in, nil
}
