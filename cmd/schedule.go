/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cristianoliveira/alonix-notify/internal/colors"
	"github.com/cristianoliveira/alonix-notify/internal/config"
	"github.com/cristianoliveira/alonix-notify/internal/domain"
	"github.com/cristianoliveira/alonix-notify/internal/platform"
	"github.com/cristianoliveira/alonix-notify/internal/receiver"
	"github.com/spf13/cobra"
)

const scheduleLong = `Schedule a local notification, immediately or after a delay.

Delayed notifications need a process that stays alive until they fire. By
default they are handed to the receiver started with 'alonix-notify serve'
at --addr. With --wait this command keeps the timer itself and exits once
the notification fired.

USAGE:
    alonix-notify schedule [OPTIONS] <title> [body...]

OPTIONS:
    --category <name>    Notification category (default: reminder)
    --in <seconds>       Delay in seconds, 0 fires immediately
    --data key=value     Extra payload entries, repeatable
    --wait               Keep the timer in this process
    --addr <host:port>   Receiver address (default from listen_addr)`

func newScheduleCmd() *cobra.Command {
	var (
		category string
		seconds  int
		data     map[string]string
		wait     bool
		addr     string
	)
	cmd := &cobra.Command{
		Use:   "schedule <title> [body...]",
		Short: "Schedule a local notification",
		Long:  scheduleLong,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := domain.ParseCategory(category)
			if err != nil {
				return err
			}
			if seconds < 0 {
				return errors.New("--in must not be negative")
			}
			payload := make(map[string]any, len(data))
			for k, v := range data {
				payload[k] = v
			}
			title, body := args[0], strings.Join(args[1:], " ")

			if seconds > 0 && !wait {
				id, err := receiver.NewClient(receiverAddr(addr)).Schedule(cmd.Context(), receiver.ScheduleRequest{
					Category: c.String(),
					Title:    title,
					Body:     body,
					Data:     payload,
					Seconds:  seconds,
				})
				if err != nil {
					return schedulingError(err)
				}
				colors.Success(fmt.Sprintf("Scheduled (ID: %s)", id))
				return nil
			}

			return withApp(cmd, func(a *app) error {
				res := a.svc.Schedule(cmd.Context(), c, title, body, payload, platform.Trigger{Seconds: seconds})
				if !res.Success {
					return res.Err()
				}
				colors.Success(fmt.Sprintf("Scheduled (ID: %s)", res.ID))
				if seconds > 0 {
					select {
					case <-time.After(time.Duration(seconds)*time.Second + 100*time.Millisecond):
					case <-cmd.Context().Done():
						a.svc.Cancel(cmd.Context(), res.ID)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", string(domain.CategoryReminder), "Notification category")
	cmd.Flags().IntVar(&seconds, "in", 0, "Delay in seconds (0 fires immediately)")
	cmd.Flags().StringToStringVar(&data, "data", nil, "Extra payload entries (key=value)")
	cmd.Flags().BoolVar(&wait, "wait", false, "Keep the timer in this process until it fires")
	cmd.Flags().StringVar(&addr, "addr", "", "Receiver address (default from listen_addr)")
	return cmd
}

func newCancelCmd() *cobra.Command {
	var (
		all  bool
		addr string
	)
	cmd := &cobra.Command{
		Use:   "cancel [id]",
		Short: "Cancel notifications scheduled in the receiver",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return errors.New("'cancel' requires an id or --all")
			}
			client := receiver.NewClient(receiverAddr(addr))
			if all {
				if err := client.CancelAll(cmd.Context()); err != nil {
					return schedulingError(err)
				}
				colors.Success("All scheduled notifications cancelled")
				return nil
			}
			if err := client.Cancel(cmd.Context(), args[0]); err != nil {
				return schedulingError(err)
			}
			colors.Success("Cancelled (ID: " + args[0] + ")")
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Cancel every scheduled notification")
	cmd.Flags().StringVar(&addr, "addr", "", "Receiver address (default from listen_addr)")
	return cmd
}

func receiverAddr(flag string) string {
	if flag != "" {
		return flag
	}
	return config.Get("listen_addr", "127.0.0.1:8787")
}

func schedulingError(err error) error {
	if errors.Is(err, receiver.ErrUnreachable) {
		return fmt.Errorf("%w (start it with 'alonix-notify serve' or pass --wait)", err)
	}
	return err
}
