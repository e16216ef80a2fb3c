/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cristianoliveira/alonix-notify/internal/colors"
	"github.com/cristianoliveira/alonix-notify/internal/domain"
	"github.com/spf13/cobra"
)

func newPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change delivery preferences",
	}
	cmd.AddCommand(newPrefsShowCmd(), newMuteAllCmd(), newDNDCmd(), newMuteCategoryCmd(true), newMuteCategoryCmd(false))
	return cmd
}

func newPrefsShowCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				p := a.svc.Preferences(cmd.Context())
				out := cmd.OutOrStdout()
				if asJSON {
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(p)
				}
				muted := make([]string, len(p.MutedCategories))
				for i, c := range p.MutedCategories {
					muted[i] = c.String()
				}
				fmt.Fprintf(out, "mute all:         %s\n", onOff(p.MuteAll))
				fmt.Fprintf(out, "do not disturb:   %s (%02d:00-%02d:00)\n", onOff(p.DoNotDisturb), p.DoNotDisturbHours.StartHour, p.DoNotDisturbHours.EndHour)
				fmt.Fprintf(out, "muted categories: %s\n", strings.Join(muted, ", "))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func newMuteAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mute-all <on|off>",
		Short: "Silence sound for every category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			return updatePrefs(cmd, func(p domain.Preferences) domain.Preferences {
				p.MuteAll = on
				return p
			}, "Mute all "+onOff(on))
		},
	}
}

func newDNDCmd() *cobra.Command {
	var start, end int
	cmd := &cobra.Command{
		Use:   "dnd <on|off>",
		Short: "Toggle the do-not-disturb window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			startSet := cmd.Flags().Changed("start")
			endSet := cmd.Flags().Changed("end")
			return updatePrefs(cmd, func(p domain.Preferences) domain.Preferences {
				p.DoNotDisturb = on
				if startSet {
					p.DoNotDisturbHours.StartHour = start
				}
				if endSet {
					p.DoNotDisturbHours.EndHour = end
				}
				return p
			}, "Do not disturb "+onOff(on))
		},
	}
	cmd.Flags().IntVar(&start, "start", 22, "First hour of the window (0-23)")
	cmd.Flags().IntVar(&end, "end", 7, "Hour the window ends (0-23)")
	return cmd
}

func newMuteCategoryCmd(mute bool) *cobra.Command {
	use, short, verb := "mute-category", "Silence sound for one category", "Muted"
	if !mute {
		use, short, verb = "unmute-category", "Restore sound for one category", "Unmuted"
	}
	return &cobra.Command{
		Use:   use + " <category>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := domain.ParseCategory(args[0])
			if err != nil {
				return err
			}
			return updatePrefs(cmd, func(p domain.Preferences) domain.Preferences {
				return p.WithMuted(c, mute)
			}, verb+" "+c.String())
		},
	}
}

func updatePrefs(cmd *cobra.Command, fn func(domain.Preferences) domain.Preferences, done string) error {
	return withApp(cmd, func(a *app) error {
		_, res := a.svc.UpdatePreferences(cmd.Context(), fn)
		if !res.Success {
			return res.Err()
		}
		colors.Success(done)
		return nil
	})
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("expected on or off, got %q", s)
	}
	return b, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
