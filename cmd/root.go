/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cristianoliveira/alonix-notify/internal/colors"
	"github.com/cristianoliveira/alonix-notify/internal/config"
	"github.com/cristianoliveira/alonix-notify/internal/logging"
	"github.com/cristianoliveira/alonix-notify/internal/storage"
	"github.com/cristianoliveira/alonix-notify/internal/version"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	debug     bool
	quiet     bool
	backend   string
	ephemeral bool
}

// Execute builds the command tree and runs it until completion or an
// interrupt. This is called by main.main().
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd creates the alonix-notify command with every subcommand.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "alonix-notify",
		Short:         "Notification feed, badge and delivery preferences for Alonix.",
		Long:          `Receive, browse and manage Alonix notifications from the terminal.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, opts)
		},
	}
	root.CompletionOptions.HiddenDefaultCmd = true

	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Print debug output and log at debug level")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Only print errors")
	root.PersistentFlags().StringVar(&opts.backend, "backend", "", "Storage backend: "+strings.Join(backendNames, ", "))
	root.PersistentFlags().BoolVar(&opts.ephemeral, "ephemeral", false, "Keep state in memory for this run only")

	root.AddCommand(
		newReceiveCmd(),
		newListCmd(),
		newOpenCmd(),
		newMarkReadCmd(),
		newMarkUnreadCmd(),
		newToggleCmd(),
		newDeleteCmd(),
		newClearCmd(),
		newBadgeCmd(),
		newPrefsCmd(),
		newTokenCmd(),
		newScheduleCmd(),
		newCancelCmd(),
		newStatusCmd(),
		newServeCmd(),
		newTUICmd(),
		newVersionCmd(),
	)
	return root
}

var backendNames = []string{storage.BackendSQLite, storage.BackendFile, storage.BackendRedis, storage.BackendMemory}

// setup loads configuration, applies flag overrides and starts logging.
func setup(cmd *cobra.Command, opts *rootOptions) error {
	config.Load()

	if opts.debug {
		config.Set("debug", "true")
	}
	if opts.quiet {
		config.Set("quiet", "true")
	}
	if opts.ephemeral {
		config.Set("storage_backend", storage.BackendMemory)
	} else if opts.backend != "" {
		if !isBackend(opts.backend) {
			return fmt.Errorf("unknown backend %q (expected one of %s)", opts.backend, strings.Join(backendNames, ", "))
		}
		config.Set("storage_backend", opts.backend)
	}

	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))

	if err := logging.InitGlobal(cmd.Name()); err != nil {
		colors.Warning("file logging disabled: " + err.Error())
	}
	logging.GetGlobal().Debug("command started", "command", cmd.CommandPath())
	return nil
}

func isBackend(name string) bool {
	for _, b := range backendNames {
		if b == name {
			return true
		}
	}
	return false
}
