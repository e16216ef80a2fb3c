/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/cristianoliveira/alonix-notify/internal/colors"
	"github.com/cristianoliveira/alonix-notify/internal/config"
	"github.com/cristianoliveira/alonix-notify/internal/receiver"
	"github.com/cristianoliveira/alonix-notify/internal/service"
	"github.com/spf13/cobra"
)

// listenAndServe runs the receiver. Tests replace it.
var listenAndServe = func(cmd *cobra.Command, srv *receiver.Server, addr string) error {
	return srv.ListenAndServe(cmd.Context(), addr)
}

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Accept notifications over HTTP",
		Long: `Run the HTTP receiver. Push gateways POST notifications to
/v1/notifications; the feed, badge and preferences are served under /v1 and
prometheus metrics under /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = config.Get("listen_addr", "127.0.0.1:8787")
			}
			return withApp(cmd, func(a *app) error {
				if res := a.svc.Init(cmd.Context()); !res.Success {
					colors.Warning("notifications will not be shown: " + res.Error)
				}
				sub := a.svc.OnReceived(func(r service.Receipt) {
					colors.Debug("received", r.Record.ID, string(r.Decision.Reason))
				})
				defer sub.Close()

				colors.Info("Listening on http://" + addr)
				return listenAndServe(cmd, receiver.New(a.svc, a.registry, a.log), addr)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from listen_addr)")
	return cmd
}
