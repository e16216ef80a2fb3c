/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/cristianoliveira/alonix-notify/internal/config"
	"github.com/cristianoliveira/alonix-notify/internal/hooks"
	"github.com/cristianoliveira/alonix-notify/internal/logging"
	"github.com/cristianoliveira/alonix-notify/internal/metrics"
	"github.com/cristianoliveira/alonix-notify/internal/platform"
	"github.com/cristianoliveira/alonix-notify/internal/service"
	"github.com/cristianoliveira/alonix-notify/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

// app is everything a command needs, built once per invocation.
type app struct {
	svc      *service.Service
	store    storage.Store
	device   platform.Platform
	registry *prometheus.Registry
	hooks    *hooks.Runner
	subs     []service.Subscription
	log      logging.Logger
}

func (a *app) Close() error {
	for _, sub := range a.subs {
		sub.Close()
	}
	if a.hooks != nil {
		a.hooks.Wait()
	}
	return a.store.Close()
}

// newApp builds the app from configuration. Tests replace it.
var newApp = func(cmd *cobra.Command) (*app, error) {
	log := logging.GetGlobal()

	store, err := storage.NewFromConfig()
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	device := platform.NewConsoleFromConfig(cmd.OutOrStdout(), log)
	svc, err := service.New(service.Options{
		Store:     store,
		Platform:  device,
		Logger:    log,
		Metrics:   metrics.NewDelivery(reg),
		FeedLimit: config.GetInt("feed_limit", 100),
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	runner := hooks.FromConfig(log)
	return &app{
		svc:      svc,
		store:    store,
		device:   device,
		registry: reg,
		hooks:    runner,
		subs:     runner.Attach(cmd.Context(), svc),
		log:      log,
	}, nil
}

// withApp builds the app, runs fn and closes the store.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			a.log.Warn("close store failed", "error", cerr)
		}
	}()
	return fn(a)
}
