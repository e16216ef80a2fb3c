/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"os"

	"github.com/cristianoliveira/alonix-notify/cmd"
	"github.com/cristianoliveira/alonix-notify/internal/colors"
	"github.com/cristianoliveira/alonix-notify/internal/logging"
)

func main() {
	err := cmd.Execute()
	logging.ShutdownGlobal()
	if err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}
}
