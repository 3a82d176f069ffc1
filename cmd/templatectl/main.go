// Package main runs template administration actions against the console.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	templatectlcmd "github.com/louisbranch/templatedesk/internal/cmd/templatectl"
	"github.com/louisbranch/templatedesk/internal/platform/config"
)

func main() {
	cfg, err := templatectlcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	log.SetPrefix("[TEMPLATECTL] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err = templatectlcmd.Run(ctx, cfg, templatectlcmd.OSStdio())
	stop()
	if errors.Is(err, templatectlcmd.ErrActionFailed) {
		os.Exit(1)
	}
	if err != nil {
		config.Exitf("Error: %v", err)
	}
}
