// Package main is the entry point for the backchannel settings CLI.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/dshills/backchannel/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			logging.Logger{}.Errorf("%v", err)
		}
		os.Exit(1)
	}
}
