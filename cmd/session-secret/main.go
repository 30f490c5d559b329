// Package main prints a random secret for signing session cookies.
package main

import (
	"flag"
	"os"

	"github.com/louisbranch/todos/internal/platform/config"
	"github.com/louisbranch/todos/internal/tools/sessionsecret"
)

func main() {
	cfg, err := sessionsecret.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := sessionsecret.Run(cfg, os.Stdout, nil); err != nil {
		config.Exitf("generate secret: %v", err)
	}
}
