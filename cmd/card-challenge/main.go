// Package main runs the card draw and persistence demonstration.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	democmd "github.com/calherries/card-challenge/internal/cmd/demo"
	"github.com/calherries/card-challenge/internal/platform/config"
)

func main() {
	cfg, err := democmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[CARDS] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := democmd.Run(ctx, cfg); err != nil {
		log.Fatalf("round trip failed: %v", err)
	}
}
