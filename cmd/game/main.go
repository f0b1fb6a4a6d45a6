// Package main provides a CLI for running tableau games against a local
// snapshot store: creating games, applying moves, and inspecting state.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	gamecmd "github.com/louisbranch/evermeadow/internal/cmd/game"
)

func main() {
	cfg, args, err := gamecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[GAME] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := gamecmd.Run(ctx, cfg, args, os.Stdout); err != nil {
		log.Fatalf("game command: %v", err)
	}
}
