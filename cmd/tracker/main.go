package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tasktracker/internal/cli"
	"tasktracker/internal/client"
	"tasktracker/internal/util"
)

func main() {
	urlFlag := flag.String("url", util.EnvOrDefault("TRACKER_URL", "http://localhost:3000"), "tracker API base URL")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := cli.New(client.New(*urlFlag, nil), os.Stdin, os.Stdout)
	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		log.Printf("error: %v", err)
		os.Exit(1)
	}
}
