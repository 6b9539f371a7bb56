package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tableflip.dev/shelf/pkg/commands"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("shelf: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.New().ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}
