package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/xtremepizzaria/storefront/internal/app/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := api.Run(ctx)
	stop()
	if err != nil {
		log.Fatalf("storefront api exited: %v", err)
	}
}
