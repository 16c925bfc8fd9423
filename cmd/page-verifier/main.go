package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"page-verifier/internal/app"
)

func main() {
	verifierApp := app.InitApp()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	runErr := verifierApp.Run(ctx)
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := verifierApp.StopApp(shutdownCtx); err != nil {
		log.Printf("failed to stop verifier gracefully: %v", err)
	}

	if runErr != nil {
		cancel()
		log.Fatalf("verification failed: %v", runErr)
	}

	log.Println("Verification passed")
}
