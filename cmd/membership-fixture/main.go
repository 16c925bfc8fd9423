package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"page-verifier/internal/fixture"

	"go.uber.org/zap"
)

func main() {
	addr := flag.String("addr", fixture.DefaultAddr, "listen address")
	delay := flag.Duration("render-delay", 0, "delay before plan cards render")
	omit := flag.Bool("omit-cards", false, "render plans without the card-gym class")
	flag.Parse()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Error initializing zap logger: %v", err)
	}
	logger := zapLogger.Sugar()

	srv := &http.Server{
		Addr: *addr,
		Handler: fixture.NewServer(logger, fixture.Options{
			RenderDelay:   *delay,
			OmitCardClass: *omit,
		}).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infow("Serving membership fixture", "addr", *addr)
		if errServe := srv.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			logger.Fatalw("fixture server failed", "error", errServe)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("failed to stop fixture server gracefully", "error", err)
	}

	_ = logger.Sync()
}
