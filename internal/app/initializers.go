package app

import (
	"context"
	"errors"
	"log"
	"os"

	"page-verifier/internal/domain/config"
	"page-verifier/internal/verifier"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

const (
	serviceName = "page-verifier"
	envFile     = "main.env"
)

func InitApp() *VerifierApp {
	initEnv()

	logger := initLogger()

	tp := initTracing(logger)

	verification, err := config.LoadVerification()
	if err != nil {
		logger.Fatalw("Error loading verification config", "error", err)
	}

	runner := verifier.NewRunner(logger, verifier.NewRodLauncher(logger))

	return NewVerifierApp(logger, runner, verification, tp)
}

// initTracing exports spans over OTLP/HTTP when OTLP_ENDPOINT is set.
// Without it spans are still created but dropped.
func initTracing(logger *zap.SugaredLogger) *trace.TracerProvider {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(attribute.String("service.name", serviceName)),
	)
	if err != nil {
		log.Fatal("Error initializing otel resource:", err)
	}

	opts := []trace.TracerProviderOption{trace.WithResource(res)}

	if endpoint := os.Getenv("OTLP_ENDPOINT"); endpoint != "" {
		exp, errExp := otlptracehttp.New(context.Background(), otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
		if errExp != nil {
			log.Fatalf("Error initializing otlp exporter: %v", errExp)
		}

		// A one-shot run ends right after its spans; sync export avoids losing them.
		opts = append(opts, trace.WithSyncer(exp))
		logger.Infow("Exporting traces", "endpoint", endpoint)
	}

	tracerProvider := trace.NewTracerProvider(opts...)

	otel.SetTracerProvider(tracerProvider)

	return tracerProvider
}

func initLogger() *zap.SugaredLogger {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Error initializing zap logger: %v", err)
		return nil
	}

	logger := zapLogger.Sugar()
	return logger
}

// initEnv loads main.env outside prod. The file is optional: with no file and
// no VERIFY_* variables the run uses the built-in defaults.
func initEnv() {
	if os.Getenv("APP_ENV") == "prod" {
		return
	}

	err := godotenv.Load(envFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading %s: %v", envFile, err)
	}
}
