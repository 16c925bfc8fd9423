package app

import (
	"context"
	"errors"

	"page-verifier/internal/domain/config"
	"page-verifier/internal/domain/data"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type Runner interface {
	Run(ctx context.Context, v *config.Verification) (*data.Result, error)
}

var _ App = (*VerifierApp)(nil)

type VerifierApp struct {
	logger         *zap.SugaredLogger
	runner         Runner
	verification   *config.Verification
	tracerProvider *sdktrace.TracerProvider
}

func NewVerifierApp(logger *zap.SugaredLogger, runner Runner, verification *config.Verification, tp *sdktrace.TracerProvider) *VerifierApp {
	return &VerifierApp{
		logger:         logger,
		runner:         runner,
		verification:   verification,
		tracerProvider: tp,
	}
}

// Run performs the single verification. It returns the first failing step's error.
func (app *VerifierApp) Run(ctx context.Context) error {
	res, err := app.runner.Run(ctx, app.verification)
	if err != nil {
		return err
	}

	app.logger.Infow("screenshot written", "outputPath", res.OutputPath, "bytes", res.Bytes, "duration", res.Duration())
	return nil
}

func (app *VerifierApp) StopApp(ctx context.Context) error {
	var errs []error

	if app.tracerProvider != nil {
		if err := app.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	_ = app.logger.Sync()

	return errors.Join(errs...)
}
