package verifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"page-verifier/internal/domain/config"
	"page-verifier/internal/domain/data"
	"page-verifier/internal/utils"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "page-verifier/internal/verifier"

// Runner executes verifications: launch, isolated page, navigate, wait,
// screenshot, release. Any failing step aborts the run.
type Runner struct {
	Logger   *zap.SugaredLogger
	Launcher Launcher
	Tracer   trace.Tracer
}

func NewRunner(logger *zap.SugaredLogger, launcher Launcher) *Runner {
	return &Runner{
		Logger:   logger,
		Launcher: launcher,
		Tracer:   otel.Tracer(tracerName),
	}
}

func (r *Runner) Run(ctx context.Context, v *config.Verification) (res *data.Result, err error) {
	if err = v.Validate(); err != nil {
		return nil, err
	}

	runID, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	ctx, span := r.Tracer.Start(ctx, "verification.run", trace.WithAttributes(
		attribute.String("verification.run_id", runID),
		attribute.String("verification.target_url", v.TargetURL),
		attribute.String("verification.selector", v.Selector),
	))
	defer func() {
		endSpan(span, err)
	}()

	logger := r.Logger.With("runID", runID)
	logger.Infow("verification started",
		"targetURL", v.TargetURL,
		"selector", v.Selector,
		"outputPath", v.OutputPath,
		"waitTimeout", v.WaitTimeout,
	)

	res = &data.Result{
		RunID:      runID,
		TargetURL:  v.TargetURL,
		Selector:   v.Selector,
		OutputPath: v.OutputPath,
		StartedAt:  time.Now(),
	}

	err = r.withBrowser(ctx, logger, v, func(browser Browser) error {
		return r.verifyPage(ctx, logger, browser, v, res)
	})
	if err != nil {
		logger.Errorw("verification failed", "error", err)
		return nil, err
	}

	res.FinishedAt = time.Now()
	logger.Infow("verification passed", "result", res)

	return res, nil
}

// withBrowser owns the browser for the duration of fn and releases it on
// every exit path, panics included.
func (r *Runner) withBrowser(ctx context.Context, logger *zap.SugaredLogger, v *config.Verification, fn func(Browser) error) (err error) {
	var browser Browser

	err = r.step(ctx, "launch", func(ctx context.Context) error {
		var errLaunch error
		browser, errLaunch = r.Launcher.Launch(ctx, v)
		return errLaunch
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBrowserLaunch, err)
	}

	defer func() {
		errClose := browser.Close()
		if errClose != nil {
			logger.Warnw("failed to release browser", "error", errClose)
			if err == nil {
				err = fmt.Errorf("%w: %w", ErrBrowserRelease, errClose)
			}
			return
		}
		logger.Infow("browser released")
	}()

	return fn(browser)
}

func (r *Runner) verifyPage(ctx context.Context, logger *zap.SugaredLogger, browser Browser, v *config.Verification, res *data.Result) error {
	var page Page

	err := r.step(ctx, "open_page", func(ctx context.Context) error {
		var errOpen error
		page, errOpen = browser.NewIsolatedPage(ctx)
		return errOpen
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBrowserLaunch, err)
	}

	err = r.step(ctx, "navigate", func(ctx context.Context) error {
		navCtx, cancel := context.WithTimeout(ctx, v.NavigationTimeout)
		defer cancel()
		return page.Navigate(navCtx, v.TargetURL)
	})
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("navigate to %s: %w", v.TargetURL, ctx.Err())
		}
		return fmt.Errorf("%w: %s: %w", ErrNavigation, v.TargetURL, err)
	}
	logger.Infow("page loaded", "targetURL", v.TargetURL)

	err = r.step(ctx, "wait_selector", func(ctx context.Context) error {
		waitCtx, cancel := context.WithTimeout(ctx, v.WaitTimeout)
		defer cancel()
		return page.WaitElement(waitCtx, v.Selector)
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return fmt.Errorf("%w: %q after %s", ErrWaitTimeout, v.Selector, v.WaitTimeout)
		}
		return fmt.Errorf("wait for %q: %w", v.Selector, err)
	}
	logger.Infow("selector matched", "selector", v.Selector)

	var img []byte
	err = r.step(ctx, "screenshot", func(ctx context.Context) error {
		var errShot error
		img, errShot = page.Screenshot(ctx)
		return errShot
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScreenshot, err)
	}

	return r.step(ctx, "write_screenshot", func(context.Context) error {
		width, height, errWrite := writeSnapshot(v.OutputPath, img)
		if errWrite != nil {
			return errWrite
		}

		res.Bytes = len(img)
		res.Width = width
		res.Height = height
		logger.Infow("screenshot saved", "outputPath", v.OutputPath, "bytes", len(img))
		return nil
	})
}

func (r *Runner) step(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := r.Tracer.Start(ctx, "verification."+name)
	err := fn(ctx)
	endSpan(span, err)
	return err
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
