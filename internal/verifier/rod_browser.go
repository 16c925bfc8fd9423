package verifier

import (
	"context"
	"fmt"
	"os"
	"sync"

	"page-verifier/internal/domain/config"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

type RodLauncher struct {
	Logger *zap.SugaredLogger
}

func NewRodLauncher(logger *zap.SugaredLogger) *RodLauncher {
	return &RodLauncher{
		Logger: logger,
	}
}

func (l *RodLauncher) newLauncher(v *config.Verification) *launcher.Launcher {
	lnch := launcher.New().
		Headless(v.Headless).
		Set("no-sandbox").
		Set("disable-gpu").
		Set("disable-dev-shm-usage")

	switch {
	case v.BrowserBin != "":
		lnch = lnch.Bin(v.BrowserBin)
	default:
		// Without a local browser rod downloads a pinned Chromium on Launch.
		if path, has := launcher.LookPath(); has {
			lnch = lnch.Bin(path)
		}
	}

	return lnch
}

func (l *RodLauncher) Launch(ctx context.Context, v *config.Verification) (Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lnch := l.newLauncher(v)

	browserURL, err := lnch.Launch()
	if err != nil {
		l.Logger.Errorw("failed to launch browser", "error", err)
		l.discardLauncher(lnch)
		return nil, fmt.Errorf("launch: %w", err)
	}

	browser := rod.New().ControlURL(browserURL)

	if errConnect := browser.Connect(); errConnect != nil {
		l.Logger.Warnw("failed to connect to browser", "url", browserURL, "error", errConnect)
		lnch.Kill()
		lnch.Cleanup()
		return nil, fmt.Errorf("connect: %w", errConnect)
	}

	err = proto.BrowserSetDownloadBehavior{
		Behavior: proto.BrowserSetDownloadBehaviorBehaviorDeny,
	}.Call(browser)
	if err != nil {
		rb := &RodBrowser{Logger: l.Logger, LauncherInstance: lnch, Browser: browser}
		_ = rb.Close()
		return nil, fmt.Errorf("deny downloads: %w", err)
	}

	l.Logger.Infow("browser launched", "url", browserURL, "headless", v.Headless)

	return &RodBrowser{
		Logger:           l.Logger,
		LauncherInstance: lnch,
		Browser:          browser,
	}, nil
}

// discardLauncher kills a launcher whose Launch failed and removes its user
// data dir. Cleanup is not usable here: it waits for a process exit that may
// never be signalled.
func (l *RodLauncher) discardLauncher(lnch *launcher.Launcher) {
	lnch.Kill()

	if dir := lnch.Get(flags.UserDataDir); dir != "" {
		if err := os.RemoveAll(dir); err != nil {
			l.Logger.Warnw("failed to remove browser user data dir", "dir", dir, "error", err)
		}
	}
}

type RodBrowser struct {
	Logger           *zap.SugaredLogger
	LauncherInstance *launcher.Launcher
	Browser          *rod.Browser

	closeOnce sync.Once
	closeErr  error
}

func (b *RodBrowser) NewIsolatedPage(ctx context.Context) (Page, error) {
	incognito, err := b.Browser.Context(ctx).Incognito()
	if err != nil {
		return nil, fmt.Errorf("incognito context: %w", err)
	}

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("new page: %w", err)
	}

	return &RodPage{page: page}, nil
}

// Close closes the browser over CDP, falls back to killing the process, and
// removes the launcher's user data dir.
func (b *RodBrowser) Close() error {
	b.closeOnce.Do(func() {
		b.closeErr = b.Browser.Close()
		if b.closeErr != nil {
			b.Logger.Warnw("failed to close browser, killing process", "error", b.closeErr)
			b.LauncherInstance.Kill()
		}
		b.LauncherInstance.Cleanup()
	})

	return b.closeErr
}

type RodPage struct {
	page *rod.Page
}

func (p *RodPage) Navigate(ctx context.Context, url string) error {
	page := p.page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return err
	}

	return page.WaitLoad()
}

func (p *RodPage) WaitElement(ctx context.Context, selector string) error {
	el, err := p.page.Context(ctx).Element(selector)
	if err != nil {
		return err
	}

	return el.WaitVisible()
}

func (p *RodPage) Screenshot(ctx context.Context) ([]byte, error) {
	return p.page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
}
