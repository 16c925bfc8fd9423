// Package verifier opens a page in a headless browser, waits for a selector
// and stores a screenshot of the rendered result.
package verifier

import (
	"context"

	"page-verifier/internal/domain/config"
)

// Launcher starts a browser for one verification. Implementations clean up
// after themselves when Launch fails; on success the caller owns the Browser
// and must Close it.
type Launcher interface {
	Launch(ctx context.Context, v *config.Verification) (Browser, error)
}

type Browser interface {
	// NewIsolatedPage opens a page in a fresh browsing context that shares
	// no cookies or storage with other contexts.
	NewIsolatedPage(ctx context.Context) (Page, error)
	// Close releases the browser process. Calls after the first are no-ops.
	Close() error
}

type Page interface {
	// Navigate loads url and waits for the load event.
	Navigate(ctx context.Context, url string) error
	// WaitElement blocks until an element matching selector is attached and
	// visible, or ctx is done.
	WaitElement(ctx context.Context, selector string) error
	// Screenshot captures the current viewport as PNG.
	Screenshot(ctx context.Context) ([]byte, error)
}
