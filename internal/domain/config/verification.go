package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"page-verifier/internal/utils"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultTargetURL  = "http://127.0.0.1:8080/membership"
	DefaultSelector   = ".card-gym"
	DefaultOutputPath = "jules-scratch/verification/verification.png"

	// DefaultWaitTimeout bounds the wait for the selector. It matches the
	// 30s default the page automation tooling applies when none is given.
	DefaultWaitTimeout       = 30 * time.Second
	DefaultNavigationTimeout = 30 * time.Second
)

const (
	EnvTargetURL         = "VERIFY_TARGET_URL"
	EnvSelector          = "VERIFY_SELECTOR"
	EnvOutputPath        = "VERIFY_OUTPUT_PATH"
	EnvWaitTimeout       = "VERIFY_WAIT_TIMEOUT"
	EnvNavigationTimeout = "VERIFY_NAVIGATION_TIMEOUT"
	EnvHeadless          = "VERIFY_HEADLESS"
	EnvBrowserBin        = "VERIFY_BROWSER_BIN"
)

var ErrInvalidConfig = errors.New("invalid verification config")

// Verification describes one end-to-end check: open TargetURL, wait for
// Selector, write a screenshot to OutputPath.
type Verification struct {
	TargetURL  string `json:"target_url" env:"VERIFY_TARGET_URL"`
	Selector   string `json:"selector" env:"VERIFY_SELECTOR"`
	OutputPath string `json:"output_path" env:"VERIFY_OUTPUT_PATH"`

	WaitTimeout       time.Duration `json:"wait_timeout" env:"VERIFY_WAIT_TIMEOUT"`
	NavigationTimeout time.Duration `json:"navigation_timeout" env:"VERIFY_NAVIGATION_TIMEOUT"`

	Headless bool `json:"headless" env:"VERIFY_HEADLESS"`
	// BrowserBin is empty when the launcher should find or fetch a browser itself.
	BrowserBin string `json:"browser_bin" env:"VERIFY_BROWSER_BIN"`
}

func DefaultVerification() *Verification {
	return &Verification{
		TargetURL:         DefaultTargetURL,
		Selector:          DefaultSelector,
		OutputPath:        DefaultOutputPath,
		WaitTimeout:       DefaultWaitTimeout,
		NavigationTimeout: DefaultNavigationTimeout,
		Headless:          true,
	}
}

// LoadVerification returns the defaults with any VERIFY_* environment
// overrides applied, validated.
func LoadVerification() (*Verification, error) {
	v := DefaultVerification()

	if err := env.Parse(v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	v.TargetURL = utils.CorrectURLScheme(v.TargetURL)

	if err := v.Validate(); err != nil {
		return nil, err
	}

	return v, nil
}

func (v *Verification) Validate() error {
	u, err := url.Parse(v.TargetURL)
	if err != nil {
		return fmt.Errorf("%w: target url %q: %v", ErrInvalidConfig, v.TargetURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: target url %q must be an absolute http(s) url", ErrInvalidConfig, v.TargetURL)
	}

	if v.Selector == "" {
		return fmt.Errorf("%w: empty selector", ErrInvalidConfig)
	}
	if v.OutputPath == "" {
		return fmt.Errorf("%w: empty output path", ErrInvalidConfig)
	}
	if v.WaitTimeout <= 0 {
		return fmt.Errorf("%w: wait timeout must be positive, got %s", ErrInvalidConfig, v.WaitTimeout)
	}
	if v.NavigationTimeout <= 0 {
		return fmt.Errorf("%w: navigation timeout must be positive, got %s", ErrInvalidConfig, v.NavigationTimeout)
	}

	return nil
}
