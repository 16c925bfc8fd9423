package verifier

import "errors"

var (
	ErrBrowserLaunch   = errors.New("browser launch failed")
	ErrBrowserRelease  = errors.New("browser release failed")
	ErrNavigation      = errors.New("navigation failed")
	ErrWaitTimeout     = errors.New("timed out waiting for selector")
	ErrScreenshot      = errors.New("screenshot capture failed")
	ErrScreenshotWrite = errors.New("screenshot write failed")
)
