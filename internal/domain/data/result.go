package data

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// Result is the evidence of one successful verification. It is only
// logged; the screenshot file is the run's sole output.
type Result struct {
	RunID      string    `json:"runID"`
	TargetURL  string    `json:"targetURL"`
	Selector   string    `json:"selector"`
	OutputPath string    `json:"outputPath"`
	Bytes      int       `json:"bytes"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

func (r *Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

func (r *Result) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("runID", r.RunID)
	enc.AddString("targetURL", r.TargetURL)
	enc.AddString("selector", r.Selector)
	enc.AddString("outputPath", r.OutputPath)
	enc.AddInt("bytes", r.Bytes)
	enc.AddInt("width", r.Width)
	enc.AddInt("height", r.Height)
	enc.AddDuration("duration", r.Duration())
	return nil
}
