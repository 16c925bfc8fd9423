package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"page-verifier/internal/domain/config"
	"page-verifier/internal/domain/data"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type stubRunner struct {
	got *config.Verification
	err error
}

func (r *stubRunner) Run(_ context.Context, v *config.Verification) (*data.Result, error) {
	r.got = v
	if r.err != nil {
		return nil, r.err
	}
	return &data.Result{OutputPath: v.OutputPath, Bytes: 10}, nil
}

func TestVerifierAppRun(t *testing.T) {
	v := config.DefaultVerification()
	runner := &stubRunner{}
	var app App = NewVerifierApp(zap.NewNop().Sugar(), runner, v, sdktrace.NewTracerProvider())

	require.NoError(t, app.Run(context.Background()))
	assert.Same(t, v, runner.got)
	require.NoError(t, app.StopApp(context.Background()))
}

func TestVerifierAppRunPropagatesError(t *testing.T) {
	boom := errors.New("navigation failed")
	app := NewVerifierApp(zap.NewNop().Sugar(), &stubRunner{err: boom}, config.DefaultVerification(), nil)

	require.ErrorIs(t, app.Run(context.Background()), boom)
	require.NoError(t, app.StopApp(context.Background()))
}

func TestInitEnvOptionalFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "")

	initEnv()
}

func TestInitEnvLoadsFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("APP_ENV", "")
	t.Setenv(config.EnvSelector, "")

	require.NoError(t, os.WriteFile(filepath.Join(dir, envFile), []byte(config.EnvSelector+"=#plans\n"), 0o644))
	require.NoError(t, os.Unsetenv(config.EnvSelector))

	initEnv()

	v, err := config.LoadVerification()
	require.NoError(t, err)
	assert.Equal(t, "#plans", v.Selector)
}
