package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearVerifyEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvTargetURL, EnvSelector, EnvOutputPath, EnvWaitTimeout,
		EnvNavigationTimeout, EnvHeadless, EnvBrowserBin,
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadVerificationDefaults(t *testing.T) {
	clearVerifyEnv(t)

	v, err := LoadVerification()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8080/membership", v.TargetURL)
	assert.Equal(t, ".card-gym", v.Selector)
	assert.Equal(t, "jules-scratch/verification/verification.png", v.OutputPath)
	assert.Equal(t, 30*time.Second, v.WaitTimeout)
	assert.Equal(t, 30*time.Second, v.NavigationTimeout)
	assert.True(t, v.Headless)
	assert.Empty(t, v.BrowserBin)
}

func TestLoadVerificationOverrides(t *testing.T) {
	clearVerifyEnv(t)
	t.Setenv(EnvTargetURL, "localhost:3000/membership")
	t.Setenv(EnvSelector, "#plans")
	t.Setenv(EnvOutputPath, "out/shot.png")
	t.Setenv(EnvWaitTimeout, "2s")
	t.Setenv(EnvNavigationTimeout, "500ms")
	t.Setenv(EnvHeadless, "false")
	t.Setenv(EnvBrowserBin, "/usr/bin/chromium")

	v, err := LoadVerification()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000/membership", v.TargetURL)
	assert.Equal(t, "#plans", v.Selector)
	assert.Equal(t, "out/shot.png", v.OutputPath)
	assert.Equal(t, 2*time.Second, v.WaitTimeout)
	assert.Equal(t, 500*time.Millisecond, v.NavigationTimeout)
	assert.False(t, v.Headless)
	assert.Equal(t, "/usr/bin/chromium", v.BrowserBin)
}

func TestLoadVerificationRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		EnvWaitTimeout:       "soon",
		EnvNavigationTimeout: "-1s",
		EnvHeadless:          "maybe",
	}

	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			clearVerifyEnv(t)
			t.Setenv(key, val)

			_, err := LoadVerification()
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadVerificationKeepsDefaultsForUnsetKeys(t *testing.T) {
	clearVerifyEnv(t)
	t.Setenv(EnvWaitTimeout, "2s")

	v, err := LoadVerification()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, v.WaitTimeout)
	assert.Equal(t, DefaultNavigationTimeout, v.NavigationTimeout)
	assert.Equal(t, DefaultTargetURL, v.TargetURL)
	assert.True(t, v.Headless)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(v *Verification)
	}{
		{"ftp url", func(v *Verification) { v.TargetURL = "ftp://127.0.0.1/membership" }},
		{"relative url", func(v *Verification) { v.TargetURL = "/membership" }},
		{"empty selector", func(v *Verification) { v.Selector = "" }},
		{"empty output", func(v *Verification) { v.OutputPath = "" }},
		{"zero wait", func(v *Verification) { v.WaitTimeout = 0 }},
		{"zero navigation", func(v *Verification) { v.NavigationTimeout = 0 }},
	}

	require.NoError(t, DefaultVerification().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := DefaultVerification()
			tt.mutate(v)
			assert.ErrorIs(t, v.Validate(), ErrInvalidConfig)
		})
	}
}
