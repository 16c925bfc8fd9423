package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrectURLScheme(t *testing.T) {
	cases := map[string]string{
		"http://127.0.0.1:8080/membership": "http://127.0.0.1:8080/membership",
		"https://example.com/a":            "https://example.com/a",
		"127.0.0.1:8080/membership":        "http://127.0.0.1:8080/membership",
		"localhost/membership":             "http://localhost/membership",
	}

	for in, want := range cases {
		assert.Equal(t, want, CorrectURLScheme(in), "input %q", in)
	}
}

func TestGenerateID(t *testing.T) {
	a, err := GenerateID()
	require.NoError(t, err)
	b, err := GenerateID()
	require.NoError(t, err)

	assert.Len(t, a, 40)
	assert.NotEqual(t, a, b)
}
