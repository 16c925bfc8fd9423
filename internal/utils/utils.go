package utils

import (
	"crypto/rand"
	"encoding/hex"
	"net/url"
)

// CorrectURLScheme prefixes http:// when the URL has no scheme or host.
// Verification targets are local dev servers, so plain http is the default.
func CorrectURLScheme(URL string) string {
	targetURL := URL
	if u, err := url.Parse(targetURL); err != nil || u.Scheme == "" || u.Host == "" {
		if parsed, err2 := url.Parse("http://" + URL); err2 == nil {
			targetURL = parsed.String()
		}
	}
	return targetURL
}

func GenerateID() (string, error) {
	bytes := make([]byte, 20)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
