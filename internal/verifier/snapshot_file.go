package verifier

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

const snapshotFileMode = 0o644

// writeSnapshot checks that img is a PNG and atomically replaces path with it.
// On failure the previous file at path, if any, is left untouched.
func writeSnapshot(path string, img []byte) (width, height int, err error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: not a png image: %w", ErrScreenshot, err)
	}

	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrScreenshotWrite, err)
	}

	// Temp file must sit on the same filesystem as path for the rename.
	err = renameio.WriteFile(path, img, snapshotFileMode,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithStaticPermissions(snapshotFileMode),
	)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrScreenshotWrite, err)
	}

	return cfg.Width, cfg.Height, nil
}
