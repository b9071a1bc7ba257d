package source

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"os"

	_ "golang.org/x/image/webp" // register WebP decoding
)

// Still replays one image as a live stream.
type Still struct {
	img image.Image
	fps float64
}

// NewStill returns an Acquirer whose streams deliver img at fps frames per
// second. The image must not be modified afterwards.
func NewStill(img image.Image, fps float64) *Still {
	return &Still{img: img, fps: fps}
}

// LoadStill decodes a PNG, JPEG or WebP file into a Still.
func LoadStill(path string, fps float64) (*Still, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("source: open still: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("source: decode %s: %w", path, err)
	}
	Logger().Debug("source: still loaded", "path", path, "format", format, "bounds", img.Bounds())
	return NewStill(img, fps), nil
}

// Image returns the replayed image.
func (s *Still) Image() image.Image {
	return s.img
}

// Acquire implements Acquirer.
func (s *Still) Acquire(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return newTickStream(s.fps, func(int) image.Image { return s.img }), nil
}
