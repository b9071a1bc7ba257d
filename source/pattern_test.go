package source

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestPatternStream(t *testing.T) {
	acq := NewPattern(160, 120, 1000)

	s, err := acq.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() = %v", err)
	}

	img, err := s.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() = %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 160, 120) {
		t.Errorf("frame bounds = %v, want 160x120", got)
	}
	_, _, _, a := img.At(5, 5).RGBA()
	if a != 0xffff {
		t.Errorf("test card pixel alpha = %#x, want opaque", a)
	}

	if _, err := s.ReadFrame(); err != nil {
		t.Fatalf("second ReadFrame() = %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if _, err := s.ReadFrame(); !errors.Is(err, ErrStreamClosed) {
		t.Errorf("ReadFrame() after Close = %v, want ErrStreamClosed", err)
	}
}

func TestPatternFramesMove(t *testing.T) {
	p := NewPattern(200, 100, 0)
	a := p.Frame(0).(*image.RGBA)
	b := p.Frame(20).(*image.RGBA)

	same := true
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("frames 0 and 20 are identical, want a moving marker")
	}
}

func TestAcquireCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewPattern(10, 10, 0).Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Pattern.Acquire() = %v, want context.Canceled", err)
	}
	if _, err := NewStill(image.NewRGBA(image.Rect(0, 0, 1, 1)), 0).Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Still.Acquire() = %v, want context.Canceled", err)
	}
}

func TestLoadStill(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 12, 9))
	img.Set(3, 3, color.RGBA{255, 0, 0, 255})

	path := filepath.Join(t.TempDir(), "still.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	still, err := LoadStill(path, 1000)
	if err != nil {
		t.Fatalf("LoadStill() = %v", err)
	}
	s, err := still.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() = %v", err)
	}
	defer s.Close()

	got, err := s.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() = %v", err)
	}
	if got.Bounds().Dx() != 12 || got.Bounds().Dy() != 9 {
		t.Errorf("frame bounds = %v, want 12x9", got.Bounds())
	}
}

func TestLoadStillMissingFile(t *testing.T) {
	if _, err := LoadStill(filepath.Join(t.TempDir(), "missing.png"), 0); err == nil {
		t.Error("LoadStill() of a missing file = nil error")
	}
}

func TestAcquirerFunc(t *testing.T) {
	want := errors.New("denied")
	var acq Acquirer = AcquirerFunc(func(context.Context) (Stream, error) { return nil, want })
	if _, err := acq.Acquire(context.Background()); !errors.Is(err, want) {
		t.Errorf("Acquire() = %v, want %v", err, want)
	}
}
