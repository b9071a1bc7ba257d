package overlay

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/compositor/surface"
)

// HUD layout.
const (
	hudFontSize = 14
	hudPadding  = 6
)

// HUD draws a one-line caption on a translucent strip along the bottom edge.
type HUD struct {
	surf   surface.Surface
	font   *text.FontSource
	face   text.Face
	label  func() string
	strip  float64
	closed bool
}

// NewHUD creates a HUD for a width x height frame. label is called on every
// Render to produce the caption.
func NewHUD(width, height int, label func() string) (*HUD, error) {
	if label == nil {
		return nil, errors.New("overlay: nil HUD label")
	}
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("overlay: load HUD font: %w", err)
	}
	return &HUD{
		surf:  surface.NewImageSurface(width, height),
		font:  src,
		face:  src.Face(hudFontSize),
		label: label,
		strip: hudFontSize + 2*hudPadding,
	}, nil
}

// Surface returns the private surface.
func (h *HUD) Surface() surface.Surface {
	return h.surf
}

// Render draws the current caption and composites it onto target.
func (h *HUD) Render(target surface.Surface) {
	dc := h.surf.Context()
	if dc == nil {
		return
	}
	h.surf.Clear(color.Transparent)

	w, ht := float64(h.surf.Width()), float64(h.surf.Height())
	dc.SetRGBA(0, 0, 0, 0.5)
	dc.DrawRectangle(0, ht-h.strip, w, h.strip)
	if err := dc.Fill(); err != nil {
		gg.Logger().Debug("overlay: HUD strip failed", "err", err)
	}

	dc.SetFont(h.face)
	dc.SetRGB(1, 1, 1)
	dc.DrawString(h.label(), hudPadding, ht-hudPadding-2)

	target.CopyFrom(h.surf)
}

// Close releases the font and the private surface.
func (h *HUD) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	return errors.Join(h.font.Close(), h.surf.Close())
}
