//go:build ebiten

package ui

import (
	"image/color"

	"derby/internal/session"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the player's status readout in the top-left corner.
type HUD struct {
	session *session.Session
	lines   []string
	pixel   *ebiten.Image
}

// NewHUD constructs a HUD reading from s.
func NewHUD(s *session.Session) *HUD {
	h := &HUD{session: s, pixel: ebiten.NewImage(1, 1)}
	h.pixel.Fill(color.White)
	return h
}

// Update refreshes the cached readout.
func (h *HUD) Update() {
	if h == nil {
		return
	}
	h.lines = HUDLines(h.session)
}

// Draw paints the readout on a translucent backing panel.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil || len(h.lines) == 0 {
		return
	}
	face := basicfont.Face7x13
	width := 0
	for _, line := range h.lines {
		if w := text.BoundString(face, line).Dx(); w > width {
			width = w
		}
	}
	height := len(h.lines)*lineHeight + panelPadding

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(width+2*panelPadding), float64(height))
	op.GeoM.Translate(panelMargin, panelMargin)
	op.ColorScale.ScaleWithColor(panelColor)
	screen.DrawImage(h.pixel, op)

	for i, line := range h.lines {
		y := panelMargin + panelPadding + headerBaseline/2 + i*lineHeight
		text.Draw(screen, line, face, panelMargin+panelPadding, y, textColor)
	}
}

var (
	panelColor = color.RGBA{R: 16, G: 16, B: 20, A: 200}
	textColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

const (
	panelMargin    = 8
	panelPadding   = 12
	lineHeight     = 16
	headerBaseline = 18
)
