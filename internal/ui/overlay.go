//go:build ebiten

package ui

import (
	"image/color"

	"derby/internal/session"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the lobby, countdown and results panels over the track.
type Overlay struct {
	session *session.Session
	title   string
	lines   []string
	pixel   *ebiten.Image
}

// NewOverlay constructs an overlay reading from s.
func NewOverlay(s *session.Session) *Overlay {
	o := &Overlay{session: s, pixel: ebiten.NewImage(1, 1)}
	o.pixel.Fill(color.White)
	return o
}

// Update refreshes the panel for the current screen.
func (o *Overlay) Update() {
	o.title, o.lines = OverlayLines(o.session)
}

// Draw renders the panel centred on screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.title == "" && len(o.lines) == 0 {
		return
	}
	face := basicfont.Face7x13
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()

	if len(o.lines) == 0 {
		o.drawBig(screen, o.title, sw, sh)
		return
	}

	width := text.BoundString(face, o.title).Dx() * titleScale
	for _, line := range o.lines {
		if w := text.BoundString(face, line).Dx(); w > width {
			width = w
		}
	}
	width += 2 * panelPadding
	height := headerBaseline*titleScale + len(o.lines)*lineHeight + 2*panelPadding
	x := (sw - width) / 2
	y := (sh - height) / 2

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(width), float64(height))
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(panelColor)
	screen.DrawImage(o.pixel, op)

	title := &ebiten.DrawImageOptions{}
	title.GeoM.Scale(titleScale, titleScale)
	title.GeoM.Translate(float64(x+panelPadding), float64(y+panelPadding+headerBaseline*titleScale-4))
	title.ColorScale.ScaleWithColor(textColor)
	text.DrawWithOptions(screen, o.title, face, title)

	top := y + panelPadding + headerBaseline*titleScale + lineHeight
	for i, line := range o.lines {
		col := textColor
		if i == len(o.lines)-1 {
			col = dimColor
		}
		text.Draw(screen, line, face, x+panelPadding, top+i*lineHeight, col)
	}
}

func (o *Overlay) drawBig(screen *ebiten.Image, s string, sw, sh int) {
	face := basicfont.Face7x13
	b := text.BoundString(face, s)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(countdownScale, countdownScale)
	op.GeoM.Translate(
		float64(sw)/2-float64(b.Dx())*countdownScale/2,
		float64(sh)/2+float64(b.Dy())*countdownScale/2,
	)
	op.ColorScale.ScaleWithColor(textColor)
	text.DrawWithOptions(screen, s, face, op)
}

const (
	titleScale     = 2
	countdownScale = 8
)
