//go:build ebiten

package render

import (
	"image/color"

	"derby/internal/race"

	"github.com/hajimehoshi/ebiten/v2"
)

// View is everything the painter needs from a scene for one frame.
type View struct {
	Camera     race.Camera
	Agents     []race.Agent
	FinishLine float64
}

// Painter draws the track and the horses.
type Painter struct {
	pixel   *ebiten.Image
	finish  *ebiten.Image
	horses  [race.AgentCount][GaitFrames]*ebiten.Image
	strides [race.AgentCount]Stride
}

// NewPainter allocates the sprite sheet for every lane.
func NewPainter() *Painter {
	p := &Painter{pixel: ebiten.NewImage(1, 1)}
	p.pixel.Fill(color.White)
	for lane := range p.horses {
		for frame := range p.horses[lane] {
			buf, w, h := HorsePixels(Saddle(lane), frame)
			img := ebiten.NewImage(w, h)
			img.WritePixels(buf)
			p.horses[lane][frame] = img
		}
	}
	return p
}

// Reset restarts every gallop cycle.
func (p *Painter) Reset() {
	p.strides = [race.AgentCount]Stride{}
}

// Draw paints v onto screen, animating each horse by delta milliseconds.
func (p *Painter) Draw(screen *ebiten.Image, v View, delta float64) {
	cam := v.Camera
	w, h := cam.Width, cam.Height
	top := h * race.TrackTop

	p.rect(screen, 0, 0, w, top, Grass)
	p.rect(screen, 0, top, w, h-top, Turf)
	lane := race.LaneHeight(h)
	for i := 0; i <= race.AgentCount; i++ {
		p.rect(screen, 0, top+lane*float64(i)-1, w, 2, Rail)
	}

	p.drawFinish(screen, FinishScreenX(v.FinishLine, cam), top, h-top)

	for _, a := range v.Agents {
		if a.Index < 0 || a.Index >= race.AgentCount {
			continue
		}
		frame := p.strides[a.Index].Advance(a.Gait(), delta)
		sp := Place(a, cam)
		if !Visible(sp.X, HorseWidth, cam) {
			continue
		}
		if sp.Player {
			p.rect(screen, sp.X-2, sp.Y-2, HorseWidth+4, HorseHeight+4, Highlight)
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(sp.X, sp.Y)
		screen.DrawImage(p.horses[a.Index][frame], op)
	}
}

func (p *Painter) drawFinish(screen *ebiten.Image, x, top, height float64) {
	if !Visible(x, FinishCell*FinishColumns, race.Camera{Width: float64(screen.Bounds().Dx())}) {
		return
	}
	if p.finish == nil || p.finish.Bounds().Dy() != int(height) {
		buf, w, h := FinishPixels(int(height))
		if w == 0 || h == 0 {
			return
		}
		p.finish = ebiten.NewImage(w, h)
		p.finish.WritePixels(buf)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, top)
	screen.DrawImage(p.finish, op)
}

func (p *Painter) rect(dst *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	dst.DrawImage(p.pixel, op)
}
