package render

import (
	"math"

	"derby/internal/race"
)

// Stride advances a horse's gallop animation. At gait 1 the cycle moves one
// frame every StrideMs.
type Stride struct {
	phase float64
}

// StrideMs is the frame duration at gait 1.
const StrideMs = 100.0

// Advance moves the animation by delta milliseconds at the given gait and
// returns the frame to draw.
func (s *Stride) Advance(gait, delta float64) int {
	if gait > 0 && delta > 0 {
		s.phase = math.Mod(s.phase+gait*delta/StrideMs, GaitFrames)
	}
	return s.Frame()
}

// Frame returns the current frame without advancing.
func (s *Stride) Frame() int {
	return int(s.phase) % GaitFrames
}

// Sprite is a horse positioned in screen space.
type Sprite struct {
	Lane   int
	X, Y   float64
	Player bool
}

// Place converts an agent's race position into the screen position of its
// sprite. The nose sits on the agent's position so the sprite touches the
// finish line at the moment the horse is recorded as finished.
func Place(a race.Agent, cam race.Camera) Sprite {
	wx := race.StartX + a.Position - HorseWidth
	wy := race.LaneY(a.Index, cam.Height) - HorseHeight/2
	x, y := cam.WorldToScreen(wx, wy)
	return Sprite{Lane: a.Index, X: x, Y: y, Player: a.Player}
}

// FinishScreenX returns the viewport x of the finish line.
func FinishScreenX(finishLine float64, cam race.Camera) float64 {
	x, _ := cam.WorldToScreen(race.StartX+finishLine, 0)
	return x
}

// Visible reports whether a span [x, x+w) overlaps the viewport.
func Visible(x, w float64, cam race.Camera) bool {
	return x+w > 0 && x < cam.Width
}
