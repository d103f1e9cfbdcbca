package race

// DefaultCameraLerp is the per-frame smoothing factor used when following the
// player's horse.
const DefaultCameraLerp = 0.1

// Camera tracks the player's horse with exponential smoothing. It only reads
// race state and never feeds back into the simulation.
type Camera struct {
	X, Y          float64 // top-left scroll offset in world units
	Width, Height float64 // viewport size
	Lerp          float64

	worldWidth  float64
	worldHeight float64
}

// NewCamera builds a camera for a viewport looking at a world of the given
// width. The world height matches the viewport height.
func NewCamera(viewW, viewH, worldW float64) *Camera {
	return &Camera{
		Width:       viewW,
		Height:      viewH,
		Lerp:        DefaultCameraLerp,
		worldWidth:  worldW,
		worldHeight: viewH,
	}
}

// Follow eases the camera towards centring the point (tx, ty).
func (c *Camera) Follow(tx, ty float64) {
	goalX := tx - c.Width/2
	goalY := ty - c.Height/2
	c.X += (goalX - c.X) * c.Lerp
	c.Y += (goalY - c.Y) * c.Lerp
	c.clamp()
}

// Snap centres the camera on (tx, ty) immediately.
func (c *Camera) Snap(tx, ty float64) {
	c.X = tx - c.Width/2
	c.Y = ty - c.Height/2
	c.clamp()
}

// Resize changes the viewport. World bounds are kept; only the vertical
// extent follows the new viewport height.
func (c *Camera) Resize(w, h float64) {
	c.Width = w
	c.Height = h
	c.worldHeight = h
	c.clamp()
}

// WorldToScreen converts a world position into viewport coordinates.
func (c *Camera) WorldToScreen(x, y float64) (float64, float64) {
	return x - c.X, y - c.Y
}

func (c *Camera) clamp() {
	maxX := c.worldWidth - c.Width
	if maxX < 0 {
		maxX = 0
	}
	if c.X < 0 {
		c.X = 0
	}
	if c.X > maxX {
		c.X = maxX
	}
	maxY := c.worldHeight - c.Height
	if maxY < 0 {
		maxY = 0
	}
	if c.Y < 0 {
		c.Y = 0
	}
	if c.Y > maxY {
		c.Y = maxY
	}
}

// Track layout shared by the camera target and the painter.
const (
	// StartX is the screen offset of the starting gate.
	StartX = 50.0
	// TrackTop is the fraction of the viewport height above the lanes.
	TrackTop = 0.4
)

// LaneY returns the vertical centre of lane i for a viewport of height h.
func LaneY(i int, h float64) float64 {
	top := h * TrackTop
	lane := (h - top) / AgentCount
	return top + lane*(float64(i)+0.5)
}

// LaneHeight returns the height of a single lane.
func LaneHeight(h float64) float64 {
	return (h - h*TrackTop) / AgentCount
}
