//go:build ebiten

package app

import (
	"fmt"

	"derby/internal/core"
	"derby/internal/events"
	"derby/internal/race"
	"derby/internal/render"
	"derby/internal/session"
	"derby/internal/ui"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var pickKeys = [race.AgentCount]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5,
}

// Game adapts a race session to the ebiten.Game interface.
type Game struct {
	cfg     *Config
	log     *log.Logger
	session *session.Session
	frames  *core.FrameTimer
	painter *render.Painter
	hud     *ui.HUD
	overlay *ui.Overlay

	width, height int
	delta         float64
	touches       []ebiten.TouchID
}

// New constructs a Game whose races run on bus.
func New(cfg *Config, bus *events.Bus, logger *log.Logger) (*Game, error) {
	clock := core.NewWallClock()
	factory, err := cfg.SceneFactory(clock, logger)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	s := session.New(bus, clock, factory, logger)
	return &Game{
		cfg:     cfg,
		log:     logger,
		session: s,
		frames:  core.NewFrameTimer(clock),
		painter: render.NewPainter(),
		hud:     ui.NewHUD(s),
		overlay: ui.NewOverlay(s),
		width:   cfg.Width,
		height:  cfg.Height,
	}, nil
}

// Close releases the session.
func (g *Game) Close() {
	g.session.Close()
}

// Update handles per-frame input and advances the race.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.session.Restart()
		g.painter.Reset()
	}

	if g.session.Phase() == session.PhaseLobby {
		g.pick()
	}
	if g.tapped() {
		g.session.Tap()
	}

	g.delta = g.frames.Delta()
	g.session.Update(g.delta)
	g.hud.Update()
	g.overlay.Update()
	return nil
}

func (g *Game) pick() {
	if lane, ok := g.cfg.Player(); ok {
		g.selectHorse(lane)
		return
	}
	for lane, key := range pickKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.selectHorse(lane)
			return
		}
	}
}

func (g *Game) selectHorse(lane int) {
	if err := g.session.Select(lane); err != nil {
		g.log.Error("cannot start race", "horse", lane+1, "err", err)
	}
}

func (g *Game) tapped() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	g.touches = inpututil.AppendJustPressedTouchIDs(g.touches[:0])
	return len(g.touches) > 0
}

// Draw renders the track, the horses and the panels.
func (g *Game) Draw(screen *ebiten.Image) {
	if sc := g.session.Scene(); sc != nil {
		g.painter.Draw(screen, render.View{
			Camera:     sc.Camera(),
			Agents:     sc.Agents(),
			FinishLine: sc.FinishLine(),
		}, g.delta)
	} else {
		screen.Fill(render.Grass)
	}
	g.hud.Draw(screen)
	g.overlay.Draw(screen)
}

// Layout follows the window size. The running scene keeps its track length
// and only adjusts the camera; the next race is laid out for the new size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := outsideWidth / g.cfg.Scale
	h := outsideHeight / g.cfg.Scale
	if w <= 0 || h <= 0 {
		return g.width, g.height
	}
	if w != g.width || h != g.height {
		g.width, g.height = w, h
		g.cfg.Width, g.cfg.Height = w, h
		if sc := g.session.Scene(); sc != nil {
			sc.Resize(float64(w), float64(h))
		}
	}
	return w, h
}
