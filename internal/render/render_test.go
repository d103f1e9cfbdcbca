package render

import (
	"image"
	"image/color"
	"testing"

	"derby/internal/race"
)

func TestSaddlePalette(t *testing.T) {
	want := []color.RGBA{
		{R: 0xe7, G: 0x4c, B: 0x3c, A: 255},
		{R: 0x34, G: 0x98, B: 0xdb, A: 255},
		{R: 0xf1, G: 0xc4, B: 0x0f, A: 255},
		{R: 0x2e, G: 0xcc, B: 0x71, A: 255},
		{R: 0x9b, G: 0x59, B: 0xb6, A: 255},
	}
	for i, c := range want {
		if got := Saddle(i); got != c {
			t.Fatalf("lane %d: expected %v, got %v", i, c, got)
		}
	}
	if Saddle(5) != want[0] {
		t.Fatal("expected palette to wrap")
	}
}

func TestParseHexRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "#fff", "#zzzzzz", "1234567"} {
		if _, err := ParseHex(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestCheckerCells(t *testing.T) {
	cells := CheckerCells(4, 4, 2)
	want := []uint8{
		0, 0, 1, 1,
		0, 0, 1, 1,
		1, 1, 0, 0,
		1, 1, 0, 0,
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Fatalf("cell %d: expected %d, got %d", i, want[i], cells[i])
		}
	}
	if CheckerCells(0, 3, 2) != nil {
		t.Fatal("expected nil for empty area")
	}
}

func TestFinishPixels(t *testing.T) {
	buf, w, h := FinishPixels(60)
	if w != 40 || h != 60 || len(buf) != 4*w*h {
		t.Fatalf("unexpected strip %dx%d (%d bytes)", w, h, len(buf))
	}
	at := func(x, y int) uint8 { return buf[(y*w+x)*4] }
	if at(0, 0) != 255 || at(FinishCell, 0) != 0 || at(0, FinishCell) != 0 || at(FinishCell, FinishCell) != 255 {
		t.Fatal("finish strip is not chequered")
	}
}

func TestFillPaletteRGBAClampsIndex(t *testing.T) {
	buf := make([]byte, 8)
	fillPaletteRGBA(buf, []uint8{0, 7}, []color.RGBA{{R: 1, A: 255}, {R: 2, A: 255}})
	if buf[0] != 1 || buf[4] != 2 {
		t.Fatalf("unexpected pixels %v", buf)
	}
	fillPaletteRGBA(buf, []uint8{1, 1}, nil)
	for _, b := range buf {
		if b != 0 {
			t.Fatal("expected cleared buffer for empty palette")
		}
	}
}

func TestFillRectClipsToBuffer(t *testing.T) {
	buf := make([]byte, 4*3*3)
	fillRectRGBA(buf, 3, image.Rect(-5, 1, 10, 2), color.RGBA{G: 9, A: 255})
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			g := buf[(y*3+x)*4+1]
			if (y == 1) != (g == 9) {
				t.Fatalf("pixel (%d,%d) wrong: %d", x, y, g)
			}
		}
	}
}

func TestHorsePixelsUsesSaddle(t *testing.T) {
	saddle := Saddle(2)
	buf, w, h := HorsePixels(saddle, 1)
	if w != HorseWidth || h != HorseHeight {
		t.Fatalf("unexpected sprite size %dx%d", w, h)
	}
	found := false
	for i := 0; i < len(buf); i += 4 {
		if buf[i] == saddle.R && buf[i+1] == saddle.G && buf[i+2] == saddle.B {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("expected saddle colour in sprite")
	}
}

func TestStrideFollowsGait(t *testing.T) {
	var s Stride
	if f := s.Advance(0, 1000); f != 0 {
		t.Fatalf("stopped horse must not animate, got frame %d", f)
	}
	if f := s.Advance(1, StrideMs); f != 1 {
		t.Fatalf("expected frame 1, got %d", f)
	}
	if f := s.Advance(2, StrideMs); f != 3 {
		t.Fatalf("expected frame 3 at double gait, got %d", f)
	}
	if f := s.Advance(1, StrideMs); f != 0 {
		t.Fatalf("expected cycle to wrap, got %d", f)
	}
}

func TestPlaceFollowsCamera(t *testing.T) {
	cam := race.NewCamera(960, 500, 3840)
	a := race.Agent{Index: 0, Position: 100, Player: true}
	sp := Place(a, *cam)
	if sp.X != race.StartX+100-HorseWidth {
		t.Fatalf("unexpected x %v", sp.X)
	}
	if want := race.LaneY(0, 500) - HorseHeight/2; sp.Y != want {
		t.Fatalf("expected y %v, got %v", want, sp.Y)
	}

	cam.X = 400
	if moved := Place(a, *cam); moved.X != sp.X-400 {
		t.Fatalf("expected sprite to scroll with camera, got %v", moved.X)
	}
	if FinishScreenX(3640, *cam) != race.StartX+3640-400 {
		t.Fatal("unexpected finish line position")
	}
}

func TestVisible(t *testing.T) {
	cam := race.Camera{Width: 100}
	if !Visible(-10, 20, cam) || Visible(-30, 20, cam) || Visible(100, 5, cam) {
		t.Fatal("unexpected visibility")
	}
}
