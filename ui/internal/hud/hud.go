// Package hud draws the stats/controls panel anchored to the right of the
// simulation view, adapted from the root project's internal/ui HUD (button
// affordances, basicfont text rendering) but stripped down to the fields a
// cellular-automaton viewer actually has: generation, population, hash,
// termination reason, and a run-speed control.
package hud

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"evocell/pkg/sim"
)

const (
	panelPadding   = 12
	headerBaseline = 18
	lineHeight     = 22
	buttonSize     = 24
	buttonGap      = 6
)

// HUD renders simulation stats and a run-speed +/- control.
type HUD struct {
	width      int
	panel      *ebiten.Image
	pixel      *ebiten.Image
	lastHeight int

	speed        int
	minSpeed     int
	maxSpeed     int
	panelOffsetX int
	minusRect    image.Rectangle
	plusRect     image.Rectangle
}

// New constructs a HUD panel of the given width, with an initial run speed.
func New(width, initialSpeed int) *HUD {
	h := &HUD{width: width, speed: initialSpeed, minSpeed: 1, maxSpeed: 120}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.layout()
	return h
}

func (h *HUD) layout() {
	if h.width <= 0 {
		return
	}
	top := panelPadding + headerBaseline*4
	h.plusRect = image.Rect(h.width-panelPadding-buttonSize, top, h.width-panelPadding, top+buttonSize)
	h.minusRect = image.Rect(h.plusRect.Min.X-buttonGap-buttonSize, top, h.plusRect.Min.X-buttonGap, top+buttonSize)
}

// Speed reports the currently selected steps-per-second rate.
func (h *HUD) Speed() int { return h.speed }

// Update handles mouse clicks on the speed +/- buttons.
func (h *HUD) Update(panelOffsetX int) {
	h.panelOffsetX = panelOffsetX
	if h.width <= 0 || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < panelOffsetX {
		return
	}
	px := mx - panelOffsetX
	if pointInRect(px, my, h.minusRect) && h.speed > h.minSpeed {
		h.speed--
	}
	if pointInRect(px, my, h.plusRect) && h.speed < h.maxSpeed {
		h.speed++
	}
}

// Draw paints the panel for the given frame and rule string.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, scale int, frame *sim.Frame, ruleStr string) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := screen.Bounds().Dy()
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	lines := []string{
		fmt.Sprintf("rule %s", ruleStr),
		fmt.Sprintf("generation %d", frame.Generation),
		fmt.Sprintf("population %d", frame.Population),
		fmt.Sprintf("hash %08x", frame.Hash),
	}
	if frame.Terminated {
		line := frame.Reason.String()
		if frame.HasPeriod {
			line += " period " + strconv.Itoa(frame.Period)
		}
		lines = append(lines, line)
	}
	for i, line := range lines {
		y := panelPadding + headerBaseline + i*lineHeight
		text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
	}

	h.drawButton(h.minusRect, "-")
	h.drawButton(h.plusRect, "+")
	speedY := h.plusRect.Min.Y + lineHeight
	text.Draw(h.panel, fmt.Sprintf("%d steps/sec", h.speed), face, panelPadding, speedY, color.RGBA{R: 200, G: 200, B: 210, A: 255})

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawButton(rect image.Rectangle, label string) {
	if h.pixel == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorM.Scale(54.0/255, 56.0/255, 64.0/255, 1)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, color.RGBA{R: 230, G: 230, B: 240, A: 255})
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
