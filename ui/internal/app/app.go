// Package app adapts pkg/sim to the ebiten.Game interface, the way the
// root project's internal/app.Game adapted its core.Sim interface. This is
// the "canvas rendering" collaborator named in spec.md §1: it never
// participates in the simulation or GA contracts, it only displays them.
package app

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"evocell/internal/core"
	"evocell/internal/seedlib"
	"evocell/pkg/sim"
	"evocell/ui/internal/render"

	"evocell/ui/internal/hud"
)

const hudWidth = 220

// Game renders a pkg/sim.State frame stream and lets a local user drive it
// interactively: pause/run, single step, randomize, and adjust speed.
type Game struct {
	state   *sim.State
	painter *render.GridPainter
	hud     *hud.HUD

	rule     string
	onColor  color.Color
	offColor color.Color

	scale      int
	paused     bool
	tickOnce   bool
	density    float64
	randomSeed int64
	pacer      *core.FixedStep
}

// New constructs a Game for the provided engine state.
func New(state *sim.State, scale int, density float64, seed int64) *Game {
	cfg := state.Config()
	gp := render.NewGridPainter(cfg.Width, cfg.Height)
	h := hud.New(hudWidth, 10)
	return &Game{
		state:      state,
		painter:    gp,
		hud:        h,
		rule:       cfg.Rule.String(),
		onColor:    color.White,
		offColor:   color.Black,
		scale:      scale,
		density:    density,
		randomSeed: seed,
		pacer:      core.NewFixedStep(h.Speed()),
	}
}

// Update handles per-frame input and advances the simulation at the HUD's
// configured speed while running.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.state.Randomize(g.density, g.randomSeed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		if pattern, ok := seedlib.Lookup("blinker"); ok {
			cfg := g.state.Config()
			buffer := make([]uint8, cfg.CellCount())
			pattern.Apply(buffer, cfg.Width, cfg.Height)
			g.state.ApplySeed(buffer)
		}
	}

	g.hud.Update(g.state.Config().Width * g.scale)
	g.pacer.SetTPS(g.hud.Speed())

	if !g.paused && !g.state.Terminated() && g.pacer.ShouldStep() {
		g.state.Step()
	}
	if g.tickOnce {
		g.state.Step()
		g.tickOnce = false
	}
	return nil
}

// Draw renders the current simulation state and the HUD panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.state.Cells(), g.onColor, g.offColor, g.scale)
	frame := g.state.Snapshot()
	cfg := g.state.Config()
	g.hud.Draw(screen, cfg.Width*g.scale, g.scale, frame, g.rule)
}

// Layout returns the logical screen size: the grid plus the HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := g.state.Config()
	return cfg.Width*g.scale + hudWidth, cfg.Height * g.scale
}
