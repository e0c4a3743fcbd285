package main

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-particle-flock/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-particle-flock/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-particle-flock/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-particle-flock/pkg/ui"
	"github.com/tochemey/goakt/v3/log"
)

// whiteImage is the 1-texel source the agent triangles are filled from.
var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.RGBA{R: 200, G: 200, B: 200, A: 255})
}

var (
	backgroundColor = color.RGBA{R: 10, G: 10, B: 30, A: 255}
	reticleColor    = color.RGBA{R: 200, G: 200, B: 200, A: 120}
)

// Game is the windowed host: the mouse cursor is the pointer, the window is
// the arena. It drives the Population directly from ebiten's Update loop.
type Game struct {
	cfg    *simulation.Config
	pop    *simulation.Population
	rng    *rand.Rand
	logger log.Logger
	panel  *ui.Panel

	reticle *ui.Checkbox

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64 // Rolling average in ms
}

var (
	_ ebiten.Game     = (*Game)(nil)
	_ simulation.Host = (*Game)(nil)
)

// NewGame creates the windowed host and spawns its population.
func NewGame(cfg *simulation.Config, seed uint64, logger log.Logger) *Game {
	g := &Game{
		cfg:    cfg,
		rng:    rand.New(rand.NewPCG(seed, seed+1)),
		logger: logger,
	}
	g.respawn()
	g.panel = g.newPanel()
	return g
}

// newPanel builds the control panel. Population settings apply on respawn,
// the policy and the reticle apply at once.
func (g *Game) newPanel() *ui.Panel {
	p := ui.NewPanel("Flock [TAB]", g.cfg.WorldWidth-230, 10, 220)

	p.AddSection("Respawn")
	p.Add(ui.NewSlider("Agents", 0, 500, float64(g.cfg.NumAgents), "%.0f", func(v float64) {
		g.cfg.NumAgents = int(v)
	}))
	p.Add(ui.NewSlider("Max speed", 1, 40, g.cfg.SpeedRange.Max, "%.1f", func(v float64) {
		g.cfg.SpeedRange.Max = max(v, g.cfg.SpeedRange.Min)
	}))
	p.Add(ui.NewSlider("Max force", 0.5, 12, g.cfg.ForceRange.Max, "%.1f", func(v float64) {
		g.cfg.ForceRange.Max = max(v, g.cfg.ForceRange.Min)
	}))
	p.Add(ui.NewButton("Respawn [R]", g.respawn))

	p.AddSection("Live")
	p.Add(ui.NewCheckbox("Snapshot neighbors", g.cfg.Policy() == simulation.Snapshot, func(on bool) {
		policy := simulation.LiveRead
		if on {
			policy = simulation.Snapshot
		}
		g.cfg.NeighborPolicy = policy.String()
		g.pop.SetNeighborPolicy(policy)
	}))
	g.reticle = ui.NewCheckbox("Wander reticle [W]", false, nil)
	p.Add(g.reticle)
	p.Add(ui.NewButton("Add 10 at origin", func() {
		for i := 0; i < 10; i++ {
			g.pop.AddAgent(nil)
		}
	}))
	return p
}

func (g *Game) respawn() {
	g.logger.Infof("spawning %d agents (%s neighbors)", g.cfg.NumAgents, g.cfg.Policy())
	g.pop = simulation.NewPopulation(g.cfg.NumAgents, g.cfg.Origin(), g, g.cfg.PopulationOptions(g.logger)...)
}

func (g *Game) Width() float64  { return g.cfg.WorldWidth }
func (g *Game) Height() float64 { return g.cfg.WorldHeight }
func (g *Game) Float64() float64 {
	return g.rng.Float64()
}

// Pointer is the mouse cursor.
func (g *Game) Pointer() geometry.Vector3D {
	mx, my := ebiten.CursorPosition()
	return geometry.Vector3D{X: float64(mx), Y: float64(my)}
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	in := ui.CursorInput()
	g.panel.Update(in)
	overPanel := g.panel.Contains(in.X, in.Y)

	if !overPanel && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.pop.AddAgent(behavior.NewDefault(g.Width(), g.Height(), g.Pointer()))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.pop.AddAgent(nil)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		g.reticle.Value = !g.reticle.Value
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.panel.Hidden = !g.panel.Hidden
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) || (g.pop.IsEmpty() && inpututil.IsKeyJustPressed(ebiten.KeySpace)) {
		g.respawn()
	}

	g.pop.RunTick()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(backgroundColor)

	g.pop.Render(func(a *behavior.Agent) {
		if g.reticle.Value {
			drawReticle(screen, a)
		}
		drawAgent(screen, a)
	})

	msg := fmt.Sprintf("Agents: %d  Tick: %d\nFPS: %.2f  TPS: %.2f\nUpdate: %.2fms  Draw: %.2fms\n[click] add  [W] reticle  [R] respawn  [TAB] panel",
		g.pop.Len(), g.pop.Ticks(), ebiten.ActualFPS(), ebiten.ActualTPS(), g.updateAvg, g.drawAvg)
	if g.pop.IsEmpty() {
		msg += "\n\nALL AGENTS ARE GONE, press [SPACE]"
	}
	ebitenutil.DebugPrintAt(screen, msg, 10, 10)
	g.panel.Draw(screen)
}

func (g *Game) Layout(w, h int) (int, int) { return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight) }

// drawAgent draws the agent as a triangle pointing along its heading.
func drawAgent(screen *ebiten.Image, a *behavior.Agent) {
	r := a.Radius
	sin, cos := math.Sincos(a.Heading)
	corners := [3][2]float64{{0, -r * 2}, {-r, r * 2}, {r, r * 2}}

	vertices := make([]ebiten.Vertex, 0, 3)
	for _, c := range corners {
		vertices = append(vertices, ebiten.Vertex{
			DstX:   float32(a.Position.X + c[0]*cos - c[1]*sin),
			DstY:   float32(a.Position.Y + c[0]*sin + c[1]*cos),
			SrcX:   1,
			SrcY:   1,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		})
	}
	screen.DrawTriangles(vertices, []uint16{0, 1, 2}, whiteImage, &ebiten.DrawTrianglesOptions{})
}

// drawReticle shows the wander circle and the point the agent steered to.
func drawReticle(screen *ebiten.Image, a *behavior.Agent) {
	circle, target := a.WanderTarget()
	if circle == (geometry.Vector3D{}) && target == (geometry.Vector3D{}) {
		return
	}
	vector.StrokeCircle(screen, float32(circle.X), float32(circle.Y), float32(behavior.WanderRadius), 1, reticleColor, true)
	vector.StrokeCircle(screen, float32(target.X), float32(target.Y), 2, 1, reticleColor, true)
	vector.StrokeLine(screen, float32(a.Position.X), float32(a.Position.Y), float32(circle.X), float32(circle.Y), 1, reticleColor, true)
	vector.StrokeLine(screen, float32(circle.X), float32(circle.Y), float32(target.X), float32(target.Y), 1, reticleColor, true)
}
