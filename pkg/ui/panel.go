package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	panelMargin  = 10.0
	panelTitleH  = 25.0
	sectionTitle = 22.0
)

// Panel stacks widgets top to bottom under optional section headers.
type Panel struct {
	Title  string
	Bounds Rect
	Hidden bool

	BGColor     color.RGBA
	BorderColor color.RGBA

	items   []panelItem
	nextY   float64
	widgets []Widget
}

type panelItem struct {
	header string
	y      float64
	widget Widget
}

// NewPanel creates an empty panel of the given width at (x, y).
// Its height grows as widgets are added.
func NewPanel(title string, x, y, width float64) *Panel {
	return &Panel{
		Title:       title,
		Bounds:      Rect{X: x, Y: y, W: width, H: panelTitleH},
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
		nextY:       y + panelTitleH,
	}
}

// AddSection starts a new section header.
func (p *Panel) AddSection(title string) {
	p.items = append(p.items, panelItem{header: title, y: p.nextY})
	p.grow(sectionTitle)
}

// Add places w under the previous widget and returns it.
func (p *Panel) Add(w Widget) Widget {
	h := w.Place(p.Bounds.X+panelMargin, p.nextY, p.Bounds.W-2*panelMargin)
	p.items = append(p.items, panelItem{widget: w})
	p.widgets = append(p.widgets, w)
	p.grow(h)
	return w
}

func (p *Panel) grow(h float64) {
	p.nextY += h
	p.Bounds.H = p.nextY - p.Bounds.Y + panelMargin/2
}

// Contains reports whether the cursor is over the visible panel.
func (p *Panel) Contains(x, y float64) bool {
	return !p.Hidden && p.Bounds.Contains(x, y)
}

// Update feeds the frame input to every widget.
func (p *Panel) Update(in Input) {
	if p.Hidden {
		return
	}
	for _, w := range p.widgets {
		w.Update(in)
	}
}

func (p *Panel) Draw(screen *ebiten.Image) {
	if p.Hidden {
		return
	}
	b := p.Bounds
	vector.FillRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), p.BGColor, true)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(b.X+panelMargin), int(b.Y+5))

	sectionBG := color.RGBA{R: 60, G: 60, B: 70, A: 255}
	for _, it := range p.items {
		if it.widget != nil {
			it.widget.Draw(screen)
			continue
		}
		vector.FillRect(screen, float32(b.X+5), float32(it.y), float32(b.W-10), 18, sectionBG, true)
		ebitenutil.DebugPrintAt(screen, it.header, int(b.X+panelMargin), int(it.y+2))
	}
}
