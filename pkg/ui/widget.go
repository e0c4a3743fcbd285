// Package ui holds the small immediate-mode widgets of the flock control panel.
package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	trackColor  = color.RGBA{R: 80, G: 80, B: 80, A: 255}
	fillColor   = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	borderColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	checkColor  = color.RGBA{R: 100, G: 200, B: 100, A: 255}
	buttonColor = color.RGBA{R: 80, G: 120, B: 180, A: 255}
	hoverColor  = color.RGBA{R: 100, G: 150, B: 220, A: 255}
)

// Input is the mouse state of one frame.
type Input struct {
	X, Y    float64
	Pressed bool
}

// CursorInput reads the current mouse state from ebiten.
func CursorInput() Input {
	mx, my := ebiten.CursorPosition()
	return Input{
		X:       float64(mx),
		Y:       float64(my),
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
}

// Rect is an axis aligned screen rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) is inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Widget is anything the Panel can stack.
type Widget interface {
	Update(in Input)
	Draw(screen *ebiten.Image)
	// Place moves the widget to (x, y) with width w and returns its height.
	Place(x, y, w float64) float64
}

// Slider edits a float in [Min, Max]. OnChange fires when the value moves.
type Slider struct {
	Label    string
	Value    float64
	Min, Max float64
	Format   string
	OnChange func(float64)

	bounds Rect
}

// NewSlider creates a slider, format is the fmt verb used to print the value.
func NewSlider(label string, min, max, value float64, format string, onChange func(float64)) *Slider {
	return &Slider{Label: label, Min: min, Max: max, Value: value, Format: format, OnChange: onChange}
}

func (s *Slider) Place(x, y, w float64) float64 {
	s.bounds = Rect{X: x, Y: y + 15, W: w, H: 10}
	return 30
}

func (s *Slider) Update(in Input) {
	if !in.Pressed || !s.bounds.Contains(in.X, in.Y) {
		return
	}
	v := s.Min + (in.X-s.bounds.X)/s.bounds.W*(s.Max-s.Min)
	v = max(s.Min, min(s.Max, v))
	if v != s.Value {
		s.Value = v
		if s.OnChange != nil {
			s.OnChange(v)
		}
	}
}

func (s *Slider) Draw(screen *ebiten.Image) {
	b := s.bounds
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s: "+s.Format, s.Label, s.Value), int(b.X), int(b.Y-15))
	vector.FillRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), trackColor, true)
	ratio := (s.Value - s.Min) / (s.Max - s.Min)
	vector.FillRect(screen, float32(b.X), float32(b.Y), float32(b.W*ratio), float32(b.H), fillColor, true)
}

// Checkbox toggles a bool on each press.
type Checkbox struct {
	Label    string
	Value    bool
	OnChange func(bool)

	bounds  Rect
	pressed bool // debounce, one toggle per press
}

func NewCheckbox(label string, value bool, onChange func(bool)) *Checkbox {
	return &Checkbox{Label: label, Value: value, OnChange: onChange}
}

func (c *Checkbox) Place(x, y, _ float64) float64 {
	c.bounds = Rect{X: x, Y: y, W: 16, H: 16}
	return 22
}

func (c *Checkbox) Update(in Input) {
	if in.Pressed && c.bounds.Contains(in.X, in.Y) {
		if !c.pressed {
			c.Value = !c.Value
			c.pressed = true
			if c.OnChange != nil {
				c.OnChange(c.Value)
			}
		}
		return
	}
	c.pressed = false
}

func (c *Checkbox) Draw(screen *ebiten.Image) {
	b := c.bounds
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 2, borderColor, true)
	if c.Value {
		vector.FillRect(screen, float32(b.X+2), float32(b.Y+2), float32(b.W-4), float32(b.H-4), checkColor, true)
	}
	ebitenutil.DebugPrintAt(screen, c.Label, int(b.X+b.W+6), int(b.Y))
}

// Button calls OnClick once per press.
type Button struct {
	Label   string
	OnClick func()

	bounds  Rect
	hover   bool
	pressed bool
}

func NewButton(label string, onClick func()) *Button {
	return &Button{Label: label, OnClick: onClick}
}

func (b *Button) Place(x, y, w float64) float64 {
	b.bounds = Rect{X: x, Y: y, W: w, H: 20}
	return 26
}

func (b *Button) Update(in Input) {
	b.hover = b.bounds.Contains(in.X, in.Y)
	if b.hover && in.Pressed {
		if !b.pressed && b.OnClick != nil {
			b.OnClick()
		}
		b.pressed = true
		return
	}
	b.pressed = false
}

func (b *Button) Draw(screen *ebiten.Image) {
	r := b.bounds
	bg := buttonColor
	if b.hover {
		bg = hoverColor
	}
	vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), bg, true)
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 2, borderColor, true)
	ebitenutil.DebugPrintAt(screen, b.Label, int(r.X+6), int(r.Y+3))
}
