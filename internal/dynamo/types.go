package dynamo

import (
	"image/color"
	"math"
)

const (
	DefaultStiffness    = 0.06
	DefaultDamping      = 0.88
	DefaultMass         = 1.0
	DefaultDuctus       = 0.5
	DefaultMaxThickness = 20.0

	// MinThickness is the floor applied to every stroke width.
	MinThickness = 1.0
)

var (
	StiffnessRange = Range{Min: 0.01, Max: 0.2}
	DampingRange   = Range{Min: 0.25, Max: 0.999}
)

type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vec2) IsValid() bool {
	for _, c := range [2]float64{v.X, v.Y} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// PenState is the simulated pen. Previous holds the position before the last
// integration step so the renderer can join the two.
type PenState struct {
	Position Vec2
	Previous Vec2
	Velocity Vec2
}

// NewPenState returns a pen at rest at p.
func NewPenState(p Vec2) PenState {
	return PenState{Position: p, Previous: p}
}

func (s PenState) Speed() float64 { return s.Velocity.Norm() }

func (s PenState) IsValid() bool {
	return s.Position.IsValid() && s.Previous.IsValid() && s.Velocity.IsValid()
}

type Range struct {
	Min, Max float64
}

func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Fraction maps v onto [0, 1] across the range without clamping.
func (r Range) Fraction(v float64) float64 {
	return (v - r.Min) / (r.Max - r.Min)
}

// Lerp is the inverse of Fraction.
func (r Range) Lerp(f float64) float64 {
	return f*(r.Max-r.Min) + r.Min
}

type Params struct {
	Stiffness    float64
	Damping      float64
	Mass         float64
	Ductus       float64
	MaxThickness float64
}

func DefaultParams() Params {
	return Params{
		Stiffness:    DefaultStiffness,
		Damping:      DefaultDamping,
		Mass:         DefaultMass,
		Ductus:       DefaultDuctus,
		MaxThickness: DefaultMaxThickness,
	}
}

// Clamped returns p with stiffness and damping forced into their ranges.
// The remaining fields are fixed for a session and are left alone.
func (p Params) Clamped() Params {
	p.Stiffness = StiffnessRange.Clamp(p.Stiffness)
	p.Damping = DampingRange.Clamp(p.Damping)
	return p
}

type InputSample struct {
	Pointer Vec2
	Down    bool
}

// Segment is one frame's worth of ink. It is handed to a surface and dropped.
type Segment struct {
	From      Vec2
	To        Vec2
	Thickness float64
	Color     color.RGBA
}

// HasJoint reports whether the renderer caps the segment end with a disc.
func (s Segment) HasJoint() bool { return s.Thickness > MinThickness }

type Integrator interface {
	Step(pen PenState, pointer Vec2, p Params) PenState
}

type Frame struct {
	Index   int
	Pen     PenState
	Input   InputSample
	Params  Params
	Segment *Segment
}

type Observer interface {
	OnFrame(f Frame)
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}
