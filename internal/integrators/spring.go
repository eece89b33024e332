package integrators

import "github.com/san-kum/dynadraw/internal/dynamo"

// Spring advances the pen with one explicit Euler step of a damped
// mass-spring pulled toward the pointer. One step is one display frame.
//
// Damping multiplies the velocity after the acceleration has been added.
type Spring struct{}

func NewSpring() *Spring {
	return &Spring{}
}

func (s *Spring) Step(pen dynamo.PenState, pointer dynamo.Vec2, p dynamo.Params) dynamo.PenState {
	displacement := pen.Position.Sub(pointer)
	force := displacement.Scale(-p.Stiffness)
	accel := force.Scale(1 / p.Mass)

	velocity := pen.Velocity.Add(accel).Scale(p.Damping)

	return dynamo.PenState{
		Position: pen.Position.Add(velocity),
		Previous: pen.Position,
		Velocity: velocity,
	}
}
