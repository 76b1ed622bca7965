package graph

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// restVelocity is the per-frame rotation below which inertia stops.
const restVelocity = 1e-4

// spinAxis is one rotation velocity decayed toward zero by a spring.
type spinAxis struct {
	velocity float64
	accel    float64 // spring velocity of velocity
	spring   harmonica.Spring
}

func (a *spinAxis) update() {
	a.velocity, a.accel = a.spring.Update(a.velocity, a.accel, 0)
}

// Inertia keeps a released drag spinning and eases it to a stop.
type Inertia struct {
	roll, yaw spinAxis
}

// NewInertia creates inertia stepped fps times per second.
func NewInertia(fps int) *Inertia {
	// Frequency 4, damping 1: critically damped, no overshoot.
	spring := harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)
	return &Inertia{
		roll: spinAxis{spring: spring},
		yaw:  spinAxis{spring: spring},
	}
}

// Push adds per-frame rotation velocity.
func (in *Inertia) Push(dRoll, dYaw float64) {
	in.roll.velocity += dRoll
	in.yaw.velocity += dYaw
}

// Stop drops all velocity.
func (in *Inertia) Stop() {
	in.roll.velocity, in.roll.accel = 0, 0
	in.yaw.velocity, in.yaw.accel = 0, 0
}

// Moving reports whether either axis is still above rest velocity.
func (in *Inertia) Moving() bool {
	return math.Abs(in.roll.velocity) > restVelocity || math.Abs(in.yaw.velocity) > restVelocity
}

// Step returns the rotation for this frame and decays the velocities. Once
// both axes fall to rest the velocities are cleared and moving is false.
func (in *Inertia) Step() (dRoll, dYaw float64, moving bool) {
	if !in.Moving() {
		in.Stop()
		return 0, 0, false
	}
	dRoll, dYaw = in.roll.velocity, in.yaw.velocity
	in.roll.update()
	in.yaw.update()
	return dRoll, dYaw, true
}
