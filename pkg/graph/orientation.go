package graph

import (
	"math"

	"github.com/taigrr/surfgraph/pkg/math3d"
)

// Orientation holds the roll (alpha) and yaw (beta) of the view together
// with their cached sines and cosines.
//
// The cached values are only written by the setters below, so they always
// agree with Roll and Yaw.
type Orientation struct {
	roll, yaw                        float64
	rollCos, rollSin, yawCos, yawSin float64
}

// NewOrientation returns an orientation with roll and yaw of zero.
func NewOrientation() *Orientation {
	o := &Orientation{}
	o.Set(0, 0)
	return o
}

// Set stores roll and yaw and recomputes both cached pairs.
func (o *Orientation) Set(roll, yaw float64) {
	o.SetRoll(roll)
	o.SetYaw(yaw)
}

// SetRoll changes only the roll.
func (o *Orientation) SetRoll(roll float64) {
	o.roll = roll
	o.rollSin, o.rollCos = math.Sincos(roll)
}

// SetYaw changes only the yaw.
func (o *Orientation) SetYaw(yaw float64) {
	o.yaw = yaw
	o.yawSin, o.yawCos = math.Sincos(yaw)
}

// RotateBy subtracts deltaRoll from the roll and adds deltaYaw to the yaw.
// The opposite signs follow the drag direction convention of the viewer.
func (o *Orientation) RotateBy(deltaRoll, deltaYaw float64) {
	o.Set(o.roll-deltaRoll, o.yaw+deltaYaw)
}

// Roll returns the current roll in radians.
func (o *Orientation) Roll() float64 { return o.roll }

// Yaw returns the current yaw in radians.
func (o *Orientation) Yaw() float64 { return o.yaw }

// RollCos returns the cached cosine of the roll.
func (o *Orientation) RollCos() float64 { return o.rollCos }

// RollSin returns the cached sine of the roll.
func (o *Orientation) RollSin() float64 { return o.rollSin }

// YawCos returns the cached cosine of the yaw.
func (o *Orientation) YawCos() float64 { return o.yawCos }

// YawSin returns the cached sine of the yaw.
func (o *Orientation) YawSin() float64 { return o.yawSin }

// Rotate applies yaw then roll to p, without any camera translation.
func (o *Orientation) Rotate(p math3d.Vec3) math3d.Vec3 {
	xx := p.X*o.yawCos - p.Z*o.yawSin
	zz := p.Z*o.yawCos + p.X*o.yawSin
	yy := p.Y*o.rollCos - zz*o.rollSin
	zz = zz*o.rollCos + p.Y*o.rollSin
	return math3d.V3(xx, yy, zz)
}

// Matrix returns the rotation performed by Rotate as a matrix.
func (o *Orientation) Matrix() math3d.Mat4 {
	return math3d.RotateX(o.roll).Mul(math3d.RotateY(-o.yaw))
}
