package server

import "math"

// Kinematics is the slice of ship state the movement model advances.
type Kinematics struct {
	X        float64
	Y        float64
	Rotation float64
	VelX     float64
	VelY     float64
	AccelX   float64
	AccelY   float64
}

// Intent is the abstract input state for one tick, independent of the
// input device that produced it.
type Intent struct {
	TurnLeft  bool `json:"turnLeft"`
	TurnRight bool `json:"turnRight"`
	Thrust    bool `json:"thrust"`
}

// Step advances a ship one simulation tick. It is a pure transform:
// the same state, intent, and dt always produce the same result.
//
// Holding both turn flags cancels to zero angular velocity. Thrust
// accelerates along the heading plus the nose offset; releasing it
// zeroes acceleration and lets linear drag bleed speed off. Speed is
// clamped to the configured maximum and positions wrap across the
// world edges with a small margin so ships re-enter on the far side.
func Step(k Kinematics, intent Intent, dt float64, cfg WorldConfig) Kinematics {
	switch {
	case intent.TurnLeft && !intent.TurnRight:
		k.Rotation -= cfg.TurnRate * dt
	case intent.TurnRight && !intent.TurnLeft:
		k.Rotation += cfg.TurnRate * dt
	}

	if intent.Thrust {
		heading := k.Rotation + cfg.NoseOffset
		k.AccelX = math.Cos(heading) * cfg.ThrustAccel
		k.AccelY = math.Sin(heading) * cfg.ThrustAccel
		k.VelX += k.AccelX * dt
		k.VelY += k.AccelY * dt
	} else {
		k.AccelX = 0
		k.AccelY = 0
		if speed := math.Hypot(k.VelX, k.VelY); speed > 0 {
			decayed := speed - cfg.LinearDrag*dt
			if decayed < 0 {
				decayed = 0
			}
			k.VelX *= decayed / speed
			k.VelY *= decayed / speed
		}
	}

	if speed := math.Hypot(k.VelX, k.VelY); speed > cfg.MaxSpeed {
		scale := cfg.MaxSpeed / speed
		k.VelX *= scale
		k.VelY *= scale
	}

	k.X = wrap(k.X+k.VelX*dt, cfg.Width, cfg.WrapMargin)
	k.Y = wrap(k.Y+k.VelY*dt, cfg.Height, cfg.WrapMargin)
	return k
}

// wrap maps a coordinate into [-margin, extent+margin), teleporting a
// ship that leaves one edge back in at the opposite one. Velocity is
// untouched, so wrapping never causes a kink in motion.
func wrap(v, extent, margin float64) float64 {
	span := extent + 2*margin
	shifted := math.Mod(v+margin, span)
	if shifted < 0 {
		shifted += span
	}
	return shifted - margin
}
