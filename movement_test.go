package server

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStepIsDeterministic(t *testing.T) {
	cfg := DefaultWorldConfig()
	k := Kinematics{X: 120, Y: 80, Rotation: 0.7, VelX: 35, VelY: -12}
	intent := Intent{TurnRight: true, Thrust: true}

	first := Step(k, intent, 1.0/15, cfg)
	second := Step(k, intent, 1.0/15, cfg)

	require.Equal(t, first, second)
}

func TestTurnFlagsCancel(t *testing.T) {
	cfg := DefaultWorldConfig()
	k := Kinematics{Rotation: 1.2}

	both := Step(k, Intent{TurnLeft: true, TurnRight: true}, 0.1, cfg)
	require.Equal(t, k.Rotation, both.Rotation)

	neither := Step(k, Intent{}, 0.1, cfg)
	require.Equal(t, k.Rotation, neither.Rotation)
}

func TestTurnAppliesAngularVelocity(t *testing.T) {
	cfg := DefaultWorldConfig()
	k := Kinematics{}

	right := Step(k, Intent{TurnRight: true}, 0.1, cfg)
	require.InDelta(t, cfg.TurnRate*0.1, right.Rotation, 1e-9)

	left := Step(k, Intent{TurnLeft: true}, 0.1, cfg)
	require.InDelta(t, -cfg.TurnRate*0.1, left.Rotation, 1e-9)
}

func TestThrustAcceleratesAlongNoseOffset(t *testing.T) {
	cfg := DefaultWorldConfig()
	k := Kinematics{X: 400, Y: 225}

	next := Step(k, Intent{Thrust: true}, 1.0, cfg)

	heading := k.Rotation + cfg.NoseOffset
	require.InDelta(t, math.Cos(heading)*cfg.ThrustAccel, next.VelX, 1e-9)
	require.InDelta(t, math.Sin(heading)*cfg.ThrustAccel, next.VelY, 1e-9)
	require.InDelta(t, math.Cos(heading)*cfg.ThrustAccel, next.AccelX, 1e-9)
}

func TestCoastingBleedsSpeedOff(t *testing.T) {
	cfg := DefaultWorldConfig()
	k := Kinematics{X: 400, Y: 225, VelX: 100}

	next := Step(k, Intent{}, 0.5, cfg)

	require.InDelta(t, 50.0, next.VelX, 1e-9)
	require.Zero(t, next.AccelX)
	require.Zero(t, next.AccelY)

	// Drag never reverses motion, it only stops it.
	slow := Step(Kinematics{X: 400, Y: 225, VelX: 10}, Intent{}, 1.0, cfg)
	require.Zero(t, slow.VelX)
}

func TestSpeedClampedToMaximum(t *testing.T) {
	cfg := DefaultWorldConfig()
	k := Kinematics{X: 400, Y: 225, VelX: 500}

	next := Step(k, Intent{Thrust: true}, 1.0/15, cfg)

	require.InDelta(t, cfg.MaxSpeed, math.Hypot(next.VelX, next.VelY), 1e-9)
}

func TestWraparoundPreservesVelocity(t *testing.T) {
	cfg := DefaultWorldConfig()
	cfg.LinearDrag = 0

	// Exiting the right edge: 799 + 200*0.1 = 819, which lands at 9
	// once wrapped through the margin band.
	k := Kinematics{X: 799, Y: 225, VelX: 200}
	next := Step(k, Intent{}, 0.1, cfg)
	require.InDelta(t, 9.0, next.X, 1e-9)
	require.InDelta(t, 200.0, next.VelX, 1e-9)

	// Exiting the left edge: 1 - 200*0.1 = -19, which lands at 791.
	k = Kinematics{X: 1, Y: 225, VelX: -200}
	next = Step(k, Intent{}, 0.1, cfg)
	require.InDelta(t, 791.0, next.X, 1e-9)
	require.InDelta(t, -200.0, next.VelX, 1e-9)
}

func TestWrapStaysInsideBand(t *testing.T) {
	cases := []struct {
		v    float64
		want float64
	}{
		{v: 100, want: 100},
		{v: 806, want: -4},
		{v: -6, want: 804},
		{v: 1620, want: 0},
	}
	for _, tc := range cases {
		require.InDelta(t, tc.want, wrap(tc.v, 800, 5), 1e-9)
	}
}
