package server

import (
	"math"
	"time"
)

const (
	ProtocolVersion = 1

	writeWait         = 10 * time.Second
	heartbeatInterval = 2 * time.Second
	disconnectAfter   = 3 * heartbeatInterval

	defaultTickRate = 15 // simulation ticks per second (10–20 Hz)

	defaultWorldWidth  = 800.0
	defaultWorldHeight = 450.0
	defaultWrapMargin  = 5.0

	defaultTurnRate    = 150.0 * math.Pi / 180.0 // radians per second
	defaultThrustAccel = 100.0                   // units per second^2
	defaultNoseOffset  = 1.5                     // radians between visual heading and thrust vector
	defaultLinearDrag  = 100.0                   // units per second^2 while coasting
	defaultMaxSpeed    = 200.0                   // units per second

	defaultPickupRadius     = 38.0 // ship half-extent plus star half-extent
	defaultSpawnInset       = 50.0
	defaultStarMinDistance  = 80.0
	defaultStarSpawnRetries = 10
)

// HeartbeatInterval reports the cadence clients are expected to ping at.
func HeartbeatInterval() time.Duration {
	return heartbeatInterval
}
