package server

import "time"

// Team is the bare two-value team enum; colors and cosmetics live in
// the front-end.
type Team string

const (
	TeamBlue Team = "blue"
	TeamRed  Team = "red"
)

// Player is the broadcast view of a ship. Velocity and acceleration
// stay server-side; clients only ever see position and rotation.
type Player struct {
	ID       string  `json:"id"`
	Team     Team    `json:"team"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

type playerState struct {
	Player

	velX, velY     float64
	accelX, accelY float64

	lastSentX        float64
	lastSentY        float64
	lastSentRotation float64

	lastInput     time.Time
	lastHeartbeat time.Time
	lastRTT       time.Duration
}

func (s *playerState) kinematics() Kinematics {
	return Kinematics{
		X:        s.X,
		Y:        s.Y,
		Rotation: s.Rotation,
		VelX:     s.velX,
		VelY:     s.velY,
		AccelX:   s.accelX,
		AccelY:   s.accelY,
	}
}

func (s *playerState) applyKinematics(k Kinematics) {
	s.X = k.X
	s.Y = k.Y
	s.Rotation = k.Rotation
	s.velX = k.VelX
	s.velY = k.VelY
	s.accelX = k.AccelX
	s.accelY = k.AccelY
}

// dirty reports whether the broadcast view changed since markSent.
func (s *playerState) dirty() bool {
	return s.X != s.lastSentX || s.Y != s.lastSentY || s.Rotation != s.lastSentRotation
}

func (s *playerState) markSent() {
	s.lastSentX = s.X
	s.lastSentY = s.Y
	s.lastSentRotation = s.Rotation
}

func (s *playerState) snapshot() Player {
	return s.Player
}
