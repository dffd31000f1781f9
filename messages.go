package server

// Wire messages exchanged with the front-end. Everything is JSON with
// a type tag; event names follow the client's vocabulary. Framing and
// delivery belong to the transport layer.

// InitMessage is sent once, to the joiner only, right after a join is
// accepted.
type InitMessage struct {
	Ver     int          `json:"ver"`
	Type    string       `json:"type"`
	ID      string       `json:"id"`
	Players []Player     `json:"players"`
	Star    StarLocation `json:"star"`
	Scores  Scores       `json:"scores"`
}

// PlayerJoinedMessage announces a new ship to everyone except the
// joiner, who already got the full snapshot.
type PlayerJoinedMessage struct {
	Ver    int    `json:"ver"`
	Type   string `json:"type"`
	Player Player `json:"player"`
}

// PlayerLeftMessage tells the remaining clients to drop a ship.
type PlayerLeftMessage struct {
	Ver  int    `json:"ver"`
	Type string `json:"type"`
	ID   string `json:"id"`
}

// PlayerMovedMessage carries one ship's new pose. Emitted only when
// the pose actually changed since the last emission for that ship.
type PlayerMovedMessage struct {
	Ver      int     `json:"ver"`
	Type     string  `json:"type"`
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

// StarLocationMessage announces where the star is now. Broadcast to
// every connection, winner included, after each collection.
type StarLocationMessage struct {
	Ver  int     `json:"ver"`
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// ScoreUpdateMessage travels alongside StarLocationMessage.
type ScoreUpdateMessage struct {
	Ver  int    `json:"ver"`
	Type string `json:"type"`
	Blue uint64 `json:"blue"`
	Red  uint64 `json:"red"`
}

// HeartbeatMessage acknowledges a client heartbeat with the measured
// round-trip time.
type HeartbeatMessage struct {
	Ver        int    `json:"ver"`
	Type       string `json:"type"`
	ServerTime int64  `json:"serverTime"`
	ClientTime int64  `json:"clientTime"`
	RTTMillis  int64  `json:"rtt"`
}

// ClientMessage is the single inbound envelope. Unknown types are
// logged and dropped; a payload that fails to decode counts as an
// intent with every flag off.
type ClientMessage struct {
	Ver       int    `json:"ver,omitempty"`
	Type      string `json:"type"`
	TurnLeft  bool   `json:"turnLeft"`
	TurnRight bool   `json:"turnRight"`
	Thrust    bool   `json:"thrust"`
	SentAt    int64  `json:"sentAt"`
}

// ProtocolMessages groups every wire message so the schema generator
// can emit one document covering the whole protocol.
type ProtocolMessages struct {
	Init         InitMessage         `json:"init"`
	PlayerJoined PlayerJoinedMessage `json:"playerJoined"`
	PlayerLeft   PlayerLeftMessage   `json:"playerLeft"`
	PlayerMoved  PlayerMovedMessage  `json:"playerMoved"`
	StarLocation StarLocationMessage `json:"starLocation"`
	ScoreUpdate  ScoreUpdateMessage  `json:"scoreUpdate"`
	Heartbeat    HeartbeatMessage    `json:"heartbeat"`
	Client       ClientMessage       `json:"client"`
}

type diagnosticsPlayer struct {
	ID            string `json:"id"`
	Team          Team   `json:"team"`
	LastInput     int64  `json:"lastInput"`
	LastHeartbeat int64  `json:"lastHeartbeat"`
	RTTMillis     int64  `json:"rttMillis"`
}
