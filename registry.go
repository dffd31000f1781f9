package server

// Registry owns the connection-to-player mapping and the team balance.
// It does no locking of its own: every mutation funnels through the
// hub's serialized entry points.
type Registry struct {
	players map[string]*playerState
	joins   uint64
}

func NewRegistry() *Registry {
	return &Registry{players: make(map[string]*playerState)}
}

// Add creates a player for a new connection. The team is whichever
// side has fewer members; a tie goes to blue on an even running join
// total and red on an odd one, so the assignment sequence is
// reproducible for a given join order.
func (r *Registry) Add(id string) *playerState {
	blue, red := r.teamCounts()

	var team Team
	switch {
	case blue < red:
		team = TeamBlue
	case red < blue:
		team = TeamRed
	case r.joins%2 == 0:
		team = TeamBlue
	default:
		team = TeamRed
	}
	r.joins++

	state := &playerState{Player: Player{ID: id, Team: team}}
	r.players[id] = state
	return state
}

// Remove deletes a player if present. Removing an unknown or already
// removed id is a no-op; unreliable transports deliver duplicate and
// late leave notifications.
func (r *Registry) Remove(id string) (*playerState, bool) {
	state, ok := r.players[id]
	if !ok {
		return nil, false
	}
	delete(r.players, id)
	return state, true
}

func (r *Registry) Get(id string) (*playerState, bool) {
	state, ok := r.players[id]
	return state, ok
}

func (r *Registry) Len() int {
	return len(r.players)
}

// Snapshot copies the broadcast view of every live player.
func (r *Registry) Snapshot() []Player {
	players := make([]Player, 0, len(r.players))
	for _, state := range r.players {
		players = append(players, state.snapshot())
	}
	return players
}

func (r *Registry) states() []*playerState {
	states := make([]*playerState, 0, len(r.players))
	for _, state := range r.players {
		states = append(states, state)
	}
	return states
}

func (r *Registry) teamCounts() (blue, red int) {
	for _, state := range r.players {
		switch state.Team {
		case TeamBlue:
			blue++
		case TeamRed:
			red++
		}
	}
	return blue, red
}
