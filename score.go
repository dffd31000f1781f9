package server

import "sync/atomic"

// Scores is the broadcast view of the two team counters.
type Scores struct {
	Blue uint64 `json:"blue"`
	Red  uint64 `json:"red"`
}

// Ledger tracks per-team scores for the lifetime of the process.
// Counters only ever go up, one point per confirmed collection.
type Ledger struct {
	blue atomic.Uint64
	red  atomic.Uint64
}

func (l *Ledger) Increment(team Team) {
	switch team {
	case TeamBlue:
		l.blue.Add(1)
	case TeamRed:
		l.red.Add(1)
	}
}

func (l *Ledger) Snapshot() Scores {
	return Scores{Blue: l.blue.Load(), Red: l.red.Load()}
}
