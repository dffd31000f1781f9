package server

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLedgerIncrementsPerTeam(t *testing.T) {
	var l Ledger
	l.Increment(TeamBlue)
	l.Increment(TeamBlue)
	l.Increment(TeamRed)

	require.Equal(t, Scores{Blue: 2, Red: 1}, l.Snapshot())
}

func TestLedgerIgnoresUnknownTeam(t *testing.T) {
	var l Ledger
	l.Increment(Team("green"))

	require.Equal(t, Scores{}, l.Snapshot())
}

func TestLedgerConcurrentIncrements(t *testing.T) {
	var l Ledger
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		team := TeamBlue
		if i%2 == 1 {
			team = TeamRed
		}
		go func(team Team) {
			defer wg.Done()
			l.Increment(team)
		}(team)
	}
	wg.Wait()

	require.Equal(t, Scores{Blue: 50, Red: 50}, l.Snapshot())
}
