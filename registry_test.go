package server

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTeamsStayBalanced(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 9; i++ {
		r.Add(fmt.Sprintf("player-%d", i))
	}

	blue, red := r.teamCounts()
	require.Equal(t, 9, blue+red)
	require.LessOrEqual(t, abs(blue-red), 1)
}

func TestTeamAssignmentDeterministic(t *testing.T) {
	first := NewRegistry()
	second := NewRegistry()

	for i := 0; i < 6; i++ {
		id := fmt.Sprintf("player-%d", i)
		require.Equal(t, first.Add(id).Team, second.Add(id).Team)
	}
}

func TestJoinFillsTheSmallerTeam(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 4; i++ {
		r.Add(fmt.Sprintf("player-%d", i))
	}

	// Drain one side entirely, then rejoin: every new player must land
	// on the empty side until the teams even out again.
	for _, state := range r.states() {
		if state.Team == TeamBlue {
			r.Remove(state.ID)
		}
	}

	a := r.Add("late-a")
	require.Equal(t, TeamBlue, a.Team)
	b := r.Add("late-b")
	require.Equal(t, TeamBlue, b.Team)
}

func TestLiveSetMatchesJoinsAndLeaves(t *testing.T) {
	r := NewRegistry()
	r.Add("a")
	r.Add("b")
	r.Add("c")

	_, ok := r.Remove("b")
	require.True(t, ok)

	// Duplicate and unknown leaves are no-ops.
	_, ok = r.Remove("b")
	require.False(t, ok)
	_, ok = r.Remove("never-joined")
	require.False(t, ok)

	ids := make(map[string]bool)
	for _, p := range r.Snapshot() {
		ids[p.ID] = true
	}
	require.Equal(t, map[string]bool{"a": true, "c": true}, ids)
	require.Equal(t, 2, r.Len())
}

func TestSnapshotIsInternallyConsistent(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 7; i++ {
		r.Add(fmt.Sprintf("player-%d", i))
	}

	snapshot := r.Snapshot()
	require.Len(t, snapshot, 7)

	seen := make(map[string]bool)
	for _, p := range snapshot {
		require.False(t, seen[p.ID], "player %s listed twice", p.ID)
		seen[p.ID] = true
		require.Contains(t, []Team{TeamBlue, TeamRed}, p.Team)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
