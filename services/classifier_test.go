package services

import (
	"testing"

	"fifa-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRegular(t *testing.T) {
	m := newMatch("m1", solo("A"), solo("B"), 3, 1)

	tests := []struct {
		name     string
		playerID string
		want     Outcome
	}{
		{"winner side", "A", OutcomeWin},
		{"loser side", "B", OutcomeLoss},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(&m, tt.playerID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	draw := newMatch("m2", solo("A"), solo("B"), 2, 2)
	got, err := Classify(&draw, "A")
	require.NoError(t, err)
	assert.Equal(t, OutcomeDraw, got)
}

func TestClassifyPenaltiesNeverDraws(t *testing.T) {
	m := newMatch("m1", solo("A"), solo("B"), 1, 1, onPenalties(2))

	got, err := Classify(&m, "A")
	require.NoError(t, err)
	assert.Equal(t, OutcomeLoss, got)

	got, err = Classify(&m, "B")
	require.NoError(t, err)
	assert.Equal(t, OutcomeWin, got)
}

func TestClassifyForfeit(t *testing.T) {
	// Score is irrelevant under forfeit; the designated team loses.
	m := newMatch("m1", solo("A"), solo("B"), 5, 0, onForfeit(1))

	got, err := Classify(&m, "A")
	require.NoError(t, err)
	assert.Equal(t, OutcomeLoss, got)

	got, err = Classify(&m, "B")
	require.NoError(t, err)
	assert.Equal(t, OutcomeWin, got)
}

func TestClassifyTeamMatch(t *testing.T) {
	m := newMatch("m1", []string{"A", "B"}, []string{"C", "D"}, 0, 2)

	for _, id := range []string{"A", "B"} {
		got, err := Classify(&m, id)
		require.NoError(t, err)
		assert.Equal(t, OutcomeLoss, got, id)
	}
	for _, id := range []string{"C", "D"} {
		got, err := Classify(&m, id)
		require.NoError(t, err)
		assert.Equal(t, OutcomeWin, got, id)
	}
}

func TestClassifyFailsLoudlyOnBadMembership(t *testing.T) {
	inBoth := newMatch("m1", []string{"A", "B"}, []string{"A"}, 1, 0)
	_, err := Classify(&inBoth, "A")
	assert.Error(t, err)

	m := newMatch("m2", solo("A"), solo("B"), 1, 0)
	_, err = Classify(&m, "Z")
	assert.Error(t, err)
}

func TestClassifyExclusivity(t *testing.T) {
	// Every well-formed match yields exactly one outcome per player, and
	// penalties/forfeit endings never yield a draw.
	matches := []models.Match{
		newMatch("m1", solo("A"), solo("B"), 0, 0),
		newMatch("m2", solo("A"), solo("B"), 4, 4, onPenalties(1)),
		newMatch("m3", solo("A"), solo("B"), 0, 0, onForfeit(2)),
		newMatch("m4", solo("A"), solo("B"), 7, 2),
	}
	for _, m := range matches {
		for _, id := range []string{"A", "B"} {
			got, err := Classify(&m, id)
			require.NoError(t, err)
			assert.Contains(t, []Outcome{OutcomeWin, OutcomeDraw, OutcomeLoss}, got)
			if m.EndedBy != models.EndedByRegular {
				assert.NotEqual(t, OutcomeDraw, got, m.ID)
			}
		}
	}
}
