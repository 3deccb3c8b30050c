package services

import (
	"math"

	"fifa-tracker/models"
)

// Score engine constants. Confidence ramps linearly from 0.5 at zero matches
// to 1.0 at 20, discounting thin records; activity gives diminishing returns
// past 50 matches.
const (
	winPoints           = 300
	drawPoints          = 100
	goalDiffPoints      = 10
	activityPerMatch    = 5
	activityFullMatches = 50
	confidenceBase      = 0.5
	confidencePerMatch  = 0.025
)

// ScoreBreakdown is the auditable composition of a ranking score.
type ScoreBreakdown struct {
	Base       int     `json:"base"`
	Activity   int     `json:"activity"`
	Confidence float64 `json:"confidence"`
	GoalDiff   int     `json:"goal_diff"`
	Total      int     `json:"total"`
}

// Score converts cumulative stats into a single composite ranking score.
// Pure and deterministic: identical stats always yield an identical
// breakdown, and Total is never negative.
func Score(stats models.PlayerStats) ScoreBreakdown {
	goalDiff := stats.GoalsScored - stats.GoalsConceded
	base := stats.Wins*winPoints + stats.Draws*drawPoints + goalDiff*goalDiffPoints

	activity := stats.MatchesPlayed * activityPerMatch
	if stats.MatchesPlayed > activityFullMatches {
		activity = activityFullMatches*activityPerMatch + (stats.MatchesPlayed - activityFullMatches)
	}

	confidence := confidenceBase + float64(stats.MatchesPlayed)*confidencePerMatch
	if confidence > 1.0 {
		confidence = 1.0
	}

	total := int(math.Round(float64(base+activity) * confidence))
	if total < 0 {
		total = 0
	}

	return ScoreBreakdown{
		Base:       base,
		Activity:   activity,
		Confidence: confidence,
		GoalDiff:   goalDiff,
		Total:      total,
	}
}
