package services

import (
	"sort"

	"fifa-tracker/models"
)

// OpponentRecord tallies results against a single rival.
type OpponentRecord struct {
	OpponentID string `json:"opponent_id"`
	Wins       int    `json:"wins"`
	Draws      int    `json:"draws"`
	Losses     int    `json:"losses"`
}

// DuoRecord tallies matches shared with a single teammate.
type DuoRecord struct {
	TeammateID string `json:"teammate_id"`
	Matches    int    `json:"matches"`
	SharedWins int    `json:"shared_wins"`
}

// Streak is a run of consecutive identical non-draw results ending at the
// player's latest match.
type Streak struct {
	Kind   string `json:"kind"` // "win", "loss" or "none"
	Length int    `json:"length"`
}

// AdvancedStats is the per-player deep-dive derived from the full match log.
type AdvancedStats struct {
	Totals        models.PlayerStats `json:"totals"`
	Nemesis       *OpponentRecord    `json:"nemesis,omitempty"`  // rival with most wins against the player
	BestDuo       *DuoRecord         `json:"best_duo,omitempty"` // teammate with most shared wins
	CurrentStreak Streak             `json:"current_streak"`
	SoloStats     models.PlayerStats `json:"solo_stats"` // matches where the player's team was just them
	TeamStats     models.PlayerStats `json:"team_stats"`

	// Running series for trend plots: composite score after each match, and
	// goals scored per match, both in chronological order.
	ScoreHistory         []int `json:"score_history"`
	GoalsPerMatchHistory []int `json:"goals_per_match_history"`
}

// ComputeAdvancedStats folds the player's matches in ascending date order.
// Nemesis and best-duo ties resolve to the first-seen candidate in that
// chronological order.
func ComputeAdvancedStats(playerID string, matches []models.Match) (*AdvancedStats, error) {
	mine := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if containsID(m.Team1, playerID) || containsID(m.Team2, playerID) {
			mine = append(mine, m)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].PlayedAt.Before(mine[j].PlayedAt)
	})

	out := &AdvancedStats{CurrentStreak: Streak{Kind: "none"}}

	opponents := map[string]*OpponentRecord{}
	var opponentOrder []string
	duos := map[string]*DuoRecord{}
	var duoOrder []string

	for i := range mine {
		m := &mine[i]
		team, err := TeamOf(m, playerID)
		if err != nil {
			return nil, err
		}
		outcome, err := Classify(m, playerID)
		if err != nil {
			return nil, err
		}

		out.Totals, err = ApplyMatch(out.Totals, m, playerID, +1)
		if err != nil {
			return nil, err
		}

		myTeam, oppTeam := m.Team1, m.Team2
		if team == 2 {
			myTeam, oppTeam = m.Team2, m.Team1
		}

		if len(myTeam) == 1 {
			out.SoloStats, _ = ApplyMatch(out.SoloStats, m, playerID, +1)
		} else {
			out.TeamStats, _ = ApplyMatch(out.TeamStats, m, playerID, +1)
		}

		for _, oppID := range oppTeam {
			rec, ok := opponents[oppID]
			if !ok {
				rec = &OpponentRecord{OpponentID: oppID}
				opponents[oppID] = rec
				opponentOrder = append(opponentOrder, oppID)
			}
			switch outcome {
			case OutcomeWin:
				rec.Wins++
			case OutcomeDraw:
				rec.Draws++
			case OutcomeLoss:
				rec.Losses++
			}
		}

		for _, mateID := range myTeam {
			if mateID == playerID {
				continue
			}
			rec, ok := duos[mateID]
			if !ok {
				rec = &DuoRecord{TeammateID: mateID}
				duos[mateID] = rec
				duoOrder = append(duoOrder, mateID)
			}
			rec.Matches++
			if outcome == OutcomeWin {
				rec.SharedWins++
			}
		}

		out.ScoreHistory = append(out.ScoreHistory, Score(out.Totals).Total)
		out.GoalsPerMatchHistory = append(out.GoalsPerMatchHistory, m.Score(team))
	}

	// Nemesis: the rival the player has lost to most often.
	for _, id := range opponentOrder {
		rec := opponents[id]
		if rec.Losses == 0 {
			continue
		}
		if out.Nemesis == nil || rec.Losses > out.Nemesis.Losses {
			out.Nemesis = rec
		}
	}

	for _, id := range duoOrder {
		rec := duos[id]
		if rec.SharedWins == 0 {
			continue
		}
		if out.BestDuo == nil || rec.SharedWins > out.BestDuo.SharedWins {
			out.BestDuo = rec
		}
	}

	out.CurrentStreak = currentStreak(playerID, mine)
	return out, nil
}

// currentStreak walks matches most-recent-first, counting consecutive
// identical non-draw results. It stops at the first draw or differing
// result. All end-by modes count here; the stricter regulation-only run
// lives in the achievement evaluator.
func currentStreak(playerID string, chronological []models.Match) Streak {
	streak := Streak{Kind: "none"}
	for i := len(chronological) - 1; i >= 0; i-- {
		outcome, err := Classify(&chronological[i], playerID)
		if err != nil || outcome == OutcomeDraw {
			break
		}
		kind := outcome.String()
		if streak.Length == 0 {
			streak.Kind = kind
		} else if streak.Kind != kind {
			break
		}
		streak.Length++
	}
	return streak
}
