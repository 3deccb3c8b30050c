package services

import (
	"fmt"

	"fifa-tracker/models"
)

// Outcome is a win/draw/loss classification for one player in one match.
type Outcome int

const (
	OutcomeWin Outcome = iota
	OutcomeDraw
	OutcomeLoss
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeDraw:
		return "draw"
	case OutcomeLoss:
		return "loss"
	}
	return "unknown"
}

// TeamOf returns which team (1 or 2) the player belongs to. It fails if the
// player appears in both teams or in neither — that indicates a data
// integrity bug upstream, not a recoverable condition.
func TeamOf(m *models.Match, playerID string) (int, error) {
	in1 := containsID(m.Team1, playerID)
	in2 := containsID(m.Team2, playerID)
	switch {
	case in1 && in2:
		return 0, fmt.Errorf("player %s appears in both teams of match %s", playerID, m.ID)
	case in1:
		return 1, nil
	case in2:
		return 2, nil
	default:
		return 0, fmt.Errorf("player %s is not a participant of match %s", playerID, m.ID)
	}
}

// Classify derives win/draw/loss for playerID from a match record. This is
// the single shared classification used everywhere: stats aggregation,
// leaderboard, advanced stats, the feed and achievements all call it rather
// than re-deriving the branching.
//
// Regulation ties are resolved by PenaltyWinner when EndedBy is penalties,
// and ForfeitLoser designates the losing team when EndedBy is forfeit; a
// draw is only possible under regular endings.
func Classify(m *models.Match, playerID string) (Outcome, error) {
	team, err := TeamOf(m, playerID)
	if err != nil {
		return OutcomeDraw, err
	}

	switch m.EndedBy {
	case models.EndedByPenalties:
		if m.PenaltyWinner == nil {
			return OutcomeDraw, fmt.Errorf("match %s ended by penalties but has no penalty winner", m.ID)
		}
		if *m.PenaltyWinner == team {
			return OutcomeWin, nil
		}
		return OutcomeLoss, nil

	case models.EndedByForfeit:
		if m.ForfeitLoser == nil {
			return OutcomeDraw, fmt.Errorf("match %s ended by forfeit but has no forfeit loser", m.ID)
		}
		if *m.ForfeitLoser == team {
			return OutcomeLoss, nil
		}
		return OutcomeWin, nil

	default:
		my, opp := m.Score(team), m.Score(3-team)
		switch {
		case my > opp:
			return OutcomeWin, nil
		case my < opp:
			return OutcomeLoss, nil
		default:
			return OutcomeDraw, nil
		}
	}
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
