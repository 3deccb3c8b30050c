package services

import (
	"sort"

	"fifa-tracker/models"
)

const unbeatableRun = 5

// Unlocked re-scans a player's full history and returns the ids of every
// achievement they currently qualify for. Stateless: nothing is cached or
// persisted between calls. Tournament wins come from completed tournaments
// whose frozen winner is the player, never from a denormalized counter.
func Unlocked(player *models.Player, matches []models.Match, tournaments []models.Tournament) []string {
	mine := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if containsID(m.Team1, player.ID) || containsID(m.Team2, player.ID) {
			mine = append(mine, m)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].PlayedAt.Before(mine[j].PlayedAt)
	})

	var unlocked []string

	if player.Stats.Wins > 0 {
		unlocked = append(unlocked, models.AchievementFirstWin)
	}

	hatTrick := false
	cleanSheet := false
	regulationRun, bestRun := 0, 0
	for i := range mine {
		m := &mine[i]
		team, err := TeamOf(m, player.ID)
		if err != nil {
			continue
		}
		my, opp := m.Score(team), m.Score(3-team)

		if my >= 3 {
			hatTrick = true
		}

		// Regulation-only win run. Any non-regulation ending or non-win
		// resets the counter; this is deliberately stricter than the
		// current-streak definition in advanced stats.
		regulationWin := m.EndedBy == models.EndedByRegular && my > opp
		if regulationWin {
			regulationRun++
			if regulationRun > bestRun {
				bestRun = regulationRun
			}
			if opp == 0 {
				cleanSheet = true
			}
		} else {
			regulationRun = 0
		}
	}
	if hatTrick {
		unlocked = append(unlocked, models.AchievementHatTrick)
	}
	if cleanSheet {
		unlocked = append(unlocked, models.AchievementCleanSheet)
	}
	if bestRun >= unbeatableRun {
		unlocked = append(unlocked, models.AchievementUnbeatable)
	}

	if player.Stats.GoalsScored >= 50 {
		unlocked = append(unlocked, models.AchievementGoalMachine)
	}

	for _, t := range tournaments {
		if t.Status == models.TournamentCompleted && t.Winner != nil && *t.Winner == player.ID {
			unlocked = append(unlocked, models.AchievementTournamentKing)
			break
		}
	}

	return unlocked
}
