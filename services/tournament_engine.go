package services

import (
	"fmt"
	"math/rand"
	"sort"

	"fifa-tracker/models"
)

// League points scheme: win 3, draw 1, loss 0.
const (
	leagueWinPoints  = 3
	leagueDrawPoints = 1
)

// StandingRow is one line of a league table.
type StandingRow struct {
	PlayerID      string `json:"player_id"`
	Played        int    `json:"played"`
	Wins          int    `json:"wins"`
	Draws         int    `json:"draws"`
	Losses        int    `json:"losses"`
	GoalsFor      int    `json:"goals_for"`
	GoalsAgainst  int    `json:"goals_against"`
	GoalDiff      int    `json:"goal_diff"`
	Points        int    `json:"points"`
	Position      int    `json:"position"`
}

// LeagueStandings builds the points table for a league tournament from the
// matches recorded against it. Sort order: points, then goal difference,
// then goals for, then player id ascending.
func LeagueStandings(t *models.Tournament, matches []models.Match) ([]StandingRow, error) {
	rows := make(map[string]*StandingRow, len(t.Participants))
	for _, id := range t.Participants {
		rows[id] = &StandingRow{PlayerID: id}
	}

	for i := range matches {
		m := &matches[i]
		if m.TournamentID == nil || *m.TournamentID != t.ID {
			continue
		}
		for _, playerID := range m.Participants() {
			row, ok := rows[playerID]
			if !ok {
				continue // not a tournament participant
			}
			team, err := TeamOf(m, playerID)
			if err != nil {
				return nil, err
			}
			outcome, err := Classify(m, playerID)
			if err != nil {
				return nil, err
			}
			row.Played++
			row.GoalsFor += m.Score(team)
			row.GoalsAgainst += m.Score(3 - team)
			switch outcome {
			case OutcomeWin:
				row.Wins++
				row.Points += leagueWinPoints
			case OutcomeDraw:
				row.Draws++
				row.Points += leagueDrawPoints
			case OutcomeLoss:
				row.Losses++
			}
		}
	}

	table := make([]StandingRow, 0, len(rows))
	for _, row := range rows {
		row.GoalDiff = row.GoalsFor - row.GoalsAgainst
		table = append(table, *row)
	}
	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDiff != b.GoalDiff {
			return a.GoalDiff > b.GoalDiff
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.PlayerID < b.PlayerID
	})
	for i := range table {
		table[i].Position = i + 1
	}
	return table, nil
}

// Bracket slot status values
const (
	SlotPending   = "pending"   // teams not yet both known
	SlotReady     = "ready"     // both teams known, no result yet
	SlotCompleted = "completed" // winner determined (recorded match or BYE)
)

// BracketSlot is one position in a knockout tournament's flat fixtures
// array, annotated with its round and resolution state.
type BracketSlot struct {
	Index   int      `json:"index"`
	Round   int      `json:"round"` // 0 = first round
	Team1   []string `json:"team1"`
	Team2   []string `json:"team2"`
	Status  string   `json:"status"`
	Winner  []string `json:"winner,omitempty"`
	MatchID string   `json:"match_id,omitempty"`
}

// WinnerTeam returns which team (1 or 2) won the match, or 0 for a draw.
func WinnerTeam(m *models.Match) int {
	switch m.EndedBy {
	case models.EndedByPenalties:
		if m.PenaltyWinner != nil {
			return *m.PenaltyWinner
		}
		return 0
	case models.EndedByForfeit:
		if m.ForfeitLoser != nil {
			return 3 - *m.ForfeitLoser
		}
		return 0
	default:
		switch {
		case m.ScoreTeam1 > m.ScoreTeam2:
			return 1
		case m.ScoreTeam2 > m.ScoreTeam1:
			return 2
		default:
			return 0
		}
	}
}

// BuildBracket resolves a knockout tournament's fixtures into annotated
// slots. The fixtures slice is laid out first round first; the first round
// holds nextPow2(participants)/2 slots and each later round halves until the
// final. BYE sides auto-resolve without a match, and each completed slot's
// winner propagates into its parent: team1 when the slot's position within
// its round is even, team2 when odd.
func BuildBracket(t *models.Tournament, matches []models.Match) ([]BracketSlot, error) {
	if t.Fixtures == nil {
		return nil, nil
	}
	firstRound := nextPowerOfTwo(len(t.Participants)) / 2
	if firstRound < 1 {
		firstRound = 1
	}

	slots := make([]BracketSlot, len(t.Fixtures))
	for i, f := range t.Fixtures {
		slots[i] = BracketSlot{
			Index:  i,
			Team1:  append([]string(nil), f.Team1...),
			Team2:  append([]string(nil), f.Team2...),
			Status: SlotPending,
		}
	}

	// Index recorded results by fixture slot.
	bySlot := make(map[int]*models.Match)
	for i := range matches {
		m := &matches[i]
		if m.TournamentID != nil && *m.TournamentID == t.ID && m.FixtureSlot != nil {
			bySlot[*m.FixtureSlot] = m
		}
	}

	offset, size := 0, firstRound
	round := 0
	for offset < len(slots) {
		for local := 0; local < size && offset+local < len(slots); local++ {
			idx := offset + local
			slot := &slots[idx]
			slot.Round = round
			resolveSlot(slot, bySlot[idx])

			if slot.Status == SlotCompleted && size > 1 {
				parent := offset + size + local/2
				if parent >= len(slots) {
					return nil, fmt.Errorf("tournament %s: slot %d has no parent slot %d", t.ID, idx, parent)
				}
				if local%2 == 0 {
					slots[parent].Team1 = slot.Winner
				} else {
					slots[parent].Team2 = slot.Winner
				}
			}
		}
		offset += size
		if size == 1 {
			break
		}
		size /= 2
		round++
	}
	return slots, nil
}

// resolveSlot determines a single slot's status and winner.
func resolveSlot(slot *BracketSlot, m *models.Match) {
	bye1 := isBye(slot.Team1)
	bye2 := isBye(slot.Team2)

	switch {
	case bye1 && len(slot.Team2) > 0:
		slot.Status = SlotCompleted
		slot.Winner = slot.Team2
		return
	case bye2 && len(slot.Team1) > 0:
		slot.Status = SlotCompleted
		slot.Winner = slot.Team1
		return
	}

	if len(slot.Team1) == 0 || len(slot.Team2) == 0 {
		slot.Status = SlotPending
		return
	}

	if m == nil {
		slot.Status = SlotReady
		return
	}
	switch WinnerTeam(m) {
	case 1:
		slot.Status = SlotCompleted
		slot.Winner = slot.Team1
	case 2:
		slot.Status = SlotCompleted
		slot.Winner = slot.Team2
	default:
		// A drawn record cannot decide a knockout slot.
		slot.Status = SlotReady
	}
	slot.MatchID = m.ID
}

// BracketWinner returns the champion's team once the final slot completes.
func BracketWinner(slots []BracketSlot) []string {
	if len(slots) == 0 {
		return nil
	}
	final := slots[len(slots)-1]
	if final.Status != SlotCompleted {
		return nil
	}
	return final.Winner
}

// GenerateLeagueFixtures produces all-pairs round-robin 1v1 pairings over a
// shuffled participant order.
func GenerateLeagueFixtures(participants []string, rng *rand.Rand) []models.Fixture {
	order := shuffled(participants, rng)
	var fixtures []models.Fixture
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			fixtures = append(fixtures, models.Fixture{
				Team1: []string{order[i]},
				Team2: []string{order[j]},
			})
		}
	}
	return fixtures
}

// GenerateKnockoutFixtures pairs a shuffled participant list first-vs-last,
// padding with BYE to the next power of two, and appends empty fixtures for
// every later round so the full bracket (2^k - 1 slots) exists up front.
// Fold pairing keeps BYEs apart: they never exceed half the bracket, so no
// fixture is ever BYE vs BYE.
func GenerateKnockoutFixtures(participants []string, rng *rand.Rand) []models.Fixture {
	order := shuffled(participants, rng)
	bracketSize := nextPowerOfTwo(len(order))
	for len(order) < bracketSize {
		order = append(order, models.ByeTeam)
	}

	fixtures := make([]models.Fixture, 0, bracketSize-1)
	for i := 0; i < bracketSize/2; i++ {
		fixtures = append(fixtures, models.Fixture{
			Team1: []string{order[i]},
			Team2: []string{order[bracketSize-1-i]},
		})
	}
	for size := bracketSize / 4; size >= 1; size /= 2 {
		for i := 0; i < size; i++ {
			fixtures = append(fixtures, models.Fixture{})
		}
	}
	return fixtures
}

func isBye(team []string) bool {
	return len(team) == 1 && team[0] == models.ByeTeam
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

func shuffled(ids []string, rng *rand.Rand) []string {
	out := append([]string(nil), ids...)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
