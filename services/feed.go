package services

import (
	"fmt"
	"sort"
	"time"

	"fifa-tracker/models"
)

// SessionGap is the maximum time between consecutive matches for them to
// belong to the same retrospective session.
const SessionGap = 2 * time.Hour

// MatchSession is a derived grouping of temporally- and participant-adjacent
// matches. Distinct from the live device presence session.
type MatchSession struct {
	Matches      []models.Match `json:"matches"`
	Participants []string       `json:"participants"` // sorted union of both teams
	Start        time.Time      `json:"start"`
	End          time.Time      `json:"end"`
}

// News item types
const (
	NewsSingleMatch   = "single-match"
	NewsDuel          = "duel"
	NewsGroupSession  = "group-session"
	NewsTopRanked     = "top-ranked"
	NewsLeadingScorer = "leading-scorer"
)

// Feed tags
const (
	TagGoleada = "Goleada" // blowout, score gap >= 4
	TagDrama   = "Drama"   // decided on penalties
	TagMaraton = "Maratón" // 5+ matches in one duel session
	TagClasico = "Clásico" // close multi-match duel
)

// NewsItem is one narrative entry in the social feed.
type NewsItem struct {
	Type         string         `json:"type"`
	Title        string         `json:"title"`
	Tags         []string       `json:"tags,omitempty"`
	Session      *MatchSession  `json:"session,omitempty"`
	Participants []string       `json:"participants,omitempty"`
	Counts       map[string]int `json:"counts,omitempty"` // per-side wins/draws for duels
	PlayerID     string         `json:"player_id,omitempty"`
	Value        int            `json:"value,omitempty"`
	At           time.Time      `json:"at"`
}

// ClusterSessions groups a match list into sessions. Matches are sorted
// ascending by date; a match joins the current session only when the gap
// from the previous match is under SessionGap AND the participant set is
// identical. The returned slice is most-recent session first.
func ClusterSessions(matches []models.Match) []MatchSession {
	if len(matches) == 0 {
		return nil
	}
	sorted := make([]models.Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PlayedAt.Before(sorted[j].PlayedAt)
	})

	var sessions []MatchSession
	current := newSession(sorted[0])
	for _, m := range sorted[1:] {
		prev := current.Matches[len(current.Matches)-1]
		sameCrowd := equalIDSets(participantSet(&m), current.Participants)
		if m.PlayedAt.Sub(prev.PlayedAt) < SessionGap && sameCrowd {
			current.Matches = append(current.Matches, m)
			current.End = m.PlayedAt
			continue
		}
		sessions = append(sessions, current)
		current = newSession(m)
	}
	sessions = append(sessions, current)

	// Most recent first.
	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}
	return sessions
}

// BuildFeed turns sessions into narrative items and appends the
// ranking-derived extras: a top-3 item when the viewer ranks in the top
// three, and a leading-scorer item when anyone has scored at all.
func BuildFeed(sessions []MatchSession, ranking []LeaderboardEntry, viewerID string) []NewsItem {
	var items []NewsItem
	for i := range sessions {
		items = append(items, classifySession(&sessions[i]))
	}

	if rank := RankOf(ranking, viewerID); rank >= 1 && rank <= 3 {
		items = append(items, NewsItem{
			Type:     NewsTopRanked,
			Title:    fmt.Sprintf("You are #%d in the ranking", rank),
			PlayerID: viewerID,
			Value:    rank,
			At:       time.Now(),
		})
	}

	if scorer, goals := leadingScorer(ranking); goals > 0 {
		items = append(items, NewsItem{
			Type:     NewsLeadingScorer,
			Title:    fmt.Sprintf("%s leads the scoring charts with %d goals", scorer.Player.Name, goals),
			PlayerID: scorer.Player.ID,
			Value:    goals,
			At:       time.Now(),
		})
	}
	return items
}

func classifySession(s *MatchSession) NewsItem {
	item := NewsItem{
		Session:      s,
		Participants: s.Participants,
		At:           s.End,
	}

	if len(s.Matches) == 1 {
		m := s.Matches[0]
		item.Type = NewsSingleMatch
		item.Title = fmt.Sprintf("Match finished %d-%d", m.ScoreTeam1, m.ScoreTeam2)
		if abs(m.ScoreTeam1-m.ScoreTeam2) >= 4 {
			item.Tags = append(item.Tags, TagGoleada)
		}
		if m.EndedBy == models.EndedByPenalties {
			item.Tags = append(item.Tags, TagDrama)
		}
		return item
	}

	if len(s.Participants) == 2 {
		item.Type = NewsDuel
		a, b := s.Participants[0], s.Participants[1]
		counts := map[string]int{a: 0, b: 0, "draws": 0}
		for i := range s.Matches {
			outcome, err := Classify(&s.Matches[i], a)
			if err != nil {
				continue
			}
			switch outcome {
			case OutcomeWin:
				counts[a]++
			case OutcomeLoss:
				counts[b]++
			default:
				counts["draws"]++
			}
		}
		item.Counts = counts
		item.Title = fmt.Sprintf("Head-to-head: %d matches played", len(s.Matches))
		if len(s.Matches) >= 5 {
			item.Tags = append(item.Tags, TagMaraton)
		}
		if abs(counts[a]-counts[b]) < 2 && len(s.Matches) > 3 {
			item.Tags = append(item.Tags, TagClasico)
		}
		return item
	}

	item.Type = NewsGroupSession
	item.Title = fmt.Sprintf("Group session: %d matches between %d players", len(s.Matches), len(s.Participants))
	return item
}

func leadingScorer(ranking []LeaderboardEntry) (*LeaderboardEntry, int) {
	var best *LeaderboardEntry
	for i := range ranking {
		if best == nil || ranking[i].Stats.GoalsScored > best.Stats.GoalsScored {
			best = &ranking[i]
		}
	}
	if best == nil {
		return nil, 0
	}
	return best, best.Stats.GoalsScored
}

func newSession(m models.Match) MatchSession {
	return MatchSession{
		Matches:      []models.Match{m},
		Participants: participantSet(&m),
		Start:        m.PlayedAt,
		End:          m.PlayedAt,
	}
}

func participantSet(m *models.Match) []string {
	ids := m.Participants()
	sort.Strings(ids)
	// dedupe, teams are disjoint but be tolerant of dirty data
	out := ids[:0]
	for i, id := range ids {
		if i == 0 || ids[i-1] != id {
			out = append(out, id)
		}
	}
	return out
}

func equalIDSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
