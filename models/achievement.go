package models

// Achievement ids
const (
	AchievementFirstWin       = "first-win"
	AchievementHatTrick       = "hat-trick"
	AchievementCleanSheet     = "clean-sheet"
	AchievementUnbeatable     = "unbeatable"
	AchievementGoalMachine    = "goal-machine"
	AchievementTournamentKing = "tournament-king"
)

// Achievement: static catalog entry. Unlocks are re-derived from the match
// log on every call, nothing is persisted per player.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Rarity      string `json:"rarity"` // common, rare, epic, legendary
}

// Catalog of all achievements, in display order.
var Achievements = []Achievement{
	{
		ID:          AchievementFirstWin,
		Name:        "First Victory",
		Description: "Win your first match",
		Icon:        "🏅",
		Rarity:      "common",
	},
	{
		ID:          AchievementHatTrick,
		Name:        "Hat-Trick",
		Description: "Score 3 or more goals in a single match",
		Icon:        "🎩",
		Rarity:      "common",
	},
	{
		ID:          AchievementCleanSheet,
		Name:        "Clean Sheet",
		Description: "Win a match without conceding",
		Icon:        "🧤",
		Rarity:      "rare",
	},
	{
		ID:          AchievementUnbeatable,
		Name:        "Unbeatable",
		Description: "Win 5 regulation matches in a row",
		Icon:        "🔥",
		Rarity:      "epic",
	},
	{
		ID:          AchievementGoalMachine,
		Name:        "Goal Machine",
		Description: "Score 50 goals in total",
		Icon:        "⚽",
		Rarity:      "epic",
	},
	{
		ID:          AchievementTournamentKing,
		Name:        "Tournament King",
		Description: "Win a tournament",
		Icon:        "👑",
		Rarity:      "legendary",
	},
}

// AchievementByID returns the catalog entry for an id, or nil.
func AchievementByID(id string) *Achievement {
	for i := range Achievements {
		if Achievements[i].ID == id {
			return &Achievements[i]
		}
	}
	return nil
}
