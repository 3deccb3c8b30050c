package models

// Player visibility values
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Player roles. Admin is an explicit claim on the record, never inferred
// from the display name.
const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

// PlayerStats is the persisted cumulative stats cache on the player record.
// It is denormalized for cheap reads; the match log is the ground truth and
// the recompute path rebuilds it from scratch.
type PlayerStats struct {
	MatchesPlayed int `json:"matchesPlayed" gorm:"default:0"`
	Wins          int `json:"wins" gorm:"default:0"`
	Draws         int `json:"draws" gorm:"default:0"`
	Losses        int `json:"losses" gorm:"default:0"`
	GoalsScored   int `json:"goalsScored" gorm:"default:0"`
	GoalsConceded int `json:"goalsConceded" gorm:"default:0"`
}

// Player is a registered profile
type Player struct {
	ID         string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name       string  `gorm:"index;not null" json:"name"`
	Avatar     string  `gorm:"size:16" json:"avatar"`                // emoji or short image ref
	PhotoURL   *string `json:"photo_url,omitempty"`                  // R2 URL
	Visibility string  `gorm:"type:varchar(16);default:'public'" json:"visibility"`
	PIN        string  `gorm:"column:pin;not null" json:"-"` // shared secret, >=4 digits, never serialized
	Role       string  `gorm:"type:varchar(16);default:'player'" json:"role"`

	Stats PlayerStats `gorm:"embedded;embeddedPrefix:stats_" json:"stats"`

	Timestamps
}

// Friendship is one direction of a symmetric friend edge. Both directions
// are written (and removed) in the same transaction so the A→B row always
// has a matching B→A row.
type Friendship struct {
	ID       string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PlayerID string `gorm:"index:idx_friend_pair,unique;not null" json:"player_id"`
	FriendID string `gorm:"index:idx_friend_pair,unique;not null" json:"friend_id"`

	Timestamps
}

// FriendRequest is a pending, directional request. Accepting one atomically
// deletes the row and inserts both Friendship directions.
type FriendRequest struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	FromID string `gorm:"index:idx_request_pair,unique;not null" json:"from_id"`
	ToID   string `gorm:"index:idx_request_pair,unique;not null" json:"to_id"`

	Timestamps
}
