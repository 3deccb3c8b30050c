package workers

import (
	"context"
	"log"
	"time"

	"fifa-tracker/models"
	"fifa-tracker/services"

	"gorm.io/gorm"
)

// StatsAuditor compares every player's persisted stats cache against stats
// re-derived from the match log and reports drift. It never repairs —
// the scheduled recompute (and the admin endpoint) own that — it only makes
// silent drift visible.
type StatsAuditor struct {
	DB *gorm.DB
}

func NewStatsAuditor(db *gorm.DB) *StatsAuditor {
	return &StatsAuditor{DB: db}
}

// AuditOnce runs a single drift check and returns the number of players
// whose cache disagrees with the match log.
func (a *StatsAuditor) AuditOnce(ctx context.Context) (int, error) {
	var players []models.Player
	if err := a.DB.WithContext(ctx).Find(&players).Error; err != nil {
		return 0, err
	}
	var matches []models.Match
	if err := a.DB.WithContext(ctx).Find(&matches).Error; err != nil {
		return 0, err
	}

	drifted := 0
	for i := range players {
		derived, err := services.DeriveStats(players[i].ID, matches)
		if err != nil {
			log.Printf("[StatsAudit] cannot derive stats for %s: %v", players[i].ID, err)
			continue
		}
		if derived != players[i].Stats {
			drifted++
			log.Printf("[StatsAudit] drift for player %s (%s): cached=%+v derived=%+v",
				players[i].ID, players[i].Name, players[i].Stats, derived)
		}
	}
	return drifted, nil
}

// PollStatsDrift runs the audit on an interval until the context is
// cancelled.
func PollStatsDrift(ctx context.Context, auditor *StatsAuditor, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("[StatsAudit] polling every %s", interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("[StatsAudit] stopping")
			return
		case <-ticker.C:
			drifted, err := auditor.AuditOnce(ctx)
			if err != nil {
				log.Printf("[StatsAudit] audit failed: %v", err)
				continue
			}
			if drifted > 0 {
				log.Printf("⚠️  [StatsAudit] %d players have drifted stat caches", drifted)
			}
		}
	}
}
