package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartDriftAuditScheduler periodically rebuilds all persisted stats from
// the match log. Incremental apply/reverse is the fast path; this job is the
// safety net that repairs any drift the clamping policy may have masked.
func (s *StatsService) StartDriftAuditScheduler(interval time.Duration) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("[Scheduler] failed to create scheduler: %v", err)
		return
	}
	sched.Start()

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := s.RecomputeAll(); err != nil {
				log.Printf("[Scheduler] stats recompute failed: %v", err)
			}
		}),
	)
	if err != nil {
		log.Printf("[Scheduler] failed to schedule stats recompute: %v", err)
	}
}
