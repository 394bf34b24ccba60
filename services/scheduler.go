// services/scheduler.go
package services

import (
	"log"
	"time"

	"noor-companion-service/models"

	"github.com/go-co-op/gocron/v2"
)

// StartReminderScheduler checks once a minute for users whose wird reminder
// time just arrived and who have not completed today's wird, and pushes a
// reminder through the notification client.
func (s *WirdService) StartReminderScheduler(notifier *NotificationClient) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			now := time.Now()
			hhmm := now.Format("15:04")
			today := now.Format(isoDay)

			var configs []models.WirdConfig
			err := s.DB.Where("reminder_enabled = ? AND reminder_time = ?", true, hhmm).
				Find(&configs).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}

			for _, cfg := range configs {
				var prog models.WirdProgress
				err := s.DB.Where("external_user_id = ?", cfg.ExternalUserID).
					First(&prog).Error
				if err == nil && prog.CompletedToday && prog.LastReadDate == today {
					continue // already done today
				}
				notifier.Send(cfg.ExternalUserID,
					"📖 تذكير بالورد اليومي",
					"حان وقت قراءة وردك اليومي من القرآن الكريم")
				log.Printf("⏰ Wird reminder sent to %s (%s)", cfg.ExternalUserID, hhmm)
			}
		}),
	)
}
