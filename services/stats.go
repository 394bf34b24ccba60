package services

import (
	"errors"
	"log"
	"time"

	"noor-companion-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dailyStatsWindow = 30 // day buckets kept per user

var ErrInvalidStatKind = errors.New("unknown stat kind")

type StatsService struct {
	DB   *gorm.DB
	Sync *PointsSyncClient // optional, best-effort remote mirror
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

func (s *StatsService) EnsureRecord(externalUserID string) (*models.UsageStatsRecord, error) {
	return s.ensureRecord(s.DB, externalUserID)
}

func (s *StatsService) ensureRecord(tx *gorm.DB, externalUserID string) (*models.UsageStatsRecord, error) {
	var rec models.UsageStatsRecord
	err := tx.Where("external_user_id = ?", externalUserID).First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		rec = models.UsageStatsRecord{
			ID:             uuid.NewString(),
			ExternalUserID: externalUserID,
			DailyStats:     []models.DailyStat{},
		}
		if err := tx.Create(&rec).Error; err != nil {
			return nil, err
		}
		return &rec, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func addToDaily(d *models.DailyStat, kind models.StatKind, amount int64) {
	switch kind {
	case models.StatQuranPages:
		d.QuranPages += amount
	case models.StatTasbih:
		d.TasbihCount += amount
	case models.StatAzkar:
		d.AzkarCompleted += amount
	case models.StatSalatNabi:
		d.SalatNabiCount += amount
	}
}

// updateStreak: consecutive-day activity. Active yesterday extends the
// streak, any gap restarts it at 1, repeat activity today is neutral.
func updateStreak(rec *models.UsageStatsRecord, today string) {
	if rec.LastActiveDate == today {
		return
	}
	yesterday := time.Now().AddDate(0, 0, -1).Format(isoDay)
	if rec.LastActiveDate == yesterday {
		rec.Streak++
	} else {
		rec.Streak = 1
	}
	rec.LastActiveDate = today
}

// IncrementStat adds amount to the lifetime total and today's day bucket for
// the given counter, updates the streak, and prunes buckets past the rolling
// window.
func (s *StatsService) IncrementStat(externalUserID string, kind models.StatKind, amount int64) (*models.UsageStatsRecord, error) {
	if amount < 1 {
		return nil, ErrInvalidAmount
	}
	switch kind {
	case models.StatQuranPages, models.StatTasbih, models.StatAzkar, models.StatSalatNabi:
	default:
		return nil, ErrInvalidStatKind
	}

	var updated *models.UsageStatsRecord
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		rec, err := s.ensureRecord(tx, externalUserID)
		if err != nil {
			return err
		}

		today := time.Now().Format(isoDay)
		found := false
		for i := range rec.DailyStats {
			if rec.DailyStats[i].Date == today {
				addToDaily(&rec.DailyStats[i], kind, amount)
				found = true
				break
			}
		}
		if !found {
			day := models.DailyStat{Date: today}
			addToDaily(&day, kind, amount)
			rec.DailyStats = append(rec.DailyStats, day)
		}
		if n := len(rec.DailyStats); n > dailyStatsWindow {
			rec.DailyStats = rec.DailyStats[n-dailyStatsWindow:]
		}

		switch kind {
		case models.StatQuranPages:
			rec.TotalQuranPages += amount
		case models.StatTasbih:
			rec.TotalTasbih += amount
		case models.StatAzkar:
			rec.TotalAzkar += amount
		case models.StatSalatNabi:
			rec.TotalSalatNabi += amount
		}
		updateStreak(rec, today)

		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.Sync != nil {
		switch kind {
		case models.StatTasbih:
			go s.Sync.CreditTasbih(externalUserID, amount)
		case models.StatQuranPages:
			go s.Sync.CreditPagesRead(externalUserID, amount)
		}
	}
	return updated, nil
}

// TodayStats returns today's day bucket, zeroed when the user has no
// activity yet.
func (s *StatsService) TodayStats(externalUserID string) (*models.DailyStat, error) {
	rec, err := s.EnsureRecord(externalUserID)
	if err != nil {
		return nil, err
	}
	today := time.Now().Format(isoDay)
	for i := range rec.DailyStats {
		if rec.DailyStats[i].Date == today {
			return &rec.DailyStats[i], nil
		}
	}
	return &models.DailyStat{Date: today}, nil
}

// WeeklyStats returns the last 7 days oldest-first, zero-filling days with no
// recorded activity.
func (s *StatsService) WeeklyStats(externalUserID string) ([]models.DailyStat, error) {
	rec, err := s.EnsureRecord(externalUserID)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]models.DailyStat, len(rec.DailyStats))
	for _, d := range rec.DailyStats {
		byDate[d.Date] = d
	}

	week := make([]models.DailyStat, 0, 7)
	for i := 6; i >= 0; i-- {
		date := time.Now().AddDate(0, 0, -i).Format(isoDay)
		if d, ok := byDate[date]; ok {
			week = append(week, d)
		} else {
			week = append(week, models.DailyStat{Date: date})
		}
	}
	return week, nil
}

// Reset wipes totals, streak and the daily window back to zero.
func (s *StatsService) Reset(externalUserID string) (*models.UsageStatsRecord, error) {
	var updated *models.UsageStatsRecord
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		rec, err := s.ensureRecord(tx, externalUserID)
		if err != nil {
			return err
		}
		rec.TotalQuranPages = 0
		rec.TotalTasbih = 0
		rec.TotalAzkar = 0
		rec.TotalSalatNabi = 0
		rec.Streak = 0
		rec.LastActiveDate = ""
		rec.DailyStats = []models.DailyStat{}
		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("🧹 [STATS] reset usage stats for %s", externalUserID)
	return updated, nil
}
