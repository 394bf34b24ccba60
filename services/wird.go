package services

import (
	"errors"
	"regexp"
	"time"

	"noor-companion-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidReminderTime = errors.New("reminder time must be HH:MM")

var reminderTimeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type WirdService struct {
	DB *gorm.DB
}

func NewWirdService(db *gorm.DB) *WirdService {
	return &WirdService{DB: db}
}

func (s *WirdService) EnsureConfig(externalUserID string) (*models.WirdConfig, error) {
	var cfg models.WirdConfig
	err := s.DB.Where("external_user_id = ?", externalUserID).First(&cfg).Error
	if err == gorm.ErrRecordNotFound {
		cfg = models.WirdConfig{
			ID:             uuid.NewString(),
			ExternalUserID: externalUserID,
			StartSurah:     1,
			StartAyah:      1,
			EndSurah:       2,
			EndAyah:        141,
			PagesPerDay:    2,
			ReminderTime:   "08:00",
		}
		if err := s.DB.Create(&cfg).Error; err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// EnsureProgress loads the user's wird progress; CompletedToday is cleared
// lazily when the stored day is no longer today.
func (s *WirdService) EnsureProgress(externalUserID string) (*models.WirdProgress, error) {
	var prog models.WirdProgress
	err := s.DB.Where("external_user_id = ?", externalUserID).First(&prog).Error
	if err == gorm.ErrRecordNotFound {
		prog = models.WirdProgress{
			ID:             uuid.NewString(),
			ExternalUserID: externalUserID,
			CurrentSurah:   1,
			CurrentAyah:    1,
		}
		if err := s.DB.Create(&prog).Error; err != nil {
			return nil, err
		}
		return &prog, nil
	}
	if err != nil {
		return nil, err
	}

	today := time.Now().Format(isoDay)
	if prog.CompletedToday && prog.LastReadDate != today {
		prog.CompletedToday = false
		if err := s.DB.Save(&prog).Error; err != nil {
			return nil, err
		}
	}
	return &prog, nil
}

// WirdConfigUpdate carries the fields a client may change; nil means keep.
type WirdConfigUpdate struct {
	StartSurah      *int    `json:"start_surah"`
	StartAyah       *int    `json:"start_ayah"`
	EndSurah        *int    `json:"end_surah"`
	EndAyah         *int    `json:"end_ayah"`
	PagesPerDay     *int    `json:"pages_per_day"`
	ReminderEnabled *bool   `json:"reminder_enabled"`
	ReminderTime    *string `json:"reminder_time"`
}

func (s *WirdService) UpdateConfig(externalUserID string, upd WirdConfigUpdate) (*models.WirdConfig, error) {
	if upd.ReminderTime != nil && !reminderTimeRe.MatchString(*upd.ReminderTime) {
		return nil, ErrInvalidReminderTime
	}

	cfg, err := s.EnsureConfig(externalUserID)
	if err != nil {
		return nil, err
	}
	if upd.StartSurah != nil {
		cfg.StartSurah = *upd.StartSurah
	}
	if upd.StartAyah != nil {
		cfg.StartAyah = *upd.StartAyah
	}
	if upd.EndSurah != nil {
		cfg.EndSurah = *upd.EndSurah
	}
	if upd.EndAyah != nil {
		cfg.EndAyah = *upd.EndAyah
	}
	if upd.PagesPerDay != nil {
		cfg.PagesPerDay = *upd.PagesPerDay
	}
	if upd.ReminderEnabled != nil {
		cfg.ReminderEnabled = *upd.ReminderEnabled
	}
	if upd.ReminderTime != nil {
		cfg.ReminderTime = *upd.ReminderTime
	}
	if err := s.DB.Save(cfg).Error; err != nil {
		return nil, err
	}
	return cfg, nil
}

// MarkTodayComplete records today's wird as done; a completion right after
// yesterday's extends the streak, otherwise the streak restarts at 1.
// Calling it twice on the same day is a no-op beyond the first.
func (s *WirdService) MarkTodayComplete(externalUserID string) (*models.WirdProgress, error) {
	prog, err := s.EnsureProgress(externalUserID)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format(isoDay)
	if prog.CompletedToday && prog.LastReadDate == today {
		return prog, nil
	}

	yesterday := time.Now().AddDate(0, 0, -1).Format(isoDay)
	if prog.LastReadDate == yesterday {
		prog.Streak++
	} else {
		prog.Streak = 1
	}
	prog.CompletedToday = true
	prog.LastReadDate = today
	prog.TotalDaysCompleted++

	if err := s.DB.Save(prog).Error; err != nil {
		return nil, err
	}
	return prog, nil
}

func (s *WirdService) UpdatePosition(externalUserID string, surah, ayah int) (*models.WirdProgress, error) {
	if surah < 1 || ayah < 1 {
		return nil, ErrInvalidAmount
	}
	prog, err := s.EnsureProgress(externalUserID)
	if err != nil {
		return nil, err
	}
	prog.CurrentSurah = surah
	prog.CurrentAyah = ayah
	if err := s.DB.Save(prog).Error; err != nil {
		return nil, err
	}
	return prog, nil
}

func (s *WirdService) ResetProgress(externalUserID string) (*models.WirdProgress, error) {
	prog, err := s.EnsureProgress(externalUserID)
	if err != nil {
		return nil, err
	}
	prog.CurrentSurah = 1
	prog.CurrentAyah = 1
	prog.CompletedToday = false
	prog.LastReadDate = ""
	prog.Streak = 0
	prog.TotalDaysCompleted = 0
	if err := s.DB.Save(prog).Error; err != nil {
		return nil, err
	}
	return prog, nil
}
