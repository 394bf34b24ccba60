package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"noor-companion-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidPages  = errors.New("pages must be at least 1")
	ErrInvalidTarget = errors.New("target months must be at least 1")
)

type KhatmaService struct {
	DB   *gorm.DB
	Sync *PointsSyncClient // optional, best-effort remote mirror
}

func NewKhatmaService(db *gorm.DB) *KhatmaService {
	return &KhatmaService{DB: db}
}

// EnsureRecord loads the user's khatma record, creating the default one
// (page 0 of 604, started today) on first use.
func (s *KhatmaService) EnsureRecord(externalUserID string) (*models.KhatmaRecord, error) {
	return s.ensureRecord(s.DB, externalUserID)
}

func (s *KhatmaService) ensureRecord(tx *gorm.DB, externalUserID string) (*models.KhatmaRecord, error) {
	var rec models.KhatmaRecord
	err := tx.Where("external_user_id = ?", externalUserID).First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		rec = models.KhatmaRecord{
			ID:               uuid.NewString(),
			ExternalUserID:   externalUserID,
			TotalPages:       models.QuranTotalPages,
			CurrentStartDate: time.Now().Format(isoDay),
			TargetMonths:     1,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return nil, err
		}
		return &rec, nil
	}
	if err != nil {
		return nil, err
	}
	if rec.TotalPages <= 0 {
		rec.TotalPages = models.QuranTotalPages
	}
	if rec.TargetMonths < 1 {
		rec.TargetMonths = 1
	}
	return &rec, nil
}

// daysToComplete: same-day completion yields 1, never 0.
func daysToComplete(startDate, endDate string) int {
	start, err := time.Parse(isoDay, startDate)
	if err != nil {
		return 1
	}
	end, err := time.Parse(isoDay, endDate)
	if err != nil {
		return 1
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}

// AddPages advances the in-flight read-through. Crossing the final page
// archives exactly one completed Khatma (excess pages are discarded, never
// carried into the next read-through) and atomically restarts at page 0 from
// today.
func (s *KhatmaService) AddPages(externalUserID string, pages int) (*models.KhatmaRecord, error) {
	if pages < 1 {
		return nil, ErrInvalidPages
	}

	var updated *models.KhatmaRecord
	var completed *models.Khatma
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		rec, err := s.ensureRecord(tx, externalUserID)
		if err != nil {
			return err
		}

		today := time.Now().Format(isoDay)
		newPage := rec.CurrentPage + pages
		if newPage > rec.TotalPages {
			newPage = rec.TotalPages
		}

		if newPage < rec.TotalPages {
			rec.CurrentPage = newPage
			if err := tx.Save(rec).Error; err != nil {
				return err
			}
			updated = rec
			return nil
		}

		startDate := rec.CurrentStartDate
		if startDate == "" {
			startDate = today
		}

		var prior int64
		if err := tx.Model(&models.Khatma{}).
			Where("external_user_id = ?", externalUserID).
			Count(&prior).Error; err != nil {
			return err
		}

		khatma := models.Khatma{
			ID:             uuid.NewString(),
			ExternalUserID: externalUserID,
			Seq:            int(prior) + 1,
			StartDate:      startDate,
			CompletedDate:  today,
			DaysToComplete: daysToComplete(startDate, today),
			TargetMonths:   rec.TargetMonths,
		}
		if err := tx.Create(&khatma).Error; err != nil {
			return err
		}

		rec.CurrentPage = 0
		rec.CurrentStartDate = today
		if err := tx.Save(rec).Error; err != nil {
			return err
		}

		updated = rec
		completed = &khatma
		return nil
	})
	if err != nil {
		return nil, err
	}

	if completed != nil {
		log.Printf("📖 [KHATMA] %s completed khatma #%d in %d day(s)",
			externalUserID, completed.Seq, completed.DaysToComplete)
		if s.Sync != nil {
			go s.Sync.CreditKhatma(externalUserID)
		}
	}
	return updated, nil
}

// ResetCurrent abandons the in-flight read-through without counting it as
// completed. The archive is untouched.
func (s *KhatmaService) ResetCurrent(externalUserID string) (*models.KhatmaRecord, error) {
	var updated *models.KhatmaRecord
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		rec, err := s.ensureRecord(tx, externalUserID)
		if err != nil {
			return err
		}
		rec.CurrentPage = 0
		rec.CurrentStartDate = time.Now().Format(isoDay)
		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetTarget updates the intended pace of the in-flight read-through.
func (s *KhatmaService) SetTarget(externalUserID string, months int) (*models.KhatmaRecord, error) {
	if months < 1 {
		return nil, ErrInvalidTarget
	}
	rec, err := s.EnsureRecord(externalUserID)
	if err != nil {
		return nil, err
	}
	rec.TargetMonths = months
	if err := s.DB.Save(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// KhatmaSnapshot is the engine state handed to display components.
type KhatmaSnapshot struct {
	CurrentPage      int             `json:"current_page"`
	TotalPages       int             `json:"total_pages"`
	CurrentStartDate string          `json:"current_start_date"`
	TargetMonths     int             `json:"target_months"`
	Progress         int             `json:"progress"`     // percent, rounded
	DailyTarget      int             `json:"daily_target"` // pages/day to finish on pace
	KhatmaList       []models.Khatma `json:"khatma_list"`  // oldest first
}

func (s *KhatmaService) Snapshot(externalUserID string) (*KhatmaSnapshot, error) {
	rec, err := s.EnsureRecord(externalUserID)
	if err != nil {
		return nil, fmt.Errorf("load khatma record: %w", err)
	}

	list := []models.Khatma{}
	if err := s.DB.Where("external_user_id = ?", externalUserID).
		Order("seq ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}

	targetDays := rec.TargetMonths * 30
	return &KhatmaSnapshot{
		CurrentPage:      rec.CurrentPage,
		TotalPages:       rec.TotalPages,
		CurrentStartDate: rec.CurrentStartDate,
		TargetMonths:     rec.TargetMonths,
		Progress:         int(float64(rec.CurrentPage)/float64(rec.TotalPages)*100 + 0.5),
		DailyTarget:      (rec.TotalPages + targetDays - 1) / targetDays,
		KhatmaList:       list,
	}, nil
}
