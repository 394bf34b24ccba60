package services

import (
	"fmt"
	"time"

	"noor-companion-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookmarkService struct {
	DB *gorm.DB
}

func NewBookmarkService(db *gorm.DB) *BookmarkService {
	return &BookmarkService{DB: db}
}

// Save remembers the user's reading position, overwriting any previous one.
func (s *BookmarkService) Save(externalUserID string, surah, ayah int, reciter string) (*models.ReadingBookmark, error) {
	if surah < 1 || ayah < 1 {
		return nil, ErrInvalidAmount
	}
	if reciter == "" {
		reciter = DefaultReciter
	}

	var bm models.ReadingBookmark
	err := s.DB.Where("external_user_id = ?", externalUserID).First(&bm).Error
	if err == gorm.ErrRecordNotFound {
		bm = models.ReadingBookmark{
			ID:             uuid.NewString(),
			ExternalUserID: externalUserID,
		}
	} else if err != nil {
		return nil, err
	}

	bm.SurahNumber = surah
	bm.AyahNumber = ayah
	bm.Reciter = reciter
	if err := s.DB.Save(&bm).Error; err != nil {
		return nil, err
	}
	return &bm, nil
}

// Get returns the stored position, or nil when the user has none.
func (s *BookmarkService) Get(externalUserID string) (*models.ReadingBookmark, error) {
	var bm models.ReadingBookmark
	err := s.DB.Where("external_user_id = ?", externalUserID).First(&bm).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bm, nil
}

func (s *BookmarkService) Clear(externalUserID string) error {
	return s.DB.Where("external_user_id = ?", externalUserID).
		Delete(&models.ReadingBookmark{}).Error
}

// TimeAgo renders how long ago the bookmark was touched, in Arabic like the
// rest of the user-facing strings.
func TimeAgo(since time.Time, now time.Time) string {
	diff := now.Sub(since)
	switch {
	case diff >= 24*time.Hour:
		return fmt.Sprintf("منذ %d يوم", int(diff.Hours()/24))
	case diff >= time.Hour:
		return fmt.Sprintf("منذ %d ساعة", int(diff.Hours()))
	case diff >= time.Minute:
		return fmt.Sprintf("منذ %d دقيقة", int(diff.Minutes()))
	default:
		return "الآن"
	}
}
