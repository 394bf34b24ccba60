package models

import "time"

// ReadingBookmark remembers the last reading position per user so the
// reader can resume where it left off.
type ReadingBookmark struct {
	ID             string `gorm:"primaryKey" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"`

	SurahNumber int    `json:"surah_number"`
	AyahNumber  int    `json:"ayah_number"`
	Reciter     string `json:"reciter"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
