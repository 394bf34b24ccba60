package models

import (
	"time"
)

// QuranTotalPages is the page count of a complete reading (Madani mushaf).
const QuranTotalPages = 604

// KhatmaRecord tracks the in-flight full-Quran read-through for each user
// (one row per user).
type KhatmaRecord struct {
	ID             string `gorm:"primaryKey" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"`

	CurrentPage      int    `gorm:"default:0" json:"current_page"`
	TotalPages       int    `gorm:"default:604" json:"total_pages"`
	CurrentStartDate string `gorm:"type:varchar(10)" json:"current_start_date"` // ISO day
	TargetMonths     int    `gorm:"default:1" json:"target_months"`

	Timestamps
}

// Khatma is one completed front-to-back reading, archived on completion.
// Seq is the 1-based position in the user's history, stable once assigned.
type Khatma struct {
	ID             string    `gorm:"primaryKey" json:"-"`
	ExternalUserID string    `gorm:"index;not null" json:"-"`
	Seq            int       `gorm:"not null" json:"id"`
	StartDate      string    `gorm:"type:varchar(10)" json:"start_date"`
	CompletedDate  string    `gorm:"type:varchar(10)" json:"completed_date"`
	DaysToComplete int       `json:"days_to_complete"`
	TargetMonths   int       `json:"target_months,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}
