package models

import (
	"time"

	"gorm.io/gorm"
)

// ProfileMirror is a local snapshot of profile data needed for the
// leaderboard. Owned and managed solely by this service, populated via sync
// worker from the profile service. Cumulative counters here mirror (loosely)
// the local engines' totals; the two are not kept transactionally consistent.
type ProfileMirror struct {
	ID             string  `gorm:"primaryKey" json:"id"`
	ExternalUserID string  `gorm:"uniqueIndex;not null" json:"external_user_id"`
	Username       string  `gorm:"index;not null" json:"username"`
	DisplayName    *string `json:"display_name,omitempty"`
	AvatarURL      *string `json:"avatar_url,omitempty"`

	TotalPoints    int64 `gorm:"default:0" json:"total_points"`
	TotalTasbih    int64 `gorm:"default:0" json:"total_tasbih"`
	TotalPagesRead int64 `gorm:"default:0" json:"total_pages_read"`
	TotalKhatmas   int64 `gorm:"default:0" json:"total_khatmas"`
	StreakDays     int64 `gorm:"default:0" json:"streak_days"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
