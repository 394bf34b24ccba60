package models

// WirdConfig is the self-assigned daily reading quota for a user
// (one row per user).
type WirdConfig struct {
	ID             string `gorm:"primaryKey" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"`

	StartSurah  int `gorm:"default:1" json:"start_surah"`
	StartAyah   int `gorm:"default:1" json:"start_ayah"`
	EndSurah    int `gorm:"default:2" json:"end_surah"`
	EndAyah     int `gorm:"default:141" json:"end_ayah"`
	PagesPerDay int `gorm:"default:2" json:"pages_per_day"`

	ReminderEnabled bool   `gorm:"default:false" json:"reminder_enabled"`
	ReminderTime    string `gorm:"type:varchar(5);default:'08:00'" json:"reminder_time"` // HH:MM

	Timestamps
}

// WirdProgress tracks where the user stands in their daily wird
// (one row per user). CompletedToday resets lazily on day change.
type WirdProgress struct {
	ID             string `gorm:"primaryKey" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"`

	CurrentSurah       int    `gorm:"default:1" json:"current_surah"`
	CurrentAyah        int    `gorm:"default:1" json:"current_ayah"`
	CompletedToday     bool   `gorm:"default:false" json:"completed_today"`
	LastReadDate       string `gorm:"type:varchar(10)" json:"last_read_date"` // ISO day
	Streak             int    `gorm:"default:0" json:"streak"`
	TotalDaysCompleted int    `gorm:"default:0" json:"total_days_completed"`

	Timestamps
}
