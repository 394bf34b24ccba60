package models

// StatKind names one of the day-indexed usage counters.
type StatKind string

const (
	StatQuranPages StatKind = "quranPages"
	StatTasbih     StatKind = "tasbihCount"
	StatAzkar      StatKind = "azkarCompleted"
	StatSalatNabi  StatKind = "salatNabiCount"
)

// DailyStat is one day bucket of usage counters.
type DailyStat struct {
	Date           string `json:"date"` // ISO day
	QuranPages     int64  `json:"quran_pages"`
	TasbihCount    int64  `json:"tasbih_count"`
	AzkarCompleted int64  `json:"azkar_completed"`
	SalatNabiCount int64  `json:"salat_nabi_count"`
	MinutesSpent   int64  `json:"minutes_spent"`
}

// UsageStatsRecord holds lifetime totals, the activity streak and a rolling
// window of the last 30 day buckets for each user (one row per user).
type UsageStatsRecord struct {
	ID             string `gorm:"primaryKey" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"`

	TotalQuranPages int64 `gorm:"default:0" json:"total_quran_pages"`
	TotalTasbih     int64 `gorm:"default:0" json:"total_tasbih"`
	TotalAzkar      int64 `gorm:"default:0" json:"total_azkar"`
	TotalSalatNabi  int64 `gorm:"default:0" json:"total_salat_nabi"`

	Streak         int    `gorm:"default:0" json:"streak"`
	LastActiveDate string `gorm:"type:varchar(10)" json:"last_active_date"`

	DailyStats []DailyStat `gorm:"type:jsonb;serializer:json" json:"daily_stats"`

	Timestamps
}
