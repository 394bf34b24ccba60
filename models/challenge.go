package models

import (
	"time"

	"gorm.io/gorm"
)

// ChallengeType keys a counter elsewhere in the app (tasbih counter, Quran
// reader, azkar, salat-on-prophet counter, khatma tracker) to the weekly
// challenges it feeds.
type ChallengeType string

const (
	ChallengeTypeTasbih      ChallengeType = "tasbih"
	ChallengeTypeQuranPages  ChallengeType = "quranPages"
	ChallengeTypeAzkar       ChallengeType = "azkar"
	ChallengeTypeSalatNabi   ChallengeType = "salatNabi"
	ChallengeTypeKhatmaPages ChallengeType = "khatmaPages"
)

// Challenge is a static weekly challenge definition.
type Challenge struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Target      int64         `json:"target"`
	Type        ChallengeType `json:"type"`
	Reward      int64         `json:"reward"` // points
	Emoji       string        `json:"emoji"`
}

// ChallengeProgress is one entry of the weekly progress list.
// List order always matches WeeklyChallengeDefs order.
type ChallengeProgress struct {
	ChallengeID   string `json:"challenge_id"`
	Current       int64  `json:"current"`
	Completed     bool   `json:"completed"`
	CompletedDate string `json:"completed_date,omitempty"` // ISO day
}

// Badge is a static lifetime-points threshold definition.
type Badge struct {
	Points int64  `json:"points"`
	Name   string `json:"name"`
	Emoji  string `json:"emoji"`
}

// ChallengeRecord tracks weekly challenge completion and the lifetime
// gamification score for each user (one row per user).
type ChallengeRecord struct {
	ID             string `gorm:"primaryKey" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"` // links to profile service

	WeekStart         string `gorm:"type:varchar(10);not null" json:"week_start"` // Monday of the active week, ISO day
	Points            int64  `gorm:"default:0" json:"points"`
	TotalPointsEarned int64  `gorm:"default:0" json:"total_points_earned"`
	Level             int    `gorm:"default:1" json:"level"`

	WeeklyChallenges []ChallengeProgress `gorm:"type:jsonb;serializer:json" json:"weekly_challenges"`
	Badges           []string            `gorm:"type:jsonb;serializer:json" json:"badges"`

	Timestamps
}

// WeeklyChallengeDefs: static config, one ChallengeProgress entry per
// definition, definition order = display order.
var WeeklyChallengeDefs = []Challenge{
	{ID: "tasbih_500", Title: "المسبّح", Description: "سبّح 500 مرة", Target: 500, Type: ChallengeTypeTasbih, Reward: 50, Emoji: "📿"},
	{ID: "quran_10", Title: "قارئ القرآن", Description: "اقرأ 10 صفحات", Target: 10, Type: ChallengeTypeQuranPages, Reward: 100, Emoji: "📖"},
	{ID: "azkar_5", Title: "الذاكر", Description: "أكمل الأذكار 5 مرات", Target: 5, Type: ChallengeTypeAzkar, Reward: 60, Emoji: "🤲"},
	{ID: "salat_100", Title: "المصلّي على النبي", Description: "صلِّ على النبي 100 مرة", Target: 100, Type: ChallengeTypeSalatNabi, Reward: 70, Emoji: "💚"},
	{ID: "khatma_20", Title: "الخاتم", Description: "اقرأ 20 صفحة من الختمة", Target: 20, Type: ChallengeTypeKhatmaPages, Reward: 80, Emoji: "🏆"},
}

// BadgeDefs: ascending thresholds over TotalPointsEarned.
var BadgeDefs = []Badge{
	{Points: 100, Name: "مبتدئ", Emoji: "⭐"},
	{Points: 300, Name: "مجتهد", Emoji: "🌟"},
	{Points: 500, Name: "متميز", Emoji: "💫"},
	{Points: 1000, Name: "متفوق", Emoji: "🏅"},
	{Points: 2000, Name: "بطل", Emoji: "🥇"},
	{Points: 5000, Name: "أسطورة", Emoji: "👑"},
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
