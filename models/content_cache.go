package models

import "time"

// CachedSurah records a surah whose full text has been fetched from the
// content provider and stored locally plus on R2, so readers keep working
// when the upstream API is down.
type CachedSurah struct {
	ID          string `gorm:"primaryKey" json:"id"`
	SurahNumber int    `gorm:"uniqueIndex;not null" json:"surah_number"`
	Name        string `json:"name"`
	EnglishName string `json:"english_name"`
	ObjectKey   string `json:"object_key"` // R2 key, e.g. "quran/001-al-fatiha.json"
	LocalPath   string `json:"local_path"`
	SizeBytes   int64  `json:"size_bytes"`

	CachedAt time.Time `gorm:"autoUpdateTime" json:"cached_at"`
}
