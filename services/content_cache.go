package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"noor-companion-service/models"
	"noor-companion-service/utils"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TextEdition: diacritized text-only edition used for the offline cache.
const TextEdition = "quran-uthmani"

// ContentCacheService keeps full surah documents available when the content
// provider is down: each cached surah lives as a JSON file under the local
// cache dir and as an object on R2, with a DB row tracking what is cached.
type ContentCacheService struct {
	DB    *gorm.DB
	Quran *QuranClient
}

func NewContentCacheService(db *gorm.DB, quran *QuranClient) *ContentCacheService {
	return &ContentCacheService{DB: db, Quran: quran}
}

// CacheSurah fetches one surah from the provider and stores it locally and
// on R2, upserting the tracking row.
func (s *ContentCacheService) CacheSurah(ctx context.Context, number int) (*models.CachedSurah, error) {
	detail, err := s.Quran.GetSurah(ctx, number, TextEdition)
	if err != nil {
		return nil, fmt.Errorf("fetch surah %d: %w", number, err)
	}

	data, err := json.Marshal(detail)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("quran/%03d-%s.json", number, slug.Make(detail.EnglishName))
	localPath := utils.CachePath(fmt.Sprintf("surah-%03d.json", number))
	if err := utils.WriteCacheFile(localPath, data); err != nil {
		return nil, fmt.Errorf("write local cache: %w", err)
	}

	// R2 mirror is nice-to-have; a failed upload keeps the local copy.
	if err := utils.UploadObject(ctx, key, "application/json", data); err != nil {
		log.Printf("⚠️ [CACHE] R2 upload for surah %d failed: %v", number, err)
	}

	cached := models.CachedSurah{
		ID:          uuid.NewString(),
		SurahNumber: number,
		Name:        detail.Name,
		EnglishName: detail.EnglishName,
		ObjectKey:   key,
		LocalPath:   localPath,
		SizeBytes:   int64(len(data)),
	}
	err = s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "surah_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "english_name", "object_key", "local_path", "size_bytes", "cached_at",
		}),
	}).Create(&cached).Error
	if err != nil {
		return nil, err
	}
	return &cached, nil
}

// CachedSurahDetail loads a surah from the local cache. Returns
// gorm.ErrRecordNotFound when the surah was never cached.
func (s *ContentCacheService) CachedSurahDetail(number int) (*SurahDetail, error) {
	var row models.CachedSurah
	if err := s.DB.Where("surah_number = ?", number).First(&row).Error; err != nil {
		return nil, err
	}
	data, err := utils.ReadCacheFile(row.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("read cached surah %d: %w", number, err)
	}
	var detail SurahDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, fmt.Errorf("cached surah %d is corrupt: %w", number, err)
	}
	return &detail, nil
}

// CacheAll walks every surah not yet cached, pacing requests so the provider
// is not hammered. Intended to run in the background off an admin trigger.
func (s *ContentCacheService) CacheAll(ctx context.Context) {
	log.Println("📥 [CACHE] caching all surahs...")
	done := 0
	for n := 1; n <= 114; n++ {
		select {
		case <-ctx.Done():
			log.Printf("⏹️ [CACHE] stopped after %d surah(s)", done)
			return
		default:
		}

		var count int64
		s.DB.Model(&models.CachedSurah{}).Where("surah_number = ?", n).Count(&count)
		if count > 0 {
			continue
		}

		if _, err := s.CacheSurah(ctx, n); err != nil {
			log.Printf("❌ [CACHE] surah %d failed: %v", n, err)
			continue
		}
		done++
		time.Sleep(200 * time.Millisecond)
	}
	log.Printf("✅ [CACHE] cached %d new surah(s)", done)
}

// CacheMeta summarizes what is cached for the settings screen.
type CacheMeta struct {
	CachedSurahs []int     `json:"cached_surahs"`
	TotalSize    int64     `json:"total_size"`
	LastUpdated  time.Time `json:"last_updated"`
}

func (s *ContentCacheService) Meta() (*CacheMeta, error) {
	var rows []models.CachedSurah
	if err := s.DB.Order("surah_number ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	meta := &CacheMeta{CachedSurahs: make([]int, 0, len(rows))}
	for _, r := range rows {
		meta.CachedSurahs = append(meta.CachedSurahs, r.SurahNumber)
		meta.TotalSize += r.SizeBytes
		if r.CachedAt.After(meta.LastUpdated) {
			meta.LastUpdated = r.CachedAt
		}
	}
	return meta, nil
}

// Clear drops all cache rows and local files.
func (s *ContentCacheService) Clear() error {
	var rows []models.CachedSurah
	if err := s.DB.Find(&rows).Error; err != nil {
		return err
	}
	for _, r := range rows {
		utils.RemoveCacheFile(r.LocalPath)
	}
	return s.DB.Where("1 = 1").Delete(&models.CachedSurah{}).Error
}
