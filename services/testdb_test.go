package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"noor-companion-service/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens a fresh in-memory database per test. The unique name keeps
// parallel tests from attaching to each other's schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:companion_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.ChallengeRecord{},
		&models.KhatmaRecord{},
		&models.Khatma{},
		&models.UsageStatsRecord{},
		&models.WirdConfig{},
		&models.WirdProgress{},
		&models.ReadingBookmark{},
		&models.ProfileMirror{},
	))
	return db
}
