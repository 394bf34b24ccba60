package services

import (
	"testing"
	"time"

	"noor-companion-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysToComplete(t *testing.T) {
	assert.Equal(t, 1, daysToComplete("2026-09-01", "2026-09-01")) // same day counts as 1
	assert.Equal(t, 11, daysToComplete("2026-08-22", "2026-09-01"))
	assert.Equal(t, 1, daysToComplete("garbage", "2026-09-01"))
	assert.Equal(t, 1, daysToComplete("2026-09-05", "2026-09-01")) // clock skew never yields 0
}

func TestAddPagesAccumulates(t *testing.T) {
	svc := NewKhatmaService(newTestDB(t))

	for i := 0; i < 3; i++ {
		_, err := svc.AddPages("user-1", 10)
		require.NoError(t, err)
	}

	rec, err := svc.EnsureRecord("user-1")
	require.NoError(t, err)
	assert.Equal(t, 30, rec.CurrentPage)
	assert.Equal(t, models.QuranTotalPages, rec.TotalPages)
}

func TestAddPagesRejectsBadInput(t *testing.T) {
	svc := NewKhatmaService(newTestDB(t))

	_, err := svc.AddPages("user-1", 0)
	assert.ErrorIs(t, err, ErrInvalidPages)
	_, err = svc.AddPages("user-1", -5)
	assert.ErrorIs(t, err, ErrInvalidPages)
}

func TestAddPagesCompletionArchivesAndRestarts(t *testing.T) {
	db := newTestDB(t)
	svc := NewKhatmaService(db)

	// Overshooting the final page completes exactly one khatma; the excess
	// is discarded, not carried into the next read-through.
	rec, err := svc.AddPages("user-1", models.QuranTotalPages+96)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.CurrentPage)
	assert.Equal(t, time.Now().Format(isoDay), rec.CurrentStartDate)

	var list []models.Khatma
	require.NoError(t, db.Where("external_user_id = ?", "user-1").Order("seq ASC").Find(&list).Error)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].Seq)
	assert.Equal(t, 1, list[0].DaysToComplete)
	assert.Equal(t, time.Now().Format(isoDay), list[0].CompletedDate)

	// Second completion appends with the next sequence number.
	_, err = svc.AddPages("user-1", models.QuranTotalPages)
	require.NoError(t, err)
	require.NoError(t, db.Where("external_user_id = ?", "user-1").Order("seq ASC").Find(&list).Error)
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[1].Seq)
}

func TestAddPagesCompletionUsesStartDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewKhatmaService(db)

	_, err := svc.AddPages("user-1", 100)
	require.NoError(t, err)

	tenDaysAgo := time.Now().AddDate(0, 0, -10).Format(isoDay)
	require.NoError(t, db.Model(&models.KhatmaRecord{}).
		Where("external_user_id = ?", "user-1").
		Update("current_start_date", tenDaysAgo).Error)

	_, err = svc.AddPages("user-1", models.QuranTotalPages)
	require.NoError(t, err)

	var done models.Khatma
	require.NoError(t, db.Where("external_user_id = ?", "user-1").First(&done).Error)
	assert.Equal(t, tenDaysAgo, done.StartDate)
	assert.Equal(t, 11, done.DaysToComplete)
}

func TestResetCurrentKeepsArchive(t *testing.T) {
	db := newTestDB(t)
	svc := NewKhatmaService(db)

	_, err := svc.AddPages("user-1", models.QuranTotalPages)
	require.NoError(t, err)
	_, err = svc.AddPages("user-1", 300)
	require.NoError(t, err)

	rec, err := svc.ResetCurrent("user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, rec.CurrentPage)
	assert.Equal(t, time.Now().Format(isoDay), rec.CurrentStartDate)

	var count int64
	require.NoError(t, db.Model(&models.Khatma{}).Where("external_user_id = ?", "user-1").Count(&count).Error)
	assert.Equal(t, int64(1), count) // abandoning never counts as a completion
}

func TestSetTargetAndSnapshot(t *testing.T) {
	svc := NewKhatmaService(newTestDB(t))

	_, err := svc.SetTarget("user-1", 0)
	assert.ErrorIs(t, err, ErrInvalidTarget)

	rec, err := svc.SetTarget("user-1", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.TargetMonths)

	_, err = svc.AddPages("user-1", 151)
	require.NoError(t, err)

	snap, err := svc.Snapshot("user-1")
	require.NoError(t, err)
	assert.Equal(t, 151, snap.CurrentPage)
	assert.Equal(t, 25, snap.Progress)    // 151/604 rounds to 25%
	assert.Equal(t, 11, snap.DailyTarget) // ceil(604 / 60 days)
	assert.Empty(t, snap.KhatmaList)
}
