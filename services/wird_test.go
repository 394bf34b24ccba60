package services

import (
	"testing"
	"time"

	"noor-companion-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureConfigDefaults(t *testing.T) {
	svc := NewWirdService(newTestDB(t))

	cfg, err := svc.EnsureConfig("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.StartSurah)
	assert.Equal(t, 1, cfg.StartAyah)
	assert.Equal(t, 2, cfg.EndSurah)
	assert.Equal(t, 141, cfg.EndAyah)
	assert.Equal(t, 2, cfg.PagesPerDay)
	assert.False(t, cfg.ReminderEnabled)
	assert.Equal(t, "08:00", cfg.ReminderTime)
}

func TestUpdateConfigPartial(t *testing.T) {
	svc := NewWirdService(newTestDB(t))

	pages := 5
	enabled := true
	reminder := "21:30"
	cfg, err := svc.UpdateConfig("user-1", WirdConfigUpdate{
		PagesPerDay:     &pages,
		ReminderEnabled: &enabled,
		ReminderTime:    &reminder,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.PagesPerDay)
	assert.True(t, cfg.ReminderEnabled)
	assert.Equal(t, "21:30", cfg.ReminderTime)
	// Untouched fields keep their defaults.
	assert.Equal(t, 1, cfg.StartSurah)
	assert.Equal(t, 141, cfg.EndAyah)
}

func TestUpdateConfigRejectsBadReminderTime(t *testing.T) {
	svc := NewWirdService(newTestDB(t))

	for _, bad := range []string{"25:00", "7:5", "0800", "12:60", "noon"} {
		bad := bad
		_, err := svc.UpdateConfig("user-1", WirdConfigUpdate{ReminderTime: &bad})
		assert.ErrorIs(t, err, ErrInvalidReminderTime, "reminder time %q", bad)
	}
}

func TestMarkTodayCompleteIdempotent(t *testing.T) {
	svc := NewWirdService(newTestDB(t))

	prog, err := svc.MarkTodayComplete("user-1")
	require.NoError(t, err)
	assert.True(t, prog.CompletedToday)
	assert.Equal(t, 1, prog.Streak)
	assert.Equal(t, 1, prog.TotalDaysCompleted)
	assert.Equal(t, time.Now().Format(isoDay), prog.LastReadDate)

	prog, err = svc.MarkTodayComplete("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, prog.Streak)
	assert.Equal(t, 1, prog.TotalDaysCompleted)
}

func TestMarkTodayCompleteExtendsStreak(t *testing.T) {
	db := newTestDB(t)
	svc := NewWirdService(db)

	_, err := svc.EnsureProgress("user-1")
	require.NoError(t, err)

	yesterday := time.Now().AddDate(0, 0, -1).Format(isoDay)
	require.NoError(t, db.Model(&models.WirdProgress{}).
		Where("external_user_id = ?", "user-1").
		Updates(map[string]any{"last_read_date": yesterday, "streak": 6, "total_days_completed": 6}).Error)

	prog, err := svc.MarkTodayComplete("user-1")
	require.NoError(t, err)
	assert.Equal(t, 7, prog.Streak)
	assert.Equal(t, 7, prog.TotalDaysCompleted)
}

func TestEnsureProgressClearsStaleCompletion(t *testing.T) {
	db := newTestDB(t)
	svc := NewWirdService(db)

	_, err := svc.MarkTodayComplete("user-1")
	require.NoError(t, err)

	// Pretend the completion happened yesterday.
	yesterday := time.Now().AddDate(0, 0, -1).Format(isoDay)
	require.NoError(t, db.Model(&models.WirdProgress{}).
		Where("external_user_id = ?", "user-1").
		Update("last_read_date", yesterday).Error)

	prog, err := svc.EnsureProgress("user-1")
	require.NoError(t, err)
	assert.False(t, prog.CompletedToday)
	assert.Equal(t, 1, prog.Streak) // streak only changes on completion, not on read
}

func TestUpdatePositionAndReset(t *testing.T) {
	svc := NewWirdService(newTestDB(t))

	prog, err := svc.UpdatePosition("user-1", 18, 45)
	require.NoError(t, err)
	assert.Equal(t, 18, prog.CurrentSurah)
	assert.Equal(t, 45, prog.CurrentAyah)

	_, err = svc.UpdatePosition("user-1", 0, 45)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.MarkTodayComplete("user-1")
	require.NoError(t, err)

	prog, err = svc.ResetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, prog.CurrentSurah)
	assert.Equal(t, 1, prog.CurrentAyah)
	assert.False(t, prog.CompletedToday)
	assert.Equal(t, 0, prog.Streak)
	assert.Equal(t, 0, prog.TotalDaysCompleted)
}
