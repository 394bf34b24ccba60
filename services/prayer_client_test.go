package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func meccaTimings() *PrayerTimes {
	return &PrayerTimes{
		Fajr:    "04:45",
		Sunrise: "06:05",
		Dhuhr:   "12:20",
		Asr:     "15:45",
		Maghrib: "18:35",
		Isha:    "20:05",
	}
}

func TestComputeNextPrayer(t *testing.T) {
	pt := meccaTimings()
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	np := ComputeNextPrayer(pt, day.Add(13*time.Hour)) // 13:00
	assert.Equal(t, "العصر", np.Name)
	assert.Equal(t, "15:45", np.Time)
	assert.Equal(t, "2 ساعة و 45 دقيقة", np.Remaining)

	np = ComputeNextPrayer(pt, day.Add(18*time.Hour+30*time.Minute))
	assert.Equal(t, "المغرب", np.Name)
	assert.Equal(t, "5 دقيقة", np.Remaining)
}

func TestComputeNextPrayerAfterIsha(t *testing.T) {
	pt := meccaTimings()
	late := time.Date(2026, 9, 1, 23, 0, 0, 0, time.UTC)

	np := ComputeNextPrayer(pt, late)
	assert.Equal(t, "الفجر", np.Name)
	assert.Equal(t, "04:45", np.Time)
	assert.Equal(t, "غداً", np.Remaining)
}

func TestComputeNextPrayerSkipsUnparsableEntries(t *testing.T) {
	pt := meccaTimings()
	pt.Fajr = "--"
	early := time.Date(2026, 9, 1, 3, 0, 0, 0, time.UTC)

	np := ComputeNextPrayer(pt, early)
	assert.Equal(t, "الشروق", np.Name)
}
