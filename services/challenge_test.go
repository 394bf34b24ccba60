package services

import (
	"testing"
	"time"

	"noor-companion-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStartFor(t *testing.T) {
	cases := []struct {
		day  string
		want string
	}{
		{"2026-08-31", "2026-08-31"}, // Monday maps to itself
		{"2026-09-02", "2026-08-31"}, // Wednesday
		{"2026-09-05", "2026-08-31"}, // Saturday
		{"2026-09-06", "2026-08-31"}, // Sunday closes the week
		{"2026-09-07", "2026-09-07"}, // next Monday opens a new one
	}
	for _, tc := range cases {
		d, err := time.Parse(isoDay, tc.day)
		require.NoError(t, err)
		assert.Equal(t, tc.want, WeekStartFor(d), "week start for %s", tc.day)
	}
}

func TestEnsureRecordCreatesDefaults(t *testing.T) {
	svc := NewChallengeService(newTestDB(t))

	rec, err := svc.EnsureRecord("user-1")
	require.NoError(t, err)

	assert.Equal(t, WeekStartFor(time.Now()), rec.WeekStart)
	assert.Equal(t, int64(0), rec.Points)
	assert.Equal(t, int64(0), rec.TotalPointsEarned)
	assert.Equal(t, 1, rec.Level)
	assert.Empty(t, rec.Badges)

	require.Len(t, rec.WeeklyChallenges, len(models.WeeklyChallengeDefs))
	for i, def := range models.WeeklyChallengeDefs {
		assert.Equal(t, def.ID, rec.WeeklyChallenges[i].ChallengeID)
		assert.Equal(t, int64(0), rec.WeeklyChallenges[i].Current)
		assert.False(t, rec.WeeklyChallenges[i].Completed)
	}
}

func TestIncrementChallengeClampsAndCompletesOnce(t *testing.T) {
	svc := NewChallengeService(newTestDB(t))

	rec, err := svc.IncrementChallenge("user-1", models.ChallengeTypeTasbih, 499)
	require.NoError(t, err)
	assert.Equal(t, int64(499), rec.WeeklyChallenges[0].Current)
	assert.False(t, rec.WeeklyChallenges[0].Completed)
	assert.Equal(t, int64(0), rec.Points)

	// Crossing the target clamps to it and credits the reward exactly once.
	rec, err = svc.IncrementChallenge("user-1", models.ChallengeTypeTasbih, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(500), rec.WeeklyChallenges[0].Current)
	assert.True(t, rec.WeeklyChallenges[0].Completed)
	assert.Equal(t, time.Now().Format(isoDay), rec.WeeklyChallenges[0].CompletedDate)
	assert.Equal(t, int64(50), rec.Points)
	assert.Equal(t, int64(50), rec.TotalPointsEarned)
	assert.Equal(t, 1, rec.Level)
	assert.Empty(t, rec.Badges)

	// Further increments on a completed challenge change nothing.
	rec, err = svc.IncrementChallenge("user-1", models.ChallengeTypeTasbih, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(500), rec.WeeklyChallenges[0].Current)
	assert.Equal(t, int64(50), rec.TotalPointsEarned)
}

func TestIncrementChallengeUnknownTypeIsNoop(t *testing.T) {
	svc := NewChallengeService(newTestDB(t))

	rec, err := svc.IncrementChallenge("user-1", models.ChallengeType("breathing"), 10)
	require.NoError(t, err)

	assert.Equal(t, int64(0), rec.Points)
	for _, cp := range rec.WeeklyChallenges {
		assert.Equal(t, int64(0), cp.Current)
		assert.False(t, cp.Completed)
	}
}

func TestIncrementChallengeRejectsBadAmount(t *testing.T) {
	svc := NewChallengeService(newTestDB(t))

	_, err := svc.IncrementChallenge("user-1", models.ChallengeTypeTasbih, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.IncrementChallenge("user-1", models.ChallengeTypeTasbih, -3)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestWeekRolloverResetsOnlyWeeklyState(t *testing.T) {
	db := newTestDB(t)
	svc := NewChallengeService(db)

	rec, err := svc.IncrementChallenge("user-1", models.ChallengeTypeAzkar, 5)
	require.NoError(t, err)
	require.Equal(t, int64(60), rec.TotalPointsEarned)

	// Age the record back one week.
	lastMonday := WeekStartFor(time.Now().AddDate(0, 0, -7))
	require.NoError(t, db.Model(&models.ChallengeRecord{}).
		Where("external_user_id = ?", "user-1").
		Update("week_start", lastMonday).Error)

	rolled, err := svc.EnsureRecord("user-1")
	require.NoError(t, err)

	assert.Equal(t, WeekStartFor(time.Now()), rolled.WeekStart)
	for _, cp := range rolled.WeeklyChallenges {
		assert.Equal(t, int64(0), cp.Current)
		assert.False(t, cp.Completed)
	}
	// Lifetime score survives the rollover untouched.
	assert.Equal(t, int64(60), rolled.Points)
	assert.Equal(t, int64(60), rolled.TotalPointsEarned)
	assert.Equal(t, rec.Level, rolled.Level)
	assert.Equal(t, rec.Badges, rolled.Badges)
}

func TestMalformedWeeklyProgressIsRebuilt(t *testing.T) {
	db := newTestDB(t)
	svc := NewChallengeService(db)

	_, err := svc.EnsureRecord("user-1")
	require.NoError(t, err)

	require.NoError(t, db.Exec(
		"UPDATE challenge_records SET weekly_challenges = ? WHERE external_user_id = ?",
		`[{"challenge_id":"stale_id","current":9999}]`, "user-1").Error)

	rec, err := svc.EnsureRecord("user-1")
	require.NoError(t, err)
	require.Len(t, rec.WeeklyChallenges, len(models.WeeklyChallengeDefs))
	assert.Equal(t, models.WeeklyChallengeDefs[0].ID, rec.WeeklyChallenges[0].ChallengeID)
	assert.Equal(t, int64(0), rec.WeeklyChallenges[0].Current)
}

func TestGrantPointsDerivesLevelAndBadges(t *testing.T) {
	svc := NewChallengeService(newTestDB(t))

	rec, err := svc.GrantPoints("user-1", 450, "seasonal event")
	require.NoError(t, err)

	assert.Equal(t, int64(450), rec.Points)
	assert.Equal(t, int64(450), rec.TotalPointsEarned)
	assert.Equal(t, 3, rec.Level) // 450/200 + 1
	assert.Equal(t, []string{"مبتدئ", "مجتهد"}, rec.Badges)

	rec, err = svc.GrantPoints("user-1", 4550, "migration backfill")
	require.NoError(t, err)
	assert.Equal(t, 26, rec.Level)
	assert.Len(t, rec.Badges, len(models.BadgeDefs))

	_, err = svc.GrantPoints("user-1", 0, "nothing")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestSnapshotCurrentAndNextBadge(t *testing.T) {
	svc := NewChallengeService(newTestDB(t))

	snap, err := svc.Snapshot("user-1")
	require.NoError(t, err)
	assert.Nil(t, snap.CurrentBadge)
	require.NotNil(t, snap.NextBadge)
	assert.Equal(t, "مبتدئ", snap.NextBadge.Name)
	assert.Len(t, snap.AllBadges, len(models.BadgeDefs))
	assert.Len(t, snap.Challenges, len(models.WeeklyChallengeDefs))

	_, err = svc.GrantPoints("user-1", 350, "test")
	require.NoError(t, err)

	snap, err = svc.Snapshot("user-1")
	require.NoError(t, err)
	require.NotNil(t, snap.CurrentBadge)
	assert.Equal(t, "مجتهد", snap.CurrentBadge.Name)
	require.NotNil(t, snap.NextBadge)
	assert.Equal(t, "متميز", snap.NextBadge.Name)
	assert.True(t, snap.AllBadges[0].Earned)
	assert.False(t, snap.AllBadges[2].Earned)
}
