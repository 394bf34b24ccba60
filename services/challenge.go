package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"noor-companion-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const isoDay = "2006-01-02"

// LevelStep: lifetime points needed per level (level = total/200 + 1)
const LevelStep = 200

var ErrInvalidAmount = errors.New("amount must be at least 1")

// WeekStartFor returns the Monday of the week containing t, as an ISO day.
// Sunday counts as the last day of the previous challenge week.
func WeekStartFor(t time.Time) string {
	back := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		back = 6
	}
	return t.AddDate(0, 0, -back).Format(isoDay)
}

func levelForPoints(total int64) int {
	return int(total/LevelStep) + 1
}

func badgesForPoints(total int64) []string {
	badges := []string{}
	for _, b := range models.BadgeDefs {
		if total >= b.Points {
			badges = append(badges, b.Name)
		}
	}
	return badges
}

func defaultWeeklyProgress() []models.ChallengeProgress {
	progress := make([]models.ChallengeProgress, len(models.WeeklyChallengeDefs))
	for i, def := range models.WeeklyChallengeDefs {
		progress[i] = models.ChallengeProgress{ChallengeID: def.ID}
	}
	return progress
}

// weeklyProgressValid reports whether a persisted weekly list still lines up
// with the challenge definitions. A stale or hand-edited document fails here
// and gets rebuilt instead of trusted.
func weeklyProgressValid(list []models.ChallengeProgress) bool {
	if len(list) != len(models.WeeklyChallengeDefs) {
		return false
	}
	for i, def := range models.WeeklyChallengeDefs {
		cp := list[i]
		if cp.ChallengeID != def.ID || cp.Current < 0 || cp.Current > def.Target {
			return false
		}
	}
	return true
}

type ChallengeService struct {
	DB   *gorm.DB
	Sync *PointsSyncClient // optional, best-effort remote mirror
}

func NewChallengeService(db *gorm.DB) *ChallengeService {
	return &ChallengeService{DB: db}
}

// EnsureRecord loads the user's challenge record, creating the default one on
// first use and rolling the weekly list over when the stored week is no
// longer the current one. Rollover touches only WeekStart and
// WeeklyChallenges; points, level and badges pass through unchanged.
func (s *ChallengeService) EnsureRecord(externalUserID string) (*models.ChallengeRecord, error) {
	return s.ensureRecord(s.DB, externalUserID)
}

func (s *ChallengeService) ensureRecord(tx *gorm.DB, externalUserID string) (*models.ChallengeRecord, error) {
	currentWeek := WeekStartFor(time.Now())

	var rec models.ChallengeRecord
	err := tx.Where("external_user_id = ?", externalUserID).First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		rec = models.ChallengeRecord{
			ID:               uuid.NewString(),
			ExternalUserID:   externalUserID,
			WeekStart:        currentWeek,
			Level:            1,
			WeeklyChallenges: defaultWeeklyProgress(),
			Badges:           []string{},
		}
		if err := tx.Create(&rec).Error; err != nil {
			return nil, err
		}
		return &rec, nil
	}
	if err != nil {
		return nil, err
	}

	dirty := false
	if !weeklyProgressValid(rec.WeeklyChallenges) {
		log.Printf("⚠️ [CHALLENGE] malformed weekly progress for %s — rebuilding defaults", externalUserID)
		rec.WeeklyChallenges = defaultWeeklyProgress()
		dirty = true
	}
	if rec.WeekStart != currentWeek {
		rec.WeekStart = currentWeek
		rec.WeeklyChallenges = defaultWeeklyProgress()
		dirty = true
	}
	if dirty {
		if err := tx.Save(&rec).Error; err != nil {
			return nil, err
		}
	}
	return &rec, nil
}

// IncrementChallenge adds amount to every not-yet-completed challenge of the
// given type, clamped to each challenge's target. Challenges that newly reach
// their target are marked completed exactly once and their rewards credited
// to Points and TotalPointsEarned; level and badges are re-derived from the
// new total. An unknown type matches nothing and is a no-op.
func (s *ChallengeService) IncrementChallenge(externalUserID string, kind models.ChallengeType, amount int64) (*models.ChallengeRecord, error) {
	if amount < 1 {
		return nil, ErrInvalidAmount
	}

	var updated *models.ChallengeRecord
	var pointsEarned int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		rec, err := s.ensureRecord(tx, externalUserID)
		if err != nil {
			return err
		}

		for i, def := range models.WeeklyChallengeDefs {
			cp := &rec.WeeklyChallenges[i]
			if def.Type != kind || cp.Completed {
				continue
			}
			cp.Current += amount
			if cp.Current >= def.Target {
				cp.Current = def.Target
				cp.Completed = true
				cp.CompletedDate = time.Now().Format(isoDay)
				pointsEarned += def.Reward
			}
		}

		if pointsEarned > 0 {
			rec.Points += pointsEarned
			rec.TotalPointsEarned += pointsEarned
		}
		rec.Level = levelForPoints(rec.TotalPointsEarned)
		rec.Badges = badgesForPoints(rec.TotalPointsEarned)

		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	if pointsEarned > 0 {
		log.Printf("🏆 [CHALLENGE] %s earned %d point(s) → total=%d, level=%d",
			externalUserID, pointsEarned, updated.TotalPointsEarned, updated.Level)
		if s.Sync != nil {
			go s.Sync.CreditPoints(externalUserID, pointsEarned)
		}
	}
	return updated, nil
}

// GrantPoints credits points directly without touching weekly progress
// (admin path). Level and badges are re-derived like any other mutation.
func (s *ChallengeService) GrantPoints(externalUserID string, points int64, reason string) (*models.ChallengeRecord, error) {
	if points < 1 {
		return nil, ErrInvalidAmount
	}

	var updated *models.ChallengeRecord
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		rec, err := s.ensureRecord(tx, externalUserID)
		if err != nil {
			return err
		}
		rec.Points += points
		rec.TotalPointsEarned += points
		rec.Level = levelForPoints(rec.TotalPointsEarned)
		rec.Badges = badgesForPoints(rec.TotalPointsEarned)
		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("🎁 [CHALLENGE] granted %d point(s) to %s (reason: %s)", points, externalUserID, reason)
	return updated, nil
}

// BadgeStatus pairs a badge definition with whether the user has earned it.
type BadgeStatus struct {
	models.Badge
	Earned bool `json:"earned"`
}

// ChallengeSnapshot is the full engine state handed to display components.
type ChallengeSnapshot struct {
	WeekStart         string                     `json:"week_start"`
	Challenges        []models.Challenge         `json:"challenges"`
	Progress          []models.ChallengeProgress `json:"progress"`
	Points            int64                      `json:"points"`
	TotalPointsEarned int64                      `json:"total_points_earned"`
	Level             int                        `json:"level"`
	Badges            []string                   `json:"badges"`
	CurrentBadge      *models.Badge              `json:"current_badge"` // highest threshold already earned
	NextBadge         *models.Badge              `json:"next_badge"`    // lowest threshold not yet earned
	AllBadges         []BadgeStatus              `json:"all_badges"`
}

// Snapshot returns definitions plus the user's current state. Level and the
// badge list are re-derived from TotalPointsEarned on every read so the
// invariants hold even if storage was edited out-of-band.
func (s *ChallengeService) Snapshot(externalUserID string) (*ChallengeSnapshot, error) {
	rec, err := s.EnsureRecord(externalUserID)
	if err != nil {
		return nil, fmt.Errorf("load challenge record: %w", err)
	}

	snap := &ChallengeSnapshot{
		WeekStart:         rec.WeekStart,
		Challenges:        models.WeeklyChallengeDefs,
		Progress:          rec.WeeklyChallenges,
		Points:            rec.Points,
		TotalPointsEarned: rec.TotalPointsEarned,
		Level:             levelForPoints(rec.TotalPointsEarned),
		Badges:            badgesForPoints(rec.TotalPointsEarned),
		AllBadges:         make([]BadgeStatus, len(models.BadgeDefs)),
	}
	for i, b := range models.BadgeDefs {
		earned := rec.TotalPointsEarned >= b.Points
		snap.AllBadges[i] = BadgeStatus{Badge: b, Earned: earned}
		if earned {
			badge := b
			snap.CurrentBadge = &badge
		} else if snap.NextBadge == nil {
			badge := b
			snap.NextBadge = &badge
		}
	}
	return snap, nil
}
