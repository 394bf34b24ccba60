package services

import (
	"errors"

	"noor-companion-service/models"

	"gorm.io/gorm"
)

var ErrInvalidSortKey = errors.New("unknown leaderboard sort key")

// leaderboardSorts whitelists the counter columns a client may order by.
var leaderboardSorts = map[string]string{
	"total_points":     "total_points",
	"total_khatmas":    "total_khatmas",
	"total_pages_read": "total_pages_read",
	"streak_days":      "streak_days",
}

type LeaderboardService struct {
	DB *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{DB: db}
}

// Top returns up to limit profile mirrors ordered by the given counter,
// highest first. Default sort is total_points, default and maximum limit 50.
func (s *LeaderboardService) Top(sortBy string, limit int) ([]models.ProfileMirror, error) {
	if sortBy == "" {
		sortBy = "total_points"
	}
	column, ok := leaderboardSorts[sortBy]
	if !ok {
		return nil, ErrInvalidSortKey
	}
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	var leaders []models.ProfileMirror
	err := s.DB.Order(column + " DESC").
		Limit(limit).
		Find(&leaders).Error
	return leaders, err
}

// Rank returns the user's 1-based position under the given sort, or 0 when
// the user has no mirror row yet.
func (s *LeaderboardService) Rank(externalUserID, sortBy string) (int64, error) {
	if sortBy == "" {
		sortBy = "total_points"
	}
	column, ok := leaderboardSorts[sortBy]
	if !ok {
		return 0, ErrInvalidSortKey
	}

	var me models.ProfileMirror
	err := s.DB.Where("external_user_id = ?", externalUserID).First(&me).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var ahead int64
	values := map[string]int64{
		"total_points":     me.TotalPoints,
		"total_khatmas":    me.TotalKhatmas,
		"total_pages_read": me.TotalPagesRead,
		"streak_days":      me.StreakDays,
	}
	err = s.DB.Model(&models.ProfileMirror{}).
		Where(column+" > ?", values[sortBy]).
		Count(&ahead).Error
	if err != nil {
		return 0, err
	}
	return ahead + 1, nil
}
