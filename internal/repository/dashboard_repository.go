package repository

import (
	"context"
	"time"

	"ponto-backend/internal/model"

	"gorm.io/gorm"
)

type DashboardStats struct {
	ActiveEmployees  int64 `json:"active_employees"`
	TodayEntries     int64 `json:"today_entries"`
	TodayExits       int64 `json:"today_exits"`
	CurrentlyWorking int64 `json:"currently_working"`
}

type DashboardRepository interface {
	GetStats(ctx context.Context, day time.Time) (*DashboardStats, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db}
}

// GetStats counts activity for the UTC day containing day.
func (r *dashboardRepository) GetStats(ctx context.Context, day time.Time) (*DashboardStats, error) {
	db := r.db.WithContext(ctx)
	stats := &DashboardStats{}

	y, m, d := day.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	// 1. Active employees
	if err := db.Model(&model.User{}).
		Where("role = ? AND is_active = ?", model.RoleEmployee, true).
		Count(&stats.ActiveEmployees).Error; err != nil {
		return nil, err
	}

	// 2. Today's punches, oldest first
	var today []model.TimeRecord
	if err := db.Where("timestamp >= ? AND timestamp < ?", start, end).
		Order("timestamp asc").Order("id asc").
		Find(&today).Error; err != nil {
		return nil, err
	}

	// 3. Entries, exits and who is still in
	latest := make(map[uint]string)
	for _, rec := range today {
		switch rec.Type {
		case model.PunchEntry:
			stats.TodayEntries++
		case model.PunchExit:
			stats.TodayExits++
		}
		latest[rec.UserID] = rec.Type
	}
	for _, kind := range latest {
		if kind == model.PunchEntry {
			stats.CurrentlyWorking++
		}
	}
	return stats, nil
}
