package repository

import (
	"context"
	"time"

	"ponto-backend/internal/model"

	"gorm.io/gorm"
)

type TimeRecordRepository interface {
	Create(ctx context.Context, record *model.TimeRecord) error
	// ListByUser returns the user's records in [start, end), newest first.
	// A zero start and end returns everything.
	ListByUser(ctx context.Context, userID uint, start, end time.Time) ([]model.TimeRecord, error)
	// ListBetween returns records in [start, end] in timestamp order.
	ListBetween(ctx context.Context, userID *uint, start, end time.Time) ([]model.TimeRecord, error)
	Recent(ctx context.Context, limit int) ([]model.TimeRecord, error)
	DeleteBetween(ctx context.Context, start, end time.Time, userIDs []uint) (int64, error)
}

type timeRecordRepository struct {
	db *gorm.DB
}

func NewTimeRecordRepository(db *gorm.DB) TimeRecordRepository {
	return &timeRecordRepository{db}
}

func (r *timeRecordRepository) Create(ctx context.Context, record *model.TimeRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *timeRecordRepository) ListByUser(ctx context.Context, userID uint, start, end time.Time) ([]model.TimeRecord, error) {
	var list []model.TimeRecord
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !start.IsZero() {
		q = q.Where("timestamp >= ?", start)
	}
	if !end.IsZero() {
		q = q.Where("timestamp < ?", end)
	}
	err := q.Order("timestamp desc").Find(&list).Error
	return list, err
}

func (r *timeRecordRepository) ListBetween(ctx context.Context, userID *uint, start, end time.Time) ([]model.TimeRecord, error) {
	var list []model.TimeRecord
	q := r.db.WithContext(ctx).Where("timestamp >= ? AND timestamp <= ?", start, end)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	err := q.Order("timestamp asc").Order("id asc").Find(&list).Error
	return list, err
}

func (r *timeRecordRepository) Recent(ctx context.Context, limit int) ([]model.TimeRecord, error) {
	var list []model.TimeRecord
	err := r.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Order("timestamp desc").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// DeleteBetween removes records permanently. An empty userIDs purges every user.
func (r *timeRecordRepository) DeleteBetween(ctx context.Context, start, end time.Time, userIDs []uint) (int64, error) {
	q := r.db.WithContext(ctx).Unscoped().Where("timestamp >= ? AND timestamp <= ?", start, end)
	if len(userIDs) > 0 {
		q = q.Where("user_id IN ?", userIDs)
	}
	res := q.Delete(&model.TimeRecord{})
	return res.RowsAffected, res.Error
}
