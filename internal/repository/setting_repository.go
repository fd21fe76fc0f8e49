package repository

import (
	"context"
	"time"

	"ponto-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository interface {
	Get(ctx context.Context, key string) (*model.Setting, error)
	Set(ctx context.Context, key, value string) (*model.Setting, error)
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db}
}

func (r *settingRepository) Get(ctx context.Context, key string) (*model.Setting, error) {
	var setting model.Setting
	if err := r.db.WithContext(ctx).Where(&model.Setting{Key: key}).First(&setting).Error; err != nil {
		return nil, notFound(err)
	}
	return &setting, nil
}

// Set upserts the value; the last write wins.
func (r *settingRepository) Set(ctx context.Context, key, value string) (*model.Setting, error) {
	setting := model.Setting{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, key)
}
