package repository

import (
	"context"
	"errors"
	"time"

	"ponto-backend/internal/model"
	"ponto-backend/internal/report"

	"gorm.io/gorm"
)

// ReportStore serves the report pipeline from the GORM repositories.
type ReportStore struct {
	db       *gorm.DB
	records  TimeRecordRepository
	settings SettingRepository
}

func NewReportStore(db *gorm.DB) *ReportStore {
	return &ReportStore{
		db:       db,
		records:  NewTimeRecordRepository(db),
		settings: NewSettingRepository(db),
	}
}

func (s *ReportStore) QueryPunchEvents(ctx context.Context, employeeID *uint, start, end time.Time) ([]report.PunchEvent, error) {
	records, err := s.records.ListBetween(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	return PunchEvents(records), nil
}

// GetEmployee also finds soft deleted users so old records keep their owner.
func (s *ReportStore) GetEmployee(ctx context.Context, id uint) (*report.Employee, error) {
	var user model.User
	err := s.db.WithContext(ctx).Unscoped().First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report.Employee{ID: user.ID, DisplayName: user.DisplayName(), Email: user.Email}, nil
}

func (s *ReportStore) Get(ctx context.Context, key string) (string, bool, error) {
	setting, err := s.settings.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return setting.Value, true, nil
}

// PunchEvents converts stored records into report events.
func PunchEvents(records []model.TimeRecord) []report.PunchEvent {
	events := make([]report.PunchEvent, 0, len(records))
	for _, rec := range records {
		ev := report.PunchEvent{
			ID:         rec.ID,
			EmployeeID: rec.UserID,
			Kind:       report.PunchKind(rec.Type),
			Timestamp:  rec.Timestamp,
			Latitude:   rec.Latitude,
			Longitude:  rec.Longitude,
		}
		if rec.Location != nil {
			ev.Location = *rec.Location
		}
		events = append(events, ev)
	}
	return events
}
