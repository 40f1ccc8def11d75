package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barbershop-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStore persists appointments through gorm.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates or updates the appointments table.
func (s *PostgresStore) Migrate() error {
	return s.db.AutoMigrate(&models.Appointment{})
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]models.Appointment, error) {
	var appointments []models.Appointment
	if err := s.db.WithContext(ctx).Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}
	return appointments, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find appointment %s: %w", id, err)
	}
	return &appointment, nil
}

func (s *PostgresStore) FindByDateRange(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.WithContext(ctx).
		Where("date >= ? AND date < ?", from, to).
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("find appointments by date: %w", err)
	}
	return appointments, nil
}

func (s *PostgresStore) Insert(ctx context.Context, a *models.Appointment) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// UpdateByID applies patch in a single UPDATE ... RETURNING statement.
func (s *PostgresStore) UpdateByID(ctx context.Context, id string, patch models.AppointmentPatch) (*models.Appointment, error) {
	if patch.IsEmpty() {
		return s.FindByID(ctx, id)
	}

	var appointment models.Appointment
	result := s.db.WithContext(ctx).
		Model(&appointment).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(patch.Columns())
	if result.Error != nil {
		return nil, fmt.Errorf("update appointment %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &appointment, nil
}

func (s *PostgresStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Appointment{})
	if result.Error != nil {
		return false, fmt.Errorf("delete appointment %s: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *PostgresStore) DeleteBefore(ctx context.Context, t time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("date < ?", t).Delete(&models.Appointment{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete appointments before %s: %w", t.Format(time.RFC3339), result.Error)
	}
	return result.RowsAffected, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
