package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"travelguide/internal/models/db_models"
)

type TripRepository interface {
	Insert(ctx context.Context, trip *db_models.Trip) error
	FindByIdAndUser(ctx context.Context, id, userID uuid.UUID) (*db_models.Trip, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Trip, error)
	Save(ctx context.Context, trip *db_models.Trip) error
	// DeleteWithItineraries reports false when the trip does not exist for userID.
	DeleteWithItineraries(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) Insert(ctx context.Context, trip *db_models.Trip) error {
	return r.db.WithContext(ctx).Omit("Itineraries").Create(trip).Error
}

func (r *tripRepository) FindByIdAndUser(ctx context.Context, id, userID uuid.UUID) (*db_models.Trip, error) {
	var trip db_models.Trip
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&trip).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &trip, nil
}

func (r *tripRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Trip, error) {
	var trips []db_models.Trip
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *tripRepository) Save(ctx context.Context, trip *db_models.Trip) error {
	return r.db.WithContext(ctx).Omit("Itineraries").Save(trip).Error
}

func (r *tripRepository) DeleteWithItineraries(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&db_models.Trip{}).
			Where("id = ? AND user_id = ?", id, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		found = true

		if err := tx.Where("trip_id = ?", id).Delete(&db_models.Itinerary{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).Delete(&db_models.Trip{}).Error
	})
	return found, err
}
