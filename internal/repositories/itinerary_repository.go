package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"travelguide/internal/models/db_models"
)

type ItineraryRepository interface {
	// CreateNextVersion assigns itinerary.Version as the trip's next version and inserts it.
	CreateNextVersion(ctx context.Context, itinerary *db_models.Itinerary) error
	FindLatestByTrip(ctx context.Context, tripID uuid.UUID) (*db_models.Itinerary, error)
	Save(ctx context.Context, itinerary *db_models.Itinerary) error
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

func (r *itineraryRepository) CreateNextVersion(ctx context.Context, itinerary *db_models.Itinerary) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Concurrent writers for the same trip queue up on this row lock.
		var trip db_models.Trip
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&trip, "id = ?", itinerary.TripID).Error; err != nil {
			return err
		}

		var latest int
		if err := tx.Model(&db_models.Itinerary{}).
			Where("trip_id = ?", itinerary.TripID).
			Select("COALESCE(MAX(version), 0)").
			Scan(&latest).Error; err != nil {
			return err
		}

		itinerary.Version = latest + 1
		return tx.Create(itinerary).Error
	})
}

func (r *itineraryRepository) FindLatestByTrip(ctx context.Context, tripID uuid.UUID) (*db_models.Itinerary, error) {
	var itinerary db_models.Itinerary
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("version DESC").
		First(&itinerary).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &itinerary, nil
}

func (r *itineraryRepository) Save(ctx context.Context, itinerary *db_models.Itinerary) error {
	return r.db.WithContext(ctx).Save(itinerary).Error
}
