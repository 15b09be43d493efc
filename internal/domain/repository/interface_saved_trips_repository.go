package repository

import (
	"context"

	"tripweaver/internal/domain/model"
)

// SavedTripsRepository 確定済み旅程のスナップショット保存
type SavedTripsRepository interface {
	Save(ctx context.Context, savedTrip *model.SavedTrip, ttlDays int) (*model.SavedTrip, error)
	List(ctx context.Context, limit int) ([]*model.SavedTrip, error)
	GetByID(ctx context.Context, savedTripID string) (*model.SavedTrip, error)
	Delete(ctx context.Context, savedTripID string) error
	ExistsForTrip(ctx context.Context, tripID string) (bool, error)
}
