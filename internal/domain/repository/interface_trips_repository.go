package repository

import (
	"context"

	"tripweaver/internal/domain/model"
)

// TripsRepository 旅行仕様の永続化
type TripsRepository interface {
	Create(ctx context.Context, trip *model.TripSpec) error
	GetByID(ctx context.Context, tripID string) (*model.TripSpec, error)
	Update(ctx context.Context, trip *model.TripSpec) error
}
