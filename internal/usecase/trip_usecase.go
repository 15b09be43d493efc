package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"tripweaver/internal/domain/model"
	"tripweaver/internal/domain/repository"
)

type TripUseCase interface {
	// CreateTrip は新しい旅行仕様を作成する
	CreateTrip(ctx context.Context, req *model.TripCreateRequest) (*model.TripSpec, error)

	// GetTrip はIDで旅行仕様を取得する
	GetTrip(ctx context.Context, tripID string) (*model.TripSpec, error)

	// UpdateTrip は旅行仕様を部分更新する
	UpdateTrip(ctx context.Context, tripID string, req *model.TripUpdateRequest) (*model.TripSpec, error)
}

// tripUseCaseImpl はTripUseCaseの実装
type tripUseCaseImpl struct {
	tripsRepo repository.TripsRepository
}

// NewTripUseCase は新しいTripUseCaseインスタンスを作成
func NewTripUseCase(tripsRepo repository.TripsRepository) TripUseCase {
	return &tripUseCaseImpl{tripsRepo: tripsRepo}
}

// CreateTrip は新しい旅行仕様を作成する
// ペース・予算・生活リズムが未指定の場合はデフォルト値を補完する
func (u *tripUseCaseImpl) CreateTrip(ctx context.Context, req *model.TripCreateRequest) (*model.TripSpec, error) {
	now := time.Now()
	trip := &model.TripSpec{
		ID:            uuid.New().String(),
		City:          req.City,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		NumTravelers:  req.NumTravelers,
		Pace:          req.Pace,
		Budget:        req.Budget,
		Interests:     req.Interests,
		HotelLocation: req.HotelLocation,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if trip.NumTravelers <= 0 {
		trip.NumTravelers = 1
	}
	if trip.Pace == "" {
		trip.Pace = model.PaceModerate
	}
	if trip.Budget == "" {
		trip.Budget = model.BudgetMedium
	}
	if req.DailyRoutine != nil {
		trip.DailyRoutine = *req.DailyRoutine
	} else {
		trip.DailyRoutine = model.DefaultDailyRoutine()
	}

	if err := u.tripsRepo.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("旅行の作成に失敗: %w", err)
	}

	log.Printf("✅ 旅行を作成しました (trip: %s, city: %s, %s〜%s)", trip.ID, trip.City, trip.StartDate, trip.EndDate)
	return trip, nil
}

// GetTrip はIDで旅行仕様を取得する
func (u *tripUseCaseImpl) GetTrip(ctx context.Context, tripID string) (*model.TripSpec, error) {
	return u.tripsRepo.GetByID(ctx, tripID)
}

// UpdateTrip は旅行仕様を部分更新する（指定されたフィールドのみ上書き）
func (u *tripUseCaseImpl) UpdateTrip(ctx context.Context, tripID string, req *model.TripUpdateRequest) (*model.TripSpec, error) {
	trip, err := u.tripsRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if req.City != nil {
		trip.City = *req.City
	}
	if req.StartDate != nil {
		trip.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		trip.EndDate = *req.EndDate
	}
	if req.NumTravelers != nil {
		trip.NumTravelers = *req.NumTravelers
	}
	if req.Pace != nil {
		trip.Pace = *req.Pace
	}
	if req.Budget != nil {
		trip.Budget = *req.Budget
	}
	if req.Interests != nil {
		trip.Interests = req.Interests
	}
	if req.DailyRoutine != nil {
		trip.DailyRoutine = *req.DailyRoutine
	}
	if req.HotelLocation != nil {
		trip.HotelLocation = req.HotelLocation
	}
	trip.UpdatedAt = time.Now()

	if err := u.tripsRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	log.Printf("✅ 旅行を更新しました (trip: %s)", tripID)
	return trip, nil
}
