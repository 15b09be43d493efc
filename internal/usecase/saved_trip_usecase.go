package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"tripweaver/internal/domain/model"
	"tripweaver/internal/domain/repository"
)

// savedTripTTLDays スナップショットの保持日数（Firestore TTLポリシーで自動削除）
const savedTripTTLDays = 90

type SavedTripUseCase interface {
	// SaveItinerarySnapshot は現在の旅程をスナップショットとして保存する
	SaveItinerarySnapshot(ctx context.Context, tripID, title string) (*model.SavedTrip, error)

	// ListSavedTrips は保存済みスナップショットを新しい順に取得する
	ListSavedTrips(ctx context.Context, limit int) ([]*model.SavedTrip, error)

	// GetSavedTrip は指定されたスナップショットを取得する
	GetSavedTrip(ctx context.Context, savedTripID string) (*model.SavedTrip, error)

	// DeleteSavedTrip は指定されたスナップショットを削除する
	DeleteSavedTrip(ctx context.Context, savedTripID string) error
}

// savedTripUseCaseImpl はSavedTripUseCaseの実装
type savedTripUseCaseImpl struct {
	tripsRepo      repository.TripsRepository
	plansRepo      repository.PlansRepository
	savedTripsRepo repository.SavedTripsRepository
}

// NewSavedTripUseCase は新しいSavedTripUseCaseインスタンスを作成
func NewSavedTripUseCase(
	tripsRepo repository.TripsRepository,
	plansRepo repository.PlansRepository,
	savedTripsRepo repository.SavedTripsRepository,
) SavedTripUseCase {
	return &savedTripUseCaseImpl{
		tripsRepo:      tripsRepo,
		plansRepo:      plansRepo,
		savedTripsRepo: savedTripsRepo,
	}
}

// SaveItinerarySnapshot は現在の旅程をスナップショットとして保存する
// 旅程が未生成の場合は model.ErrItineraryNotFound を返す
func (u *savedTripUseCaseImpl) SaveItinerarySnapshot(ctx context.Context, tripID, title string) (*model.SavedTrip, error) {
	trip, err := u.tripsRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	itinerary, _, err := u.plansRepo.GetItinerary(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = fmt.Sprintf("%s旅行 (%s〜%s)", trip.City, trip.StartDate, trip.EndDate)
	}

	exists, err := u.savedTripsRepo.ExistsForTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if exists {
		log.Printf("⚠️ 同じ旅行のスナップショットが既に存在します。新しいスナップショットを追加保存します (trip: %s)", tripID)
	}

	snapshot := &model.SavedTrip{
		TripID:    tripID,
		Title:     title,
		City:      trip.City,
		StartDate: trip.StartDate,
		EndDate:   trip.EndDate,
		Days:      itinerary.Days,
		SavedAt:   time.Now(),
	}
	return u.savedTripsRepo.Save(ctx, snapshot, savedTripTTLDays)
}

// ListSavedTrips は保存済みスナップショットを新しい順に取得する
func (u *savedTripUseCaseImpl) ListSavedTrips(ctx context.Context, limit int) ([]*model.SavedTrip, error) {
	return u.savedTripsRepo.List(ctx, limit)
}

// GetSavedTrip は指定されたスナップショットを取得する
func (u *savedTripUseCaseImpl) GetSavedTrip(ctx context.Context, savedTripID string) (*model.SavedTrip, error) {
	return u.savedTripsRepo.GetByID(ctx, savedTripID)
}

// DeleteSavedTrip は指定されたスナップショットを削除する
func (u *savedTripUseCaseImpl) DeleteSavedTrip(ctx context.Context, savedTripID string) error {
	if _, err := u.savedTripsRepo.GetByID(ctx, savedTripID); err != nil {
		return err
	}
	return u.savedTripsRepo.Delete(ctx, savedTripID)
}
