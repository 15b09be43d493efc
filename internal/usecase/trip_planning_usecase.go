package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"tripweaver/internal/domain/model"
	"tripweaver/internal/domain/repository"
	"tripweaver/internal/domain/service"
)

type TripPlanningUseCase interface {
	// GenerateMacroPlan は旅行の日別スケルトンを生成して保存する
	GenerateMacroPlan(ctx context.Context, tripID string) (*model.MacroPlanResponse, error)

	// GetMacroPlan は保存済みのマクロプランを取得する
	GetMacroPlan(ctx context.Context, tripID string) (*model.MacroPlanResponse, error)

	// GeneratePOIPlan はマクロプランの各ブロックにPOI候補を割り当てて保存する
	GeneratePOIPlan(ctx context.Context, tripID string) (*model.POIPlanResponse, error)

	// GetPOIPlan は保存済みのPOIプランを取得する
	GetPOIPlan(ctx context.Context, tripID string) (*model.POIPlanResponse, error)

	// GenerateItinerary はPOIプランから最終旅程を生成して保存する（既存の旅程は全置換）
	GenerateItinerary(ctx context.Context, tripID string) (*model.ItineraryResponse, error)

	// GetItinerary は保存済みの旅程を取得する
	GetItinerary(ctx context.Context, tripID string) (*model.ItineraryResponse, error)

	// PlanTrip は3ステージのパイプラインをまとめて実行する
	PlanTrip(ctx context.Context, tripID string) (*model.ItineraryResponse, error)
}

// tripPlanningUseCaseImpl はTripPlanningUseCaseの実装
type tripPlanningUseCaseImpl struct {
	tripsRepo      repository.TripsRepository
	plansRepo      repository.PlansRepository
	macroPlanSvc   *service.MacroPlanService
	poiPlanSvc     *service.POIPlanService
	routeOptimizer *service.RouteOptimizerService
}

// NewTripPlanningUseCase は新しいTripPlanningUseCaseインスタンスを作成
func NewTripPlanningUseCase(
	tripsRepo repository.TripsRepository,
	plansRepo repository.PlansRepository,
	macroPlanSvc *service.MacroPlanService,
	poiPlanSvc *service.POIPlanService,
	routeOptimizer *service.RouteOptimizerService,
) TripPlanningUseCase {
	return &tripPlanningUseCaseImpl{
		tripsRepo:      tripsRepo,
		plansRepo:      plansRepo,
		macroPlanSvc:   macroPlanSvc,
		poiPlanSvc:     poiPlanSvc,
		routeOptimizer: routeOptimizer,
	}
}

// GenerateMacroPlan は旅行の日別スケルトンを生成して保存する
func (u *tripPlanningUseCaseImpl) GenerateMacroPlan(ctx context.Context, tripID string) (*model.MacroPlanResponse, error) {
	log.Printf("🚀 マクロプラン生成開始 (trip: %s)", tripID)

	trip, err := u.tripsRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	plan, err := u.macroPlanSvc.Generate(ctx, trip)
	if err != nil {
		return nil, fmt.Errorf("マクロプランの生成に失敗: %w", err)
	}

	createdAt := time.Now()
	if err := u.plansRepo.SaveMacroPlan(ctx, tripID, plan, createdAt); err != nil {
		return nil, fmt.Errorf("マクロプランの保存に失敗: %w", err)
	}

	log.Printf("✅ マクロプラン生成完了 (trip: %s, days: %d)", tripID, len(plan.Days))
	return &model.MacroPlanResponse{TripID: tripID, Days: plan.Days, CreatedAt: createdAt}, nil
}

// GetMacroPlan は保存済みのマクロプランを取得する
func (u *tripPlanningUseCaseImpl) GetMacroPlan(ctx context.Context, tripID string) (*model.MacroPlanResponse, error) {
	plan, createdAt, err := u.plansRepo.GetMacroPlan(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return &model.MacroPlanResponse{TripID: tripID, Days: plan.Days, CreatedAt: createdAt}, nil
}

// GeneratePOIPlan はマクロプランの各ブロックにPOI候補を割り当てて保存する
// マクロプランが未生成の場合は model.ErrMacroPlanNotFound を返す
func (u *tripPlanningUseCaseImpl) GeneratePOIPlan(ctx context.Context, tripID string) (*model.POIPlanResponse, error) {
	log.Printf("🚀 POIプラン生成開始 (trip: %s)", tripID)

	trip, err := u.tripsRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	macroPlan, _, err := u.plansRepo.GetMacroPlan(ctx, tripID)
	if err != nil {
		return nil, err
	}

	plan, err := u.poiPlanSvc.Generate(ctx, trip, macroPlan)
	if err != nil {
		return nil, fmt.Errorf("POIプランの生成に失敗: %w", err)
	}

	createdAt := time.Now()
	if err := u.plansRepo.SavePOIPlan(ctx, tripID, plan, createdAt); err != nil {
		return nil, fmt.Errorf("POIプランの保存に失敗: %w", err)
	}

	log.Printf("✅ POIプラン生成完了 (trip: %s, blocks: %d)", tripID, len(plan.Blocks))
	return &model.POIPlanResponse{TripID: tripID, Blocks: plan.Blocks, CreatedAt: createdAt}, nil
}

// GetPOIPlan は保存済みのPOIプランを取得する
func (u *tripPlanningUseCaseImpl) GetPOIPlan(ctx context.Context, tripID string) (*model.POIPlanResponse, error) {
	plan, createdAt, err := u.plansRepo.GetPOIPlan(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return &model.POIPlanResponse{TripID: tripID, Blocks: plan.Blocks, CreatedAt: createdAt}, nil
}

// GenerateItinerary はPOIプランから最終旅程を生成して保存する
// マクロプラン・POIプランが未生成の場合はそれぞれのNotFoundエラーを返す
func (u *tripPlanningUseCaseImpl) GenerateItinerary(ctx context.Context, tripID string) (*model.ItineraryResponse, error) {
	log.Printf("🚀 旅程生成開始 (trip: %s)", tripID)

	trip, err := u.tripsRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	macroPlan, _, err := u.plansRepo.GetMacroPlan(ctx, tripID)
	if err != nil {
		return nil, err
	}

	poiPlan, _, err := u.plansRepo.GetPOIPlan(ctx, tripID)
	if err != nil {
		return nil, err
	}

	itinerary, err := u.routeOptimizer.Generate(ctx, trip, macroPlan, poiPlan)
	if err != nil {
		return nil, fmt.Errorf("旅程の生成に失敗: %w", err)
	}

	createdAt := time.Now()
	if err := u.plansRepo.SaveItinerary(ctx, tripID, itinerary, createdAt); err != nil {
		return nil, fmt.Errorf("旅程の保存に失敗: %w", err)
	}

	log.Printf("🎉 旅程生成完了 (trip: %s, days: %d)", tripID, len(itinerary.Days))
	return &model.ItineraryResponse{TripID: tripID, Days: itinerary.Days, CreatedAt: createdAt}, nil
}

// GetItinerary は保存済みの旅程を取得する
func (u *tripPlanningUseCaseImpl) GetItinerary(ctx context.Context, tripID string) (*model.ItineraryResponse, error) {
	itinerary, createdAt, err := u.plansRepo.GetItinerary(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return &model.ItineraryResponse{TripID: tripID, Days: itinerary.Days, CreatedAt: createdAt}, nil
}

// PlanTrip はマクロプラン→POIプラン→旅程の3ステージをまとめて実行する
func (u *tripPlanningUseCaseImpl) PlanTrip(ctx context.Context, tripID string) (*model.ItineraryResponse, error) {
	log.Printf("🚀 プランニングパイプライン開始 (trip: %s)", tripID)

	if _, err := u.GenerateMacroPlan(ctx, tripID); err != nil {
		return nil, err
	}
	if _, err := u.GeneratePOIPlan(ctx, tripID); err != nil {
		return nil, err
	}
	return u.GenerateItinerary(ctx, tripID)
}
