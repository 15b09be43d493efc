package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripweaver/internal/domain/model"
	"tripweaver/internal/domain/service"
)

// fakeTripsRepo メモリ内の旅行リポジトリ
type fakeTripsRepo struct {
	trips map[string]*model.TripSpec
}

func newFakeTripsRepo() *fakeTripsRepo {
	return &fakeTripsRepo{trips: make(map[string]*model.TripSpec)}
}

func (r *fakeTripsRepo) Create(ctx context.Context, trip *model.TripSpec) error {
	r.trips[trip.ID] = trip
	return nil
}

func (r *fakeTripsRepo) GetByID(ctx context.Context, tripID string) (*model.TripSpec, error) {
	trip, ok := r.trips[tripID]
	if !ok {
		return nil, model.ErrTripNotFound
	}
	return trip, nil
}

func (r *fakeTripsRepo) Update(ctx context.Context, trip *model.TripSpec) error {
	if _, ok := r.trips[trip.ID]; !ok {
		return model.ErrTripNotFound
	}
	r.trips[trip.ID] = trip
	return nil
}

// fakePlansRepo メモリ内のプランリポジトリ
type fakePlansRepo struct {
	macroPlans  map[string]*model.MacroPlan
	poiPlans    map[string]*model.POIPlan
	itineraries map[string]*model.Itinerary
}

func newFakePlansRepo() *fakePlansRepo {
	return &fakePlansRepo{
		macroPlans:  make(map[string]*model.MacroPlan),
		poiPlans:    make(map[string]*model.POIPlan),
		itineraries: make(map[string]*model.Itinerary),
	}
}

func (r *fakePlansRepo) SaveMacroPlan(ctx context.Context, tripID string, plan *model.MacroPlan, createdAt time.Time) error {
	r.macroPlans[tripID] = plan
	return nil
}

func (r *fakePlansRepo) GetMacroPlan(ctx context.Context, tripID string) (*model.MacroPlan, time.Time, error) {
	plan, ok := r.macroPlans[tripID]
	if !ok {
		return nil, time.Time{}, model.ErrMacroPlanNotFound
	}
	return plan, time.Now(), nil
}

func (r *fakePlansRepo) SavePOIPlan(ctx context.Context, tripID string, plan *model.POIPlan, createdAt time.Time) error {
	r.poiPlans[tripID] = plan
	return nil
}

func (r *fakePlansRepo) GetPOIPlan(ctx context.Context, tripID string) (*model.POIPlan, time.Time, error) {
	plan, ok := r.poiPlans[tripID]
	if !ok {
		return nil, time.Time{}, model.ErrPOIPlanNotFound
	}
	return plan, time.Now(), nil
}

func (r *fakePlansRepo) SaveItinerary(ctx context.Context, tripID string, itinerary *model.Itinerary, createdAt time.Time) error {
	r.itineraries[tripID] = itinerary
	return nil
}

func (r *fakePlansRepo) GetItinerary(ctx context.Context, tripID string) (*model.Itinerary, time.Time, error) {
	itinerary, ok := r.itineraries[tripID]
	if !ok {
		return nil, time.Time{}, model.ErrItineraryNotFound
	}
	return itinerary, time.Now(), nil
}

// fakePOISource 固定の候補を返す候補ソース
type fakePOISource struct {
	candidates []model.POICandidate
}

func (s *fakePOISource) SearchCandidates(ctx context.Context, query service.CandidateQuery) ([]model.POICandidate, error) {
	result := append([]model.POICandidate(nil), s.candidates...)
	if query.Limit > 0 && len(result) > query.Limit {
		result = result[:query.Limit]
	}
	return result, nil
}

func setupPlanningUseCase(t *testing.T) (TripPlanningUseCase, *fakeTripsRepo) {
	t.Helper()

	tripsRepo := newFakeTripsRepo()
	plansRepo := newFakePlansRepo()

	rating := 4.5
	lat, lon := 35.0116, 135.7681
	poiSource := &fakePOISource{candidates: []model.POICandidate{
		{ID: "p1", Name: "テスト店", Category: "cafe", Rating: &rating, Lat: &lat, Lon: &lon, RankScore: 23.0},
	}}

	return NewTripPlanningUseCase(
		tripsRepo,
		plansRepo,
		service.NewMacroPlanService(nil),
		service.NewPOIPlanService(poiSource),
		service.NewRouteOptimizerService(service.NewSimpleHeuristicEstimator()),
	), tripsRepo
}

func seedTrip(r *fakeTripsRepo) string {
	trip := &model.TripSpec{
		ID:           "trip-1",
		City:         "Kyoto",
		StartDate:    "2026-09-01",
		EndDate:      "2026-09-02",
		NumTravelers: 2,
		Budget:       model.BudgetMedium,
		Pace:         model.PaceModerate,
		DailyRoutine: model.DefaultDailyRoutine(),
	}
	r.trips[trip.ID] = trip
	return trip.ID
}

func TestTripPlanningUseCase_パイプライン全体を実行できる(t *testing.T) {
	uc, tripsRepo := setupPlanningUseCase(t)
	tripID := seedTrip(tripsRepo)
	ctx := context.Background()

	response, err := uc.PlanTrip(ctx, tripID)

	require.NoError(t, err)
	assert.Equal(t, tripID, response.TripID)
	require.Len(t, response.Days, 2)

	// 各ステージの成果物が保存されている
	macro, err := uc.GetMacroPlan(ctx, tripID)
	require.NoError(t, err)
	assert.Len(t, macro.Days, 2)

	poiPlan, err := uc.GetPOIPlan(ctx, tripID)
	require.NoError(t, err)
	assert.NotEmpty(t, poiPlan.Blocks)

	itinerary, err := uc.GetItinerary(ctx, tripID)
	require.NoError(t, err)
	assert.Len(t, itinerary.Days, 2)
}

func TestTripPlanningUseCase_前段ステージなしではNotFoundを返す(t *testing.T) {
	uc, tripsRepo := setupPlanningUseCase(t)
	tripID := seedTrip(tripsRepo)
	ctx := context.Background()

	_, err := uc.GeneratePOIPlan(ctx, tripID)
	assert.ErrorIs(t, err, model.ErrMacroPlanNotFound, "マクロプランなしではPOIプランを生成できない")

	_, err = uc.GenerateItinerary(ctx, tripID)
	assert.ErrorIs(t, err, model.ErrMacroPlanNotFound)

	_, err = uc.GetItinerary(ctx, tripID)
	assert.ErrorIs(t, err, model.ErrItineraryNotFound)
}

func TestTripPlanningUseCase_存在しない旅行はNotFoundを返す(t *testing.T) {
	uc, _ := setupPlanningUseCase(t)

	_, err := uc.GenerateMacroPlan(context.Background(), "missing-trip")

	assert.ErrorIs(t, err, model.ErrTripNotFound)
}

func TestTripPlanningUseCase_旅程の再生成は全置換になる(t *testing.T) {
	uc, tripsRepo := setupPlanningUseCase(t)
	tripID := seedTrip(tripsRepo)
	ctx := context.Background()

	first, err := uc.PlanTrip(ctx, tripID)
	require.NoError(t, err)

	second, err := uc.GenerateItinerary(ctx, tripID)
	require.NoError(t, err)

	assert.Equal(t, first.Days, second.Days, "入力が変わらない限り再生成しても同じ旅程になる")
}
