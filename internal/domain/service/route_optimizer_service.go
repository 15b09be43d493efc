package service

import (
	"context"
	"log"

	"tripweaver/internal/domain/model"
)

// RouteOptimizerService POIプランから最終旅程を組み立てるサービス
// LLMは使用せず、入力と移動時間推定器のみから決定的に旅程を生成する
type RouteOptimizerService struct {
	estimator TravelTimeEstimator
}

// NewRouteOptimizerService ルート最適化サービスを作成する
func NewRouteOptimizerService(estimator TravelTimeEstimator) *RouteOptimizerService {
	return &RouteOptimizerService{estimator: estimator}
}

// Generate マクロプランとPOIプランから旅程を生成する
// 各ブロックでは候補リストの先頭（最良ランク）をそのまま採用する。
// 生成結果は既存の旅程を全置換する前提で、毎回ゼロから組み立てる
func (s *RouteOptimizerService) Generate(ctx context.Context, trip *model.TripSpec, macroPlan *model.MacroPlan, poiPlan *model.POIPlan) (*model.Itinerary, error) {
	mode := travelModeFor(trip)

	itinerary := &model.Itinerary{Days: make([]model.ItineraryDay, 0, len(macroPlan.Days))}
	for _, day := range macroPlan.Days {
		itineraryDay, err := s.buildDay(ctx, day, poiPlan, mode)
		if err != nil {
			return nil, err
		}
		itinerary.Days = append(itinerary.Days, itineraryDay)
	}
	return itinerary, nil
}

// buildDay 1日分のブロックをスケルトン順に処理して旅程を組み立てる
// 直前のPOIをカーソルとして持ち回り、連続する2つのPOI間の移動時間を推定する
func (s *RouteOptimizerService) buildDay(ctx context.Context, day model.DaySkeleton, poiPlan *model.POIPlan, mode string) (model.ItineraryDay, error) {
	itineraryDay := model.ItineraryDay{
		DayNumber: day.DayNumber,
		Date:      day.Date,
		Theme:     day.Theme,
		Blocks:    make([]model.ItineraryBlock, 0, len(day.Blocks)),
	}

	var prevPOI *model.POICandidate
	for blockIndex, block := range day.Blocks {
		itineraryBlock := model.ItineraryBlock{
			BlockType: block.BlockType,
			StartTime: block.StartTime,
			EndTime:   block.EndTime,
		}

		if !block.BlockType.NeedsPOI() {
			// rest・travelブロックはPOIも移動時間も持たない。ノートだけを付ける
			if note := model.GetDefaultNote(block.BlockType, block.Theme); note != "" {
				itineraryBlock.Notes = &note
			}
			itineraryDay.Blocks = append(itineraryDay.Blocks, itineraryBlock)
			continue
		}

		selected := selectTopCandidate(poiPlan, day.DayNumber, blockIndex)
		if selected == nil {
			log.Printf("⚠️ 選択可能なPOI候補がありません (day: %d, block: %d)", day.DayNumber, blockIndex)
		} else {
			itineraryBlock.POI = selected
		}

		// どちらかのPOIが存在する場合のみ移動時間を推定する
		if prevPOI != nil || selected != nil {
			estimate, err := s.estimator.Estimate(ctx,
				model.TravelLocationFromPOI(prevPOI),
				model.TravelLocationFromPOI(selected),
				mode)
			if err != nil {
				return model.ItineraryDay{}, err
			}
			itineraryBlock.TravelTimeFromPrev = estimate.DurationMinutes
			itineraryBlock.TravelDistanceMeters = estimate.DistanceMeters
			itineraryBlock.TravelPolyline = estimate.Polyline
		}

		// 候補が空だったブロックでもカーソルは進める（「直前のPOIなし」にリセットされる）
		prevPOI = selected
		itineraryDay.Blocks = append(itineraryDay.Blocks, itineraryBlock)
	}

	itineraryDay.TotalDistanceMeters = itineraryDay.SumTravelDistanceMeters()
	return itineraryDay, nil
}

// selectTopCandidate POIプランから該当ブロックの先頭候補のコピーを返す
func selectTopCandidate(poiPlan *model.POIPlan, dayNumber, blockIndex int) *model.POICandidate {
	planBlock := poiPlan.FindBlock(dayNumber, blockIndex)
	if planBlock == nil || len(planBlock.Candidates) == 0 {
		return nil
	}
	return planBlock.Candidates[0].Clone()
}

// travelModeFor 旅行のペースから移動手段を決定する
// ゆったりペースは徒歩圏内の移動を想定し、それ以外も基本は徒歩とする
func travelModeFor(trip *model.TripSpec) string {
	if trip.Pace == model.PacePacked {
		return model.TravelModeDriving
	}
	return model.TravelModeWalking
}
