package service

import (
	"context"
	"fmt"
	"log"

	"tripweaver/internal/domain/model"
)

// CandidatesPerBlock 1ブロックあたりに集めるPOI候補数
const CandidatesPerBlock = 3

// POIPlanService マクロプランの各ブロックにPOI候補リストを割り当てるサービス
// 候補の選択・マージに乱数は使わないため、ローカルストアと外部レスポンスが
// 変わらない限り同じ入力からは常に同じ候補リストが得られる
type POIPlanService struct {
	candidateSource CandidateSource
}

// NewPOIPlanService POIプランサービスを作成する
func NewPOIPlanService(candidateSource CandidateSource) *POIPlanService {
	return &POIPlanService{candidateSource: candidateSource}
}

// Generate マクロプランのPOIが必要なブロックごとに候補を検索する
// rest・travelブロックは出力に含めない。候補が見つからないブロックは空リストのまま残す
func (s *POIPlanService) Generate(ctx context.Context, trip *model.TripSpec, macroPlan *model.MacroPlan) (*model.POIPlan, error) {
	var center *model.LatLng
	if trip.HotelLocation != nil {
		c := trip.HotelLocation.ToLatLng()
		center = &c
	}

	plan := &model.POIPlan{Blocks: []model.POIPlanBlock{}}
	for _, day := range macroPlan.Days {
		for blockIndex, block := range day.Blocks {
			if !block.BlockType.NeedsPOI() {
				continue
			}

			candidates, err := s.candidateSource.SearchCandidates(ctx, CandidateQuery{
				City:       trip.City,
				Categories: block.DesiredCategories,
				Budget:     trip.Budget,
				Limit:      CandidatesPerBlock,
				Center:     center,
			})
			if err != nil {
				return nil, fmt.Errorf("POI候補の検索に失敗 (day: %d, block: %d): %w", day.DayNumber, blockIndex, err)
			}
			if len(candidates) == 0 {
				log.Printf("⚠️ POI候補が見つかりませんでした (day: %d, block: %d, categories: %v)",
					day.DayNumber, blockIndex, block.DesiredCategories)
				candidates = []model.POICandidate{}
			}

			plan.Blocks = append(plan.Blocks, model.POIPlanBlock{
				DayNumber:  day.DayNumber,
				BlockIndex: blockIndex,
				BlockType:  block.BlockType,
				BlockTheme: block.Theme,
				Candidates: candidates,
			})
		}
	}
	return plan, nil
}
