package service

import (
	"context"

	"tripweaver/internal/domain/model"
	"tripweaver/internal/domain/repository"
)

// CandidateQuery POI候補検索の条件
type CandidateQuery struct {
	City       string
	Categories []string
	Budget     model.BudgetLevel
	Limit      int
	Center     *model.LatLng // ランキングの基準地点（宿泊地など、nil可）
}

// CandidateSource POI候補を返す検索ソース
// ローカルストア実装と外部検索実装があり、CompositePOISource が両者を合成する
type CandidateSource interface {
	SearchCandidates(ctx context.Context, query CandidateQuery) ([]model.POICandidate, error)
}

// localPOISource ローカルストアをCandidateSourceとして扱うアダプタ
// ランキングはストア側で決定的に計算される
type localPOISource struct {
	poiRepo repository.POIsRepository
}

// NewLocalPOISource ローカルストア由来の候補ソースを作成する
func NewLocalPOISource(poiRepo repository.POIsRepository) CandidateSource {
	return &localPOISource{poiRepo: poiRepo}
}

func (s *localPOISource) SearchCandidates(ctx context.Context, query CandidateQuery) ([]model.POICandidate, error) {
	return s.poiRepo.SearchRanked(ctx, repository.POISearchQuery{
		City:       query.City,
		Categories: query.Categories,
		Budget:     query.Budget,
		Center:     query.Center,
		Limit:      query.Limit,
	})
}
