package service

import (
	"context"
	"log"

	"tripweaver/internal/domain/helper"
	"tripweaver/internal/domain/model"
)

// CompositePOISource ローカルストア優先の合成候補ソース
// ローカルの候補が十分なら外部検索は一切呼ばない。
// 外部検索が失敗してもローカルの結果だけで処理を続行する。
type CompositePOISource struct {
	localSource    CandidateSource
	externalSource CandidateSource // nil可（外部検索なしで運用）
}

// NewCompositePOISource 合成候補ソースを作成する
// externalSourceはnilでもよく、その場合はローカルのみで動作する
func NewCompositePOISource(localSource, externalSource CandidateSource) *CompositePOISource {
	return &CompositePOISource{
		localSource:    localSource,
		externalSource: externalSource,
	}
}

// SearchCandidates ローカルストアを検索し、不足分のみ外部検索で補完する
func (s *CompositePOISource) SearchCandidates(ctx context.Context, query CandidateQuery) ([]model.POICandidate, error) {
	local, err := s.localSource.SearchCandidates(ctx, query)
	if err != nil {
		return nil, err
	}

	// ローカルだけで足りる場合、外部検索は呼ばない（コスト・レイテンシ削減）
	if query.Limit > 0 && len(local) >= query.Limit {
		return local[:query.Limit], nil
	}
	if s.externalSource == nil {
		return local, nil
	}

	external, err := s.externalSource.SearchCandidates(ctx, query)
	if err != nil {
		// 外部検索の失敗は致命的ではない。ローカルの結果で続行する
		log.Printf("⚠️ 外部POI検索に失敗しました。ローカルの結果のみで続行します: %v", err)
		return local, nil
	}

	// ローカルを先頭にマージし、ID重複は先勝ちで除去（ローカル優先）
	merged := make([]model.POICandidate, 0, len(local)+len(external))
	merged = append(merged, local...)
	merged = append(merged, external...)
	merged = helper.DeduplicateByID(merged)

	if query.Limit > 0 && len(merged) > query.Limit {
		merged = merged[:query.Limit]
	}
	return merged, nil
}
