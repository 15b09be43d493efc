package repository

import (
	"context"

	"tripweaver/internal/domain/model"
)

// POISearchQuery ローカルストアへのランク付き検索条件
type POISearchQuery struct {
	City       string
	Categories []string
	Budget     model.BudgetLevel // 空文字の場合はフィルタしない
	Center     *model.LatLng     // ランキングの基準地点（nil可）
	Limit      int
}

// POIsRepository ローカルのPOIストア
// SearchRanked のランキングは決定的（評価値・カテゴリ一致・基準地点からの距離から計算）
type POIsRepository interface {
	SearchRanked(ctx context.Context, query POISearchQuery) ([]model.POICandidate, error)
	// Upsert は (external_source, external_id) をキーとして外部取得POIを保存する。
	// 既存レコードがある場合は評価値・価格帯・座標・更新日時のみ更新し、重複は作らない
	Upsert(ctx context.Context, externalSource, externalID string, poi *model.POICandidate) error
}
