package repository

import (
	"context"
	"time"

	"tripweaver/internal/domain/model"
)

// PlansRepository パイプライン各ステージの成果物（マクロプラン・POIプラン・旅程）の永続化
// 1旅行につき1レコード。保存は常に全置換（パッチではない）で、1リクエスト分の
// 書き込みはトランザクションでまとめてコミットする
type PlansRepository interface {
	SaveMacroPlan(ctx context.Context, tripID string, plan *model.MacroPlan, createdAt time.Time) error
	GetMacroPlan(ctx context.Context, tripID string) (*model.MacroPlan, time.Time, error)

	SavePOIPlan(ctx context.Context, tripID string, plan *model.POIPlan, createdAt time.Time) error
	GetPOIPlan(ctx context.Context, tripID string) (*model.POIPlan, time.Time, error)

	SaveItinerary(ctx context.Context, tripID string, itinerary *model.Itinerary, createdAt time.Time) error
	GetItinerary(ctx context.Context, tripID string) (*model.Itinerary, time.Time, error)
}
