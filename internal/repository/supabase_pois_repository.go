package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"tripweaver/internal/domain/helper"
	"tripweaver/internal/domain/model"
	"tripweaver/internal/domain/repository"
	"tripweaver/internal/infrastructure/database"
)

type SupabasePOIsRepository struct {
	client *database.SupabaseClient
}

func NewSupabasePOIsRepository(client *database.SupabaseClient) repository.POIsRepository {
	return &SupabasePOIsRepository{
		client: client,
	}
}

// supabasePOIRow poisテーブルのカラムに対応する構造体
type supabasePOIRow struct {
	ID             string   `json:"id"`
	ExternalSource *string  `json:"external_source,omitempty"`
	ExternalID     *string  `json:"external_id,omitempty"`
	Name           string   `json:"name"`
	City           string   `json:"city"`
	Category       string   `json:"category"`
	Tags           []string `json:"tags"`
	Rating         *float64 `json:"rating"`
	PriceLevel     *int     `json:"price_level"`
	Location       string   `json:"location"`
	Lat            *float64 `json:"lat"`
	Lon            *float64 `json:"lon"`
}

// toCandidate supabasePOIRowをmodel.POICandidateに変換
func (r *supabasePOIRow) toCandidate() model.POICandidate {
	return model.POICandidate{
		ID:         r.ID,
		Name:       r.Name,
		City:       r.City,
		Category:   r.Category,
		Tags:       r.Tags,
		Rating:     r.Rating,
		PriceLevel: r.PriceLevel,
		Location:   r.Location,
		Lat:        r.Lat,
		Lon:        r.Lon,
	}
}

// SearchRanked 都市でPOIを取得し、カテゴリ・予算のフィルタとランキングはGo側で行う
// PostgRESTではタグ配列を含むOR条件が表現しづらいため、絞り込みはメモリ上で実施する
func (r *SupabasePOIsRepository) SearchRanked(ctx context.Context, query repository.POISearchQuery) ([]model.POICandidate, error) {
	data, count, err := r.client.GetClient().From("pois").
		Select("*", "exact", false).
		Eq("city", query.City).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("POIデータの取得失敗: %w", err)
	}
	_ = count

	var rows []supabasePOIRow
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, fmt.Errorf("POIデータのJSONアンマーシャル失敗: %w", err)
	}

	maxPrice := query.Budget.MaxPriceLevel()
	var candidates []model.POICandidate
	for i := range rows {
		poi := rows[i].toCandidate()
		if poi.PriceLevel != nil && *poi.PriceLevel > maxPrice {
			continue
		}
		if len(query.Categories) > 0 && !helper.HasCategory(&poi, query.Categories) {
			continue
		}
		poi.RankScore = helper.ComputeRankScore(&poi, query.Categories, query.Center)
		candidates = append(candidates, poi)
	}

	helper.SortByRankScore(candidates)
	if query.Limit > 0 && len(candidates) > query.Limit {
		candidates = candidates[:query.Limit]
	}
	return candidates, nil
}

// Upsert (external_source, external_id) をキーに外部取得POIを保存する
func (r *SupabasePOIsRepository) Upsert(ctx context.Context, externalSource, externalID string, poi *model.POICandidate) error {
	row := supabasePOIRow{
		ID:             poi.ID,
		ExternalSource: &externalSource,
		ExternalID:     &externalID,
		Name:           poi.Name,
		City:           poi.City,
		Category:       poi.Category,
		Tags:           poi.Tags,
		Rating:         poi.Rating,
		PriceLevel:     poi.PriceLevel,
		Location:       poi.Location,
		Lat:            poi.Lat,
		Lon:            poi.Lon,
	}

	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("POIデータのJSONマーシャル失敗: %w", err)
	}

	_, _, err = r.client.GetClient().From("pois").
		Insert(string(data), true, "external_source,external_id", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("POIデータのUpsert失敗: %w", err)
	}
	return nil
}
