package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"tripweaver/internal/domain/helper"
	"tripweaver/internal/domain/model"
	"tripweaver/internal/domain/repository"
	"tripweaver/internal/infrastructure/database"
)

// searchFetchLimit ランキング計算前にDBから取得する最大行数
const searchFetchLimit = 50

type PostgresPOIsRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresPOIsRepository(client *database.PostgreSQLClient) repository.POIsRepository {
	return &PostgresPOIsRepository{
		client: client,
	}
}

// poiRow poisテーブルの1行を受け取るための構造体
type poiRow struct {
	ID         string
	Name       string
	City       string
	Category   sql.NullString
	Tags       sql.NullString // JSONB
	Rating     sql.NullFloat64
	PriceLevel sql.NullInt64
	Location   sql.NullString
	Lat        sql.NullFloat64
	Lon        sql.NullFloat64
}

// toCandidate poiRowをmodel.POICandidateに変換
func (r *poiRow) toCandidate() (*model.POICandidate, error) {
	poi := &model.POICandidate{
		ID:   r.ID,
		Name: r.Name,
		City: r.City,
	}
	if r.Category.Valid {
		poi.Category = r.Category.String
	}
	if r.Tags.Valid && r.Tags.String != "" {
		if err := json.Unmarshal([]byte(r.Tags.String), &poi.Tags); err != nil {
			return nil, fmt.Errorf("tags JSONBパースエラー: %w", err)
		}
	}
	if r.Rating.Valid {
		v := r.Rating.Float64
		poi.Rating = &v
	}
	if r.PriceLevel.Valid {
		v := int(r.PriceLevel.Int64)
		poi.PriceLevel = &v
	}
	if r.Location.Valid {
		poi.Location = r.Location.String
	}
	if r.Lat.Valid && r.Lon.Valid {
		poi.SetCoordinates(r.Lat.Float64, r.Lon.Float64)
	}
	return poi, nil
}

// SearchRanked 都市・カテゴリ・予算でPOIを検索し、決定的なランクスコア順で返す
// スコアは評価値・カテゴリ一致・基準地点からの距離のみから計算する
func (r *PostgresPOIsRepository) SearchRanked(ctx context.Context, query repository.POISearchQuery) ([]model.POICandidate, error) {
	sqlQuery := `
		SELECT p.id, p.name, p.city, p.category, p.tags, p.rating, p.price_level, p.location, p.lat, p.lon
		FROM pois p
		WHERE LOWER(p.city) = LOWER($1)
		AND (p.price_level IS NULL OR p.price_level <= $2)
		AND ($3::text[] IS NULL OR p.category = ANY($3) OR p.tags ?| $3)
		LIMIT $4
	`

	maxPrice := query.Budget.MaxPriceLevel()
	var categories interface{}
	if len(query.Categories) > 0 {
		categories = pq.Array(query.Categories)
	}

	rows, err := r.client.DB.QueryContext(ctx, sqlQuery, query.City, maxPrice, categories, searchFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("POI検索失敗: %w", err)
	}
	defer rows.Close()

	var candidates []model.POICandidate
	for rows.Next() {
		var row poiRow
		err := rows.Scan(&row.ID, &row.Name, &row.City, &row.Category, &row.Tags,
			&row.Rating, &row.PriceLevel, &row.Location, &row.Lat, &row.Lon)
		if err != nil {
			return nil, fmt.Errorf("POIデータスキャンエラー: %w", err)
		}

		poi, err := row.toCandidate()
		if err != nil {
			return nil, err
		}
		poi.RankScore = helper.ComputeRankScore(poi, query.Categories, query.Center)
		candidates = append(candidates, *poi)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("行イテレーション中のエラー: %w", err)
	}

	helper.SortByRankScore(candidates)
	if query.Limit > 0 && len(candidates) > query.Limit {
		candidates = candidates[:query.Limit]
	}
	return candidates, nil
}

// Upsert 外部検索で取得したPOIをローカルストアに保存する
// (external_source, external_id) の一意制約をキーとし、既存レコードは
// 評価値・価格帯・座標・更新日時のみ更新して重複を作らない
func (r *PostgresPOIsRepository) Upsert(ctx context.Context, externalSource, externalID string, poi *model.POICandidate) error {
	tagsJSON, err := json.Marshal(poi.Tags)
	if err != nil {
		return fmt.Errorf("tags JSONマーシャルエラー: %w", err)
	}

	query := `
		INSERT INTO pois (id, external_source, external_id, name, city, category, tags, rating, price_level, location, lat, lon, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (external_source, external_id) DO UPDATE SET
			rating = EXCLUDED.rating,
			price_level = EXCLUDED.price_level,
			lat = EXCLUDED.lat,
			lon = EXCLUDED.lon,
			updated_at = NOW()
	`

	_, err = r.client.DB.ExecContext(ctx, query,
		poi.ID, externalSource, externalID, poi.Name, poi.City, poi.Category,
		string(tagsJSON), poi.Rating, poi.PriceLevel, poi.Location, poi.Lat, poi.Lon)
	if err != nil {
		return fmt.Errorf("POIのUpsert失敗: %w", err)
	}
	return nil
}
