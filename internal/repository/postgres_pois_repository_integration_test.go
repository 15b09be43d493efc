package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripweaver/internal/domain/model"
	"tripweaver/internal/domain/repository"
	"tripweaver/internal/infrastructure/database"
)

// TestPostgresPOIsRepository_Upsert検索統合 は実際のデータベースに対して
// Upsert → SearchRanked の往復を検証する統合テスト
func TestPostgresPOIsRepository_Upsert検索統合(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL が設定されていません。統合テストをスキップします。")
	}

	client, err := database.NewPostgreSQLClient()
	require.NoError(t, err, "PostgreSQL接続に失敗")
	defer client.Close()

	repo := NewPostgresPOIsRepository(client)
	ctx := context.Background()

	// 一意な外部IDで重複挿入を避ける
	externalID := fmt.Sprintf("itest-%d", time.Now().UnixNano())
	rating := 4.5
	price := 2
	poi := &model.POICandidate{
		ID:         "google_places:" + externalID,
		Name:       "統合テスト用レストラン",
		City:       "IntegrationTestCity",
		Category:   "restaurant",
		Tags:       []string{"food"},
		Rating:     &rating,
		PriceLevel: &price,
		Location:   "テスト住所 1-2-3",
	}
	poi.SetCoordinates(35.0116, 135.7681)

	err = repo.Upsert(ctx, "google_places", externalID, poi)
	require.NoError(t, err, "Upsertに失敗")

	// 同じキーでの再Upsertは重複を作らない
	updatedRating := 4.7
	poi.Rating = &updatedRating
	err = repo.Upsert(ctx, "google_places", externalID, poi)
	require.NoError(t, err, "2回目のUpsertに失敗")

	candidates, err := repo.SearchRanked(ctx, repository.POISearchQuery{
		City:       "IntegrationTestCity",
		Categories: []string{"restaurant"},
		Budget:     model.BudgetMedium,
		Limit:      10,
	})
	require.NoError(t, err, "SearchRankedに失敗")

	found := 0
	for _, c := range candidates {
		if c.ID == poi.ID {
			found++
			assert.Equal(t, "統合テスト用レストラン", c.Name)
			assert.NotNil(t, c.Rating)
			assert.InDelta(t, 4.7, c.GetRating(), 0.001)
			assert.True(t, c.HasCoordinates())
		}
	}
	assert.Equal(t, 1, found, "Upsertした候補が検索結果にちょうど1件含まれること")

	// 後片付け
	_, err = client.DB.ExecContext(ctx, "DELETE FROM pois WHERE external_source = $1 AND external_id = $2", "google_places", externalID)
	require.NoError(t, err)
}
