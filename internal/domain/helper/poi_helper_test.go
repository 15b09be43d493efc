package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tripweaver/internal/domain/model"
)

func poiWith(id, name string, rating float64, category string) model.POICandidate {
	return model.POICandidate{ID: id, Name: name, Rating: &rating, Category: category}
}

func TestHaversineDistanceMeters(t *testing.T) {
	kyotoStation := model.LatLng{Lat: 34.9858, Lng: 135.7588}
	kinkakuji := model.LatLng{Lat: 35.0394, Lng: 135.7292}

	distance := HaversineDistanceMeters(kyotoStation, kinkakuji)

	// 京都駅〜金閣寺はおよそ6.5km
	assert.InDelta(t, 6500, distance, 500)
	assert.Zero(t, HaversineDistanceMeters(kyotoStation, kyotoStation))
}

func TestHasCategory_タグも照合対象になる(t *testing.T) {
	poi := model.POICandidate{Category: "restaurant", Tags: []string{"cafe", "bakery"}}

	assert.True(t, HasCategory(&poi, []string{"restaurant"}))
	assert.True(t, HasCategory(&poi, []string{"cafe"}))
	assert.False(t, HasCategory(&poi, []string{"bar"}))
	assert.False(t, HasCategory(&poi, nil))
}

func TestComputeRankScore(t *testing.T) {
	t.Run("評価値とカテゴリ一致で加点される", func(t *testing.T) {
		matched := poiWith("p1", "カフェA", 4.0, "cafe")
		unmatched := poiWith("p2", "食堂B", 4.0, "restaurant")

		matchedScore := ComputeRankScore(&matched, []string{"cafe"}, nil)
		unmatchedScore := ComputeRankScore(&unmatched, []string{"cafe"}, nil)

		assert.Equal(t, 4.0*4.0+5.0, matchedScore)
		assert.Equal(t, 4.0*4.0, unmatchedScore)
	})

	t.Run("基準地点に近いほど加点される", func(t *testing.T) {
		near := poiWith("p1", "近い店", 4.0, "cafe")
		near.SetCoordinates(35.0000, 135.7000)
		far := poiWith("p2", "遠い店", 4.0, "cafe")
		far.SetCoordinates(35.0300, 135.7300)

		center := &model.LatLng{Lat: 35.0000, Lng: 135.7000}
		nearScore := ComputeRankScore(&near, []string{"cafe"}, center)
		farScore := ComputeRankScore(&far, []string{"cafe"}, center)

		assert.Greater(t, nearScore, farScore)
	})

	t.Run("評価値なしは0として扱う", func(t *testing.T) {
		poi := model.POICandidate{ID: "p1", Name: "未評価の店", Category: "cafe"}

		score := ComputeRankScore(&poi, nil, nil)

		assert.Zero(t, score)
	})
}

func TestSortByRankScore_同点は名前とIDで決定的に並ぶ(t *testing.T) {
	pois := []model.POICandidate{
		{ID: "c", Name: "同じ店", RankScore: 10},
		{ID: "a", Name: "同じ店", RankScore: 10},
		{ID: "b", Name: "別の店", RankScore: 12},
	}

	SortByRankScore(pois)

	assert.Equal(t, "b", pois[0].ID, "スコアの高い順")
	assert.Equal(t, "a", pois[1].ID, "同点は名前→IDの辞書順")
	assert.Equal(t, "c", pois[2].ID)
}

func TestDeduplicateByID_先に現れた候補が残る(t *testing.T) {
	pois := []model.POICandidate{
		{ID: "p1", Name: "1回目"},
		{ID: "p2", Name: "別の店"},
		{ID: "p1", Name: "2回目"},
	}

	result := DeduplicateByID(pois)

	assert.Len(t, result, 2)
	assert.Equal(t, "1回目", result[0].Name)
	assert.Equal(t, "p2", result[1].ID)
}
