package helper

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"tripweaver/internal/domain/model"
)

// HaversineDistanceMeters は2地点間の大円距離を計算する (メートル)
func HaversineDistanceMeters(p1, p2 model.LatLng) float64 {
	return geo.DistanceHaversine(
		orb.Point{p1.Lng, p1.Lat},
		orb.Point{p2.Lng, p2.Lat},
	)
}

// HasCategory はPOI候補が指定されたカテゴリのいずれかを持つかチェックする
// カテゴリ本体に加えてタグも照合対象とする
func HasCategory(poi *model.POICandidate, categories []string) bool {
	catSet := make(map[string]struct{})
	for _, c := range categories {
		catSet[c] = struct{}{}
	}
	if _, ok := catSet[poi.Category]; ok {
		return true
	}
	for _, tag := range poi.Tags {
		if _, ok := catSet[tag]; ok {
			return true
		}
	}
	return false
}

// FilterByCategory は指定されたカテゴリのPOI候補のみを抽出する
func FilterByCategory(pois []model.POICandidate, categories []string) []model.POICandidate {
	if len(categories) == 0 {
		return pois
	}
	var filtered []model.POICandidate
	for i := range pois {
		if HasCategory(&pois[i], categories) {
			filtered = append(filtered, pois[i])
		}
	}
	return filtered
}

// ComputeRankScore はPOI候補の決定的なランクスコアを計算する
// 評価値・カテゴリ一致・基準地点からの距離のみから計算し、乱数は使わない
func ComputeRankScore(poi *model.POICandidate, desiredCategories []string, center *model.LatLng) float64 {
	score := poi.GetRating() * 4.0

	if HasCategory(poi, desiredCategories) {
		score += 5.0
	}

	// 基準地点に近いほど加点（5km以上は加点なし）
	if center != nil && poi.HasCoordinates() {
		distKm := HaversineDistanceMeters(*center, poi.ToLatLng()) / 1000.0
		if distKm < 5.0 {
			score += (5.0 - distKm)
		}
	}

	return score
}

// SortByRankScore はランクスコアの高い順に候補をソートする
// スコアが同点の場合は名前・IDの辞書順で並べ、出力を決定的にする
func SortByRankScore(pois []model.POICandidate) {
	sort.SliceStable(pois, func(i, j int) bool {
		if pois[i].RankScore != pois[j].RankScore {
			return pois[i].RankScore > pois[j].RankScore
		}
		if pois[i].Name != pois[j].Name {
			return pois[i].Name < pois[j].Name
		}
		return pois[i].ID < pois[j].ID
	})
}

// DeduplicateByID はID重複を除去する（先に現れた候補が残る）
func DeduplicateByID(pois []model.POICandidate) []model.POICandidate {
	seen := make(map[string]struct{}, len(pois))
	result := make([]model.POICandidate, 0, len(pois))
	for _, poi := range pois {
		if _, ok := seen[poi.ID]; ok {
			continue
		}
		seen[poi.ID] = struct{}{}
		result = append(result, poi)
	}
	return result
}
