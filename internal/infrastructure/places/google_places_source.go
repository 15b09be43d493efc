package places

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tripweaver/internal/domain/helper"
	"tripweaver/internal/domain/model"
	"tripweaver/internal/domain/repository"
	"tripweaver/internal/domain/service"
)

// externalSourceName ローカルストアへの取り込み時に記録する由来識別子
const externalSourceName = "google_places"

// GooglePlacesSource Google Places Text Search APIを使用した外部POI候補ソース
// 取得した候補はローカルストアにUpsertし、次回以降はローカル検索だけで賄えるようにする
type GooglePlacesSource struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	poiRepo    repository.POIsRepository
}

// NewGooglePlacesSource 外部POI候補ソースを作成する
// APIキーが空の場合は設定エラーを返す
func NewGooglePlacesSource(apiKey, baseURL string, timeout time.Duration, poiRepo repository.POIsRepository) (*GooglePlacesSource, error) {
	if apiKey == "" {
		return nil, &model.ConfigurationError{
			Field:   "GOOGLE_MAPS_API_KEY",
			Message: "Google Places APIキーが設定されていません",
		}
	}
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com/maps/api/place/textsearch/json"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GooglePlacesSource{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		poiRepo:    poiRepo,
	}, nil
}

// SearchCandidates Text Search APIで候補を検索し、スコアリングして返す
func (g *GooglePlacesSource) SearchCandidates(ctx context.Context, query service.CandidateQuery) ([]model.POICandidate, error) {
	results, err := g.textSearch(ctx, buildSearchText(query))
	if err != nil {
		return nil, err
	}

	maxPrice := query.Budget.MaxPriceLevel()
	candidates := make([]model.POICandidate, 0, len(results))
	for _, r := range results {
		poi := mapPlaceToCandidate(r, query.City)
		// 予算上限を超える候補は除外（価格情報がない候補は通す）
		if poi.PriceLevel != nil && *poi.PriceLevel > maxPrice {
			continue
		}
		poi.RankScore = helper.ComputeRankScore(&poi, query.Categories, query.Center)
		candidates = append(candidates, poi)

		// 取得した候補はローカルストアに取り込む。失敗しても検索結果は返す
		if g.poiRepo != nil {
			if err := g.poiRepo.Upsert(ctx, externalSourceName, r.PlaceID, &poi); err != nil {
				log.Printf("⚠️ 外部POIのローカル取り込みに失敗しました (place_id: %s): %v", r.PlaceID, err)
			}
		}
	}

	helper.SortByRankScore(candidates)
	if query.Limit > 0 && len(candidates) > query.Limit {
		candidates = candidates[:query.Limit]
	}
	return candidates, nil
}

// textSearch Text Search APIを呼び出して検索結果を返す
func (g *GooglePlacesSource) textSearch(ctx context.Context, searchText string) ([]placeResult, error) {
	params := url.Values{}
	params.Set("query", searchText)
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, model.NewUpstreamError(externalSourceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, model.NewUpstreamError(externalSourceName,
			fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status))
	}

	var apiResp placesSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, model.NewUpstreamError(externalSourceName, fmt.Errorf("JSONのパースに失敗: %w", err))
	}

	if apiResp.Status != "OK" && apiResp.Status != "ZERO_RESULTS" {
		return nil, model.NewUpstreamError(externalSourceName,
			fmt.Errorf("APIステータスが異常です: %s", apiResp.Status))
	}

	return apiResp.Results, nil
}

// buildSearchText 検索カテゴリと都市名からText Search用のクエリ文字列を組み立てる
func buildSearchText(query service.CandidateQuery) string {
	if len(query.Categories) == 0 {
		return fmt.Sprintf("tourist attractions in %s", query.City)
	}
	return fmt.Sprintf("%s in %s", strings.Join(query.Categories, " "), query.City)
}

// mapPlaceToCandidate Places APIの検索結果を内部のPOI候補に変換する
// IDは由来とplace_idから決定的に生成し、ローカルストアとの重複排除を可能にする
func mapPlaceToCandidate(r placeResult, city string) model.POICandidate {
	poi := model.POICandidate{
		ID:       fmt.Sprintf("%s:%s", externalSourceName, r.PlaceID),
		Name:     r.Name,
		City:     city,
		Location: r.FormattedAddress,
		Tags:     r.Types,
	}
	if len(r.Types) > 0 {
		poi.Category = r.Types[0]
	}
	if r.Rating > 0 {
		rating := r.Rating
		poi.Rating = &rating
	}
	if r.PriceLevel != nil {
		poi.PriceLevel = r.PriceLevel
	}
	poi.SetCoordinates(r.Geometry.Location.Lat, r.Geometry.Location.Lng)
	return poi
}

// --- Google Places APIのレスポンス構造体 ---

type placesSearchResponse struct {
	Status  string        `json:"status"`
	Results []placeResult `json:"results"`
}

type placeResult struct {
	PlaceID          string        `json:"place_id"`
	Name             string        `json:"name"`
	FormattedAddress string        `json:"formatted_address"`
	Types            []string      `json:"types"`
	Rating           float64       `json:"rating"`
	PriceLevel       *int          `json:"price_level"`
	Geometry         placeGeometry `json:"geometry"`
}

type placeGeometry struct {
	Location placeLatLng `json:"location"`
}

type placeLatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
