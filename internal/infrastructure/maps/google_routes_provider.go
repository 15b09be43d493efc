package maps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tripweaver/internal/domain/model"
)

// GoogleRoutesProvider はGoogle Routes API (computeRoutes) を使用した移動時間推定の実装
// 認証情報が空の場合はコンストラクタで即座に失敗する
type GoogleRoutesProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGoogleRoutesProvider は新しいプロバイダを生成する
// APIキーが空の場合は設定エラーを返す（呼び出し時まで発覚を遅らせない）
func NewGoogleRoutesProvider(apiKey, baseURL string, timeout time.Duration) (*GoogleRoutesProvider, error) {
	if apiKey == "" {
		return nil, &model.ConfigurationError{
			Field:   "GOOGLE_MAPS_API_KEY",
			Message: "Google Routes APIキーが設定されていません",
		}
	}
	if baseURL == "" {
		baseURL = "https://routes.googleapis.com/directions/v2:computeRoutes"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoogleRoutesProvider{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Estimate はGoogle Routes APIを呼び出して移動時間・距離・経路を取得する
func (g *GoogleRoutesProvider) Estimate(ctx context.Context, origin, destination model.TravelLocation, mode string) (*model.TravelEstimate, error) {
	reqBody, err := json.Marshal(buildRoutesRequest(origin, destination, mode))
	if err != nil {
		return nil, fmt.Errorf("リクエストのシリアライズに失敗: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", g.apiKey)
	req.Header.Set("X-Goog-FieldMask", "routes.duration,routes.distanceMeters,routes.polyline.encodedPolyline")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, model.NewUpstreamError("google_routes", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, model.NewUpstreamError("google_routes",
			fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status))
	}

	var apiResp googleRoutesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, model.NewUpstreamError("google_routes", fmt.Errorf("JSONのパースに失敗: %w", err))
	}

	if len(apiResp.Routes) == 0 {
		return nil, model.NewUpstreamError("google_routes", errors.New("APIから有効なルートが返されませんでした"))
	}

	firstRoute := apiResp.Routes[0]
	durationSec, err := parseDurationSeconds(firstRoute.Duration)
	if err != nil {
		return nil, model.NewUpstreamError("google_routes", err)
	}
	// 契約違反のレスポンス（0以下の所要時間）はエラーとして扱い、黙って受け入れない
	if durationSec <= 0 {
		return nil, model.NewUpstreamError("google_routes",
			fmt.Errorf("不正な所要時間が返されました: %d秒", durationSec))
	}

	estimate := &model.TravelEstimate{
		DurationMinutes: int((time.Duration(durationSec) * time.Second).Minutes()),
	}
	if estimate.DurationMinutes < 1 {
		estimate.DurationMinutes = 1
	}
	if firstRoute.DistanceMeters > 0 {
		d := firstRoute.DistanceMeters
		estimate.DistanceMeters = &d
	}
	if firstRoute.Polyline.EncodedPolyline != "" {
		p := firstRoute.Polyline.EncodedPolyline
		estimate.Polyline = &p
	}

	return estimate, nil
}

// buildRoutesRequest は移動手段をRoutes APIのtravelModeに変換してリクエストを構築する
func buildRoutesRequest(origin, destination model.TravelLocation, mode string) *googleRoutesRequest {
	travelMode := "WALK"
	if mode == model.TravelModeDriving {
		travelMode = "DRIVE"
	}
	return &googleRoutesRequest{
		Origin:      newWaypoint(origin),
		Destination: newWaypoint(destination),
		TravelMode:  travelMode,
	}
}

// parseDurationSeconds は "123s" 形式の所要時間文字列を秒数に変換する
func parseDurationSeconds(duration string) (int, error) {
	trimmed := strings.TrimSuffix(duration, "s")
	if trimmed == "" {
		return 0, fmt.Errorf("所要時間が空です")
	}
	sec, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("所要時間のパースに失敗 (%q): %w", duration, err)
	}
	return sec, nil
}

// --- Google Routes APIのリクエスト・レスポンス構造体 ---

type googleRoutesRequest struct {
	Origin      waypoint `json:"origin"`
	Destination waypoint `json:"destination"`
	TravelMode  string   `json:"travelMode"`
}

type waypoint struct {
	Location waypointLocation `json:"location"`
}

type waypointLocation struct {
	LatLng waypointLatLng `json:"latLng"`
}

type waypointLatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func newWaypoint(loc model.TravelLocation) waypoint {
	return waypoint{
		Location: waypointLocation{
			LatLng: waypointLatLng{
				Latitude:  loc.Lat,
				Longitude: loc.Lng,
			},
		},
	}
}

type googleRoutesResponse struct {
	Routes []googleRoute `json:"routes"`
}

type googleRoute struct {
	Duration       string         `json:"duration"` // "123s" 形式
	DistanceMeters int            `json:"distanceMeters"`
	Polyline       googlePolyline `json:"polyline"`
}

type googlePolyline struct {
	EncodedPolyline string `json:"encodedPolyline"`
}
