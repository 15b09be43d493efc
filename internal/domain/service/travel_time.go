package service

import (
	"context"
	"log"
	"math"
	"strings"

	"tripweaver/internal/config"
	"tripweaver/internal/domain/helper"
	"tripweaver/internal/domain/model"
	"tripweaver/internal/infrastructure/maps"
)

const (
	// AverageWalkingSpeedKmh 徒歩移動の平均速度 (km/h)
	AverageWalkingSpeedKmh = 5.0
	// AverageDrivingSpeedKmh 車移動の平均速度 (km/h)
	AverageDrivingSpeedKmh = 30.0
)

// TravelTimeEstimator 2地点間の移動時間を推定するインターフェース
type TravelTimeEstimator interface {
	Estimate(ctx context.Context, origin, destination model.TravelLocation, mode string) (*model.TravelEstimate, error)
}

// SimpleHeuristicEstimator 直線距離と平均速度に基づく簡易推定
// 外部APIを呼ばないため失敗せず、常にフォールバックとして利用できる
type SimpleHeuristicEstimator struct{}

// NewSimpleHeuristicEstimator 簡易推定器を作成する
func NewSimpleHeuristicEstimator() *SimpleHeuristicEstimator {
	return &SimpleHeuristicEstimator{}
}

// Estimate 大円距離を平均速度で割って所要時間を推定する
// どちらかの端点が未設定、または2地点が同一の場合は所要時間0を返す
func (e *SimpleHeuristicEstimator) Estimate(ctx context.Context, origin, destination model.TravelLocation, mode string) (*model.TravelEstimate, error) {
	if !origin.Valid || !destination.Valid {
		return &model.TravelEstimate{DurationMinutes: 0}, nil
	}

	distanceMeters := helper.HaversineDistanceMeters(origin.ToLatLng(), destination.ToLatLng())
	if distanceMeters == 0 {
		return &model.TravelEstimate{DurationMinutes: 0}, nil
	}

	speedKmh := AverageWalkingSpeedKmh
	if mode == model.TravelModeDriving {
		speedKmh = AverageDrivingSpeedKmh
	}

	minutes := int(math.Ceil(distanceMeters / 1000.0 / speedKmh * 60.0))
	if minutes < 1 {
		minutes = 1
	}

	d := int(distanceMeters)
	return &model.TravelEstimate{
		DurationMinutes: minutes,
		DistanceMeters:  &d,
	}, nil
}

// ResilientTravelTimeEstimator プライマリ推定器の失敗時にフォールバックへ切り替えるデコレータ
// プライマリの失敗は呼び出し元には伝播しない
type ResilientTravelTimeEstimator struct {
	primary  TravelTimeEstimator
	fallback TravelTimeEstimator
}

// NewResilientTravelTimeEstimator フォールバック付き推定器を作成する
func NewResilientTravelTimeEstimator(primary, fallback TravelTimeEstimator) *ResilientTravelTimeEstimator {
	return &ResilientTravelTimeEstimator{
		primary:  primary,
		fallback: fallback,
	}
}

// Estimate まずプライマリで推定し、失敗した場合はフォールバックの結果を返す
func (e *ResilientTravelTimeEstimator) Estimate(ctx context.Context, origin, destination model.TravelLocation, mode string) (*model.TravelEstimate, error) {
	// 端点が未設定の場合、外部APIには問い合わせようがない
	if !origin.Valid || !destination.Valid {
		return e.fallback.Estimate(ctx, origin, destination, mode)
	}

	estimate, err := e.primary.Estimate(ctx, origin, destination, mode)
	if err == nil {
		return estimate, nil
	}

	log.Printf("⚠️ 移動時間プロバイダの呼び出しに失敗しました。簡易推定にフォールバックします: %v", err)
	return e.fallback.Estimate(ctx, origin, destination, mode)
}

// NewTravelTimeEstimator 設定に基づいて移動時間推定器を構築するファクトリ
// TRAVEL_TIME_PROVIDER="google_maps"（大文字小文字を区別しない）かつAPIキーが設定済みの
// 場合のみGoogle Routes APIをプライマリとするフォールバック付き推定器を返し、
// それ以外は常に簡易推定器を返す
func NewTravelTimeEstimator(cfg *config.Config) TravelTimeEstimator {
	provider := strings.ToLower(strings.TrimSpace(cfg.TravelTimeProvider))
	if provider == "google_maps" && cfg.GoogleMapsAPIKey != "" {
		primary, err := maps.NewGoogleRoutesProvider(cfg.GoogleMapsAPIKey, cfg.GoogleRoutesBaseURL, cfg.RoutesTimeout)
		if err != nil {
			log.Printf("⚠️ Google Routesプロバイダの初期化に失敗しました。簡易推定を使用します: %v", err)
			return NewSimpleHeuristicEstimator()
		}
		log.Println("✅ 移動時間推定: Google Routes API（フォールバック付き）を使用します")
		return NewResilientTravelTimeEstimator(primary, NewSimpleHeuristicEstimator())
	}

	log.Println("✅ 移動時間推定: 簡易推定（直線距離ベース）を使用します")
	return NewSimpleHeuristicEstimator()
}
