package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripweaver/internal/config"
	"tripweaver/internal/domain/model"
)

// failingEstimator 常に失敗するプライマリ推定器のスタブ
type failingEstimator struct {
	calls int
}

func (f *failingEstimator) Estimate(ctx context.Context, origin, destination model.TravelLocation, mode string) (*model.TravelEstimate, error) {
	f.calls++
	return nil, model.NewUpstreamError("google_routes", errors.New("context deadline exceeded"))
}

func TestSimpleHeuristicEstimator_同一地点は所要時間0(t *testing.T) {
	estimator := NewSimpleHeuristicEstimator()
	loc := model.TravelLocation{Lat: 35.0116, Lng: 135.7681, Valid: true}

	estimate, err := estimator.Estimate(context.Background(), loc, loc, model.TravelModeWalking)

	require.NoError(t, err)
	assert.Equal(t, 0, estimate.DurationMinutes)
}

func TestSimpleHeuristicEstimator_異なる地点は正の所要時間(t *testing.T) {
	estimator := NewSimpleHeuristicEstimator()
	kyotoStation := model.TravelLocation{Lat: 34.9858, Lng: 135.7588, Valid: true}
	kinkakuji := model.TravelLocation{Lat: 35.0394, Lng: 135.7292, Valid: true}

	walking, err := estimator.Estimate(context.Background(), kyotoStation, kinkakuji, model.TravelModeWalking)
	require.NoError(t, err)
	assert.Greater(t, walking.DurationMinutes, 0)
	require.NotNil(t, walking.DistanceMeters)
	assert.Greater(t, *walking.DistanceMeters, 0)
	assert.Nil(t, walking.Polyline, "簡易推定は経路を返さない")

	driving, err := estimator.Estimate(context.Background(), kyotoStation, kinkakuji, model.TravelModeDriving)
	require.NoError(t, err)
	assert.Greater(t, driving.DurationMinutes, 0)
	assert.Less(t, driving.DurationMinutes, walking.DurationMinutes, "車は徒歩より速い")
}

func TestSimpleHeuristicEstimator_無効な端点は所要時間0(t *testing.T) {
	estimator := NewSimpleHeuristicEstimator()
	valid := model.TravelLocation{Lat: 35.0, Lng: 135.7, Valid: true}

	estimate, err := estimator.Estimate(context.Background(), model.TravelLocation{}, valid, model.TravelModeWalking)

	require.NoError(t, err)
	assert.Equal(t, 0, estimate.DurationMinutes)
}

func TestResilientTravelTimeEstimator_プライマリ失敗時はフォールバックの結果を返す(t *testing.T) {
	primary := &failingEstimator{}
	estimator := NewResilientTravelTimeEstimator(primary, NewSimpleHeuristicEstimator())

	origin := model.TravelLocation{Lat: 34.9858, Lng: 135.7588, Valid: true}
	destination := model.TravelLocation{Lat: 35.0394, Lng: 135.7292, Valid: true}
	estimate, err := estimator.Estimate(context.Background(), origin, destination, model.TravelModeWalking)

	require.NoError(t, err, "プライマリの失敗は呼び出し元に伝播しない")
	assert.Equal(t, 1, primary.calls)
	assert.Greater(t, estimate.DurationMinutes, 0)
}

func TestResilientTravelTimeEstimator_無効な端点はプライマリを呼ばない(t *testing.T) {
	primary := &failingEstimator{}
	estimator := NewResilientTravelTimeEstimator(primary, NewSimpleHeuristicEstimator())

	destination := model.TravelLocation{Lat: 35.0, Lng: 135.7, Valid: true}
	estimate, err := estimator.Estimate(context.Background(), model.TravelLocation{}, destination, model.TravelModeWalking)

	require.NoError(t, err)
	assert.Equal(t, 0, primary.calls)
	assert.Equal(t, 0, estimate.DurationMinutes)
}

func TestNewTravelTimeEstimator_APIキーが空の場合は簡易推定を返す(t *testing.T) {
	cfg := &config.Config{
		TravelTimeProvider: "google_maps",
		GoogleMapsAPIKey:   "",
	}

	estimator := NewTravelTimeEstimator(cfg)

	assert.IsType(t, &SimpleHeuristicEstimator{}, estimator, "認証情報がなければ簡易推定に切り替わる")
}

func TestNewTravelTimeEstimator_大文字小文字を区別しない(t *testing.T) {
	cfg := &config.Config{
		TravelTimeProvider: "  GOOGLE_MAPS  ",
		GoogleMapsAPIKey:   "test-key",
	}

	estimator := NewTravelTimeEstimator(cfg)

	assert.IsType(t, &ResilientTravelTimeEstimator{}, estimator)
}

func TestNewTravelTimeEstimator_未知のプロバイダ名は簡易推定を返す(t *testing.T) {
	cfg := &config.Config{
		TravelTimeProvider: "unknown_provider",
		GoogleMapsAPIKey:   "test-key",
	}

	estimator := NewTravelTimeEstimator(cfg)

	assert.IsType(t, &SimpleHeuristicEstimator{}, estimator)
}

func TestNewTravelTimeEstimator_デフォルトは簡易推定(t *testing.T) {
	cfg := &config.Config{TravelTimeProvider: "simple"}

	estimator := NewTravelTimeEstimator(cfg)

	assert.IsType(t, &SimpleHeuristicEstimator{}, estimator)
}
