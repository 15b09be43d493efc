package maps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripweaver/internal/domain/model"
)

func testLocations() (model.TravelLocation, model.TravelLocation) {
	origin := model.TravelLocation{Lat: 34.9858, Lng: 135.7588, Valid: true}
	destination := model.TravelLocation{Lat: 35.0394, Lng: 135.7292, Valid: true}
	return origin, destination
}

func TestNewGoogleRoutesProvider_APIキーが空の場合は設定エラー(t *testing.T) {
	_, err := NewGoogleRoutesProvider("", "", 10*time.Second)

	require.Error(t, err)
	var configErr *model.ConfigurationError
	assert.ErrorAs(t, err, &configErr, "呼び出し時ではなくコンストラクタで失敗する")
}

func TestGoogleRoutesProvider_正常なレスポンスをパースする(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))
		assert.NotEmpty(t, r.Header.Get("X-Goog-FieldMask"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"routes": [{"duration": "780s", "distanceMeters": 6500, "polyline": {"encodedPolyline": "abc123"}}]}`))
	}))
	defer server.Close()

	provider, err := NewGoogleRoutesProvider("test-key", server.URL, 10*time.Second)
	require.NoError(t, err)

	origin, destination := testLocations()
	estimate, err := provider.Estimate(context.Background(), origin, destination, model.TravelModeWalking)

	require.NoError(t, err)
	assert.Equal(t, 13, estimate.DurationMinutes)
	require.NotNil(t, estimate.DistanceMeters)
	assert.Equal(t, 6500, *estimate.DistanceMeters)
	require.NotNil(t, estimate.Polyline)
	assert.Equal(t, "abc123", *estimate.Polyline)
}

func TestGoogleRoutesProvider_不正な所要時間はエラーになる(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"routes": [{"duration": "0s", "distanceMeters": 100}]}`))
	}))
	defer server.Close()

	provider, err := NewGoogleRoutesProvider("test-key", server.URL, 10*time.Second)
	require.NoError(t, err)

	origin, destination := testLocations()
	_, err = provider.Estimate(context.Background(), origin, destination, model.TravelModeWalking)

	require.Error(t, err, "0以下の所要時間は契約違反として扱う")
	var upstreamErr *model.UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
}

func TestGoogleRoutesProvider_ルートなしレスポンスはエラーになる(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"routes": []}`))
	}))
	defer server.Close()

	provider, err := NewGoogleRoutesProvider("test-key", server.URL, 10*time.Second)
	require.NoError(t, err)

	origin, destination := testLocations()
	_, err = provider.Estimate(context.Background(), origin, destination, model.TravelModeWalking)

	require.Error(t, err)
	var upstreamErr *model.UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
}

func TestGoogleRoutesProvider_エラーステータスはUpstreamErrorになる(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	provider, err := NewGoogleRoutesProvider("test-key", server.URL, 10*time.Second)
	require.NoError(t, err)

	origin, destination := testLocations()
	_, err = provider.Estimate(context.Background(), origin, destination, model.TravelModeDriving)

	require.Error(t, err)
	var upstreamErr *model.UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
}

func TestParseDurationSeconds(t *testing.T) {
	sec, err := parseDurationSeconds("780s")
	require.NoError(t, err)
	assert.Equal(t, 780, sec)

	_, err = parseDurationSeconds("")
	assert.Error(t, err)

	_, err = parseDurationSeconds("abcs")
	assert.Error(t, err)
}
