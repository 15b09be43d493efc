package config

import (
	"os"
	"strconv"
	"time"
)

// Config 環境変数から読み込むアプリケーション設定
type Config struct {
	// サーバー
	Port string

	// データベース
	DatabaseURL     string
	POIStore        string // "postgres"（デフォルト）または "supabase"
	SupabaseURL     string
	SupabaseAnonKey string

	// Google Places API（外部POI検索）
	GoogleMapsAPIKey    string
	GooglePlacesBaseURL string
	PlacesTimeout       time.Duration

	// Google Routes API（移動時間推定）
	GoogleRoutesBaseURL string
	RoutesTimeout       time.Duration

	// 移動時間プロバイダ選択: "simple"（デフォルト）または "google_maps"
	TravelTimeProvider string

	// テキスト生成（Gemini）
	GeminiAPIKey string

	// Firestore（保存済み旅行スナップショット、任意）
	FirestoreProjectID string
}

// Load 環境変数から設定を読み込む（未設定の項目はデフォルト値を使用）
func Load() *Config {
	return &Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		POIStore:            getEnv("POI_STORE", "postgres"),
		SupabaseURL:         os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:     os.Getenv("SUPABASE_ANON_KEY"),
		GoogleMapsAPIKey:    os.Getenv("GOOGLE_MAPS_API_KEY"),
		GooglePlacesBaseURL: getEnv("GOOGLE_PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place/textsearch/json"),
		PlacesTimeout:       getEnvSeconds("GOOGLE_PLACES_TIMEOUT_SECONDS", 10),
		GoogleRoutesBaseURL: getEnv("GOOGLE_ROUTES_BASE_URL", "https://routes.googleapis.com/directions/v2:computeRoutes"),
		RoutesTimeout:       getEnvSeconds("GOOGLE_ROUTES_TIMEOUT_SECONDS", 10),
		TravelTimeProvider:  getEnv("TRAVEL_TIME_PROVIDER", "simple"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		FirestoreProjectID:  os.Getenv("FIRESTORE_PROJECT_ID"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvSeconds(key string, fallback int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(fallback) * time.Second
}
