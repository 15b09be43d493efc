package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tripweaver/internal/config"
	"tripweaver/internal/domain/service"
	"tripweaver/internal/handler"
	"tripweaver/internal/infrastructure/ai"
	"tripweaver/internal/infrastructure/cache"
	"tripweaver/internal/infrastructure/database"
	"tripweaver/internal/infrastructure/firestore"
	"tripweaver/internal/infrastructure/places"
	"tripweaver/internal/repository"
	"tripweaver/internal/usecase"

	domainRepo "tripweaver/internal/domain/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	// PostgreSQL（旅行仕様・プラン成果物の永続化）
	fmt.Println("Initializing PostgreSQL client...")
	pgClient, err := database.NewPostgreSQLClientWithRetry(5, 3*time.Second)
	if err != nil {
		log.Fatalf("PostgreSQLクライアント初期化失敗: %v", err)
	}
	defer pgClient.Close()

	if err := pgClient.HealthCheck(); err != nil {
		log.Fatalf("PostgreSQLヘルスチェック失敗: %v", err)
	}
	fmt.Println("✅ PostgreSQL connection successful!")

	tripsRepo := repository.NewPostgresTripsRepository(pgClient)
	plansRepo := repository.NewPostgresPlansRepository(pgClient)

	// POIストアの選択（POI_STORE: "postgres" または "supabase"）
	var poiRepo domainRepo.POIsRepository
	if cfg.POIStore == "supabase" {
		fmt.Println("Initializing Supabase client for POI store...")
		supabaseClient, err := database.NewSupabaseClient()
		if err != nil {
			log.Fatalf("Supabaseクライアント初期化失敗: %v", err)
		}
		poiRepo = repository.NewSupabasePOIsRepository(supabaseClient)
		log.Println("✅ POIストア: Supabase (PostgREST) を使用します")
	} else {
		poiRepo = repository.NewPostgresPOIsRepository(pgClient)
		log.Println("✅ POIストア: PostgreSQL を使用します")
	}

	// 候補ソースの構築（ローカル優先、外部検索は設定時のみ）
	localSource := service.NewLocalPOISource(poiRepo)
	var externalSource service.CandidateSource
	if cfg.GoogleMapsAPIKey != "" {
		placesSource, err := places.NewGooglePlacesSource(cfg.GoogleMapsAPIKey, cfg.GooglePlacesBaseURL, cfg.PlacesTimeout, poiRepo)
		if err != nil {
			log.Fatalf("Google Places初期化失敗: %v", err)
		}
		externalSource = placesSource
		log.Println("✅ 外部POI検索: Google Places API を使用します")
	} else {
		log.Println("⚠️ GOOGLE_MAPS_API_KEYが未設定のため、POI検索はローカルストアのみで動作します")
	}
	candidateSource := service.NewCompositePOISource(localSource, externalSource)

	// 移動時間推定器（設定に応じてGoogle Routes / 簡易推定を選択）
	estimator := service.NewTravelTimeEstimator(cfg)

	// テキスト生成（Gemini、未設定の場合はフォールバックスケルトンのみで動作）
	var textGenRepo domainRepo.TextGenerationRepository
	if cfg.GeminiAPIKey != "" {
		textGenRepo = ai.NewGeminiTextRepository(ai.NewGeminiClient(cfg.GeminiAPIKey))
		log.Println("✅ テキスト生成: Gemini API を使用します")
	} else {
		log.Println("⚠️ GEMINI_API_KEYが未設定のため、マクロプランはフォールバックスケルトンのみで生成されます")
	}

	// ドメインサービスとユースケース
	macroPlanSvc := service.NewMacroPlanService(textGenRepo)
	poiPlanSvc := service.NewPOIPlanService(candidateSource)
	routeOptimizer := service.NewRouteOptimizerService(estimator)

	tripUseCase := usecase.NewTripUseCase(tripsRepo)
	planningUseCase := usecase.NewTripPlanningUseCase(tripsRepo, plansRepo, macroPlanSvc, poiPlanSvc, routeOptimizer)

	// ルーティング
	router := gin.Default()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "tripweaver"})
	})

	tripsHandler := handler.NewTripsHandler(tripUseCase)
	router.POST("/trips", tripsHandler.PostTrip)
	router.GET("/trips/:id", tripsHandler.GetTrip)
	router.PATCH("/trips/:id", tripsHandler.PatchTrip)

	planHandler := handler.NewPlanHandler(planningUseCase)
	router.POST("/trips/:id/macro-plan", planHandler.PostMacroPlan)
	router.GET("/trips/:id/macro-plan", planHandler.GetMacroPlan)
	router.POST("/trips/:id/poi-plan", planHandler.PostPOIPlan)
	router.GET("/trips/:id/poi-plan", planHandler.GetPOIPlan)
	router.POST("/trips/:id/itinerary", planHandler.PostItinerary)
	router.GET("/trips/:id/itinerary", planHandler.GetItinerary)
	router.POST("/trips/:id/plan", planHandler.PostPlan)

	// 旅行チャット（テキスト生成が有効な場合のみ）
	if textGenRepo != nil {
		responseCache := cache.NewInMemoryResponseCache()
		chatUseCase := usecase.NewTripChatUseCase(tripsRepo, textGenRepo, responseCache)
		chatHandler := handler.NewTripChatHandler(chatUseCase)
		router.POST("/trips/:id/chat", chatHandler.PostChat)
	}

	// 旅程スナップショット（Firestoreが設定されている場合のみ）
	if cfg.FirestoreProjectID != "" {
		fsClient, err := firestore.NewFirestoreClient(ctx, cfg.FirestoreProjectID)
		if err != nil {
			log.Fatalf("Firestoreクライアント初期化失敗: %v", err)
		}
		defer fsClient.Close()

		savedTripsRepo := repository.NewFirestoreSavedTripsRepository(fsClient.GetClient())
		savedTripUseCase := usecase.NewSavedTripUseCase(tripsRepo, plansRepo, savedTripsRepo)
		savedTripsHandler := handler.NewSavedTripsHandler(savedTripUseCase)
		router.POST("/saved-trips", savedTripsHandler.PostSavedTrip)
		router.GET("/saved-trips", savedTripsHandler.GetSavedTrips)
		router.GET("/saved-trips/:id", savedTripsHandler.GetSavedTrip)
		router.DELETE("/saved-trips/:id", savedTripsHandler.DeleteSavedTrip)
	} else {
		log.Println("⚠️ FIRESTORE_PROJECT_IDが未設定のため、旅程スナップショット機能は無効です")
	}

	fmt.Printf("tripweaver server starting on :%s...\n", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("サーバーの起動に失敗: %v", err)
	}
}
