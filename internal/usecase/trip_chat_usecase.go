package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"tripweaver/internal/domain/model"
	"tripweaver/internal/domain/repository"
	"tripweaver/internal/infrastructure/cache"
)

// chatCacheScope キャッシュキーのスコープ識別子
const chatCacheScope = "trip_chat"

// chatCacheTTL 同一質問への回答をキャッシュする時間
const chatCacheTTL = time.Hour

// chatSystemPrompt 旅行チャットのシステム指示
const chatSystemPrompt = `あなたは旅行アシスタントです。旅行者の質問に簡潔かつ具体的に日本語で答えてください。`

// TripChatRequest 旅行チャットのリクエスト
type TripChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// TripChatResponse 旅行チャットのレスポンス
type TripChatResponse struct {
	TripID string `json:"trip_id"`
	Answer string `json:"answer"`
	Cached bool   `json:"cached"`
}

type TripChatUseCase interface {
	// Chat は旅行のコンテキストを付けて質問に回答する。同一質問への回答はキャッシュする
	Chat(ctx context.Context, tripID string, req *TripChatRequest) (*TripChatResponse, error)
}

// tripChatUseCaseImpl はTripChatUseCaseの実装
type tripChatUseCaseImpl struct {
	tripsRepo     repository.TripsRepository
	textGenRepo   repository.TextGenerationRepository
	responseCache cache.ResponseCache
}

// NewTripChatUseCase は新しいTripChatUseCaseインスタンスを作成
func NewTripChatUseCase(
	tripsRepo repository.TripsRepository,
	textGenRepo repository.TextGenerationRepository,
	responseCache cache.ResponseCache,
) TripChatUseCase {
	return &tripChatUseCaseImpl{
		tripsRepo:     tripsRepo,
		textGenRepo:   textGenRepo,
		responseCache: responseCache,
	}
}

// Chat は旅行のコンテキストを付けて質問に回答する
func (u *tripChatUseCaseImpl) Chat(ctx context.Context, tripID string, req *TripChatRequest) (*TripChatResponse, error) {
	trip, err := u.tripsRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	cacheKey := cache.BuildCacheKey(chatCacheScope, tripID+"|"+req.Message)
	if cached, ok := u.responseCache.Get(cacheKey); ok {
		log.Printf("💾 チャット回答のキャッシュヒット (trip: %s)", tripID)
		return &TripChatResponse{TripID: tripID, Answer: cached, Cached: true}, nil
	}

	prompt := buildChatPrompt(trip, req.Message)
	answer, err := u.textGenRepo.GenerateText(ctx, prompt, chatSystemPrompt, 1024)
	if err != nil {
		return nil, fmt.Errorf("チャット回答の生成に失敗: %w", err)
	}

	u.responseCache.Set(cacheKey, answer, chatCacheTTL)
	return &TripChatResponse{TripID: tripID, Answer: answer, Cached: false}, nil
}

// buildChatPrompt 旅行のコンテキストと質問からプロンプトを組み立てる
func buildChatPrompt(trip *model.TripSpec, message string) string {
	var sb strings.Builder
	sb.WriteString("旅行のコンテキスト:\n")
	sb.WriteString(fmt.Sprintf("都市: %s / 日程: %s〜%s / 人数: %d人 / 予算: %s\n",
		trip.City, trip.StartDate, trip.EndDate, trip.NumTravelers, trip.Budget))
	if len(trip.Interests) > 0 {
		sb.WriteString(fmt.Sprintf("興味: %s\n", strings.Join(trip.Interests, ", ")))
	}
	sb.WriteString("\n質問:\n")
	sb.WriteString(message)
	return sb.String()
}
