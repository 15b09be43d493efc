package ai

import (
	"context"

	"tripweaver/internal/domain/repository"
)

// geminiTextRepository はGemini APIを使用してTextGenerationRepositoryを実装
type geminiTextRepository struct {
	client *GeminiClient
}

// NewGeminiTextRepository は新しいgeminiTextRepositoryインスタンスを作成
func NewGeminiTextRepository(client *GeminiClient) repository.TextGenerationRepository {
	return &geminiTextRepository{
		client: client,
	}
}

// GenerateText はプロンプトからテキストを生成する
func (g *geminiTextRepository) GenerateText(ctx context.Context, prompt, systemPrompt string, maxTokens int) (string, error) {
	return g.client.GenerateContent(ctx, prompt, systemPrompt, maxTokens)
}
