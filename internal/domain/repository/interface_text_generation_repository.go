package repository

import "context"

// TextGenerationRepository テキスト生成能力（LLM）への不透明なインターフェース
// マクロプラン生成と旅行チャットで使用する
type TextGenerationRepository interface {
	GenerateText(ctx context.Context, prompt, systemPrompt string, maxTokens int) (string, error)
}
