package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripweaver/internal/domain/model"
)

// stubTextGenerator テスト用のテキスト生成スタブ
type stubTextGenerator struct {
	response string
	err      error
}

func (s *stubTextGenerator) GenerateText(ctx context.Context, prompt, systemPrompt string, maxTokens int) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func multiDayTrip() *model.TripSpec {
	trip := testTrip("Kyoto")
	trip.EndDate = "2026-09-03"
	trip.Interests = []string{"temple", "garden"}
	return trip
}

func TestMacroPlanService_テキスト生成なしでもフォールバックで生成できる(t *testing.T) {
	svc := NewMacroPlanService(nil)

	plan, err := svc.Generate(context.Background(), multiDayTrip())

	require.NoError(t, err)
	require.Len(t, plan.Days, 3, "旅行日数分の日が生成される")
	assert.Equal(t, 1, plan.Days[0].DayNumber)
	assert.Equal(t, "2026-09-01", plan.Days[0].Date)
	assert.Equal(t, "2026-09-03", plan.Days[2].Date)

	for _, block := range plan.Days[0].Blocks {
		if block.BlockType.NeedsPOI() {
			assert.NotEmpty(t, block.DesiredCategories, "POIが必要なブロックには必ず希望カテゴリが付く")
		}
	}
}

func TestMacroPlanService_フォールバックは決定的(t *testing.T) {
	svc := NewMacroPlanService(nil)

	first, err := svc.Generate(context.Background(), multiDayTrip())
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), multiDayTrip())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMacroPlanService_activityブロックは興味を希望カテゴリにする(t *testing.T) {
	svc := NewMacroPlanService(nil)

	plan, err := svc.Generate(context.Background(), multiDayTrip())
	require.NoError(t, err)

	var found bool
	for _, block := range plan.Days[0].Blocks {
		if block.BlockType == model.BlockTypeActivity {
			assert.Equal(t, []string{"temple", "garden"}, block.DesiredCategories)
			found = true
		}
	}
	assert.True(t, found)
}

func TestMacroPlanService_LLM出力をパースして正規化する(t *testing.T) {
	response := "```json\n" + `{
		"days": [
			{
				"theme": "歴史めぐり",
				"blocks": [
					{"block_type": "meal", "start_time": "08:00", "end_time": "09:30", "theme": "朝食"},
					{"block_type": "activity", "start_time": "10:00", "end_time": "12:00", "desired_categories": ["temple"]}
				]
			}
		]
	}` + "\n```"
	svc := NewMacroPlanService(&stubTextGenerator{response: response})

	trip := testTrip("Kyoto")
	plan, err := svc.Generate(context.Background(), trip)

	require.NoError(t, err)
	require.Len(t, plan.Days, 1)
	assert.Equal(t, 1, plan.Days[0].DayNumber, "日番号は正規化で振り直される")
	assert.Equal(t, "2026-09-01", plan.Days[0].Date)

	mealBlock := plan.Days[0].Blocks[0]
	assert.NotEmpty(t, mealBlock.DesiredCategories, "希望カテゴリが欠けたmealブロックはデフォルトで補完される")
}

func TestMacroPlanService_LLM失敗時はフォールバックに切り替わる(t *testing.T) {
	svc := NewMacroPlanService(&stubTextGenerator{err: errors.New("APIエラー")})

	plan, err := svc.Generate(context.Background(), multiDayTrip())

	require.NoError(t, err, "LLMの失敗はエラーとして伝播しない")
	assert.Len(t, plan.Days, 3)
}

func TestMacroPlanService_不正なLLM出力はフォールバックに切り替わる(t *testing.T) {
	svc := NewMacroPlanService(&stubTextGenerator{response: "JSONではない自由文の回答"})

	plan, err := svc.Generate(context.Background(), multiDayTrip())

	require.NoError(t, err)
	assert.Len(t, plan.Days, 3, "パース不能な出力でもフォールバックスケルトンが得られる")
}

func TestMacroPlanService_不正なブロック種別はフォールバックに切り替わる(t *testing.T) {
	response := `{"days": [{"blocks": [{"block_type": "shopping", "start_time": "10:00", "end_time": "12:00"}]}]}`
	svc := NewMacroPlanService(&stubTextGenerator{response: response})

	plan, err := svc.Generate(context.Background(), multiDayTrip())

	require.NoError(t, err)
	require.Len(t, plan.Days, 3)
	for _, block := range plan.Days[0].Blocks {
		assert.True(t, block.BlockType.IsValid())
	}
}
