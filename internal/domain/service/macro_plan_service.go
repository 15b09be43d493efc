package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"tripweaver/internal/domain/model"
	"tripweaver/internal/domain/repository"
)

// macroPlanSystemPrompt マクロプラン生成時のシステム指示
const macroPlanSystemPrompt = `あなたは旅行プランナーです。旅行者の希望に沿った1日ごとのタイムブロック構成をJSON形式で出力してください。
出力はJSONのみとし、説明文は含めないでください。
block_typeは meal / activity / nightlife / rest / travel のいずれかです。`

// MacroPlanService 旅行仕様から日別スケルトンを生成するサービス
// テキスト生成が利用できない・失敗した場合は決定的なフォールバックスケルトンを使用する
type MacroPlanService struct {
	textGenRepo repository.TextGenerationRepository // nil可
}

// NewMacroPlanService マクロプランサービスを作成する（textGenRepoはnil可）
func NewMacroPlanService(textGenRepo repository.TextGenerationRepository) *MacroPlanService {
	return &MacroPlanService{textGenRepo: textGenRepo}
}

// Generate 旅行仕様からマクロプランを生成する
// LLMの出力が不正な場合もエラーにはせず、フォールバックスケルトンで続行する
func (s *MacroPlanService) Generate(ctx context.Context, trip *model.TripSpec) (*model.MacroPlan, error) {
	if s.textGenRepo != nil {
		plan, err := s.generateWithLLM(ctx, trip)
		if err != nil {
			log.Printf("⚠️ LLMによるマクロプラン生成に失敗しました。フォールバックスケルトンを使用します: %v", err)
		} else {
			return plan, nil
		}
	}
	return s.BuildFallbackPlan(trip), nil
}

// generateWithLLM テキスト生成でスケルトンを生成し、検証・正規化して返す
func (s *MacroPlanService) generateWithLLM(ctx context.Context, trip *model.TripSpec) (*model.MacroPlan, error) {
	prompt := buildMacroPlanPrompt(trip)

	text, err := s.textGenRepo.GenerateText(ctx, prompt, macroPlanSystemPrompt, 4096)
	if err != nil {
		return nil, fmt.Errorf("テキスト生成に失敗: %w", err)
	}

	var plan model.MacroPlan
	if err := json.Unmarshal([]byte(extractJSON(text)), &plan); err != nil {
		return nil, fmt.Errorf("マクロプランのパースに失敗: %w", err)
	}

	if err := s.normalizePlan(&plan, trip); err != nil {
		return nil, err
	}
	return &plan, nil
}

// normalizePlan LLM出力のスケルトンを検証し、欠けている情報を補完する
func (s *MacroPlanService) normalizePlan(plan *model.MacroPlan, trip *model.TripSpec) error {
	if len(plan.Days) == 0 {
		return fmt.Errorf("マクロプランに日が含まれていません")
	}
	for i := range plan.Days {
		day := &plan.Days[i]
		day.DayNumber = i + 1
		day.Date = trip.DateForDay(day.DayNumber)
		if len(day.Blocks) == 0 {
			return fmt.Errorf("%d日目にブロックが含まれていません", day.DayNumber)
		}
		for j := range day.Blocks {
			block := &day.Blocks[j]
			if !block.BlockType.IsValid() {
				return fmt.Errorf("不正なブロック種別です: %s", block.BlockType)
			}
			// POIが必要なブロックで希望カテゴリが欠けている場合は興味・デフォルトで補完
			if block.BlockType.NeedsPOI() && len(block.DesiredCategories) == 0 {
				block.DesiredCategories = desiredCategoriesFor(block.BlockType, trip)
			}
		}
	}
	return nil
}

// BuildFallbackPlan 生活リズムに基づく決定的なスケルトンを構築する
// テキスト生成を一切使わないため、同じ旅行仕様からは常に同じプランが得られる
func (s *MacroPlanService) BuildFallbackPlan(trip *model.TripSpec) *model.MacroPlan {
	routine := trip.DailyRoutine
	if routine.WakeTime == "" {
		routine = model.DefaultDailyRoutine()
	}

	numDays := trip.NumDays()
	days := make([]model.DaySkeleton, 0, numDays)
	for dayNumber := 1; dayNumber <= numDays; dayNumber++ {
		days = append(days, model.DaySkeleton{
			DayNumber: dayNumber,
			Date:      trip.DateForDay(dayNumber),
			Theme:     fmt.Sprintf("%s %d日目", trip.City, dayNumber),
			Blocks:    buildFallbackBlocks(routine, trip),
		})
	}
	return &model.MacroPlan{Days: days}
}

// buildFallbackBlocks 1日分のフォールバックブロック列を構築する
func buildFallbackBlocks(routine model.DailyRoutine, trip *model.TripSpec) []model.SkeletonBlock {
	return []model.SkeletonBlock{
		{
			BlockType:         model.BlockTypeMeal,
			StartTime:         routine.BreakfastWindow[0],
			EndTime:           routine.BreakfastWindow[1],
			Theme:             "朝食",
			DesiredCategories: desiredCategoriesFor(model.BlockTypeMeal, trip),
		},
		{
			BlockType:         model.BlockTypeActivity,
			StartTime:         routine.BreakfastWindow[1],
			EndTime:           routine.LunchWindow[0],
			Theme:             "午前の観光",
			DesiredCategories: desiredCategoriesFor(model.BlockTypeActivity, trip),
		},
		{
			BlockType:         model.BlockTypeMeal,
			StartTime:         routine.LunchWindow[0],
			EndTime:           routine.LunchWindow[1],
			Theme:             "昼食",
			DesiredCategories: desiredCategoriesFor(model.BlockTypeMeal, trip),
		},
		{
			BlockType:         model.BlockTypeActivity,
			StartTime:         routine.LunchWindow[1],
			EndTime:           "17:30",
			Theme:             "午後の観光",
			DesiredCategories: desiredCategoriesFor(model.BlockTypeActivity, trip),
		},
		{
			BlockType: model.BlockTypeRest,
			StartTime: "17:30",
			EndTime:   routine.DinnerWindow[0],
		},
		{
			BlockType:         model.BlockTypeMeal,
			StartTime:         routine.DinnerWindow[0],
			EndTime:           routine.DinnerWindow[1],
			Theme:             "夕食",
			DesiredCategories: desiredCategoriesFor(model.BlockTypeMeal, trip),
		},
		{
			BlockType:         model.BlockTypeNightlife,
			StartTime:         routine.DinnerWindow[1],
			EndTime:           routine.SleepTime,
			Theme:             "夜の時間",
			DesiredCategories: desiredCategoriesFor(model.BlockTypeNightlife, trip),
		},
	}
}

// desiredCategoriesFor ブロック種別の希望カテゴリを決定する
// activityブロックでは旅行者の興味を優先し、それ以外は種別のデフォルトを使う
func desiredCategoriesFor(blockType model.BlockType, trip *model.TripSpec) []string {
	if blockType == model.BlockTypeActivity && len(trip.Interests) > 0 {
		return append([]string(nil), trip.Interests...)
	}
	return model.GetDefaultCategories(blockType)
}

// buildMacroPlanPrompt 旅行仕様からマクロプラン生成用のプロンプトを組み立てる
func buildMacroPlanPrompt(trip *model.TripSpec) string {
	var sb strings.Builder
	sb.WriteString("以下の旅行のタイムブロック構成を生成してください。\n\n")
	sb.WriteString(fmt.Sprintf("都市: %s\n", trip.City))
	sb.WriteString(fmt.Sprintf("日程: %s 〜 %s (%d日間)\n", trip.StartDate, trip.EndDate, trip.NumDays()))
	sb.WriteString(fmt.Sprintf("人数: %d人\n", trip.NumTravelers))
	sb.WriteString(fmt.Sprintf("ペース: %s\n", trip.Pace))
	sb.WriteString(fmt.Sprintf("予算: %s\n", trip.Budget))
	if len(trip.Interests) > 0 {
		sb.WriteString(fmt.Sprintf("興味: %s\n", strings.Join(trip.Interests, ", ")))
	}
	routine := trip.DailyRoutine
	if routine.WakeTime == "" {
		routine = model.DefaultDailyRoutine()
	}
	sb.WriteString(fmt.Sprintf("起床: %s / 就寝: %s\n", routine.WakeTime, routine.SleepTime))
	sb.WriteString(fmt.Sprintf("朝食: %s-%s / 昼食: %s-%s / 夕食: %s-%s\n",
		routine.BreakfastWindow[0], routine.BreakfastWindow[1],
		routine.LunchWindow[0], routine.LunchWindow[1],
		routine.DinnerWindow[0], routine.DinnerWindow[1]))
	sb.WriteString(`
出力形式:
{
  "days": [
    {
      "day_number": 1,
      "theme": "1日のテーマ",
      "blocks": [
        {"block_type": "meal", "start_time": "08:00", "end_time": "09:30", "theme": "朝食", "desired_categories": ["cafe"]}
      ]
    }
  ]
}`)
	return sb.String()
}

// extractJSON LLMの出力からJSON部分を抽出する（コードフェンスや前後の説明文を除去）
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			return text[start : end+1]
		}
	}
	return text
}
