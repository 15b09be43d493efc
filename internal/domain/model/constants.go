package model

// BlockType 1日のスケルトンを構成する時間ブロックの種別
type BlockType string

const (
	BlockTypeMeal      BlockType = "meal"
	BlockTypeActivity  BlockType = "activity"
	BlockTypeNightlife BlockType = "nightlife"
	BlockTypeRest      BlockType = "rest"
	BlockTypeTravel    BlockType = "travel"
)

// NeedsPOI ブロック種別がPOI候補を必要とするかチェック
func (b BlockType) NeedsPOI() bool {
	switch b {
	case BlockTypeMeal, BlockTypeActivity, BlockTypeNightlife:
		return true
	}
	return false
}

// IsValid ブロック種別が定義済みかチェック
func (b BlockType) IsValid() bool {
	switch b {
	case BlockTypeMeal, BlockTypeActivity, BlockTypeNightlife, BlockTypeRest, BlockTypeTravel:
		return true
	}
	return false
}

// BudgetLevel 予算レベル（序数として価格帯と比較する）
type BudgetLevel string

const (
	BudgetLow    BudgetLevel = "low"
	BudgetMedium BudgetLevel = "medium"
	BudgetHigh   BudgetLevel = "high"
)

// MaxPriceLevel 予算レベルに対応する価格帯の上限（Google Placesの0〜4スケール）
func (b BudgetLevel) MaxPriceLevel() int {
	switch b {
	case BudgetLow:
		return 1
	case BudgetMedium:
		return 2
	case BudgetHigh:
		return 4
	}
	return 4
}

// PaceLevel 旅行のペース
type PaceLevel string

const (
	PaceRelaxed  PaceLevel = "relaxed"
	PaceModerate PaceLevel = "moderate"
	PacePacked   PaceLevel = "packed"
)

// TravelMode 移動手段
const (
	TravelModeWalking = "walking"
	TravelModeDriving = "driving"
)

// defaultNotesMap POIを持たないブロック種別のデフォルトノート
var defaultNotesMap = map[BlockType]string{
	BlockTypeRest:   "ホテルで休憩",
	BlockTypeTravel: "移動時間",
}

// GetDefaultNote ブロック種別のデフォルトノートを取得する（テーマがあればそちらを優先）
func GetDefaultNote(blockType BlockType, theme string) string {
	if theme != "" {
		return theme
	}
	if note, ok := defaultNotesMap[blockType]; ok {
		return note
	}
	return ""
}

// defaultCategoriesMap フォールバックスケルトンで使用するブロック種別ごとの希望カテゴリ
var defaultCategoriesMap = map[BlockType][]string{
	BlockTypeMeal:      {"restaurant", "cafe"},
	BlockTypeActivity:  {"museum", "park", "attraction"},
	BlockTypeNightlife: {"bar", "nightlife"},
}

// GetDefaultCategories ブロック種別のデフォルト希望カテゴリを取得する
func GetDefaultCategories(blockType BlockType) []string {
	if cats, ok := defaultCategoriesMap[blockType]; ok {
		return append([]string(nil), cats...)
	}
	return nil
}
