package model

import "time"

// SkeletonBlock マクロプランが生成する1日の時間ブロック
// 下流のステージからは読み取り専用として扱う
type SkeletonBlock struct {
	BlockType         BlockType `json:"block_type"`
	StartTime         string    `json:"start_time"` // HH:MM
	EndTime           string    `json:"end_time"`
	Theme             string    `json:"theme,omitempty"`
	DesiredCategories []string  `json:"desired_categories,omitempty"` // POIが必要なブロックのみ
}

// DaySkeleton 1日分のブロック列
type DaySkeleton struct {
	DayNumber int             `json:"day_number"` // 1始まり
	Date      string          `json:"date"`
	Theme     string          `json:"theme,omitempty"`
	Blocks    []SkeletonBlock `json:"blocks"`
}

// MacroPlan 旅行全体の日別スケルトン
type MacroPlan struct {
	Days []DaySkeleton `json:"days"`
}

// MacroPlanResponse マクロプランAPIレスポンス
type MacroPlanResponse struct {
	TripID    string        `json:"trip_id"`
	Days      []DaySkeleton `json:"days"`
	CreatedAt time.Time     `json:"created_at"`
}
