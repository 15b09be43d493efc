package model

import "time"

// POIPlanBlock POIが必要なスケルトンブロック1つ分の候補リスト
// 候補リストの順序が選択優先度（先頭が最良ランク）。空リストは「候補なし」として有効
type POIPlanBlock struct {
	DayNumber  int            `json:"day_number"`
	BlockIndex int            `json:"block_index"`
	BlockType  BlockType      `json:"block_type"`
	BlockTheme string         `json:"block_theme,omitempty"`
	Candidates []POICandidate `json:"candidates"`
}

// POIPlan 旅行全体のPOI候補プラン
type POIPlan struct {
	Blocks []POIPlanBlock `json:"blocks"`
}

// FindBlock (日番号, ブロックindex) に一致するブロックを探す
func (p *POIPlan) FindBlock(dayNumber, blockIndex int) *POIPlanBlock {
	for i := range p.Blocks {
		if p.Blocks[i].DayNumber == dayNumber && p.Blocks[i].BlockIndex == blockIndex {
			return &p.Blocks[i]
		}
	}
	return nil
}

// POIPlanResponse POIプランAPIレスポンス
type POIPlanResponse struct {
	TripID    string         `json:"trip_id"`
	Blocks    []POIPlanBlock `json:"blocks"`
	CreatedAt time.Time      `json:"created_at"`
}
