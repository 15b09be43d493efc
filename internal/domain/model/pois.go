package model

// LatLng 緯度経度を表す基本的な型（距離計算・経路検索で使用）
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location リクエストで受け取る座標（バリデーション付き）
type Location struct {
	Latitude  float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

// ToLatLng Location を LatLng 型に変換
func (l *Location) ToLatLng() LatLng {
	return LatLng{Lat: l.Latitude, Lng: l.Longitude}
}

// POICandidate 検索で返されるランク付きスポット候補
// ソースから返された時点で不変。rank_score が大きいほど優先される
type POICandidate struct {
	ID         string   `json:"poi_id"`
	Name       string   `json:"name"`
	City       string   `json:"city,omitempty"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`      // 0〜5（NULLABLE）
	PriceLevel *int     `json:"price_level,omitempty"` // 価格帯（序数、NULLABLE）
	Location   string   `json:"location"`              // 住所などの自由テキスト
	Lat        *float64 `json:"lat,omitempty"`
	Lon        *float64 `json:"lon,omitempty"`
	RankScore  float64  `json:"rank_score"`
}

// HasCoordinates 座標が設定されているかチェック
func (p *POICandidate) HasCoordinates() bool {
	return p.Lat != nil && p.Lon != nil
}

// ToLatLng POI候補の座標を LatLng 型に変換（未設定の場合はゼロ値）
func (p *POICandidate) ToLatLng() LatLng {
	if !p.HasCoordinates() {
		return LatLng{}
	}
	return LatLng{Lat: *p.Lat, Lng: *p.Lon}
}

// GetRating 評価値が存在する場合は値を、存在しない場合は0を返す
func (p *POICandidate) GetRating() float64 {
	if p.Rating != nil {
		return *p.Rating
	}
	return 0
}

// SetCoordinates 座標を設定する
func (p *POICandidate) SetCoordinates(lat, lon float64) {
	p.Lat = &lat
	p.Lon = &lon
}

// Clone 候補のコピーを返す（Itineraryブロックは選択候補を参照ではなくコピーで保持する）
func (p *POICandidate) Clone() *POICandidate {
	if p == nil {
		return nil
	}
	c := *p
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	if p.Rating != nil {
		v := *p.Rating
		c.Rating = &v
	}
	if p.PriceLevel != nil {
		v := *p.PriceLevel
		c.PriceLevel = &v
	}
	if p.Lat != nil {
		v := *p.Lat
		c.Lat = &v
	}
	if p.Lon != nil {
		v := *p.Lon
		c.Lon = &v
	}
	return &c
}
