package model

// TravelLocation 移動時間推定の端点。POIが選択されていないブロックでは未設定となる
type TravelLocation struct {
	Lat   float64
	Lng   float64
	Valid bool // 座標が有効かどうか
}

// TravelLocationFromPOI POI候補から移動端点を作成する（nil・座標なしの場合は無効な端点）
func TravelLocationFromPOI(poi *POICandidate) TravelLocation {
	if poi == nil || !poi.HasCoordinates() {
		return TravelLocation{}
	}
	return TravelLocation{Lat: *poi.Lat, Lng: *poi.Lon, Valid: true}
}

// ToLatLng TravelLocation を LatLng 型に変換
func (t TravelLocation) ToLatLng() LatLng {
	return LatLng{Lat: t.Lat, Lng: t.Lng}
}

// TravelEstimate 2地点間の移動推定結果
// 永続化されず、Itineraryブロックに埋め込まれる形でのみ保持される
type TravelEstimate struct {
	DurationMinutes int     `json:"duration_minutes"` // 0以上
	DistanceMeters  *int    `json:"distance_meters,omitempty"`
	Polyline        *string `json:"polyline,omitempty"` // エンコード済み経路
}
