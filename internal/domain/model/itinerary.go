package model

import "time"

// ItineraryBlock 最終的な旅程の1ブロック
// POIは選択候補のコピーを保持する（POIプランとのエイリアスにはしない）
type ItineraryBlock struct {
	BlockType            BlockType     `json:"block_type"`
	StartTime            string        `json:"start_time"`
	EndTime              string        `json:"end_time"`
	POI                  *POICandidate `json:"poi,omitempty"`
	TravelTimeFromPrev   int           `json:"travel_time_from_prev"` // 分
	TravelDistanceMeters *int          `json:"travel_distance_meters,omitempty"`
	TravelPolyline       *string       `json:"travel_polyline,omitempty"`
	Notes                *string       `json:"notes,omitempty"`
}

// ItineraryDay 1日分の旅程
type ItineraryDay struct {
	DayNumber           int              `json:"day_number"`
	Date                string           `json:"date"`
	Theme               string           `json:"theme,omitempty"`
	Blocks              []ItineraryBlock `json:"blocks"`
	TotalDistanceMeters int              `json:"total_distance_meters"`
}

// SumTravelDistanceMeters ブロックの移動距離を合計する
func (d *ItineraryDay) SumTravelDistanceMeters() int {
	total := 0
	for _, b := range d.Blocks {
		if b.TravelDistanceMeters != nil {
			total += *b.TravelDistanceMeters
		}
	}
	return total
}

// Itinerary 確定した旅程（日別・時刻付き・POI割り当て済み）
type Itinerary struct {
	Days []ItineraryDay `json:"days"`
}

// ItineraryResponse 旅程APIレスポンス
type ItineraryResponse struct {
	TripID    string         `json:"trip_id"`
	Days      []ItineraryDay `json:"days"`
	CreatedAt time.Time      `json:"created_at"`
}

// SavedTrip 保存済み旅行のスナップショット
type SavedTrip struct {
	SavedTripID string         `json:"saved_trip_id"`
	TripID      string         `json:"trip_id"`
	Title       string         `json:"title"`
	City        string         `json:"city"`
	StartDate   string         `json:"start_date"`
	EndDate     string         `json:"end_date"`
	Days        []ItineraryDay `json:"days"`
	SavedAt     time.Time      `json:"saved_at"`
}

// FirestoreSavedTrip Firestore保存用のスナップショット構造体
type FirestoreSavedTrip struct {
	TripID    string         `firestore:"trip_id"`
	Title     string         `firestore:"title"`
	City      string         `firestore:"city"`
	StartDate string         `firestore:"start_date"`
	EndDate   string         `firestore:"end_date"`
	Days      []ItineraryDay `firestore:"days"`
	SavedAt   time.Time      `firestore:"saved_at"`
	ExpireAt  time.Time      `firestore:"expireAt"`
}

// ToFirestoreSavedTrip SavedTrip を Firestore 保存用に変換する
func (s *SavedTrip) ToFirestoreSavedTrip(ttlDays int) *FirestoreSavedTrip {
	return &FirestoreSavedTrip{
		TripID:    s.TripID,
		Title:     s.Title,
		City:      s.City,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		Days:      s.Days,
		SavedAt:   s.SavedAt,
		ExpireAt:  s.SavedAt.Add(time.Duration(ttlDays) * 24 * time.Hour),
	}
}

// ToSavedTrip Firestore 構造体から SavedTrip に変換する
func (f *FirestoreSavedTrip) ToSavedTrip(savedTripID string) *SavedTrip {
	return &SavedTrip{
		SavedTripID: savedTripID,
		TripID:      f.TripID,
		Title:       f.Title,
		City:        f.City,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		Days:        f.Days,
		SavedAt:     f.SavedAt,
	}
}
