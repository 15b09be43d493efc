package model

import "time"

// DailyRoutine 旅行者の1日の生活リズム（スケルトン生成の時間枠に使用）
type DailyRoutine struct {
	WakeTime        string    `json:"wake_time"`
	SleepTime       string    `json:"sleep_time"`
	BreakfastWindow [2]string `json:"breakfast_window"`
	LunchWindow     [2]string `json:"lunch_window"`
	DinnerWindow    [2]string `json:"dinner_window"`
}

// DefaultDailyRoutine デフォルトの生活リズムを返す
func DefaultDailyRoutine() DailyRoutine {
	return DailyRoutine{
		WakeTime:        "08:00",
		SleepTime:       "23:00",
		BreakfastWindow: [2]string{"08:00", "09:30"},
		LunchWindow:     [2]string{"12:00", "14:00"},
		DinnerWindow:    [2]string{"18:30", "21:00"},
	}
}

// TripSpec 旅行の仕様（フォーム入力から収集される）
type TripSpec struct {
	ID            string       `json:"id"`
	City          string       `json:"city"`
	StartDate     string       `json:"start_date"` // YYYY-MM-DD
	EndDate       string       `json:"end_date"`
	NumTravelers  int          `json:"num_travelers"`
	Pace          PaceLevel    `json:"pace"`
	Budget        BudgetLevel  `json:"budget"`
	Interests     []string     `json:"interests"`
	DailyRoutine  DailyRoutine `json:"daily_routine"`
	HotelLocation *Location    `json:"hotel_location,omitempty"` // ランキングの基準地点
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// NumDays 旅行日数を計算する（日付が不正な場合は1）
func (t *TripSpec) NumDays() int {
	start, err1 := time.Parse("2006-01-02", t.StartDate)
	end, err2 := time.Parse("2006-01-02", t.EndDate)
	if err1 != nil || err2 != nil {
		return 1
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// DateForDay 指定した日番号（1始まり）の日付文字列を返す
func (t *TripSpec) DateForDay(dayNumber int) string {
	start, err := time.Parse("2006-01-02", t.StartDate)
	if err != nil {
		return ""
	}
	return start.AddDate(0, 0, dayNumber-1).Format("2006-01-02")
}

// TripCreateRequest 旅行作成リクエスト
type TripCreateRequest struct {
	City          string        `json:"city" validate:"required"`
	StartDate     string        `json:"start_date" validate:"required"`
	EndDate       string        `json:"end_date" validate:"required"`
	NumTravelers  int           `json:"num_travelers"`
	Pace          PaceLevel     `json:"pace"`
	Budget        BudgetLevel   `json:"budget"`
	Interests     []string      `json:"interests"`
	DailyRoutine  *DailyRoutine `json:"daily_routine"`
	HotelLocation *Location     `json:"hotel_location"`
}

// TripUpdateRequest 旅行更新リクエスト（部分更新）
type TripUpdateRequest struct {
	City          *string       `json:"city"`
	StartDate     *string       `json:"start_date"`
	EndDate       *string       `json:"end_date"`
	NumTravelers  *int          `json:"num_travelers"`
	Pace          *PaceLevel    `json:"pace"`
	Budget        *BudgetLevel  `json:"budget"`
	Interests     []string      `json:"interests"`
	DailyRoutine  *DailyRoutine `json:"daily_routine"`
	HotelLocation *Location     `json:"hotel_location"`
}
