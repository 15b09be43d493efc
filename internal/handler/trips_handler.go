package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripweaver/internal/domain/model"
	"tripweaver/internal/usecase"
)

// TripsHandler は旅行CRUD APIのハンドラー
type TripsHandler struct {
	tripUseCase usecase.TripUseCase
}

// NewTripsHandler は新しいTripsHandlerインスタンスを作成
func NewTripsHandler(tripUseCase usecase.TripUseCase) *TripsHandler {
	return &TripsHandler{tripUseCase: tripUseCase}
}

// PostTrip は新しい旅行を作成するエンドポイント
// POST /trips
func (h *TripsHandler) PostTrip(c *gin.Context) {
	var req model.TripCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	if err := validateTripCreateRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": err.Error(),
		})
		return
	}

	trip, err := h.tripUseCase.CreateTrip(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "旅行の作成に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, trip)
}

// GetTrip は旅行を取得するエンドポイント
// GET /trips/:id
func (h *TripsHandler) GetTrip(c *gin.Context) {
	tripID := c.Param("id")

	trip, err := h.tripUseCase.GetTrip(c.Request.Context(), tripID)
	if err != nil {
		respondTripError(c, err, "旅行の取得に失敗しました")
		return
	}

	c.JSON(http.StatusOK, trip)
}

// PatchTrip は旅行を部分更新するエンドポイント
// PATCH /trips/:id
func (h *TripsHandler) PatchTrip(c *gin.Context) {
	tripID := c.Param("id")

	var req model.TripUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	trip, err := h.tripUseCase.UpdateTrip(c.Request.Context(), tripID, &req)
	if err != nil {
		respondTripError(c, err, "旅行の更新に失敗しました")
		return
	}

	c.JSON(http.StatusOK, trip)
}

// validateTripCreateRequest はリクエストの詳細バリデーションを行う
func validateTripCreateRequest(req *model.TripCreateRequest) error {
	if req.City == "" {
		return &ValidationError{Field: "city", Message: "都市は必須です"}
	}
	if req.StartDate == "" {
		return &ValidationError{Field: "start_date", Message: "開始日は必須です"}
	}
	if req.EndDate == "" {
		return &ValidationError{Field: "end_date", Message: "終了日は必須です"}
	}
	if req.HotelLocation != nil {
		if req.HotelLocation.Latitude < -90 || req.HotelLocation.Latitude > 90 {
			return &ValidationError{Field: "hotel_location.latitude", Message: "緯度は-90から90の範囲で指定してください"}
		}
		if req.HotelLocation.Longitude < -180 || req.HotelLocation.Longitude > 180 {
			return &ValidationError{Field: "hotel_location.longitude", Message: "経度は-180から180の範囲で指定してください"}
		}
	}
	return nil
}

// ValidationError はバリデーションエラーを表す
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// respondTripError はNotFoundか内部エラーかを判定してレスポンスを返す
func respondTripError(c *gin.Context, err error, message string) {
	if model.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "旅行が見つかりません",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}
