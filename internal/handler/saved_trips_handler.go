package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tripweaver/internal/domain/model"
	"tripweaver/internal/usecase"
)

// SavedTripsHandler は旅程スナップショットAPIのハンドラー
type SavedTripsHandler struct {
	savedTripUseCase usecase.SavedTripUseCase
}

// NewSavedTripsHandler は新しいSavedTripsHandlerインスタンスを作成
func NewSavedTripsHandler(savedTripUseCase usecase.SavedTripUseCase) *SavedTripsHandler {
	return &SavedTripsHandler{savedTripUseCase: savedTripUseCase}
}

// saveTripRequest スナップショット保存リクエスト
type saveTripRequest struct {
	TripID string `json:"trip_id" binding:"required"`
	Title  string `json:"title"`
}

// PostSavedTrip は現在の旅程をスナップショットとして保存するエンドポイント
// POST /saved-trips
func (h *SavedTripsHandler) PostSavedTrip(c *gin.Context) {
	var req saveTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	savedTrip, err := h.savedTripUseCase.SaveItinerarySnapshot(c.Request.Context(), req.TripID, req.Title)
	if err != nil {
		respondSavedTripError(c, err, "旅程スナップショットの保存に失敗しました")
		return
	}

	c.JSON(http.StatusCreated, savedTrip)
}

// GetSavedTrips は保存済みスナップショットの一覧を取得するエンドポイント
// GET /saved-trips
func (h *SavedTripsHandler) GetSavedTrips(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	trips, err := h.savedTripUseCase.ListSavedTrips(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "保存済み旅程の一覧取得に失敗しました",
			"details": err.Error(),
		})
		return
	}
	if trips == nil {
		trips = []*model.SavedTrip{}
	}

	c.JSON(http.StatusOK, gin.H{"saved_trips": trips})
}

// GetSavedTrip は指定されたスナップショットを取得するエンドポイント
// GET /saved-trips/:id
func (h *SavedTripsHandler) GetSavedTrip(c *gin.Context) {
	savedTrip, err := h.savedTripUseCase.GetSavedTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondSavedTripError(c, err, "保存済み旅程の取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, savedTrip)
}

// DeleteSavedTrip は指定されたスナップショットを削除するエンドポイント
// DELETE /saved-trips/:id
func (h *SavedTripsHandler) DeleteSavedTrip(c *gin.Context) {
	if err := h.savedTripUseCase.DeleteSavedTrip(c.Request.Context(), c.Param("id")); err != nil {
		respondSavedTripError(c, err, "保存済み旅程の削除に失敗しました")
		return
	}
	c.Status(http.StatusNoContent)
}

// respondSavedTripError はNotFoundか内部エラーかを判定してレスポンスを返す
func respondSavedTripError(c *gin.Context, err error, message string) {
	if model.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "対象のデータが見つかりません",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}
