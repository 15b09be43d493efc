package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripweaver/internal/domain/model"
	"tripweaver/internal/usecase"
)

// PlanHandler はプランニングパイプラインAPIのハンドラー
type PlanHandler struct {
	planningUseCase usecase.TripPlanningUseCase
}

// NewPlanHandler は新しいPlanHandlerインスタンスを作成
func NewPlanHandler(planningUseCase usecase.TripPlanningUseCase) *PlanHandler {
	return &PlanHandler{planningUseCase: planningUseCase}
}

// PostMacroPlan はマクロプランを生成するエンドポイント
// POST /trips/:id/macro-plan
func (h *PlanHandler) PostMacroPlan(c *gin.Context) {
	response, err := h.planningUseCase.GenerateMacroPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondPlanError(c, err, "マクロプランの生成に失敗しました")
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetMacroPlan は保存済みマクロプランを取得するエンドポイント
// GET /trips/:id/macro-plan
func (h *PlanHandler) GetMacroPlan(c *gin.Context) {
	response, err := h.planningUseCase.GetMacroPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondPlanError(c, err, "マクロプランの取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, response)
}

// PostPOIPlan はPOIプランを生成するエンドポイント
// POST /trips/:id/poi-plan
func (h *PlanHandler) PostPOIPlan(c *gin.Context) {
	response, err := h.planningUseCase.GeneratePOIPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondPlanError(c, err, "POIプランの生成に失敗しました")
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetPOIPlan は保存済みPOIプランを取得するエンドポイント
// GET /trips/:id/poi-plan
func (h *PlanHandler) GetPOIPlan(c *gin.Context) {
	response, err := h.planningUseCase.GetPOIPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondPlanError(c, err, "POIプランの取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, response)
}

// PostItinerary は旅程を生成するエンドポイント（既存の旅程は全置換）
// POST /trips/:id/itinerary
func (h *PlanHandler) PostItinerary(c *gin.Context) {
	response, err := h.planningUseCase.GenerateItinerary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondPlanError(c, err, "旅程の生成に失敗しました")
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetItinerary は保存済み旅程を取得するエンドポイント
// GET /trips/:id/itinerary
func (h *PlanHandler) GetItinerary(c *gin.Context) {
	response, err := h.planningUseCase.GetItinerary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondPlanError(c, err, "旅程の取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, response)
}

// PostPlan は3ステージのパイプラインをまとめて実行するエンドポイント
// POST /trips/:id/plan
func (h *PlanHandler) PostPlan(c *gin.Context) {
	response, err := h.planningUseCase.PlanTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondPlanError(c, err, "プランニングパイプラインの実行に失敗しました")
		return
	}
	c.JSON(http.StatusOK, response)
}

// respondPlanError は前段ステージ未生成（NotFound）か内部エラーかを判定してレスポンスを返す
func respondPlanError(c *gin.Context, err error, message string) {
	if model.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "必要なデータが見つかりません",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}
