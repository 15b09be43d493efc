package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripweaver/internal/domain/model"
	"tripweaver/internal/usecase"
)

// TripChatHandler は旅行チャットAPIのハンドラー
type TripChatHandler struct {
	chatUseCase usecase.TripChatUseCase
}

// NewTripChatHandler は新しいTripChatHandlerインスタンスを作成
func NewTripChatHandler(chatUseCase usecase.TripChatUseCase) *TripChatHandler {
	return &TripChatHandler{chatUseCase: chatUseCase}
}

// PostChat は旅行に関する質問に回答するエンドポイント
// POST /trips/:id/chat
func (h *TripChatHandler) PostChat(c *gin.Context) {
	var req usecase.TripChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	response, err := h.chatUseCase.Chat(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if model.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "旅行が見つかりません",
				"details": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "チャット回答の生成に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}
