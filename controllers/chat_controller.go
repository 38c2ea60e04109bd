package controllers

import (
	"log"

	"github.com/gin-gonic/gin"

	"grocery-shop/models"
	"grocery-shop/services"
)

type ChatController struct {
	chatService *services.ChatService
}

func NewChatController(chatService *services.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

// ProcessChat godoc
// @Summary Convert a cooking request into cart items
// @Description Turn a free-text cooking request into a shopping list and merge the available items into the user's cart
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Chat Request"
// @Success 200 {object} models.ChatResult
// @Failure 500 {object} models.ChatResult
// @Router /chat/process [post]
func (ctrl *ChatController) ProcessChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(200, models.ChatResult{Success: false, Reply: "Please enter a valid request."})
		return
	}

	// Token identity wins; the body userId is only a legacy fallback.
	userID := c.GetInt("user_id")
	if userID == 0 {
		userID = req.UserID
	}

	result, err := ctrl.chatService.Process(c.Request.Context(), userID, req.Message)
	if err != nil {
		log.Println(err.Error())
		c.JSON(500, models.ChatResult{Success: false, Reply: "Internal server error"})
		return
	}

	c.JSON(200, result)
}
