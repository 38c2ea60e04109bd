package controllers

import (
	"github.com/gin-gonic/gin"

	"grocery-shop/models"
	"grocery-shop/repositories"
)

type CartController struct {
	userRepo *repositories.UserRepository
}

func NewCartController() *CartController {
	return &CartController{userRepo: repositories.NewUserRepository()}
}

// GetCart godoc
// @Summary Get cart
// @Description Get the authenticated user's cart map
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	cart, err := ctrl.userRepo.GetCart(c.Request.Context(), userID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve cart"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Cart retrieved", "data": cart})
}

// UpdateCart godoc
// @Summary Update cart
// @Description Overwrite the stored cart map with the submitted one
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.UpdateCartRequest true "Cart contents"
// @Success 200 {object} models.Response
// @Router /cart/update [post]
func (ctrl *CartController) UpdateCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	// Unconditional whole-document overwrite, not a diff.
	if err := ctrl.userRepo.SaveCart(c.Request.Context(), userID, req.CartItems); err != nil {
		c.JSON(200, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Cart Updated"})
}
