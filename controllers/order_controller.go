package controllers

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"grocery-shop/config"
	"grocery-shop/models"
	"grocery-shop/repositories"
)

type OrderController struct {
	productRepo *repositories.ProductRepository
	userRepo    *repositories.UserRepository
}

func NewOrderController() *OrderController {
	return &OrderController{
		productRepo: repositories.NewProductRepository(),
		userRepo:    repositories.NewUserRepository(),
	}
}

// PlaceOrder godoc
// @Summary Place order
// @Description Place a cash-on-delivery order and clear the cart
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.PlaceOrderRequest true "Order Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /orders [post]
func (ctrl *OrderController) PlaceOrder(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	ctx := c.Request.Context()

	order := models.Order{
		UserID:        userID,
		Status:        "placed",
		PaymentMethod: "cod",
		Address:       req.Address,
	}

	for _, item := range req.Items {
		product, err := ctrl.productRepo.GetProductByID(ctx, item.ProductID)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Product not found: " + item.ProductID})
			return
		}
		if !product.InStock {
			c.JSON(400, gin.H{"success": false, "message": product.Name + " is out of stock"})
			return
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			Price:       product.OfferPrice,
		})
		order.TotalAmount += product.OfferPrice * item.Quantity
	}

	tx, err := config.DB.Begin(ctx)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to place order"})
		return
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (user_id, total_amount, status, payment_method, address, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		order.UserID, order.TotalAmount, order.Status, order.PaymentMethod, order.Address, now, now).Scan(&order.ID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to place order"})
		return
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, price) VALUES ($1,$2,$3,$4) RETURNING id`,
			item.OrderID, item.ProductID, item.Quantity, item.Price).Scan(&item.ID)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to place order"})
			return
		}
	}

	if err := tx.Commit(ctx); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to place order"})
		return
	}

	if err := ctrl.userRepo.SaveCart(ctx, userID, models.CartMap{}); err != nil {
		log.Printf("Failed to clear cart after order %d: %v", order.ID, err)
	}

	order.CreatedAt = now
	order.UpdatedAt = now

	go ctrl.sendConfirmation(userID, order.ID, order.TotalAmount)

	c.JSON(201, gin.H{"success": true, "message": "Order placed successfully", "data": order})
}

func (ctrl *OrderController) sendConfirmation(userID, orderID int, total float64) {
	emailService, err := models.NewEmailService()
	if err != nil {
		log.Printf("Email service unavailable: %v", err)
		return
	}

	user, err := ctrl.userRepo.GetUserByID(context.Background(), userID)
	if err != nil {
		log.Printf("Failed to load user %d for order email: %v", userID, err)
		return
	}

	if err := emailService.SendOrderConfirmationEmail(user.Email, orderID, total); err != nil {
		log.Printf("Failed to send order confirmation: %v", err)
	}
}

// GetMyOrders godoc
// @Summary Get my orders
// @Description List the authenticated user's orders
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /orders [get]
func (ctrl *OrderController) GetMyOrders(c *gin.Context) {
	userID := c.GetInt("user_id")
	orders, err := ctrl.listOrders(c.Request.Context(), &userID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve orders"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Orders retrieved", "data": orders})
}

// GetAllOrders godoc
// @Summary Get all orders
// @Description List every order in the store (Seller)
// @Tags Seller - Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /seller/orders [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := ctrl.listOrders(c.Request.Context(), nil)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve orders"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Orders retrieved", "data": orders})
}

func (ctrl *OrderController) listOrders(ctx context.Context, userID *int) ([]models.Order, error) {
	query := `SELECT id, user_id, total_amount, status, payment_method, address, created_at, updated_at
	          FROM orders`
	args := []interface{}{}
	if userID != nil {
		query += ` WHERE user_id=$1`
		args = append(args, *userID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := config.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.PaymentMethod,
			&o.Address, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := ctrl.listOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (ctrl *OrderController) listOrderItems(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT oi.id, oi.order_id, oi.product_id, COALESCE(p.name, ''), oi.quantity, oi.price
		 FROM order_items oi LEFT JOIN products p ON p.id = oi.product_id
		 WHERE oi.order_id=$1 ORDER BY oi.id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
