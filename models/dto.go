package models

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user seller"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChatRequest struct {
	// UserID is accepted for compatibility with older clients; when a
	// bearer token is present the token identity wins.
	UserID  int    `json:"userId"`
	Message string `json:"message"`
}

type UpdateCartRequest struct {
	UserID    int     `json:"userId"`
	CartItems CartMap `json:"cartItems" binding:"required"`
}

type PlaceOrderItem struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
}

type PlaceOrderRequest struct {
	Items         []PlaceOrderItem `json:"items" binding:"required,min=1,dive"`
	Address       string           `json:"address" binding:"required"`
	PaymentMethod string           `json:"payment_method" binding:"omitempty,oneof=cod"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" form:"name" binding:"required,min=2"`
	Description string  `json:"description" form:"description"`
	Category    string  `json:"category" form:"category" binding:"required"`
	Price       float64 `json:"price" form:"price" binding:"required,gt=0"`
	OfferPrice  float64 `json:"offer_price" form:"offer_price"`
}
