package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"grocery-shop/config"
	"grocery-shop/controllers"
	"grocery-shop/libs"
	"grocery-shop/middleware"
	"grocery-shop/repositories"
	"grocery-shop/services"
)

func SetupRoutes(router *gin.Engine) {
	authCtrl := controllers.NewAuthController()
	productCtrl := controllers.NewProductController()
	cartCtrl := controllers.NewCartController()
	orderCtrl := controllers.NewOrderController()

	gemini := libs.NewGeminiClient(
		config.AppConfig.GeminiAPIKey,
		config.AppConfig.GeminiBaseURL,
		config.AppConfig.GeminiModel,
	)
	chatService := services.NewChatService(
		repositories.NewProductRepository(),
		repositories.NewUserRepository(),
		gemini,
	)
	chatCtrl := controllers.NewChatController(chatService)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)
	router.POST("/auth/seller/login", authCtrl.SellerLogin)
	router.GET("/categories", productCtrl.GetAllCategories)
	router.GET("/products", productCtrl.GetAllProducts)
	router.GET("/products/:id", productCtrl.GetProductByID)

	// Admitted without a token so anonymous users get a friendly
	// success:false reply instead of a 401.
	router.POST("/chat/process", middleware.OptionalAuthMiddleware(), chatCtrl.ProcessChat)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/auth/profile", authCtrl.GetProfile)
		auth.GET("/cart", cartCtrl.GetCart)
		auth.POST("/cart/update", cartCtrl.UpdateCart)
		auth.POST("/orders", orderCtrl.PlaceOrder)
		auth.GET("/orders", orderCtrl.GetMyOrders)
	}

	seller := router.Group("/seller")
	seller.Use(middleware.AuthMiddleware(), middleware.SellerMiddleware())
	{
		seller.POST("/products", productCtrl.CreateProduct)
		seller.PATCH("/products/:id", productCtrl.UpdateProduct)
		seller.PATCH("/products/:id/stock", productCtrl.SetStock)
		seller.DELETE("/products/:id", productCtrl.DeleteProduct)
		seller.GET("/orders", orderCtrl.GetAllOrders)
	}
}
