package controllers

import (
	"context"
	"encoding/json"
	"log"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"grocery-shop/libs"
	"grocery-shop/models"
	"grocery-shop/repositories"
)

type ProductController struct {
	productRepo *repositories.ProductRepository
}

func NewProductController() *ProductController {
	return &ProductController{productRepo: repositories.NewProductRepository()}
}

const productCacheKey = "products_list"

func invalidateProductCache() {
	if models.RedisClient == nil {
		return
	}
	models.RedisClient.Del(context.Background(), productCacheKey)
}

// GetAllCategories godoc
// @Summary Get all categories
// @Description Get list of all categories
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response
// @Router /categories [get]
func (ctrl *ProductController) GetAllCategories(c *gin.Context) {
	categories, err := ctrl.productRepo.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve categories"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Categories retrieved", "data": categories})
}

// GetAllProducts godoc
// @Summary Get all products
// @Description Get the full product catalog
// @Tags Products
// @Produce json
// @Success 200 {object} models.Response
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if models.RedisClient != nil {
		cached, err := models.RedisClient.Get(ctx, productCacheKey).Result()
		if err == nil {
			c.Data(200, "application/json", []byte(cached))
			return
		}
	}

	products, err := ctrl.productRepo.ListProducts(ctx)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to retrieve products"})
		return
	}

	response := gin.H{"success": true, "message": "Products retrieved", "data": products}

	if models.RedisClient != nil {
		jsonData, _ := json.Marshal(response)
		models.RedisClient.Set(ctx, productCacheKey, string(jsonData), 5*time.Minute)
	}

	c.JSON(200, response)
}

// GetProductByID godoc
// @Summary Get product by ID
// @Description Get product details
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	product, err := ctrl.productRepo.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Product retrieved", "data": product})
}

// CreateProduct godoc
// @Summary Create product
// @Description Create new product (Seller)
// @Tags Seller - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Product name"
// @Param description formData string false "Product description"
// @Param category formData string true "Category"
// @Param price formData number true "Product price"
// @Param offer_price formData number false "Offer price"
// @Param image formData file false "Product image"
// @Success 201 {object} models.Response
// @Router /seller/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Name, category and price are required"})
		return
	}

	offerPrice := req.OfferPrice
	if offerPrice <= 0 || offerPrice > req.Price {
		offerPrice = req.Price
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		OfferPrice:  offerPrice,
		InStock:     true,
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		url, publicID, uploadErr := uploadImage(c, fileHeader)
		if uploadErr != nil {
			c.JSON(400, gin.H{"success": false, "message": uploadErr.Error()})
			return
		}
		product.ImageURL = url
		product.ImagePublicID = publicID
	}

	if err := ctrl.productRepo.CreateProduct(c.Request.Context(), product); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create product"})
		return
	}

	invalidateProductCache()

	c.JSON(201, gin.H{"success": true, "message": "Product created successfully", "data": product})
}

func uploadImage(c *gin.Context, fileHeader *multipart.FileHeader) (string, string, error) {
	cld, err := libs.NewCloudinaryService()
	if err != nil {
		return "", "", err
	}
	if err := cld.ValidateImageFile(fileHeader); err != nil {
		return "", "", err
	}
	file, err := fileHeader.Open()
	if err != nil {
		return "", "", err
	}
	defer file.Close()
	return cld.UploadProductImage(c.Request.Context(), file, fileHeader.Filename)
}

// UpdateProduct godoc
// @Summary Update product
// @Description Update product (Seller)
// @Tags Seller - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Router /seller/products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	ctx := c.Request.Context()

	product, err := ctrl.productRepo.GetProductByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	product.Name = c.DefaultPostForm("name", product.Name)
	product.Description = c.DefaultPostForm("description", product.Description)
	product.Category = c.DefaultPostForm("category", product.Category)
	if v := c.PostForm("price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil && price > 0 {
			product.Price = price
		}
	}
	if v := c.PostForm("offer_price"); v != "" {
		if offer, err := strconv.ParseFloat(v, 64); err == nil && offer > 0 && offer <= product.Price {
			product.OfferPrice = offer
		}
	}
	if v := c.PostForm("in_stock"); v != "" {
		if inStock, err := strconv.ParseBool(v); err == nil {
			product.InStock = inStock
		}
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		url, publicID, uploadErr := uploadImage(c, fileHeader)
		if uploadErr != nil {
			c.JSON(400, gin.H{"success": false, "message": uploadErr.Error()})
			return
		}
		oldPublicID := product.ImagePublicID
		product.ImageURL = url
		product.ImagePublicID = publicID
		if oldPublicID != "" {
			if cld, err := libs.NewCloudinaryService(); err == nil {
				if err := cld.DeleteImage(ctx, oldPublicID); err != nil {
					log.Printf("Failed to delete old product image: %v", err)
				}
			}
		}
	}

	if err := ctrl.productRepo.UpdateProduct(ctx, product); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update product"})
		return
	}

	invalidateProductCache()

	c.JSON(200, gin.H{"success": true, "message": "Product updated successfully", "data": product})
}

// SetStock godoc
// @Summary Toggle product stock
// @Description Mark a product in or out of stock (Seller)
// @Tags Seller - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Router /seller/products/{id}/stock [patch]
func (ctrl *ProductController) SetStock(c *gin.Context) {
	var req struct {
		InStock bool `json:"in_stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	if _, err := ctrl.productRepo.GetProductByID(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	if err := ctrl.productRepo.SetStock(c.Request.Context(), c.Param("id"), req.InStock); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update stock"})
		return
	}

	invalidateProductCache()

	c.JSON(200, gin.H{"success": true, "message": "Stock updated"})
}

// DeleteProduct godoc
// @Summary Delete product
// @Description Delete product permanently (Seller)
// @Tags Seller - Products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Router /seller/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	ctx := c.Request.Context()

	product, err := ctrl.productRepo.GetProductByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	if err := ctrl.productRepo.DeleteProduct(ctx, product.ID); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to delete product"})
		return
	}

	if product.ImagePublicID != "" {
		if cld, err := libs.NewCloudinaryService(); err == nil {
			if err := cld.DeleteImage(ctx, product.ImagePublicID); err != nil {
				log.Printf("Failed to delete product image: %v", err)
			}
		}
	}

	invalidateProductCache()

	c.JSON(200, gin.H{"success": true, "message": "Product deleted permanently"})
}
