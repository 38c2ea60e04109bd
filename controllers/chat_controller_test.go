package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-shop/models"
	"grocery-shop/services"
)

type stubCatalog struct {
	products []models.Product
}

func (s *stubCatalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.products, nil
}

type stubCarts struct {
	saveErr error
}

func (s *stubCarts) GetCart(ctx context.Context, userID int) (models.CartMap, error) {
	return models.CartMap{}, nil
}

func (s *stubCarts) SaveCart(ctx context.Context, userID int, cart models.CartMap) error {
	return s.saveErr
}

type stubGenerator struct {
	response string
}

func (s *stubGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return s.response, nil
}

func chatRouter(carts services.CartStore, gen services.Generator, userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	catalog := &stubCatalog{products: []models.Product{
		{ID: "prod-pasta", Name: "Pasta", Category: "grains", InStock: true},
	}}
	ctrl := NewChatController(services.NewChatService(catalog, carts, gen))

	router := gin.New()
	router.POST("/chat/process", func(c *gin.Context) {
		if userID != 0 {
			c.Set("user_id", userID)
		}
		c.Next()
	}, ctrl.ProcessChat)
	return router
}

func TestProcessChatAnonymousGetsFriendlyReply(t *testing.T) {
	router := chatRouter(&stubCarts{}, &stubGenerator{}, 0)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat/process", strings.NewReader(`{"message":"make pasta for 4"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Contains(t, w.Body.String(), "log in")
}

func TestProcessChatSuccess(t *testing.T) {
	gen := &stubGenerator{
		response: `{"dish":"Pasta","servings":4,"ingredients":[{"name":"Pasta","quantity":2,"category":"grains","inStock":true}]}`,
	}
	router := chatRouter(&stubCarts{}, gen, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat/process", strings.NewReader(`{"message":"make pasta for 4"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `"success":true`)
	assert.Contains(t, body, `"prod-pasta":2`)
	assert.Contains(t, body, "shopping list")
}

func TestProcessChatStoreFailureIs500(t *testing.T) {
	gen := &stubGenerator{
		response: `{"dish":"Pasta","servings":4,"ingredients":[{"name":"Pasta","quantity":2,"category":"grains","inStock":true}]}`,
	}
	router := chatRouter(&stubCarts{saveErr: errors.New("db down")}, gen, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat/process", strings.NewReader(`{"message":"make pasta for 4"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestProcessChatInvalidBody(t *testing.T) {
	router := chatRouter(&stubCarts{}, &stubGenerator{}, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat/process", strings.NewReader(`not json`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}
