package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-shop/models"
)

type fakeCatalog struct {
	products []models.Product
	err      error
}

func (f *fakeCatalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	return f.products, f.err
}

type fakeCarts struct {
	carts     map[int]models.CartMap
	saveCalls int
	saveErr   error
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{carts: map[int]models.CartMap{}}
}

func (f *fakeCarts) GetCart(ctx context.Context, userID int) (models.CartMap, error) {
	cart, ok := f.carts[userID]
	if !ok {
		return models.CartMap{}, nil
	}
	out := models.CartMap{}
	for k, v := range cart {
		out[k] = v
	}
	return out, nil
}

func (f *fakeCarts) SaveCart(ctx context.Context, userID int, cart models.CartMap) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saveCalls++
	f.carts[userID] = cart
	return nil
}

type fakeGenerator struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func pastaCatalog() []models.Product {
	return []models.Product{
		{ID: "prod-pasta", Name: "Pasta", Category: "grains", InStock: true},
		{ID: "prod-cashew", Name: "Cashew Nuts", Category: "nuts", InStock: true},
		{ID: "prod-milk", Name: "Milk", Category: "dairy", InStock: false},
	}
}

func TestProcessRequiresLogin(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewChatService(&fakeCatalog{}, newFakeCarts(), gen)

	result, err := svc.Process(context.Background(), 0, "make pasta for 4")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.Reply, "log in")
	assert.Equal(t, 0, gen.calls)
}

func TestProcessRejectsShortMessage(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewChatService(&fakeCatalog{products: pastaCatalog()}, newFakeCarts(), gen)

	for _, message := range []string{"", "a", "ab", "  a "} {
		result, err := svc.Process(context.Background(), 1, message)
		require.NoError(t, err)
		assert.False(t, result.Success, "message %q", message)
		assert.Equal(t, "Please enter a valid request.", result.Reply)
	}
	assert.Equal(t, 0, gen.calls, "short messages must never reach the generation service")
}

func TestProcessPastaForFour(t *testing.T) {
	gen := &fakeGenerator{
		response: `{"dish":"Pasta","servings":4,"ingredients":[{"name":"Pasta","quantity":2,"category":"grains","inStock":true}]}`,
	}
	carts := newFakeCarts()
	svc := NewChatService(&fakeCatalog{products: pastaCatalog()}, carts, gen)

	result, err := svc.Process(context.Background(), 1, "make pasta for 4")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, models.Quantity("2"), result.CartItems["prod-pasta"])
	assert.Equal(t, models.Quantity("2"), carts.carts[1]["prod-pasta"])
	require.NotNil(t, result.AIResult)
	assert.Equal(t, "Pasta", result.AIResult.Dish)
	assert.Equal(t, 4, result.AIResult.Servings)
	assert.Contains(t, result.Reply, "Pasta")

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "for 4 people")
	assert.Contains(t, gen.prompts[0], "Cashew Nuts", "the whole catalog is embedded in the prompt")
}

func TestProcessDoubleCallDoublesNumericQuantities(t *testing.T) {
	gen := &fakeGenerator{
		response: `{"dish":"Pasta","servings":2,"ingredients":[{"name":"Pasta","quantity":2,"category":"grains","inStock":true}]}`,
	}
	carts := newFakeCarts()
	svc := NewChatService(&fakeCatalog{products: pastaCatalog()}, carts, gen)

	for i := 0; i < 2; i++ {
		result, err := svc.Process(context.Background(), 1, "make pasta for 2")
		require.NoError(t, err)
		require.True(t, result.Success)
	}

	assert.Equal(t, models.Quantity("4"), carts.carts[1]["prod-pasta"])
}

func TestProcessUpstreamFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection refused")}
	carts := newFakeCarts()
	svc := NewChatService(&fakeCatalog{products: pastaCatalog()}, carts, gen)

	result, err := svc.Process(context.Background(), 1, "make pasta")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.Reply, "unavailable")
	assert.Equal(t, 0, carts.saveCalls)
}

func TestProcessMalformedResponseSurfacesRaw(t *testing.T) {
	gen := &fakeGenerator{response: "I could not produce a list, sorry!"}
	carts := newFakeCarts()
	svc := NewChatService(&fakeCatalog{products: pastaCatalog()}, carts, gen)

	result, err := svc.Process(context.Background(), 1, "make pasta")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, "Sorry, could not understand the AI response.", result.Reply)
	assert.Equal(t, "I could not produce a list, sorry!", result.Raw)
	assert.Equal(t, 0, carts.saveCalls, "no cart mutation on parse failure")
}

func TestProcessJSONWrappedInFences(t *testing.T) {
	gen := &fakeGenerator{
		response: "```json\n{\"dish\":\"Pasta\",\"servings\":1,\"ingredients\":[{\"name\":\"Pasta\",\"quantity\":1,\"category\":\"grains\",\"inStock\":true}]}\n```",
	}
	svc := NewChatService(&fakeCatalog{products: pastaCatalog()}, newFakeCarts(), gen)

	result, err := svc.Process(context.Background(), 1, "make pasta")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, models.Quantity("1"), result.CartItems["prod-pasta"])
}

func TestProcessEmptyIngredients(t *testing.T) {
	gen := &fakeGenerator{response: `{"dish":"Nothing","servings":1,"ingredients":[]}`}
	carts := newFakeCarts()
	svc := NewChatService(&fakeCatalog{products: pastaCatalog()}, carts, gen)

	result, err := svc.Process(context.Background(), 1, "make nothing")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, "No products found in your request.", result.Reply)
	assert.Equal(t, 0, carts.saveCalls)
}

func TestProcessPartitionsUnavailableItems(t *testing.T) {
	gen := &fakeGenerator{
		response: `{"dish":"Kheer","servings":2,"ingredients":[
			{"name":"Cashew Nuts","quantity":"100g","category":"nuts","inStock":true},
			{"name":"Milk","quantity":"500ml","category":"dairy","inStock":true},
			{"name":"Saffron","quantity":"1 packet","category":"spices","inStock":true}]}`,
	}
	carts := newFakeCarts()
	svc := NewChatService(&fakeCatalog{products: pastaCatalog()}, carts, gen)

	result, err := svc.Process(context.Background(), 1, "make kheer for 2")
	require.NoError(t, err)

	require.True(t, result.Success)
	// Cashew nuts are in stock and matched.
	assert.Equal(t, models.Quantity("100g"), result.CartItems["prod-cashew"])
	// Milk is matched but out of stock; saffron is not in the catalog.
	assert.NotContains(t, result.CartItems, "prod-milk")
	assert.Len(t, result.CartItems, 1)
	assert.Contains(t, result.Reply, "unavailable")
	assert.Contains(t, result.Reply, "Milk")
	assert.Contains(t, result.Reply, "Saffron")
	assert.Contains(t, result.Reply, "[Not in stock]")
}

func TestProcessAliasDoesNotMatch(t *testing.T) {
	// Matching is literal equal/substring only: the synonym "kajus"
	// must not resolve to "Cashew Nuts".
	gen := &fakeGenerator{
		response: `{"dish":"Snack","servings":1,"ingredients":[{"name":"kajus","quantity":"100g","category":"nuts","inStock":true}]}`,
	}
	svc := NewChatService(&fakeCatalog{products: pastaCatalog()}, newFakeCarts(), gen)

	result, err := svc.Process(context.Background(), 1, "make a snack")
	require.NoError(t, err)

	require.True(t, result.Success)
	assert.Empty(t, result.CartItems)
	assert.Contains(t, result.Reply, "kajus")
}

func TestProcessCatalogFailureIsInternal(t *testing.T) {
	svc := NewChatService(&fakeCatalog{err: errors.New("db down")}, newFakeCarts(), &fakeGenerator{})

	result, err := svc.Process(context.Background(), 1, "make pasta")
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestProcessSaveFailureIsInternal(t *testing.T) {
	gen := &fakeGenerator{
		response: `{"dish":"Pasta","servings":1,"ingredients":[{"name":"Pasta","quantity":1,"category":"grains","inStock":true}]}`,
	}
	carts := newFakeCarts()
	carts.saveErr = errors.New("db down")
	svc := NewChatService(&fakeCatalog{products: pastaCatalog()}, carts, gen)

	result, err := svc.Process(context.Background(), 1, "make pasta")
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestExtractServings(t *testing.T) {
	cases := []struct {
		message string
		want    int
	}{
		{"make pasta for 4", 4},
		{"biryani that serves 6", 6},
		{"feed 12 people", 12},
		{"prepare 3 portions", 3},
		{"cook dinner", 1},
		{"for many people", 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractServings(tc.message), "message %q", tc.message)
	}
}

func TestExtractJSON(t *testing.T) {
	obj := `{"dish":"Pasta"}`
	assert.Equal(t, obj, ExtractJSON(obj))
	assert.Equal(t, obj, ExtractJSON("```json\n"+obj+"\n```"))
	assert.Equal(t, obj, ExtractJSON("Here you go: "+obj+" enjoy!"))
	assert.Equal(t, "no braces here", ExtractJSON("no braces here"))
}

func TestMatchProduct(t *testing.T) {
	products := pastaCatalog()

	assert.Equal(t, "prod-pasta", MatchProduct("pasta", products).ID)
	assert.Equal(t, "prod-pasta", MatchProduct("Pasta Penne", products).ID, "product name contained in ingredient")
	assert.Equal(t, "prod-cashew", MatchProduct("cashew", products).ID, "ingredient contained in product name")
	assert.Nil(t, MatchProduct("kajus", products))
	assert.Nil(t, MatchProduct("", products))
}

func TestMatchProductFirstMatchWins(t *testing.T) {
	products := []models.Product{
		{ID: "p1", Name: "Green Chilli"},
		{ID: "p2", Name: "Chilli Powder"},
	}
	assert.Equal(t, "p1", MatchProduct("chilli", products).ID)
}

func TestBuildPromptEmbedsCatalogAndRules(t *testing.T) {
	prompt := BuildPrompt("make pasta", 4, pastaCatalog())

	assert.Contains(t, prompt, `"make pasta for 4 people"`)
	for _, p := range pastaCatalog() {
		assert.Contains(t, prompt, fmt.Sprintf("%q", p.Name))
	}
	assert.Contains(t, prompt, "Only respond with valid JSON")
	assert.Contains(t, prompt, "never use group names")
	assert.True(t, strings.Contains(prompt, "1 packet, 2 packets"))
}
