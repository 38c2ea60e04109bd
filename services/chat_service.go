package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"grocery-shop/models"
)

// MinMessageLength is the shortest chat message the converter accepts.
const MinMessageLength = 3

type CatalogStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

type CartStore interface {
	GetCart(ctx context.Context, userID int) (models.CartMap, error)
	SaveCart(ctx context.Context, userID int, cart models.CartMap) error
}

type Generator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// ChatService turns a free-text cooking request into cart contents:
// catalog dump into the prompt, one generation call, JSON parse, name
// matching, additive merge, whole-document cart write. A single linear
// pass with no retries and no rollback.
type ChatService struct {
	catalog   CatalogStore
	carts     CartStore
	generator Generator
}

func NewChatService(catalog CatalogStore, carts CartStore, generator Generator) *ChatService {
	return &ChatService{
		catalog:   catalog,
		carts:     carts,
		generator: generator,
	}
}

var servingsPattern = regexp.MustCompile(`(?i)(?:for|serves|servings|make|cook|prepare|feed)\s*(\d+)`)

// ExtractServings pulls a serving-size hint out of the message
// ("pasta for 4", "serves 6"), defaulting to 1.
func ExtractServings(message string) int {
	match := servingsPattern.FindStringSubmatch(message)
	if len(match) == 2 {
		var n int
		fmt.Sscanf(match[1], "%d", &n)
		if n > 0 {
			return n
		}
	}
	return 1
}

// ExtractJSON cuts a JSON object out of model output that may be
// wrapped in markdown fences or commentary.
func ExtractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}

// MatchProduct finds the catalog product for an ingredient name:
// case-insensitive equal, contains, or contained-in on the product
// name. First match wins. There is no alias or fuzzy matching, so
// "kajus" will not match "Cashew Nuts".
func MatchProduct(name string, products []models.Product) *models.Product {
	testName := strings.ToLower(strings.TrimSpace(name))
	if testName == "" {
		return nil
	}
	for i := range products {
		prodName := strings.ToLower(products[i].Name)
		if prodName == testName || strings.Contains(prodName, testName) || strings.Contains(testName, prodName) {
			return &products[i]
		}
	}
	return nil
}

type promptProduct struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	InStock     bool   `json:"inStock"`
	ID          string `json:"_id"`
}

// BuildPrompt renders the fixed instruction template with the request
// and the full catalog embedded. Every conversion carries the whole
// product list as matching context.
func BuildPrompt(message string, servings int, products []models.Product) string {
	list := make([]promptProduct, 0, len(products))
	for _, p := range products {
		category := p.Category
		if category == "" {
			category = "general"
		}
		list = append(list, promptProduct{
			Name:        p.Name,
			Description: p.Description,
			Category:    category,
			InStock:     p.InStock,
			ID:          p.ID,
		})
	}
	productJSON, _ := json.MarshalIndent(list, "", "  ")

	var b strings.Builder
	b.WriteString("You are a grocery assistant that converts cooking requests into a structured JSON shopping list, formatted for real-world grocery stores.\n\n")
	b.WriteString("The goal is to generate accurate and store-ready quantities. Consider how groceries are sold in actual stores. Avoid arbitrary or kitchen-specific units like \"cups\" or \"tablespoons\".\n\n")
	b.WriteString("### Output Format:\n")
	b.WriteString("Return a JSON object with:\n")
	b.WriteString("- dish (string)\n")
	b.WriteString("- servings (integer)\n")
	b.WriteString("- ingredients (array of objects with: name, quantity, category, inStock [boolean, true if available in store, false if not])\n\n")
	b.WriteString("### Important:\n")
	b.WriteString("- You may use synonyms or common names for products (e.g., \"kajus\" for \"cashew nuts\").\n")
	b.WriteString("- For vegetables, always list each vegetable individually (never use group names like \"mixed vegetables\").\n")
	b.WriteString("- Do not include a 'unit' field in the output.\n")
	b.WriteString("- If a product is not available in the store, set inStock to false.\n\n")
	b.WriteString("### Quantity Logic Rules:\n")
	b.WriteString("1. For grains and dals, use: 0.5kg, 1kg, 1.5kg, etc.\n")
	b.WriteString("2. For oils and liquids, use: 250ml, 500ml, 1L\n")
	b.WriteString("3. For nuts & dry fruits, use: 50g, 100g, 200g\n")
	b.WriteString("4. For vegetables, use number of pieces (e.g., 2 onions) or weight (e.g., 500g carrots)\n")
	b.WriteString("5. For spices and masalas, use: 1 packet, 2 packets\n")
	b.WriteString("6. Always round up to nearest reasonable grocery unit (no \"37g of rice\")\n")
	b.WriteString("7. Only respond with valid JSON. Do not include comments or explanations.\n\n")
	fmt.Fprintf(&b, "### Example Input:\n\"%s for %d people\"\n\n", message, servings)
	b.WriteString("### Example Output:\n")
	fmt.Fprintf(&b, "{\n  \"dish\": \"Veg Dum Biryani\",\n  \"servings\": %d,\n  \"ingredients\": [\n    { \"name\": \"Basmati rice\", \"quantity\": 1, \"category\": \"grains\", \"inStock\": true },\n    { \"name\": \"Onion\", \"quantity\": 3, \"category\": \"vegetables\", \"inStock\": true }\n  ]\n}\n\n", servings)
	b.WriteString("AVAILABLE PRODUCTS IN STORE:\n")
	b.Write(productJSON)
	b.WriteString("\n")
	return b.String()
}

// Process runs one chat-to-cart conversion for userID. Business-logic
// failures come back as a ChatResult with Success=false; only store
// failures and other unexpected problems return an error.
func (s *ChatService) Process(ctx context.Context, userID int, message string) (*models.ChatResult, error) {
	if userID <= 0 {
		return &models.ChatResult{Success: false, Reply: "Please log in to use the shopping assistant."}, nil
	}
	if len(strings.TrimSpace(message)) < MinMessageLength {
		return &models.ChatResult{Success: false, Reply: "Please enter a valid request."}, nil
	}

	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	servings := ExtractServings(message)
	prompt := BuildPrompt(message, servings, products)

	raw, err := s.generator.GenerateJSON(ctx, prompt)
	if err != nil {
		return &models.ChatResult{
			Success: false,
			Reply:   "The shopping assistant is unavailable right now. Please try again later.",
		}, nil
	}

	var list models.ShoppingList
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &list); err != nil {
		return &models.ChatResult{
			Success: false,
			Reply:   "Sorry, could not understand the AI response.",
			Raw:     raw,
		}, nil
	}

	if len(list.Ingredients) == 0 {
		return &models.ChatResult{Success: false, Reply: "No products found in your request."}, nil
	}

	for i := range list.Ingredients {
		ing := &list.Ingredients[i]
		if ing.Quantity == "" {
			ing.Quantity = "1"
		}
		prod := MatchProduct(ing.Name, products)
		if prod != nil {
			ing.Name = prod.Name
			ing.Category = prod.Category
			ing.InStock = prod.InStock
			ing.ProductID = prod.ID
		} else {
			ing.InStock = false
			ing.ProductID = ""
		}
	}

	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	unavailable := []string{}
	for _, ing := range list.Ingredients {
		if ing.InStock && ing.ProductID != "" {
			cart.Merge(ing.ProductID, ing.Quantity)
		} else {
			unavailable = append(unavailable, ing.Name)
		}
	}

	if err := s.carts.SaveCart(ctx, userID, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	return &models.ChatResult{
		Success:   true,
		Reply:     buildReply(&list, unavailable),
		AIResult:  &list,
		CartItems: cart,
	}, nil
}

func buildReply(list *models.ShoppingList, unavailable []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here is your shopping list for %q (serves %d):", list.Dish, list.Servings)
	for _, ing := range list.Ingredients {
		fmt.Fprintf(&b, "\n- %s (%s)", ing.Name, string(ing.Quantity))
		if !ing.InStock {
			b.WriteString(" [Not in stock]")
		}
	}
	b.WriteString("\n\nProducts required for you have been added to cart. Please review them and proceed to checkout.")
	if len(unavailable) > 0 {
		b.WriteString("\n\nHere are some additional/out of stock/unavailable products that you might want to buy:")
		for _, name := range unavailable {
			fmt.Fprintf(&b, "\n- %s", name)
		}
	}
	return b.String()
}
