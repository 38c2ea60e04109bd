package models

// ShoppingList is the structured result parsed out of the generation
// service's response. It lives for one request only and is never stored.
type ShoppingList struct {
	Dish        string             `json:"dish"`
	Servings    int                `json:"servings"`
	Ingredients []ShoppingListItem `json:"ingredients"`
}

type ShoppingListItem struct {
	Name      string   `json:"name"`
	Quantity  Quantity `json:"quantity"`
	Category  string   `json:"category"`
	InStock   bool     `json:"inStock"`
	ProductID string   `json:"productId,omitempty"`
}

// ChatResult is what the chat endpoint returns. Business-logic failures
// come back with Success=false and a user-facing Reply; only unexpected
// failures surface as errors to the handler.
type ChatResult struct {
	Success   bool          `json:"success"`
	Reply     string        `json:"reply"`
	Raw       string        `json:"raw,omitempty"`
	AIResult  *ShoppingList `json:"aiResult,omitempty"`
	CartItems CartMap       `json:"cartItems,omitempty"`
}
