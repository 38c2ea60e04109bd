package repositories

import (
	"context"
	"encoding/json"
	"time"

	"grocery-shop/config"
	"grocery-shop/models"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) CreateUser(ctx context.Context, u *models.User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.CartItems == nil {
		u.CartItems = models.CartMap{}
	}
	cartJSON, err := json.Marshal(u.CartItems)
	if err != nil {
		return err
	}
	return config.DB.QueryRow(ctx,
		`INSERT INTO users (name, email, password, role, cart_items, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		u.Name, u.Email, u.Password, u.Role, cartJSON, now, now).Scan(&u.ID)
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	var cartJSON []byte
	err := config.DB.QueryRow(ctx,
		`SELECT id, name, email, password, role, cart_items, created_at, updated_at
		 FROM users WHERE email=$1`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &cartJSON, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cartJSON, &u.CartItems); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	var cartJSON []byte
	err := config.DB.QueryRow(ctx,
		`SELECT id, name, email, password, role, cart_items, created_at, updated_at
		 FROM users WHERE id=$1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &cartJSON, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cartJSON, &u.CartItems); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetCart reads the cart document for a user. The map is stored whole
// in a JSONB column; there is no per-key access path.
func (r *UserRepository) GetCart(ctx context.Context, userID int) (models.CartMap, error) {
	var cartJSON []byte
	err := config.DB.QueryRow(ctx,
		`SELECT cart_items FROM users WHERE id=$1`, userID).Scan(&cartJSON)
	if err != nil {
		return nil, err
	}
	cart := models.CartMap{}
	if err := json.Unmarshal(cartJSON, &cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SaveCart overwrites the stored cart document. Last writer wins;
// concurrent conversions for the same user are not serialized.
func (r *UserRepository) SaveCart(ctx context.Context, userID int, cart models.CartMap) error {
	if cart == nil {
		cart = models.CartMap{}
	}
	cartJSON, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	_, err = config.DB.Exec(ctx,
		`UPDATE users SET cart_items=$1, updated_at=$2 WHERE id=$3`,
		cartJSON, time.Now(), userID)
	return err
}
