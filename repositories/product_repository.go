package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"grocery-shop/config"
	"grocery-shop/models"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

const productColumns = `id, name, description, category, price, offer_price, in_stock,
	COALESCE(image_url, ''), COALESCE(image_public_id, ''), created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }, p *models.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.OfferPrice,
		&p.InStock, &p.ImageURL, &p.ImagePublicID, &p.CreatedAt, &p.UpdatedAt)
}

// ListProducts returns the whole catalog. The chat pipeline embeds it
// in every prompt, so there is deliberately no pagination here.
func (r *ProductRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := scanProduct(config.DB.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id=$1`, id), &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) CreateProduct(ctx context.Context, p *models.Product) error {
	p.ID = uuid.NewString()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := config.DB.Exec(ctx,
		`INSERT INTO products (id, name, description, category, price, offer_price, in_stock, image_url, image_public_id, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		p.ID, p.Name, p.Description, p.Category, p.Price, p.OfferPrice, p.InStock,
		p.ImageURL, p.ImagePublicID, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, p *models.Product) error {
	_, err := config.DB.Exec(ctx,
		`UPDATE products SET name=$1, description=$2, category=$3, price=$4, offer_price=$5,
		 in_stock=$6, image_url=$7, image_public_id=$8, updated_at=$9 WHERE id=$10`,
		p.Name, p.Description, p.Category, p.Price, p.OfferPrice, p.InStock,
		p.ImageURL, p.ImagePublicID, time.Now(), p.ID)
	return err
}

func (r *ProductRepository) SetStock(ctx context.Context, id string, inStock bool) error {
	_, err := config.DB.Exec(ctx,
		`UPDATE products SET in_stock=$1, updated_at=$2 WHERE id=$3`, inStock, time.Now(), id)
	return err
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id string) error {
	_, err := config.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	return err
}

func (r *ProductRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT id, name, path, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Path, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
