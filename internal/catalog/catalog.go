// Package catalog provides read-only access to the product store.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/glossline-ai/sales-agent/internal/model"
)

// ErrNotFound is returned when a product does not exist or is inactive.
var ErrNotFound = errors.New("product not found")

// Accessor is a read-only view over the product store.
type Accessor interface {
	// ListActiveProducts returns all active products in catalog insertion
	// order.
	ListActiveProducts(ctx context.Context) ([]model.Product, error)

	// GetProduct returns one active product by ID.
	GetProduct(ctx context.Context, id string) (*model.Product, error)
}

// PostgresAccessor reads products from the relational catalog store.
type PostgresAccessor struct {
	db *gorm.DB
}

// NewPostgresAccessor creates an accessor over an open gorm connection.
func NewPostgresAccessor(db *gorm.DB) *PostgresAccessor {
	return &PostgresAccessor{db: db}
}

// productRecord maps the products table. The catalog store owns the schema;
// this is a read-only projection.
type productRecord struct {
	ID          string   `gorm:"column:id;primaryKey"`
	Name        string   `gorm:"column:name"`
	Slug        string   `gorm:"column:slug"`
	Description string   `gorm:"column:description"`
	Price       float64  `gorm:"column:price"`
	SalePrice   *float64 `gorm:"column:sale_price"`
	StockCount  int      `gorm:"column:stock_count"`
	Rating      float64  `gorm:"column:rating"`
	ReviewCount int      `gorm:"column:review_count"`
	IsActive    bool     `gorm:"column:is_active"`
	ProductTag  TagList  `gorm:"column:product_tag;type:text[]"`
}

func (productRecord) TableName() string { return "products" }

func (r *productRecord) toModel() model.Product {
	return model.Product{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Price:       r.Price,
		SalePrice:   r.SalePrice,
		StockCount:  r.StockCount,
		Rating:      r.Rating,
		ReviewCount: r.ReviewCount,
		IsActive:    r.IsActive,
		Tags:        []string(r.ProductTag),
	}
}

// ListActiveProducts returns all active products ordered by creation.
func (a *PostgresAccessor) ListActiveProducts(ctx context.Context) ([]model.Product, error) {
	var records []productRecord
	if err := a.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at, id").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]model.Product, len(records))
	for i := range records {
		products[i] = records[i].toModel()
	}
	return products, nil
}

// GetProduct returns one active product by ID.
func (a *PostgresAccessor) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	var record productRecord
	err := a.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	product := record.toModel()
	return &product, nil
}
