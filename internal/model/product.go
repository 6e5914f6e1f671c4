// Package model defines data structures for the sales agent.
package model

import "time"

// Product is a read-only view of a catalog product. The catalog store owns
// and mutates products; the core never writes them.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	SalePrice   *float64  `json:"sale_price,omitempty"`
	StockCount  int       `json:"stock_count"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count,omitempty"`
	IsActive    bool      `json:"is_active"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// EffectivePrice returns the sale price when one is set.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}
