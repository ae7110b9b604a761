package domain

import "github.com/shopspring/decimal"

// Product is a read-only catalog record. Carts hold copies of it and never
// modify one.
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Description   string           `json:"description"`
	Features      []string         `json:"features"`
	ImageURL      string           `json:"image_url"`
	Category      string           `json:"category"`
	Subcategory   string           `json:"subcategory,omitempty"`
	Rating        float64          `json:"rating"`
	ReviewCount   int              `json:"review_count"`
	Tags          []string         `json:"tags"`
	IsFeatured    bool             `json:"is_featured,omitempty"`
	IsBestSeller  bool             `json:"is_best_seller,omitempty"`
	IsOnSale      bool             `json:"is_on_sale,omitempty"`
}

// HasDiscount reports whether the product carries a list price above its
// selling price.
func (p *Product) HasDiscount() bool {
	return p.OriginalPrice != nil && p.OriginalPrice.GreaterThan(p.Price)
}

// HasTag reports whether the product carries the given tag, exact match.
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Review is a customer review attached to a product.
type Review struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name"`
	UserAvatar string `json:"user_avatar,omitempty"`
	Rating     int    `json:"rating"`
	Text       string `json:"text"`
	Date       string `json:"date"`
}
