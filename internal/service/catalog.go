package service

import (
	"github.com/Jovalentine/Digi-market/internal/catalog"
	"github.com/Jovalentine/Digi-market/internal/domain"
	"github.com/Jovalentine/Digi-market/internal/pricing"
	"github.com/Jovalentine/Digi-market/pkg/pagination"
)

// ProductView is a product with its display prices.
type ProductView struct {
	domain.Product
	FormattedPrice         string `json:"formatted_price"`
	FormattedOriginalPrice string `json:"formatted_original_price,omitempty"`
	DiscountPercent        int    `json:"discount_percent,omitempty"`
}

// ProductDetail is everything a product page shows.
type ProductDetail struct {
	ProductView
	Reviews []domain.Review `json:"reviews"`
	Related []ProductView   `json:"related"`
}

// ListProductsInput filters, orders and pages a product listing.
type ListProductsInput struct {
	Search     string
	Categories []string
	Sort       string
	Page       pagination.Params
}

// CatalogService serves read-only catalog views.
type CatalogService struct {
	catalog *catalog.Catalog
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(c *catalog.Catalog) *CatalogService {
	return &CatalogService{catalog: c}
}

// NewProductView decorates p with its formatted prices and discount.
func NewProductView(p domain.Product) ProductView {
	v := ProductView{
		Product:        p,
		FormattedPrice: pricing.FormatPrice(p.Price),
	}
	if p.HasDiscount() {
		v.FormattedOriginalPrice = pricing.FormatPrice(*p.OriginalPrice)
		if pct, err := pricing.CalculateDiscount(*p.OriginalPrice, p.Price); err == nil {
			v.DiscountPercent = pct
		}
	}
	return v
}

func productViews(ps []domain.Product) []ProductView {
	out := make([]ProductView, len(ps))
	for i, p := range ps {
		out[i] = NewProductView(p)
	}
	return out
}

// ListProducts returns one page of the products matching input.
func (s *CatalogService) ListProducts(input ListProductsInput) (pagination.Result[ProductView], error) {
	products, err := s.catalog.List(catalog.Query{
		Search:     input.Search,
		Categories: input.Categories,
		Sort:       input.Sort,
	})
	if err != nil {
		return pagination.Result[ProductView]{}, err
	}
	return pagination.Slice(productViews(products), input.Page), nil
}

// Featured returns the featured products.
func (s *CatalogService) Featured() []ProductView {
	return productViews(s.catalog.Featured())
}

// GetProduct returns the product page for id.
func (s *CatalogService) GetProduct(id string) (*ProductDetail, error) {
	p, err := s.catalog.Get(id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.catalog.Reviews(id)
	if err != nil {
		return nil, err
	}
	related, err := s.catalog.Related(id, catalog.DefaultRelatedLimit)
	if err != nil {
		return nil, err
	}
	return &ProductDetail{
		ProductView: NewProductView(p),
		Reviews:     reviews,
		Related:     productViews(related),
	}, nil
}

// Reviews returns the reviews for a product.
func (s *CatalogService) Reviews(id string) ([]domain.Review, error) {
	return s.catalog.Reviews(id)
}

// Categories returns the product categories.
func (s *CatalogService) Categories() []catalog.Category {
	return s.catalog.Categories()
}
