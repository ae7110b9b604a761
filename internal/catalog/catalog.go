// Package catalog serves the storefront's fixed product range. A Catalog is
// built once and never modified, so it is safe for concurrent use without
// locking.
package catalog

import (
	"slices"
	"strings"

	"github.com/Jovalentine/Digi-market/internal/domain"
	apperrors "github.com/Jovalentine/Digi-market/pkg/errors"
	"github.com/Jovalentine/Digi-market/pkg/slug"
)

// Sort options accepted by List.
const (
	SortFeatured  = "featured"
	SortNewest    = "newest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortBestRated = "best-rated"
)

// DefaultRelatedLimit is how many related products a detail page shows.
const DefaultRelatedLimit = 4

// Query filters and orders a product listing.
type Query struct {
	Search     string
	Categories []string
	Sort       string
}

// Category is a distinct product category with the number of products in it.
type Category struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ProductCount int    `json:"product_count"`
}

// Catalog is an immutable, ordered product collection with its reviews.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
	reviews  map[string][]domain.Review
}

// New builds a catalog from products in display order. Later duplicates of
// an id are ignored.
func New(products []domain.Product, reviews map[string][]domain.Review) *Catalog {
	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
		reviews:  make(map[string][]domain.Review, len(reviews)),
	}
	for _, p := range products {
		if _, dup := c.byID[p.ID]; dup {
			continue
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	for id, rs := range reviews {
		c.reviews[id] = slices.Clone(rs)
	}
	return c
}

// Default returns the catalog seeded with the storefront's own range.
func Default() *Catalog {
	return New(SeedProducts(), SeedReviews())
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// Get returns the product with the given id.
func (c *Catalog) Get(id string) (domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", id)
	}
	return c.products[i], nil
}

// All returns every product in display order.
func (c *Catalog) All() []domain.Product {
	return slices.Clone(c.products)
}

// List returns the products matching q, ordered by q.Sort.
func (c *Catalog) List(q Query) ([]domain.Product, error) {
	less, err := sortFunc(q.Sort)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if !matchesSearch(&p, needle) || !inCategories(&p, q.Categories) {
			continue
		}
		out = append(out, p)
	}

	if less != nil {
		slices.SortStableFunc(out, less)
	}
	return out, nil
}

// Featured returns the products flagged as featured, in display order.
func (c *Catalog) Featured() []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range c.products {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out
}

// Related returns up to limit other products from the same category as id,
// in display order. A negative limit yields an empty list.
func (c *Catalog) Related(id string, limit int) ([]domain.Product, error) {
	p, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	if limit < 0 {
		limit = 0
	}
	out := make([]domain.Product, 0, limit)
	for _, other := range c.products {
		if len(out) >= limit {
			break
		}
		if other.ID != p.ID && other.Category == p.Category {
			out = append(out, other)
		}
	}
	return out, nil
}

// Reviews returns the reviews for a product. A known product without
// reviews yields an empty list.
func (c *Catalog) Reviews(productID string) ([]domain.Review, error) {
	if _, ok := c.byID[productID]; !ok {
		return nil, apperrors.NotFound("product", productID)
	}
	rs := c.reviews[productID]
	if rs == nil {
		return []domain.Review{}, nil
	}
	return slices.Clone(rs), nil
}

// Categories returns the distinct categories in order of first appearance.
func (c *Catalog) Categories() []Category {
	out := make([]Category, 0)
	index := make(map[string]int)
	for _, p := range c.products {
		if i, ok := index[p.Category]; ok {
			out[i].ProductCount++
			continue
		}
		index[p.Category] = len(out)
		out = append(out, Category{Name: p.Category, Slug: slug.Generate(p.Category), ProductCount: 1})
	}
	return out
}

func matchesSearch(p *domain.Product, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) ||
		strings.Contains(strings.ToLower(p.Category), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// inCategories matches a product's category against names or slugs.
func inCategories(p *domain.Product, categories []string) bool {
	if len(categories) == 0 {
		return true
	}
	for _, want := range categories {
		if strings.EqualFold(p.Category, want) || slug.Match(p.Category, want) {
			return true
		}
	}
	return false
}

func sortFunc(sortBy string) (func(a, b domain.Product) int, error) {
	switch sortBy {
	case "", SortFeatured:
		return func(a, b domain.Product) int {
			switch {
			case a.IsFeatured && !b.IsFeatured:
				return -1
			case !a.IsFeatured && b.IsFeatured:
				return 1
			}
			return 0
		}, nil
	case SortNewest:
		return nil, nil
	case SortPriceLow:
		return func(a, b domain.Product) int { return a.Price.Cmp(b.Price) }, nil
	case SortPriceHigh:
		return func(a, b domain.Product) int { return b.Price.Cmp(a.Price) }, nil
	case SortBestRated:
		return func(a, b domain.Product) int {
			switch {
			case a.Rating > b.Rating:
				return -1
			case a.Rating < b.Rating:
				return 1
			}
			return 0
		}, nil
	default:
		return nil, apperrors.InvalidInput("unknown sort option " + sortBy)
	}
}
