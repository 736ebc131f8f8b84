package models

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StockState classifies a product's inventory level.
type StockState string

const (
	OutOfStock StockState = "out-of-stock"
	LowStock   StockState = "low-stock"
	InStock    StockState = "in-stock"
)

// ClassifyStock derives the stock state from a stock count and a low-stock
// threshold. Exactly one state holds for any stock ≥ 0, threshold ≥ 0.
// A threshold of 0 makes LowStock unreachable; that is consistent, not a bug.
func ClassifyStock(stock, threshold int) StockState {
	switch {
	case stock == 0:
		return OutOfStock
	case stock <= threshold:
		return LowStock
	default:
		return InStock
	}
}

// DefaultLowStockThreshold applies when a product is created without one.
const DefaultLowStockThreshold = 3

// Image is a single product photo. By convention exactly one image per
// product carries IsPrimary.
type Image struct {
	URL       string `bson:"url"           json:"url"`
	Alt       string `bson:"alt,omitempty" json:"alt,omitempty"`
	IsPrimary bool   `bson:"is_primary"    json:"isPrimary"`
}

// Attribute is a named product property such as metal or gemstone.
type Attribute struct {
	Name  string `bson:"name"  json:"name"`
	Value string `bson:"value" json:"value"`
}

// Inventory tracks the stock-keeping unit and count for a product.
type Inventory struct {
	SKU   string `bson:"sku"   json:"sku"`
	Stock int    `bson:"stock" json:"stock"`
}

// Product is a catalogue item stored in the products collection.
type Product struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty"        json:"id"`
	Title             string               `bson:"title"                json:"title"`
	Slug              string               `bson:"slug"                 json:"slug"`
	Description       string               `bson:"description"          json:"description"`
	Price             float64              `bson:"price"                json:"price"`
	SalePrice         float64              `bson:"sale_price,omitempty" json:"salePrice,omitempty"`
	// Categories holds category slugs, denormalized onto the product so
	// storefront filters never need a join.
	Categories        []string    `bson:"categories"           json:"categories"`
	Tags              []string    `bson:"tags,omitempty"       json:"tags,omitempty"`
	Images            []Image     `bson:"images"               json:"images"`
	Inventory         Inventory   `bson:"inventory"            json:"inventory"`
	Attributes        []Attribute `bson:"attributes,omitempty" json:"attributes,omitempty"`
	Featured          bool        `bson:"featured"             json:"featured"`
	Active            bool        `bson:"active"               json:"active"`
	LowStockThreshold int         `bson:"low_stock_threshold"  json:"lowStockThreshold"`
	CreatedAt         time.Time   `bson:"created_at"           json:"createdAt"`
	UpdatedAt         time.Time   `bson:"updated_at"           json:"updatedAt"`
}

// Available reports whether the product may appear in the public storefront.
func (p *Product) Available() bool {
	return p.Active && p.Inventory.Stock > 0
}

// StockState classifies the product's current inventory level.
func (p *Product) StockState() StockState {
	return ClassifyStock(p.Inventory.Stock, p.LowStockThreshold)
}

// PrimaryImage returns the image marked primary, falling back to the first.
func (p *Product) PrimaryImage() *Image {
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}

// Attribute returns the value of the named attribute, or "".
func (p *Product) Attribute(name string) string {
	for _, a := range p.Attributes {
		if strings.EqualFold(a.Name, name) {
			return a.Value
		}
	}
	return ""
}

// Normalize fills derived fields before a save: slug from title, generated
// SKU, default low-stock threshold.
func (p *Product) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	p.Slug = strings.ToLower(strings.TrimSpace(p.Slug))
	if p.Inventory.SKU == "" {
		p.Inventory.SKU = GenerateSKU()
	}
	if p.LowStockThreshold <= 0 {
		p.LowStockThreshold = DefaultLowStockThreshold
	}
	for i, t := range p.Tags {
		p.Tags[i] = strings.TrimSpace(t)
	}
}

// Validate checks the invariants struct tags cannot express.
// Returns a field → message map; empty means valid.
func (p *Product) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(p.Title) == "" {
		errs["title"] = "title is required"
	}
	if p.Price < 0 {
		errs["price"] = "price must not be negative"
	}
	if p.SalePrice != 0 && p.SalePrice >= p.Price {
		errs["salePrice"] = "sale price must be less than regular price"
	}
	if p.Inventory.Stock < 0 {
		errs["inventory.stock"] = "stock must not be negative"
	}
	return errs
}

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugCollapse = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe, lowercase, hyphenated identifier from a title.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// GenerateSKU produces an AMB-prefixed stock-keeping unit from the current
// timestamp plus a random suffix.
func GenerateSKU() string {
	ts := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(ts) > 8 {
		ts = ts[len(ts)-8:]
	}
	return fmt.Sprintf("AMB-%s-%03d", ts, rand.Intn(1000))
}
