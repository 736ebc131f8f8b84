// Package catalog holds the storefront query model: the options a browse
// request can carry and the in-memory execution path used when the query
// runs against a cached snapshot instead of MongoDB. Both paths honour the
// same filter, sort and pagination semantics.
package catalog

import (
	"strings"

	"github.com/shirshak001/JEWEL/app/models"
	"github.com/shirshak001/JEWEL/pkg/collection"
)

// Sort keys accepted by the browse endpoints.
const (
	SortFeatured  = "featured"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortName      = "name"
	SortNewest    = "newest"
)

const (
	DefaultPage  = 1
	DefaultLimit = 12
)

// Query carries every filter a catalog request can apply.
type Query struct {
	Page     int
	Limit    int
	Category string
	MinPrice float64
	MaxPrice float64
	Search   string
	SortBy   string

	// IncludeInactive widens the scope to hidden and out-of-stock
	// products. Admin listings only.
	IncludeInactive bool

	// StockStatus filters by classification: "in", "low" or "out".
	// Admin listings only.
	StockStatus string
}

// Normalize fills defaults and clamps nonsense values.
func (q *Query) Normalize() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.MinPrice < 0 {
		q.MinPrice = 0
	}
	if q.SortBy == "" {
		q.SortBy = SortFeatured
	}
}

// Result is one page of catalog output.
type Result struct {
	Items []models.Product `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Pages int              `json:"pages"`
	Limit int              `json:"limit"`
}

// categoryKeywords maps category slugs to title keywords. Products whose
// category list does not name the slug can still match by title wording,
// mirroring how the storefront has always classified legacy inventory.
// "earring" contains "ring", so the rings entry carries an exclusion: a
// title mentioning earrings never keyword-matches into rings.
var categoryKeywords = map[string]struct {
	match   []string
	exclude []string
}{
	"rings":     {match: []string{"ring", "band"}, exclude: []string{"earring"}},
	"earrings":  {match: []string{"earring", "stud", "jhumka"}},
	"necklaces": {match: []string{"necklace", "pendant", "chain", "choker"}},
	"bracelets": {match: []string{"bracelet", "bangle", "kada"}},
}

// KeywordFilter returns the title keywords and exclusions for a category
// slug. The repository uses it to build the database-side equivalent of
// MatchesCategory so both execution paths classify identically.
func KeywordFilter(slug string) (match, exclude []string) {
	kw := categoryKeywords[slug]
	return kw.match, kw.exclude
}

// MatchesCategory reports whether p belongs to the category slug, either
// by explicit membership or by title keyword.
func MatchesCategory(p models.Product, slug string) bool {
	if slug == "" || slug == "all" {
		return true
	}
	if collection.Contains(p.Categories, func(c string) bool { return c == slug }) {
		return true
	}
	title := strings.ToLower(p.Title)
	kw := categoryKeywords[slug]
	for _, ex := range kw.exclude {
		if strings.Contains(title, ex) {
			return false
		}
	}
	for _, m := range kw.match {
		if strings.Contains(title, m) {
			return true
		}
	}
	return false
}

// matches applies every filter other than pagination.
func (q Query) matches(p models.Product) bool {
	if !q.IncludeInactive && !p.Available() {
		return false
	}
	if !MatchesCategory(p, q.Category) {
		return false
	}
	if p.Price < q.MinPrice {
		return false
	}
	if q.MaxPrice > 0 && p.Price > q.MaxPrice {
		return false
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	switch q.StockStatus {
	case "in":
		if p.StockState() != models.InStock {
			return false
		}
	case "low":
		if p.StockState() != models.LowStock {
			return false
		}
	case "out":
		if p.StockState() != models.OutOfStock {
			return false
		}
	}
	return true
}

// sortItems orders items according to the sort key. SortFeatured keeps the
// stored order. The input slice is sorted in place.
func sortItems(items []models.Product, sortBy string) {
	switch sortBy {
	case SortPriceAsc:
		collection.SortBy(items, func(a, b models.Product) bool { return a.Price < b.Price })
	case SortPriceDesc:
		collection.SortBy(items, func(a, b models.Product) bool { return a.Price > b.Price })
	case SortName:
		collection.SortBy(items, func(a, b models.Product) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		})
	case SortNewest:
		collection.SortBy(items, func(a, b models.Product) bool { return a.CreatedAt.After(b.CreatedAt) })
	}
}

// Apply runs the query against an in-memory snapshot. The snapshot is
// never mutated; filtering copies the survivors before sorting.
func Apply(snapshot []models.Product, q Query) Result {
	q.Normalize()

	filtered := collection.Filter(snapshot, q.matches)
	items := make([]models.Product, len(filtered))
	copy(items, filtered)
	sortItems(items, q.SortBy)

	total := int64(len(items))
	pages := int(total) / q.Limit
	if int(total)%q.Limit != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}

	return Result{
		Items: collection.Paginate(items, q.Page, q.Limit),
		Total: total,
		Page:  q.Page,
		Pages: pages,
		Limit: q.Limit,
	}
}
