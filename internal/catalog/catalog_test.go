package catalog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirshak001/JEWEL/app/models"
	"github.com/shirshak001/JEWEL/internal/catalog"
)

func product(title string, price float64, stock int, cats ...string) models.Product {
	return models.Product{
		Title:             title,
		Slug:              models.Slugify(title),
		Price:             price,
		Categories:        cats,
		Inventory:         models.Inventory{Stock: stock},
		Active:            true,
		LowStockThreshold: models.DefaultLowStockThreshold,
	}
}

func snapshot() []models.Product {
	return []models.Product{
		product("Classic Gold Band Ring", 18500, 12, "rings"),
		product("Silver Jhumka Earrings", 3200, 30, "earrings"),
		product("Rose Gold Pendant Necklace", 24750, 8, "necklaces"),
		product("Platinum Solitaire Ring", 98000, 2, "rings"),
		product("Gold Kada Bracelet", 41200, 0, "bracelets"),
		product("Pearl Stud Earrings", 1850, 45, "earrings"),
	}
}

func TestApplyHidesUnavailableByDefault(t *testing.T) {
	res := catalog.Apply(snapshot(), catalog.Query{})
	// the out-of-stock kada is hidden
	assert.EqualValues(t, 5, res.Total)
	for _, p := range res.Items {
		assert.True(t, p.Available(), p.Title)
	}
}

func TestApplyIncludeInactive(t *testing.T) {
	res := catalog.Apply(snapshot(), catalog.Query{IncludeInactive: true})
	assert.EqualValues(t, 6, res.Total)
}

func TestApplyCategoryFilter(t *testing.T) {
	res := catalog.Apply(snapshot(), catalog.Query{Category: "rings"})
	assert.EqualValues(t, 2, res.Total)
	for _, p := range res.Items {
		assert.Contains(t, p.Categories, "rings")
	}
}

func TestMatchesCategoryEarringsNeverKeywordMatchRings(t *testing.T) {
	// "earring" contains "ring"; the bare substring must not pull earring
	// titles into the rings category.
	studs := product("Pearl Stud Earrings", 1850, 45)
	assert.False(t, catalog.MatchesCategory(studs, "rings"))
	assert.True(t, catalog.MatchesCategory(studs, "earrings"))

	// Explicit membership still wins over the exclusion.
	tagged := product("Pearl Stud Earrings", 1850, 45, "rings")
	assert.True(t, catalog.MatchesCategory(tagged, "rings"))
}

func TestApplyCategoryKeywordFallback(t *testing.T) {
	// No category list, but the title says "ring".
	items := []models.Product{product("Vintage Signet Ring", 9000, 3)}
	res := catalog.Apply(items, catalog.Query{Category: "rings"})
	assert.EqualValues(t, 1, res.Total)

	res = catalog.Apply(items, catalog.Query{Category: "earrings"})
	assert.EqualValues(t, 0, res.Total)
}

func TestApplyPriceRangeInclusive(t *testing.T) {
	res := catalog.Apply(snapshot(), catalog.Query{MinPrice: 3200, MaxPrice: 24750})
	assert.EqualValues(t, 3, res.Total)
	for _, p := range res.Items {
		assert.GreaterOrEqual(t, p.Price, 3200.0)
		assert.LessOrEqual(t, p.Price, 24750.0)
	}
}

func TestApplySearch(t *testing.T) {
	res := catalog.Apply(snapshot(), catalog.Query{Search: "GOLD"})
	assert.EqualValues(t, 2, res.Total) // kada is out of stock

	res = catalog.Apply(snapshot(), catalog.Query{Search: "gold", IncludeInactive: true})
	assert.EqualValues(t, 3, res.Total)
}

func TestApplySortPrice(t *testing.T) {
	asc := catalog.Apply(snapshot(), catalog.Query{SortBy: catalog.SortPriceAsc})
	require.NotEmpty(t, asc.Items)
	for i := 1; i < len(asc.Items); i++ {
		assert.LessOrEqual(t, asc.Items[i-1].Price, asc.Items[i].Price)
	}

	desc := catalog.Apply(snapshot(), catalog.Query{SortBy: catalog.SortPriceDesc})
	require.Equal(t, len(asc.Items), len(desc.Items))
	for i := range desc.Items {
		assert.Equal(t, asc.Items[len(asc.Items)-1-i].Slug, desc.Items[i].Slug)
	}
}

func TestApplySortNewest(t *testing.T) {
	items := snapshot()
	base := time.Now()
	for i := range items {
		items[i].CreatedAt = base.Add(time.Duration(i) * time.Hour)
	}
	res := catalog.Apply(items, catalog.Query{SortBy: catalog.SortNewest, IncludeInactive: true})
	require.Len(t, res.Items, 6)
	assert.Equal(t, items[5].Slug, res.Items[0].Slug)
}

func TestApplyPagination(t *testing.T) {
	var seen int
	q := catalog.Query{Limit: 2, IncludeInactive: true}
	first := catalog.Apply(snapshot(), q)
	assert.Equal(t, 3, first.Pages)

	for page := 1; page <= first.Pages; page++ {
		q.Page = page
		res := catalog.Apply(snapshot(), q)
		seen += len(res.Items)
	}
	assert.EqualValues(t, first.Total, seen)

	// Past the last page returns an empty slice, not an error.
	q.Page = first.Pages + 1
	assert.Empty(t, catalog.Apply(snapshot(), q).Items)
}

func TestApplyStockStatus(t *testing.T) {
	low := catalog.Apply(snapshot(), catalog.Query{StockStatus: "low", IncludeInactive: true})
	require.EqualValues(t, 1, low.Total)
	assert.Equal(t, "platinum-solitaire-ring", low.Items[0].Slug)

	out := catalog.Apply(snapshot(), catalog.Query{StockStatus: "out", IncludeInactive: true})
	require.EqualValues(t, 1, out.Total)
	assert.Equal(t, "gold-kada-bracelet", out.Items[0].Slug)

	in := catalog.Apply(snapshot(), catalog.Query{StockStatus: "in", IncludeInactive: true})
	assert.EqualValues(t, 4, in.Total)
}

func TestQueryNormalize(t *testing.T) {
	q := catalog.Query{Page: -1, Limit: 0, MinPrice: -50}
	q.Normalize()
	assert.Equal(t, catalog.DefaultPage, q.Page)
	assert.Equal(t, catalog.DefaultLimit, q.Limit)
	assert.Equal(t, 0.0, q.MinPrice)
	assert.Equal(t, catalog.SortFeatured, q.SortBy)
}

func TestApplyEmptySnapshot(t *testing.T) {
	res := catalog.Apply(nil, catalog.Query{})
	assert.EqualValues(t, 0, res.Total)
	assert.Equal(t, 1, res.Pages)
	assert.Empty(t, res.Items)
}
