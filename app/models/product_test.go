package models_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shirshak001/JEWEL/app/models"
)

func TestClassifyStock(t *testing.T) {
	cases := []struct {
		stock, threshold int
		want             models.StockState
	}{
		{0, 3, models.OutOfStock},
		{1, 3, models.LowStock},
		{3, 3, models.LowStock},
		{4, 3, models.InStock},
		{100, 3, models.InStock},
		{0, 0, models.OutOfStock},
		{1, 0, models.InStock}, // threshold 0 makes low-stock unreachable
	}
	for _, tc := range cases {
		got := models.ClassifyStock(tc.stock, tc.threshold)
		assert.Equal(t, tc.want, got, "stock=%d threshold=%d", tc.stock, tc.threshold)
	}
}

func TestAvailable(t *testing.T) {
	p := models.Product{Active: true, Inventory: models.Inventory{Stock: 5}}
	assert.True(t, p.Available())

	p.Inventory.Stock = 0
	assert.False(t, p.Available())

	p.Inventory.Stock = 5
	p.Active = false
	assert.False(t, p.Available())
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Classic Gold Band Ring":  "classic-gold-band-ring",
		"  Rose  Gold  Pendant  ": "rose-gold-pendant",
		"22k Gold! (New)":         "22k-gold-new",
		"--Already--Hyphenated--": "already-hyphenated",
	}
	for in, want := range cases {
		assert.Equal(t, want, models.Slugify(in))
	}
}

func TestGenerateSKU(t *testing.T) {
	pattern := regexp.MustCompile(`^AMB-\d{1,8}-\d{3}$`)
	for i := 0; i < 10; i++ {
		sku := models.GenerateSKU()
		assert.Regexp(t, pattern, sku)
	}
}

func TestNormalizeDerivesSlugAndDefaults(t *testing.T) {
	p := models.Product{Title: "  Pearl Stud Earrings  ", Price: 1850}
	p.Normalize()

	assert.Equal(t, "Pearl Stud Earrings", p.Title)
	assert.Equal(t, "pearl-stud-earrings", p.Slug)
	assert.NotEmpty(t, p.Inventory.SKU)
	assert.Equal(t, models.DefaultLowStockThreshold, p.LowStockThreshold)
}

func TestNormalizeKeepsExplicitSlug(t *testing.T) {
	p := models.Product{Title: "Pearl Stud Earrings", Slug: "Custom-Slug"}
	p.Normalize()
	assert.Equal(t, "custom-slug", p.Slug)
}

func TestValidateRejectsBadSalePrice(t *testing.T) {
	p := models.Product{Title: "Ring", Price: 100, SalePrice: 150}
	errs := p.Validate()
	assert.Contains(t, errs, "salePrice")

	p.SalePrice = 80
	assert.Empty(t, p.Validate())
}

func TestPrimaryImage(t *testing.T) {
	p := models.Product{Images: []models.Image{
		{URL: "/a.jpg"},
		{URL: "/b.jpg", IsPrimary: true},
	}}
	img := p.PrimaryImage()
	assert.NotNil(t, img)
	assert.Equal(t, "/b.jpg", img.URL)

	// No primary flag falls back to the first image.
	p.Images[1].IsPrimary = false
	assert.Equal(t, "/a.jpg", p.PrimaryImage().URL)

	p.Images = nil
	assert.Nil(t, p.PrimaryImage())
}

func TestAttributeLookupIsCaseInsensitive(t *testing.T) {
	p := models.Product{Attributes: []models.Attribute{{Name: "Metal", Value: "gold"}}}
	assert.Equal(t, "gold", p.Attribute("metal"))
	assert.Equal(t, "", p.Attribute("gemstone"))
}
