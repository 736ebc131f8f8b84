package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shirshak001/JEWEL/app/models"
)

func init() {
	Register("categories", SeedCategories)
	Register("products", SeedProducts)
}

// SeedCategories inserts the base category tree. Idempotent: skips when
// the collection already has documents.
func SeedCategories(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection("categories")
	if n, err := coll.CountDocuments(ctx, bson.M{}); err != nil {
		return err
	} else if n > 0 {
		return nil
	}

	now := time.Now()
	categories := []models.Category{
		{Name: "Rings", Slug: "rings", Description: "Bands, solitaires and statement rings", Order: 1, Active: true},
		{Name: "Earrings", Slug: "earrings", Description: "Studs, hoops and jhumkas", Order: 2, Active: true},
		{Name: "Necklaces", Slug: "necklaces", Description: "Chains, pendants and chokers", Order: 3, Active: true},
		{Name: "Bracelets", Slug: "bracelets", Description: "Bangles, kadas and charm bracelets", Order: 4, Active: true},
	}

	docs := make([]interface{}, 0, len(categories))
	for i := range categories {
		categories[i].CreatedAt = now
		categories[i].UpdatedAt = now
		docs = append(docs, categories[i])
	}
	_, err := coll.InsertMany(ctx, docs)
	return err
}

// SeedProducts inserts a starter catalogue. Idempotent like SeedCategories.
func SeedProducts(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection("products")
	if n, err := coll.CountDocuments(ctx, bson.M{}); err != nil {
		return err
	} else if n > 0 {
		return nil
	}

	products := []models.Product{
		{
			Title:       "Classic Gold Band Ring",
			Description: "22k gold band with a brushed finish, 4mm wide.",
			Price:       18500,
			Categories:  []string{"rings"},
			Tags:        []string{"gold", "classic"},
			Images:      []models.Image{{URL: "/images/seed/gold-band.jpg", Alt: "Classic gold band", IsPrimary: true}},
			Inventory:   models.Inventory{Stock: 12},
			Attributes:  []models.Attribute{{Name: "metal", Value: "gold"}, {Name: "purity", Value: "22k"}},
			Featured:    true,
			Active:      true,
		},
		{
			Title:       "Silver Jhumka Earrings",
			Description: "Oxidised silver jhumkas with pearl drops.",
			Price:       3200,
			Categories:  []string{"earrings"},
			Tags:        []string{"silver", "traditional"},
			Images:      []models.Image{{URL: "/images/seed/silver-jhumka.jpg", Alt: "Silver jhumka pair", IsPrimary: true}},
			Inventory:   models.Inventory{Stock: 30},
			Attributes:  []models.Attribute{{Name: "metal", Value: "silver"}},
			Active:      true,
		},
		{
			Title:       "Rose Gold Pendant Necklace",
			Description: "18k rose gold chain with a teardrop pendant.",
			Price:       24750,
			Categories:  []string{"necklaces"},
			Tags:        []string{"rose-gold"},
			Images:      []models.Image{{URL: "/images/seed/rose-pendant.jpg", Alt: "Rose gold pendant", IsPrimary: true}},
			Inventory:   models.Inventory{Stock: 8},
			Attributes:  []models.Attribute{{Name: "metal", Value: "rose-gold"}, {Name: "purity", Value: "18k"}},
			Featured:    true,
			Active:      true,
		},
		{
			Title:       "Platinum Solitaire Ring",
			Description: "Platinum solitaire with a 0.5 carat round diamond.",
			Price:       98000,
			Categories:  []string{"rings"},
			Tags:        []string{"platinum", "diamond"},
			Images:      []models.Image{{URL: "/images/seed/platinum-solitaire.jpg", Alt: "Platinum solitaire", IsPrimary: true}},
			Inventory:   models.Inventory{Stock: 2},
			Attributes:  []models.Attribute{{Name: "metal", Value: "platinum"}, {Name: "gemstone", Value: "diamond"}},
			Featured:    true,
			Active:      true,
		},
		{
			Title:       "Gold Kada Bracelet",
			Description: "Solid 22k gold kada with engraved detailing.",
			Price:       41200,
			Categories:  []string{"bracelets"},
			Tags:        []string{"gold", "kada"},
			Images:      []models.Image{{URL: "/images/seed/gold-kada.jpg", Alt: "Gold kada", IsPrimary: true}},
			Inventory:   models.Inventory{Stock: 0},
			Attributes:  []models.Attribute{{Name: "metal", Value: "gold"}, {Name: "purity", Value: "22k"}},
			Active:      true,
		},
		{
			Title:       "Pearl Stud Earrings",
			Description: "Freshwater pearl studs on sterling silver posts.",
			Price:       1850,
			Categories:  []string{"earrings"},
			Tags:        []string{"pearl", "silver"},
			Images:      []models.Image{{URL: "/images/seed/pearl-studs.jpg", Alt: "Pearl studs", IsPrimary: true}},
			Inventory:   models.Inventory{Stock: 45},
			Attributes:  []models.Attribute{{Name: "metal", Value: "silver"}, {Name: "gemstone", Value: "pearl"}},
			Active:      true,
		},
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(products))
	for i := range products {
		products[i].Normalize()
		products[i].CreatedAt = now
		products[i].UpdatedAt = now
		docs = append(docs, products[i])
	}
	_, err := coll.InsertMany(ctx, docs)
	return err
}
