package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shirshak001/JEWEL/internal/catalog"
)

func TestFilterForCategoryMatchesByTitleKeyword(t *testing.T) {
	filter := filterFor(catalog.Query{Category: "rings"})

	or, ok := filter["$or"].(bson.A)
	require.True(t, ok, "category filter should be an $or of membership and title keywords")
	require.Len(t, or, 2)

	assert.Equal(t, bson.M{"categories": "rings"}, or[0])

	// Keyword branch: title matches ring|band but never an earring title.
	and, ok := or[1].(bson.M)["$and"].(bson.A)
	require.True(t, ok)
	require.Len(t, and, 2)

	match := and[0].(bson.M)["title"].(primitive.Regex)
	assert.Equal(t, "ring|band", match.Pattern)
	assert.Equal(t, "i", match.Options)

	not := and[1].(bson.M)["title"].(bson.M)["$not"].(primitive.Regex)
	assert.Equal(t, "earring", not.Pattern)
}

func TestFilterForCategoryWithoutKeywordsUsesMembership(t *testing.T) {
	filter := filterFor(catalog.Query{Category: "anklets"})
	assert.Equal(t, "anklets", filter["categories"])
}

func TestFilterForCategoryAndSearchCombine(t *testing.T) {
	filter := filterFor(catalog.Query{Category: "rings", Search: "gold"})

	_, hasOr := filter["$or"]
	assert.False(t, hasOr, "category and search must not clobber each other")

	and, ok := filter["$and"].(bson.A)
	require.True(t, ok)
	assert.Len(t, and, 2)
}

func TestRegexQuoteEscapesMetacharacters(t *testing.T) {
	assert.Equal(t, `gold \(22k\)\.`, regexQuote("gold (22k)."))
	assert.Equal(t, "jhumka", regexQuote("jhumka"))
}
