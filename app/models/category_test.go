package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shirshak001/JEWEL/app/models"
)

func TestBuildCategoryTree(t *testing.T) {
	rings := primitive.NewObjectID()
	gold := primitive.NewObjectID()
	silver := primitive.NewObjectID()
	earrings := primitive.NewObjectID()

	tree := models.BuildCategoryTree([]models.Category{
		{ID: rings, Name: "Rings", Slug: "rings"},
		{ID: gold, Name: "Gold Rings", Slug: "gold-rings", ParentID: &rings},
		{ID: silver, Name: "Silver Rings", Slug: "silver-rings", ParentID: &rings},
		{ID: earrings, Name: "Earrings", Slug: "earrings"},
	})

	require.Len(t, tree, 2)
	assert.Equal(t, "rings", tree[0].Slug)
	assert.Len(t, tree[0].Children, 2)
	assert.Equal(t, "earrings", tree[1].Slug)
	assert.Empty(t, tree[1].Children)
}

func TestBuildCategoryTreeOrphansStayAtRoot(t *testing.T) {
	missing := primitive.NewObjectID()
	orphan := primitive.NewObjectID()

	tree := models.BuildCategoryTree([]models.Category{
		{ID: orphan, Name: "Orphan", Slug: "orphan", ParentID: &missing},
	})

	require.Len(t, tree, 1)
	assert.Equal(t, "orphan", tree[0].Slug)
}

func TestBuildCategoryTreeSelfParent(t *testing.T) {
	id := primitive.NewObjectID()
	tree := models.BuildCategoryTree([]models.Category{
		{ID: id, Name: "Loop", Slug: "loop", ParentID: &id},
	})

	require.Len(t, tree, 1)
	assert.Empty(t, tree[0].Children)
}

func TestBuildCategoryTreeParentCycleStaysAtRoot(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	child := primitive.NewObjectID()

	// a and b name each other as parent; child hangs off the cycle.
	tree := models.BuildCategoryTree([]models.Category{
		{ID: a, Name: "A", Slug: "a", ParentID: &b},
		{ID: b, Name: "B", Slug: "b", ParentID: &a},
		{ID: child, Name: "Child", Slug: "child", ParentID: &a},
	})

	require.Len(t, tree, 3)
	slugs := []string{tree[0].Slug, tree[1].Slug, tree[2].Slug}
	assert.ElementsMatch(t, []string{"a", "b", "child"}, slugs)
	for _, n := range tree {
		assert.Empty(t, n.Children, n.Slug)
	}
}

func TestCategoryNormalize(t *testing.T) {
	c := models.Category{Name: "Gold Rings"}
	c.Normalize()
	assert.Equal(t, "gold-rings", c.Slug)

	c = models.Category{Name: "Gold Rings", Slug: "custom"}
	c.Normalize()
	assert.Equal(t, "custom", c.Slug)
}
