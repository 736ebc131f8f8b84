package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shirshak001/JEWEL/pkg/collection"
)

type item struct {
	Name  string
	Kind  string
	Price float64
}

var items = []item{
	{"gold band", "ring", 18500},
	{"jhumka pair", "earring", 3200},
	{"solitaire", "ring", 98000},
	{"pearl studs", "earring", 1850},
}

func TestMap(t *testing.T) {
	names := collection.Map(items, func(i item) string { return i.Name })
	assert.Equal(t, []string{"gold band", "jhumka pair", "solitaire", "pearl studs"}, names)
}

func TestFilter(t *testing.T) {
	rings := collection.Filter(items, func(i item) bool { return i.Kind == "ring" })
	assert.Len(t, rings, 2)

	none := collection.Filter(items, func(i item) bool { return i.Price < 0 })
	assert.Empty(t, none)
}

func TestFirst(t *testing.T) {
	got, ok := collection.First(items, func(i item) bool { return i.Price > 50000 })
	assert.True(t, ok)
	assert.Equal(t, "solitaire", got.Name)

	_, ok = collection.First(items, func(i item) bool { return i.Kind == "necklace" })
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	assert.True(t, collection.Contains(items, func(i item) bool { return i.Kind == "ring" }))
	assert.False(t, collection.Contains(items, func(i item) bool { return i.Kind == "necklace" }))
}

func TestGroupBy(t *testing.T) {
	byKind := collection.GroupBy(items, func(i item) string { return i.Kind })
	assert.Len(t, byKind, 2)
	assert.Len(t, byKind["ring"], 2)
	assert.Len(t, byKind["earring"], 2)
}

func TestKeyBy(t *testing.T) {
	byName := collection.KeyBy(items, func(i item) string { return i.Name })
	assert.Len(t, byName, 4)
	assert.Equal(t, 3200.0, byName["jhumka pair"].Price)
}

func TestSortByIsStableAndInPlace(t *testing.T) {
	s := []item{{"b", "x", 2}, {"a", "x", 1}, {"c", "x", 2}}
	collection.SortBy(s, func(a, b item) bool { return a.Price < b.Price })
	assert.Equal(t, "a", s[0].Name)
	assert.Equal(t, "b", s[1].Name) // equal prices keep input order
	assert.Equal(t, "c", s[2].Name)
}

func TestSum(t *testing.T) {
	total := collection.Sum(items, func(i item) float64 { return i.Price })
	assert.Equal(t, 121550.0, total)
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, collection.Unique([]string{"a", "b", "a", "c", "b"}))
}

func TestPaginate(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{1, 2}, collection.Paginate(s, 1, 2))
	assert.Equal(t, []int{3, 4}, collection.Paginate(s, 2, 2))
	assert.Equal(t, []int{5}, collection.Paginate(s, 3, 2))
	assert.Empty(t, collection.Paginate(s, 4, 2))
	assert.Equal(t, []int{1, 2}, collection.Paginate(s, 0, 2)) // clamps to page 1
}

func TestTake(t *testing.T) {
	s := []int{1, 2, 3}
	assert.Equal(t, []int{1, 2}, collection.Take(s, 2))
	assert.Equal(t, s, collection.Take(s, 10))
	assert.Empty(t, collection.Take(s, 0))
}

func TestReduce(t *testing.T) {
	max := collection.Reduce(items, 0.0, func(carry float64, i item) float64 {
		if i.Price > carry {
			return i.Price
		}
		return carry
	})
	assert.Equal(t, 98000.0, max)
}
