package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shirshak001/JEWEL/app/models"
)

func TestCartAddMergesSameProduct(t *testing.T) {
	var c models.Cart
	c.Add(models.CartItem{ProductID: "p1", Name: "Gold Band", Price: 1000, Quantity: 1})
	c.Add(models.CartItem{ProductID: "p1", Name: "Gold Band", Price: 1000, Quantity: 1})

	assert.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestCartAddClampsQuantity(t *testing.T) {
	var c models.Cart
	c.Add(models.CartItem{ProductID: "p1", Price: 500, Quantity: 0})
	assert.Equal(t, 1, c.Items[0].Quantity)

	c.Add(models.CartItem{ProductID: "p2", Price: 500, Quantity: -3})
	assert.Equal(t, 1, c.Find("p2").Quantity)
}

func TestCartTotalAndCount(t *testing.T) {
	var c models.Cart
	c.Add(models.CartItem{ProductID: "p1", Price: 1000, Quantity: 2})
	c.Add(models.CartItem{ProductID: "p2", Price: 500, Quantity: 1})

	assert.Equal(t, 2500.0, c.Total())
	assert.Equal(t, 3, c.ItemCount())
}

func TestCartSetQuantity(t *testing.T) {
	var c models.Cart
	c.Add(models.CartItem{ProductID: "p1", Price: 1000, Quantity: 2})

	c.SetQuantity("p1", 5)
	assert.Equal(t, 5, c.Find("p1").Quantity)

	c.SetQuantity("p1", 0)
	assert.Equal(t, 1, c.Find("p1").Quantity)

	// unknown lines are ignored
	c.SetQuantity("missing", 3)
	assert.Nil(t, c.Find("missing"))
}

func TestCartRemoveAndClear(t *testing.T) {
	var c models.Cart
	c.Add(models.CartItem{ProductID: "p1", Price: 1000, Quantity: 1})
	c.Add(models.CartItem{ProductID: "p2", Price: 500, Quantity: 1})

	c.Remove("p1")
	assert.Len(t, c.Items, 1)
	assert.Nil(t, c.Find("p1"))

	c.Remove("p1") // idempotent
	assert.Len(t, c.Items, 1)

	c.Clear()
	assert.Empty(t, c.Items)
	assert.Equal(t, 0.0, c.Total())
}
