package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a node in the catalogue's category tree.
type Category struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"       json:"id"`
	Name        string              `bson:"name"                json:"name"`
	Slug        string              `bson:"slug"                json:"slug"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	ParentID    *primitive.ObjectID `bson:"parent_id,omitempty" json:"parentId,omitempty"`
	Image       string              `bson:"image,omitempty"     json:"image,omitempty"`
	Order       int                 `bson:"order"               json:"order"`
	Active      bool                `bson:"active"              json:"active"`
	CreatedAt   time.Time           `bson:"created_at"          json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updated_at"          json:"updatedAt"`
}

// Normalize derives the slug from the name when absent.
func (c *Category) Normalize() {
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
}

// CategoryNode is a category with its children resolved, as returned by the
// tree endpoint.
type CategoryNode struct {
	Category `bson:",inline"`
	Children []*CategoryNode `json:"children"`
}

// BuildCategoryTree arranges a flat category list into parent/child nodes.
// Nodes whose parent is missing from the list, or whose parent chain loops
// back on itself, are kept at the root level rather than dropped.
func BuildCategoryTree(categories []Category) []*CategoryNode {
	byID := make(map[primitive.ObjectID]*Category, len(categories))
	nodes := make(map[primitive.ObjectID]*CategoryNode, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
		nodes[categories[i].ID] = &CategoryNode{
			Category: categories[i],
			Children: []*CategoryNode{},
		}
	}

	// reachesRoot walks the parent chain from id. A chain that ends at a
	// nil or missing parent reaches a root; revisiting an ID means the
	// chain is a cycle and nothing below it can ever render.
	reachesRoot := func(id primitive.ObjectID) bool {
		seen := make(map[primitive.ObjectID]bool)
		for {
			if seen[id] {
				return false
			}
			seen[id] = true
			c, ok := byID[id]
			if !ok || c.ParentID == nil {
				return true
			}
			id = *c.ParentID
		}
	}

	var roots []*CategoryNode
	for i := range categories {
		node := nodes[categories[i].ID]
		if pid := categories[i].ParentID; pid != nil {
			if parent, ok := nodes[*pid]; ok && parent != node && reachesRoot(*pid) {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
