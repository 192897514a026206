package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxCategoryLevel is the deepest allowed category level (root = 0).
const MaxCategoryLevel = 2

// Category is a node in the self-referential category tree. Ancestors holds
// every parent ID up to the root, so descendant checks never need recursion.
type Category struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name           string               `bson:"name" json:"name"`
	Slug           string               `bson:"slug" json:"slug"`
	Description    string               `bson:"description,omitempty" json:"description,omitempty"`
	Image          string               `bson:"image,omitempty" json:"image,omitempty"`
	ParentCategory *primitive.ObjectID  `bson:"parent_category,omitempty" json:"parent_category,omitempty"`
	Level          int                  `bson:"level" json:"level"`
	Ancestors      []primitive.ObjectID `bson:"ancestors" json:"ancestors"`
	IsActive       bool                 `bson:"is_active" json:"is_active"`
	ShowInMenu     bool                 `bson:"show_in_menu" json:"show_in_menu"`
	SortOrder      int                  `bson:"sort_order" json:"sort_order"`
	CreatedAt      time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time            `bson:"updated_at" json:"updated_at"`
}

// IsRoot reports whether the category has no parent
func (c *Category) IsRoot() bool {
	return c.ParentCategory == nil
}

// DeriveFromParent computes level and ancestors from the parent node.
// A nil parent makes the category a root.
func (c *Category) DeriveFromParent(parent *Category) {
	if parent == nil {
		c.ParentCategory = nil
		c.Level = 0
		c.Ancestors = []primitive.ObjectID{}
		return
	}
	id := parent.ID
	c.ParentCategory = &id
	c.Level = parent.Level + 1
	c.Ancestors = append(append([]primitive.ObjectID{}, parent.Ancestors...), parent.ID)
}

// WouldCreateCycle reports whether re-parenting the category under newParent
// would create a cycle: the candidate parent is the category itself or one of
// its descendants (its ancestors contain the category).
func (c *Category) WouldCreateCycle(newParent *Category) bool {
	if newParent == nil {
		return false
	}
	if newParent.ID == c.ID {
		return true
	}
	for _, a := range newParent.Ancestors {
		if a == c.ID {
			return true
		}
	}
	return false
}

// CategoryNode is a category with linked children, used for tree responses.
type CategoryNode struct {
	*Category
	Children []*CategoryNode `json:"children"`
}

// BuildCategoryTree links a flat category list into root-anchored trees.
// Two passes: create a node per category, then attach each node to its
// parent. Orphans (parent missing from the list) surface as roots.
func BuildCategoryTree(categories []*Category) []*CategoryNode {
	nodes := make(map[primitive.ObjectID]*CategoryNode, len(categories))
	for _, c := range categories {
		nodes[c.ID] = &CategoryNode{Category: c, Children: []*CategoryNode{}}
	}

	var roots []*CategoryNode
	for _, c := range categories {
		node := nodes[c.ID]
		if c.ParentCategory != nil {
			if parent, ok := nodes[*c.ParentCategory]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
