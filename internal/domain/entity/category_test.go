package entity

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDeriveFromParent(t *testing.T) {
	root := &Category{ID: primitive.NewObjectID(), Name: "Electronics", Ancestors: []primitive.ObjectID{}}

	child := &Category{ID: primitive.NewObjectID(), Name: "Phones"}
	child.DeriveFromParent(root)

	if child.Level != 1 {
		t.Errorf("child.Level = %d, want 1", child.Level)
	}
	if len(child.Ancestors) != 1 || child.Ancestors[0] != root.ID {
		t.Errorf("child.Ancestors = %v, want [root]", child.Ancestors)
	}

	grandchild := &Category{ID: primitive.NewObjectID(), Name: "Smartphones"}
	grandchild.DeriveFromParent(child)

	if grandchild.Level != 2 {
		t.Errorf("grandchild.Level = %d, want 2", grandchild.Level)
	}
	if len(grandchild.Ancestors) != 2 {
		t.Fatalf("grandchild.Ancestors length = %d, want 2", len(grandchild.Ancestors))
	}
	if grandchild.Ancestors[0] != root.ID || grandchild.Ancestors[1] != child.ID {
		t.Errorf("grandchild.Ancestors = %v, want [root, child]", grandchild.Ancestors)
	}
}

func TestDeriveFromParent_NilMakesRoot(t *testing.T) {
	c := &Category{ID: primitive.NewObjectID(), Level: 2, ParentCategory: &primitive.ObjectID{}}
	c.DeriveFromParent(nil)

	if c.Level != 0 || c.ParentCategory != nil || len(c.Ancestors) != 0 {
		t.Errorf("root derivation: level=%d parent=%v ancestors=%v", c.Level, c.ParentCategory, c.Ancestors)
	}
}

func TestWouldCreateCycle(t *testing.T) {
	root := &Category{ID: primitive.NewObjectID()}
	child := &Category{ID: primitive.NewObjectID(), Ancestors: []primitive.ObjectID{root.ID}}
	grandchild := &Category{ID: primitive.NewObjectID(), Ancestors: []primitive.ObjectID{root.ID, child.ID}}

	if !root.WouldCreateCycle(root) {
		t.Error("self-parenting should be a cycle")
	}
	if !root.WouldCreateCycle(child) {
		t.Error("parenting under own child should be a cycle")
	}
	if !root.WouldCreateCycle(grandchild) {
		t.Error("parenting under own grandchild should be a cycle")
	}
	if child.WouldCreateCycle(root) {
		t.Error("parenting child under root is not a cycle")
	}
	other := &Category{ID: primitive.NewObjectID(), Ancestors: []primitive.ObjectID{}}
	if root.WouldCreateCycle(other) {
		t.Error("parenting under an unrelated category is not a cycle")
	}
}

func TestBuildCategoryTree(t *testing.T) {
	root := &Category{ID: primitive.NewObjectID(), Name: "Electronics"}
	rootID := root.ID
	child1 := &Category{ID: primitive.NewObjectID(), Name: "Phones", ParentCategory: &rootID}
	child2 := &Category{ID: primitive.NewObjectID(), Name: "Laptops", ParentCategory: &rootID}
	c1ID := child1.ID
	grandchild := &Category{ID: primitive.NewObjectID(), Name: "Smartphones", ParentCategory: &c1ID}

	tree := BuildCategoryTree([]*Category{root, child1, child2, grandchild})

	if len(tree) != 1 {
		t.Fatalf("roots = %d, want 1", len(tree))
	}
	if len(tree[0].Children) != 2 {
		t.Fatalf("root children = %d, want 2", len(tree[0].Children))
	}
	var phones *CategoryNode
	for _, n := range tree[0].Children {
		if n.Name == "Phones" {
			phones = n
		}
	}
	if phones == nil || len(phones.Children) != 1 || phones.Children[0].Name != "Smartphones" {
		t.Error("grandchild not linked under Phones")
	}
}

func TestBuildCategoryTree_OrphanBecomesRoot(t *testing.T) {
	missing := primitive.NewObjectID()
	orphan := &Category{ID: primitive.NewObjectID(), Name: "Orphan", ParentCategory: &missing}

	tree := BuildCategoryTree([]*Category{orphan})
	if len(tree) != 1 || tree[0].Name != "Orphan" {
		t.Errorf("orphan should surface as root, got %d roots", len(tree))
	}
}
