package impl

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/cache"
	"github.com/velora/velora-commerce-go/internal/config"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/testutil/mocks"
)

func noopCache() *cache.Service {
	return cache.NewService(nil, &config.CacheConfig{}, zap.NewNop())
}

func setupCategoryService(t *testing.T) (service.CategoryService, *mocks.MockCategoryDAO) {
	t.Helper()
	categoryDAO := mocks.NewMockCategoryDAO()
	svc := NewCategoryService(categoryDAO, noopCache())
	return svc, categoryDAO
}

func TestCategoryServiceCreateRoot(t *testing.T) {
	svc, _ := setupCategoryService(t)

	cat, err := svc.Create(context.Background(), &request.CreateCategoryRequest{Name: "Electronics"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if cat.Slug != "electronics" {
		t.Errorf("slug = %q, want electronics", cat.Slug)
	}
	if cat.Level != 0 || cat.ParentCategory != nil {
		t.Errorf("expected a root category, got level %d", cat.Level)
	}
	if !cat.IsActive || !cat.ShowInMenu {
		t.Error("defaults should be active and shown in menu")
	}
}

func TestCategoryServiceCreateChildDerivesAncestry(t *testing.T) {
	svc, _ := setupCategoryService(t)
	ctx := context.Background()

	root, err := svc.Create(ctx, &request.CreateCategoryRequest{Name: "Electronics"})
	if err != nil {
		t.Fatalf("Create root: %v", err)
	}

	child, err := svc.Create(ctx, &request.CreateCategoryRequest{
		Name:           "Phones",
		ParentCategory: root.ID.Hex(),
	})
	if err != nil {
		t.Fatalf("Create child: %v", err)
	}
	if child.Level != 1 {
		t.Errorf("level = %d, want 1", child.Level)
	}
	if len(child.Ancestors) != 1 || child.Ancestors[0] != root.ID {
		t.Errorf("ancestors = %v, want [%s]", child.Ancestors, root.ID.Hex())
	}
}

func TestCategoryServiceCreateTooDeep(t *testing.T) {
	svc, _ := setupCategoryService(t)
	ctx := context.Background()

	parent := ""
	var leaf *entity.Category
	for _, name := range []string{"A", "AB", "ABC"} {
		cat, err := svc.Create(ctx, &request.CreateCategoryRequest{Name: name, ParentCategory: parent})
		if err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
		parent = cat.ID.Hex()
		leaf = cat
	}

	_, err := svc.Create(ctx, &request.CreateCategoryRequest{Name: "Too deep", ParentCategory: leaf.ID.Hex()})
	if !errors.Is(err, service.ErrCategoryTooDeep) {
		t.Fatalf("err = %v, want ErrCategoryTooDeep", err)
	}
}

func TestCategoryServiceUpdateRejectsCycle(t *testing.T) {
	svc, _ := setupCategoryService(t)
	ctx := context.Background()

	root, err := svc.Create(ctx, &request.CreateCategoryRequest{Name: "Electronics"})
	if err != nil {
		t.Fatalf("Create root: %v", err)
	}
	child, err := svc.Create(ctx, &request.CreateCategoryRequest{Name: "Phones", ParentCategory: root.ID.Hex()})
	if err != nil {
		t.Fatalf("Create child: %v", err)
	}

	childHex := child.ID.Hex()
	_, err = svc.Update(ctx, root.ID, &request.UpdateCategoryRequest{ParentCategory: &childHex})
	if !errors.Is(err, service.ErrCategoryCycle) {
		t.Fatalf("err = %v, want ErrCategoryCycle", err)
	}
}

func TestCategoryServiceDeleteWithChildren(t *testing.T) {
	svc, _ := setupCategoryService(t)
	ctx := context.Background()

	root, err := svc.Create(ctx, &request.CreateCategoryRequest{Name: "Electronics"})
	if err != nil {
		t.Fatalf("Create root: %v", err)
	}
	if _, err := svc.Create(ctx, &request.CreateCategoryRequest{Name: "Phones", ParentCategory: root.ID.Hex()}); err != nil {
		t.Fatalf("Create child: %v", err)
	}

	if err := svc.Delete(ctx, root.ID); !errors.Is(err, service.ErrCategoryHasChildren) {
		t.Fatalf("err = %v, want ErrCategoryHasChildren", err)
	}
}

func TestCategoryServiceDeleteLeaf(t *testing.T) {
	svc, categoryDAO := setupCategoryService(t)
	ctx := context.Background()

	cat, err := svc.Create(ctx, &request.CreateCategoryRequest{Name: "Electronics"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, cat.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	found, _ := categoryDAO.FindByID(ctx, cat.ID)
	if found != nil {
		t.Error("category still present after delete")
	}
}

func TestCategoryServiceSlugCollision(t *testing.T) {
	svc, _ := setupCategoryService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, &request.CreateCategoryRequest{Name: "Electronics"})
	if err != nil {
		t.Fatalf("Create first: %v", err)
	}
	second, err := svc.Create(ctx, &request.CreateCategoryRequest{Name: "Electronics"})
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}
	if first.Slug == second.Slug {
		t.Errorf("slug collision not resolved: %q", second.Slug)
	}
}

func TestCategoryServiceExplicitSlug(t *testing.T) {
	svc, _ := setupCategoryService(t)
	ctx := context.Background()

	cat, err := svc.Create(ctx, &request.CreateCategoryRequest{Name: "Electronics", Slug: "Gadgets & More"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if cat.Slug != "gadgets-more" {
		t.Errorf("slug = %q, want gadgets-more", cat.Slug)
	}

	// an explicit slug is never suffixed, the duplicate is rejected
	_, err = svc.Create(ctx, &request.CreateCategoryRequest{Name: "Appliances", Slug: "gadgets-more"})
	if !errors.Is(err, service.ErrSlugTaken) {
		t.Fatalf("err = %v, want ErrSlugTaken", err)
	}
}

func TestCategoryServiceUpdateExplicitSlugTaken(t *testing.T) {
	svc, _ := setupCategoryService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &request.CreateCategoryRequest{Name: "Electronics"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	other, err := svc.Create(ctx, &request.CreateCategoryRequest{Name: "Appliances"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	taken := "electronics"
	if _, err := svc.Update(ctx, other.ID, &request.UpdateCategoryRequest{Slug: &taken}); !errors.Is(err, service.ErrSlugTaken) {
		t.Fatalf("err = %v, want ErrSlugTaken", err)
	}

	// keeping your own slug is not a collision
	own := "appliances"
	updated, err := svc.Update(ctx, other.ID, &request.UpdateCategoryRequest{Slug: &own})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Slug != "appliances" {
		t.Errorf("slug = %q, want appliances", updated.Slug)
	}
}

func TestCategoryServiceTree(t *testing.T) {
	svc, _ := setupCategoryService(t)
	ctx := context.Background()

	root, err := svc.Create(ctx, &request.CreateCategoryRequest{Name: "Electronics"})
	if err != nil {
		t.Fatalf("Create root: %v", err)
	}
	if _, err := svc.Create(ctx, &request.CreateCategoryRequest{Name: "Phones", ParentCategory: root.ID.Hex()}); err != nil {
		t.Fatalf("Create child: %v", err)
	}

	tree, err := svc.Tree(ctx)
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	if len(tree) != 1 {
		t.Fatalf("roots = %d, want 1", len(tree))
	}
	if len(tree[0].Children) != 1 {
		t.Fatalf("children = %d, want 1", len(tree[0].Children))
	}
}

func TestCategoryServiceDescendantIDs(t *testing.T) {
	svc, _ := setupCategoryService(t)
	ctx := context.Background()

	root, err := svc.Create(ctx, &request.CreateCategoryRequest{Name: "Electronics"})
	if err != nil {
		t.Fatalf("Create root: %v", err)
	}
	child, err := svc.Create(ctx, &request.CreateCategoryRequest{Name: "Phones", ParentCategory: root.ID.Hex()})
	if err != nil {
		t.Fatalf("Create child: %v", err)
	}
	grand, err := svc.Create(ctx, &request.CreateCategoryRequest{Name: "Smartphones", ParentCategory: child.ID.Hex()})
	if err != nil {
		t.Fatalf("Create grandchild: %v", err)
	}

	ids, err := svc.DescendantIDs(ctx, root.ID)
	if err != nil {
		t.Fatalf("DescendantIDs: %v", err)
	}
	want := map[string]bool{root.ID.Hex(): true, child.ID.Hex(): true, grand.ID.Hex(): true}
	if len(ids) != len(want) {
		t.Fatalf("ids = %d, want %d", len(ids), len(want))
	}
	for _, id := range ids {
		if !want[id.Hex()] {
			t.Errorf("unexpected id %s", id.Hex())
		}
	}
}
