package impl

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/cache"
	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/utils"
	apperrors "github.com/velora/velora-commerce-go/pkg/errors"
)

const (
	cacheKeyCategoryTree = "categories:tree"
	cacheKeyCategoryMenu = "categories:menu"
)

// categoryService implements service.CategoryService
type categoryService struct {
	categoryDAO dao.CategoryDAO
	cache       *cache.Service
}

// NewCategoryService creates a new CategoryService instance
func NewCategoryService(categoryDAO dao.CategoryDAO, cacheService *cache.Service) service.CategoryService {
	return &categoryService{categoryDAO: categoryDAO, cache: cacheService}
}

func (s *categoryService) Create(ctx context.Context, req *request.CreateCategoryRequest) (*entity.Category, error) {
	category := &entity.Category{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		IsActive:    true,
		ShowInMenu:  true,
		SortOrder:   req.SortOrder,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.ShowInMenu != nil {
		category.ShowInMenu = *req.ShowInMenu
	}

	parent, err := s.resolveParent(ctx, req.ParentCategory)
	if err != nil {
		return nil, err
	}
	if parent != nil && parent.Level >= entity.MaxCategoryLevel {
		return nil, service.ErrCategoryTooDeep
	}
	category.DeriveFromParent(parent)

	var slug string
	if req.Slug != "" {
		slug, err = s.claimSlug(ctx, req.Slug, "")
	} else {
		slug, err = s.uniqueSlug(ctx, req.Name)
	}
	if err != nil {
		return nil, err
	}
	category.Slug = slug

	if err := s.categoryDAO.Create(ctx, category); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return category, nil
}

func (s *categoryService) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	category, err := s.categoryDAO.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, service.ErrCategoryNotFound
	}
	return category, nil
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	category, err := s.categoryDAO.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, service.ErrCategoryNotFound
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id primitive.ObjectID, req *request.UpdateCategoryRequest) (*entity.Category, error) {
	category, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != category.Name {
		category.Name = *req.Name
		if req.Slug == nil {
			slug, err := s.uniqueSlug(ctx, *req.Name)
			if err != nil {
				return nil, err
			}
			category.Slug = slug
		}
	}
	if req.Slug != nil {
		slug, err := s.claimSlug(ctx, *req.Slug, category.Slug)
		if err != nil {
			return nil, err
		}
		category.Slug = slug
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Image != nil {
		category.Image = *req.Image
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.ShowInMenu != nil {
		category.ShowInMenu = *req.ShowInMenu
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}

	if req.ParentCategory != nil {
		parent, err := s.resolveParent(ctx, *req.ParentCategory)
		if err != nil {
			return nil, err
		}
		if category.WouldCreateCycle(parent) {
			return nil, service.ErrCategoryCycle
		}
		if parent != nil && parent.Level >= entity.MaxCategoryLevel {
			return nil, service.ErrCategoryTooDeep
		}
		category.DeriveFromParent(parent)
	}

	if err := s.categoryDAO.Update(ctx, category); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	children, err := s.categoryDAO.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return service.ErrCategoryHasChildren
	}

	if err := s.categoryDAO.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *categoryService) List(ctx context.Context, page, limit int) ([]*entity.Category, int64, error) {
	return s.categoryDAO.FindAll(ctx, page, limit)
}

func (s *categoryService) Tree(ctx context.Context) ([]*entity.CategoryNode, error) {
	var tree []*entity.CategoryNode
	if s.cache.Get(ctx, cacheKeyCategoryTree, &tree) {
		return tree, nil
	}

	categories, err := s.categoryDAO.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	tree = entity.BuildCategoryTree(categories)
	s.cache.Set(ctx, cacheKeyCategoryTree, tree)
	return tree, nil
}

func (s *categoryService) Menu(ctx context.Context) ([]*entity.CategoryNode, error) {
	var menu []*entity.CategoryNode
	if s.cache.Get(ctx, cacheKeyCategoryMenu, &menu) {
		return menu, nil
	}

	categories, err := s.categoryDAO.FindMenu(ctx)
	if err != nil {
		return nil, err
	}
	menu = entity.BuildCategoryTree(categories)
	s.cache.Set(ctx, cacheKeyCategoryMenu, menu)
	return menu, nil
}

func (s *categoryService) DescendantIDs(ctx context.Context, id primitive.ObjectID) ([]primitive.ObjectID, error) {
	categories, err := s.categoryDAO.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	ids := []primitive.ObjectID{id}
	for _, c := range categories {
		for _, a := range c.Ancestors {
			if a == id {
				ids = append(ids, c.ID)
				break
			}
		}
	}
	return ids, nil
}

// resolveParent looks up the parent by hex id; empty means root.
func (s *categoryService) resolveParent(ctx context.Context, hex string) (*entity.Category, error) {
	if hex == "" {
		return nil, nil
	}
	parentID, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil, service.ErrCategoryNotFound
	}
	parent, err := s.categoryDAO.FindByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, service.ErrCategoryNotFound
	}
	return parent, nil
}

// claimSlug normalizes a client-supplied slug. Unlike generated slugs an
// explicit one is never suffixed: a collision is the caller's error.
func (s *categoryService) claimSlug(ctx context.Context, raw, current string) (string, error) {
	slug := utils.Slugify(raw)
	if slug == "" {
		return "", apperrors.BadRequest("slug must contain letters or digits")
	}
	if slug == current {
		return slug, nil
	}
	exists, err := s.categoryDAO.ExistsBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	if exists {
		return "", service.ErrSlugTaken
	}
	return slug, nil
}

// uniqueSlug slugifies the name, appending a time suffix on collision.
func (s *categoryService) uniqueSlug(ctx context.Context, name string) (string, error) {
	slug := utils.Slugify(name)
	exists, err := s.categoryDAO.ExistsBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	if exists {
		slug = utils.SlugWithSuffix(slug, time.Now())
	}
	return slug, nil
}

func (s *categoryService) invalidate(ctx context.Context) {
	s.cache.Delete(ctx, cacheKeyCategoryTree, cacheKeyCategoryMenu)
}
