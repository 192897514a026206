package impl

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/cache"
	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/dto/response"
	"github.com/velora/velora-commerce-go/internal/events"
	"github.com/velora/velora-commerce-go/internal/utils"
	apperrors "github.com/velora/velora-commerce-go/pkg/errors"
)

const relatedProductLimit = 8

// productService implements service.ProductService
type productService struct {
	productDAO      dao.ProductDAO
	categoryDAO     dao.CategoryDAO
	categoryService service.CategoryService
	cache           *cache.Service
	publisher       events.Publisher
	logger          *zap.Logger
}

// NewProductService creates a new ProductService instance
func NewProductService(
	productDAO dao.ProductDAO,
	categoryDAO dao.CategoryDAO,
	categoryService service.CategoryService,
	cacheService *cache.Service,
	publisher events.Publisher,
	logger *zap.Logger,
) service.ProductService {
	return &productService{
		productDAO:      productDAO,
		categoryDAO:     categoryDAO,
		categoryService: categoryService,
		cache:           cacheService,
		publisher:       publisher,
		logger:          logger,
	}
}

func (s *productService) Create(ctx context.Context, req *request.CreateProductRequest) (*entity.Product, error) {
	categoryID, err := primitive.ObjectIDFromHex(req.Category)
	if err != nil {
		return nil, service.ErrCategoryNotFound
	}
	category, err := s.categoryDAO.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, service.ErrCategoryNotFound
	}

	product := &entity.Product{
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		ComparePrice:      req.ComparePrice,
		Quantity:          req.Quantity,
		TrackQuantity:     true,
		AllowBackorder:    req.AllowBackorder,
		LowStockThreshold: req.LowStockThreshold,
		Weight:            req.Weight,
		Category:          categoryID,
		Images:            req.Images,
		Tags:              req.Tags,
		Status:            entity.ProductStatusDraft,
		IsFeatured:        req.IsFeatured,
	}
	if req.TrackQuantity != nil {
		product.TrackQuantity = *req.TrackQuantity
	}
	if req.Status != "" {
		product.Status = entity.ProductStatus(req.Status)
	}
	if req.DiscountType != "" {
		product.DiscountType = entity.DiscountType(req.DiscountType)
		product.DiscountValue = req.DiscountValue
	}
	if err := applySaleWindow(product, req.SaleStartDate, req.SaleEndDate); err != nil {
		return nil, err
	}
	product.Variants = variantsFromRequest(req.Variants)

	var slug string
	if req.Slug != "" {
		slug, err = s.claimSlug(ctx, req.Slug, "")
	} else {
		slug, err = s.uniqueSlug(ctx, req.Name)
	}
	if err != nil {
		return nil, err
	}
	product.Slug = slug
	product.IsNewProduct = true
	product.ApplySaveDerivations(time.Now())

	if err := s.productDAO.Create(ctx, product); err != nil {
		return nil, err
	}
	s.invalidateListings(ctx)
	return product, nil
}

func (s *productService) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	product, err := s.productDAO.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, service.ErrProductNotFound
	}
	return product, nil
}

func (s *productService) GetBySlug(ctx context.Context, slug string) (*response.ProductDetail, error) {
	cacheKey := "products:slug:" + slug

	var detail response.ProductDetail
	if s.cache.Get(ctx, cacheKey, &detail) {
		return &detail, nil
	}

	product, err := s.productDAO.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, service.ErrProductNotFound
	}

	related, err := s.productDAO.FindRelated(ctx, product.Category, product.ID, relatedProductLimit)
	if err != nil {
		return nil, err
	}

	detail = response.ProductDetail{Product: product, Related: related}
	s.cache.Set(ctx, cacheKey, detail)
	return &detail, nil
}

func (s *productService) Update(ctx context.Context, id primitive.ObjectID, req *request.UpdateProductRequest) (*entity.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldSlug := product.Slug

	if req.Name != nil && *req.Name != product.Name {
		product.Name = *req.Name
		if req.Slug == nil {
			slug := utils.Slugify(*req.Name)
			exists, err := s.productDAO.ExistsBySlug(ctx, slug)
			if err != nil {
				return nil, err
			}
			if exists && slug != oldSlug {
				slug = utils.SlugWithSuffix(slug, time.Now())
			}
			product.Slug = slug
		}
	}
	if req.Slug != nil {
		slug, err := s.claimSlug(ctx, *req.Slug, oldSlug)
		if err != nil {
			return nil, err
		}
		product.Slug = slug
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.ComparePrice != nil {
		product.ComparePrice = *req.ComparePrice
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.TrackQuantity != nil {
		product.TrackQuantity = *req.TrackQuantity
	}
	if req.AllowBackorder != nil {
		product.AllowBackorder = *req.AllowBackorder
	}
	if req.LowStockThreshold != nil {
		product.LowStockThreshold = *req.LowStockThreshold
	}
	if req.Weight != nil {
		product.Weight = *req.Weight
	}
	if req.Category != nil {
		categoryID, err := primitive.ObjectIDFromHex(*req.Category)
		if err != nil {
			return nil, service.ErrCategoryNotFound
		}
		category, err := s.categoryDAO.FindByID(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, service.ErrCategoryNotFound
		}
		product.Category = categoryID
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.Tags != nil {
		product.Tags = req.Tags
	}
	if req.Status != nil {
		product.Status = entity.ProductStatus(*req.Status)
	}
	if req.Variants != nil {
		product.Variants = variantsFromRequest(req.Variants)
	}
	if req.DiscountType != nil {
		product.DiscountType = entity.DiscountType(*req.DiscountType)
	}
	if req.DiscountValue != nil {
		product.DiscountValue = *req.DiscountValue
	}
	var startStr, endStr string
	if req.SaleStartDate != nil {
		startStr = *req.SaleStartDate
	}
	if req.SaleEndDate != nil {
		endStr = *req.SaleEndDate
	}
	if err := applySaleWindow(product, startStr, endStr); err != nil {
		return nil, err
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}

	product.ApplySaveDerivations(time.Now())
	if err := s.productDAO.Update(ctx, product); err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, "products:slug:"+oldSlug, "products:slug:"+product.Slug)
	s.invalidateListings(ctx)
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id primitive.ObjectID) error {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.productDAO.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, "products:slug:"+product.Slug)
	s.invalidateListings(ctx)
	return nil
}

func (s *productService) Search(ctx context.Context, query *request.ProductQuery) ([]*entity.Product, int64, error) {
	filter := dao.ProductFilter{
		MinPrice: query.MinPrice,
		MaxPrice: query.MaxPrice,
		Search:   query.Search,
		Featured: query.Featured,
		OnSale:   query.OnSale,
		Status:   entity.ProductStatus(query.Status),
	}
	if query.Tags != "" {
		filter.Tags = strings.Split(query.Tags, ",")
	}
	if query.Category != "" {
		categoryID, err := primitive.ObjectIDFromHex(query.Category)
		if err != nil {
			return nil, 0, service.ErrCategoryNotFound
		}
		ids, err := s.categoryService.DescendantIDs(ctx, categoryID)
		if err != nil {
			return nil, 0, err
		}
		filter.Categories = ids
	}

	return s.productDAO.Search(ctx, filter, dao.ProductSort(query.Sort), query.Page, query.Limit)
}

func (s *productService) Featured(ctx context.Context, limit int) ([]*entity.Product, error) {
	cacheKey := "products:featured"

	var featured []*entity.Product
	if s.cache.Get(ctx, cacheKey, &featured) {
		return featured, nil
	}

	featured, err := s.productDAO.FindFeatured(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, cacheKey, featured)
	return featured, nil
}

func (s *productService) LowStock(ctx context.Context, limit int) ([]*entity.Product, error) {
	return s.productDAO.FindLowStock(ctx, limit)
}

func (s *productService) UpdateStock(ctx context.Context, id primitive.ObjectID, req *request.UpdateStockRequest) (*entity.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.VariantSKU != "" && product.FindVariant(req.VariantSKU) == nil {
		return nil, service.ErrVariantNotFound
	}

	delta := req.Quantity
	if req.Operation == "subtract" {
		delta = -delta
	}

	err = s.productDAO.AdjustStock(ctx, dao.StockAdjustment{
		ProductID:  id,
		VariantSKU: req.VariantSKU,
		Delta:      delta,
	}, product.AllowBackorder || !product.TrackQuantity)
	if err == dao.ErrInsufficientStock {
		return nil, service.ErrOutOfStock
	}
	if err != nil {
		return nil, err
	}

	product, err = s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.checkLowStock(ctx, product)
	s.invalidateListings(ctx)
	return product, nil
}

func (s *productService) BulkUpdateStatus(ctx context.Context, ids []primitive.ObjectID, status entity.ProductStatus) (int64, error) {
	modified, err := s.productDAO.BulkUpdateStatus(ctx, ids, status)
	if err != nil {
		return 0, err
	}
	s.invalidateListings(ctx)
	return modified, nil
}

func (s *productService) BulkDelete(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	deleted, err := s.productDAO.BulkDelete(ctx, ids)
	if err != nil {
		return 0, err
	}
	s.invalidateListings(ctx)
	return deleted, nil
}

// ReserveStock decrements each line conditionally. The first line that
// fails rolls back everything reserved so far.
func (s *productService) ReserveStock(ctx context.Context, items []dao.StockAdjustment) error {
	reserved := make([]dao.StockAdjustment, 0, len(items))
	for _, adj := range items {
		product, err := s.GetByID(ctx, adj.ProductID)
		if err != nil {
			s.rollback(ctx, reserved)
			return err
		}
		allowNegative := product.AllowBackorder || !product.TrackQuantity

		if err := s.productDAO.AdjustStock(ctx, adj, allowNegative); err != nil {
			s.rollback(ctx, reserved)
			if err == dao.ErrInsufficientStock {
				return service.ErrOutOfStock
			}
			return err
		}
		reserved = append(reserved, adj)
		s.checkLowStockByID(ctx, adj.ProductID)
	}
	return nil
}

func (s *productService) RestoreStock(ctx context.Context, items []dao.StockAdjustment) error {
	for _, adj := range items {
		restore := adj
		restore.Delta = -adj.Delta
		if err := s.productDAO.AdjustStock(ctx, restore, true); err != nil {
			return err
		}
	}
	return nil
}

// claimSlug normalizes a client-supplied slug. Unlike generated slugs an
// explicit one is never suffixed: a collision is the caller's error.
func (s *productService) claimSlug(ctx context.Context, raw, current string) (string, error) {
	slug := utils.Slugify(raw)
	if slug == "" {
		return "", apperrors.BadRequest("slug must contain letters or digits")
	}
	if slug == current {
		return slug, nil
	}
	exists, err := s.productDAO.ExistsBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	if exists {
		return "", service.ErrSlugTaken
	}
	return slug, nil
}

// uniqueSlug slugifies the name, appending a time suffix on collision.
func (s *productService) uniqueSlug(ctx context.Context, name string) (string, error) {
	slug := utils.Slugify(name)
	exists, err := s.productDAO.ExistsBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	if exists {
		slug = utils.SlugWithSuffix(slug, time.Now())
	}
	return slug, nil
}

func (s *productService) rollback(ctx context.Context, reserved []dao.StockAdjustment) {
	if err := s.RestoreStock(ctx, reserved); err != nil {
		s.logger.Error("stock rollback failed", zap.Error(err))
	}
}

func (s *productService) checkLowStockByID(ctx context.Context, id primitive.ObjectID) {
	product, err := s.productDAO.FindByID(ctx, id)
	if err != nil || product == nil {
		return
	}
	s.checkLowStock(ctx, product)
}

// checkLowStock emits an admin event when stock crosses the threshold.
func (s *productService) checkLowStock(ctx context.Context, product *entity.Product) {
	if !product.IsLowStock() {
		return
	}
	productID := product.ID
	err := s.publisher.Publish(ctx, &events.Event{
		Type:     entity.NotifyLowStock,
		Title:    "Low stock",
		Message:  product.Name + " is running low on stock",
		ForAdmin: true,
		Product:  &productID,
	})
	if err != nil {
		s.logger.Warn("low stock event publish",
			zap.String("product_id", productID.Hex()), zap.Error(err))
	}
}

func (s *productService) invalidateListings(ctx context.Context) {
	s.cache.Delete(ctx, "products:featured")
}

func variantsFromRequest(reqs []request.VariantRequest) []entity.Variant {
	variants := make([]entity.Variant, len(reqs))
	for i, v := range reqs {
		active := true
		if v.IsActive != nil {
			active = *v.IsActive
		}
		variants[i] = entity.Variant{
			SKU:        v.SKU,
			Attributes: v.Attributes,
			Price:      v.Price,
			Quantity:   v.Quantity,
			Image:      v.Image,
			IsActive:   active,
		}
	}
	return variants
}

// applySaleWindow parses RFC 3339 sale dates onto the product.
func applySaleWindow(product *entity.Product, start, end string) error {
	if start != "" {
		t, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return apperrors.BadRequest("invalid sale_start_date")
		}
		product.SaleStartDate = &t
	}
	if end != "" {
		t, err := time.Parse(time.RFC3339, end)
		if err != nil {
			return apperrors.BadRequest("invalid sale_end_date")
		}
		product.SaleEndDate = &t
	}
	return nil
}
