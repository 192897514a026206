package impl

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/events"
)

// reviewService implements service.ReviewService
type reviewService struct {
	reviewDAO  dao.ReviewDAO
	productDAO dao.ProductDAO
	orderDAO   dao.OrderDAO
	publisher  events.Publisher
	logger     *zap.Logger
}

// NewReviewService creates a new ReviewService instance
func NewReviewService(
	reviewDAO dao.ReviewDAO,
	productDAO dao.ProductDAO,
	orderDAO dao.OrderDAO,
	publisher events.Publisher,
	logger *zap.Logger,
) service.ReviewService {
	return &reviewService{
		reviewDAO:  reviewDAO,
		productDAO: productDAO,
		orderDAO:   orderDAO,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *reviewService) Create(ctx context.Context, userID primitive.ObjectID, req *request.CreateReviewRequest) (*entity.Review, error) {
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, service.ErrProductNotFound
	}
	product, err := s.productDAO.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, service.ErrProductNotFound
	}

	existing, err := s.reviewDAO.FindByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, service.ErrReviewExists
	}

	verified, err := s.orderDAO.HasDeliveredProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	review := &entity.Review{
		User:               userID,
		Product:            productID,
		Rating:             req.Rating,
		Title:              req.Title,
		Comment:            req.Comment,
		Status:             entity.ReviewPending,
		IsVerifiedPurchase: verified,
	}
	if err := s.reviewDAO.Create(ctx, review); err != nil {
		return nil, err
	}

	event := &events.Event{
		Type:     entity.NotifyNewReview,
		Title:    "New review",
		Message:  fmt.Sprintf("New %d-star review for %s awaits moderation", review.Rating, product.Name),
		ForAdmin: true,
		Product:  &productID,
		Review:   &review.ID,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("review event publish", zap.String("review_id", review.ID.Hex()), zap.Error(err))
	}
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, id, userID primitive.ObjectID, req *request.UpdateReviewRequest) (*entity.Review, error) {
	review, err := s.reviewDAO.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil || review.User != userID {
		return nil, service.ErrReviewNotFound
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Title != nil {
		review.Title = *req.Title
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}
	// edits go back through moderation
	review.Status = entity.ReviewPending

	if err := s.reviewDAO.Update(ctx, review); err != nil {
		return nil, err
	}
	s.syncProductRating(ctx, review.Product)
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, id primitive.ObjectID, caller *entity.User) error {
	review, err := s.reviewDAO.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if review == nil {
		return service.ErrReviewNotFound
	}
	if !caller.IsAdminRole() && review.User != caller.ID {
		return service.ErrForbidden
	}

	if err := s.reviewDAO.Delete(ctx, id); err != nil {
		return err
	}
	s.syncProductRating(ctx, review.Product)
	return nil
}

func (s *reviewService) Moderate(ctx context.Context, id primitive.ObjectID, status entity.ReviewStatus) (*entity.Review, error) {
	review, err := s.reviewDAO.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, service.ErrReviewNotFound
	}

	review.Status = status
	if err := s.reviewDAO.Update(ctx, review); err != nil {
		return nil, err
	}
	s.syncProductRating(ctx, review.Product)
	return review, nil
}

func (s *reviewService) ListByProduct(ctx context.Context, productID primitive.ObjectID, page, limit int) ([]*entity.Review, int64, error) {
	return s.reviewDAO.FindByProduct(ctx, productID, entity.ReviewApproved, page, limit)
}

func (s *reviewService) List(ctx context.Context, status entity.ReviewStatus, page, limit int) ([]*entity.Review, int64, error) {
	return s.reviewDAO.FindAll(ctx, status, page, limit)
}

// syncProductRating recomputes the denormalized product rating from approved
// reviews. Failures leave a stale rating behind and are only logged; the next
// review mutation repairs it.
func (s *reviewService) syncProductRating(ctx context.Context, productID primitive.ObjectID) {
	agg, err := s.reviewDAO.AggregateApproved(ctx, productID)
	if err == nil {
		err = s.productDAO.SetRating(ctx, productID, agg.Average, agg.Count)
	}
	if err != nil {
		s.logger.Error("product rating sync", zap.String("product_id", productID.Hex()), zap.Error(err))
	}
}
