package impl

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/testutil/mocks"
)

type reviewFixture struct {
	svc        service.ReviewService
	reviewDAO  *mocks.MockReviewDAO
	productDAO *mocks.MockProductDAO
	orderDAO   *mocks.MockOrderDAO
	publisher  *mocks.MockPublisher
	product    *entity.Product
}

func setupReviewService(t *testing.T) *reviewFixture {
	t.Helper()
	f := &reviewFixture{
		reviewDAO:  mocks.NewMockReviewDAO(),
		productDAO: mocks.NewMockProductDAO(),
		orderDAO:   mocks.NewMockOrderDAO(),
		publisher:  mocks.NewMockPublisher(),
	}
	f.svc = NewReviewService(f.reviewDAO, f.productDAO, f.orderDAO, f.publisher, zap.NewNop())
	f.product = f.productDAO.AddProduct(&entity.Product{
		Name: "Widget", Slug: "widget", Price: 25,
		Category: primitive.NewObjectID(),
		Status:   entity.ProductStatusActive,
	})
	return f
}

func TestReviewServiceCreate(t *testing.T) {
	f := setupReviewService(t)
	userID := primitive.NewObjectID()

	review, err := f.svc.Create(context.Background(), userID, &request.CreateReviewRequest{
		ProductID: f.product.ID.Hex(),
		Rating:    4,
		Comment:   "solid",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if review.Status != entity.ReviewPending {
		t.Errorf("status = %q, want pending", review.Status)
	}
	if review.IsVerifiedPurchase {
		t.Error("review should not be verified without a delivered order")
	}
	if len(f.publisher.Published()) != 1 {
		t.Error("expected a moderation event")
	}
}

func TestReviewServiceCreateVerifiedPurchase(t *testing.T) {
	f := setupReviewService(t)
	userID := primitive.NewObjectID()
	f.orderDAO.DeliveredProducts[f.product.ID] = true

	review, err := f.svc.Create(context.Background(), userID, &request.CreateReviewRequest{
		ProductID: f.product.ID.Hex(),
		Rating:    5,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !review.IsVerifiedPurchase {
		t.Error("expected a verified purchase mark")
	}
}

func TestReviewServiceCreateDuplicate(t *testing.T) {
	f := setupReviewService(t)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	req := &request.CreateReviewRequest{ProductID: f.product.ID.Hex(), Rating: 4}
	if _, err := f.svc.Create(ctx, userID, req); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := f.svc.Create(ctx, userID, req); !errors.Is(err, service.ErrReviewExists) {
		t.Fatalf("err = %v, want ErrReviewExists", err)
	}
}

func TestReviewServiceModerateApprovedSyncsRating(t *testing.T) {
	f := setupReviewService(t)
	ctx := context.Background()

	review, err := f.svc.Create(ctx, primitive.NewObjectID(), &request.CreateReviewRequest{
		ProductID: f.product.ID.Hex(),
		Rating:    4,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	moderated, err := f.svc.Moderate(ctx, review.ID, entity.ReviewApproved)
	if err != nil {
		t.Fatalf("Moderate: %v", err)
	}
	if moderated.Status != entity.ReviewApproved {
		t.Errorf("status = %q, want approved", moderated.Status)
	}
	if f.product.Rating != 4 || f.product.ReviewCount != 1 {
		t.Errorf("product rating = %v/%d, want 4/1", f.product.Rating, f.product.ReviewCount)
	}
}

func TestReviewServiceUpdateResetsModeration(t *testing.T) {
	f := setupReviewService(t)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	review, err := f.svc.Create(ctx, userID, &request.CreateReviewRequest{
		ProductID: f.product.ID.Hex(),
		Rating:    2,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.svc.Moderate(ctx, review.ID, entity.ReviewApproved); err != nil {
		t.Fatalf("Moderate: %v", err)
	}

	rating := 5
	updated, err := f.svc.Update(ctx, review.ID, userID, &request.UpdateReviewRequest{Rating: &rating})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != entity.ReviewPending {
		t.Errorf("status = %q, edits must return to moderation", updated.Status)
	}
	// the approved aggregate no longer includes this review
	if f.product.ReviewCount != 0 {
		t.Errorf("review count = %d, want 0", f.product.ReviewCount)
	}
}

func TestReviewServiceUpdateSomeoneElses(t *testing.T) {
	f := setupReviewService(t)
	ctx := context.Background()

	review, err := f.svc.Create(ctx, primitive.NewObjectID(), &request.CreateReviewRequest{
		ProductID: f.product.ID.Hex(),
		Rating:    3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	rating := 1
	_, err = f.svc.Update(ctx, review.ID, primitive.NewObjectID(), &request.UpdateReviewRequest{Rating: &rating})
	if !errors.Is(err, service.ErrReviewNotFound) {
		t.Fatalf("err = %v, want ErrReviewNotFound", err)
	}
}

func TestReviewServiceDeleteAuthorization(t *testing.T) {
	f := setupReviewService(t)
	owner := primitive.NewObjectID()
	ctx := context.Background()

	review, err := f.svc.Create(ctx, owner, &request.CreateReviewRequest{
		ProductID: f.product.ID.Hex(),
		Rating:    3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	stranger := &entity.User{ID: primitive.NewObjectID(), Role: entity.RoleCustomer}
	if err := f.svc.Delete(ctx, review.ID, stranger); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	admin := &entity.User{ID: primitive.NewObjectID(), Role: entity.RoleAdmin}
	if err := f.svc.Delete(ctx, review.ID, admin); err != nil {
		t.Fatalf("admin Delete: %v", err)
	}
	if found, _ := f.reviewDAO.FindByID(ctx, review.ID); found != nil {
		t.Error("review still present after delete")
	}
}

func TestReviewServiceListByProductOnlyApproved(t *testing.T) {
	f := setupReviewService(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, primitive.NewObjectID(), &request.CreateReviewRequest{
		ProductID: f.product.ID.Hex(), Rating: 5,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.svc.Create(ctx, primitive.NewObjectID(), &request.CreateReviewRequest{
		ProductID: f.product.ID.Hex(), Rating: 1,
	}); err != nil {
		t.Fatalf("Create second: %v", err)
	}
	if _, err := f.svc.Moderate(ctx, first.ID, entity.ReviewApproved); err != nil {
		t.Fatalf("Moderate: %v", err)
	}

	reviews, total, err := f.svc.ListByProduct(ctx, f.product.ID, 1, 20)
	if err != nil {
		t.Fatalf("ListByProduct: %v", err)
	}
	if total != 1 || len(reviews) != 1 {
		t.Fatalf("got %d/%d reviews, want the single approved one", len(reviews), total)
	}
}
