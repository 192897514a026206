package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/dto/response"
	"github.com/velora/velora-commerce-go/internal/middleware"
)

// WishlistController handles wishlist endpoints
type WishlistController struct {
	wishlistService service.WishlistService
	authMiddleware  *middleware.AuthMiddleware
}

// NewWishlistController creates a new WishlistController instance
func NewWishlistController(wishlistService service.WishlistService, authMiddleware *middleware.AuthMiddleware) *WishlistController {
	return &WishlistController{
		wishlistService: wishlistService,
		authMiddleware:  authMiddleware,
	}
}

// RegisterRoutes registers the wishlist routes
func (c *WishlistController) RegisterRoutes(router *gin.RouterGroup) {
	wishlist := router.Group("/wishlist")
	wishlist.Use(c.authMiddleware.Authenticate())
	{
		wishlist.GET("", c.Get)
		wishlist.POST("/items", c.Add)
		wishlist.DELETE("/items/:id", c.Remove)
		wishlist.DELETE("", c.Clear)
		wishlist.POST("/move-to-cart", c.MoveToCart)
	}
}

// Get returns the caller's wishlist
// @Summary Get the wishlist
// @Tags Wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[entity.Wishlist]
// @Router /api/v1/wishlist [get]
func (c *WishlistController) Get(ctx *gin.Context) {
	wishlist, err := c.wishlistService.Get(ctx.Request.Context(), middleware.CurrentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(wishlist))
}

// Add saves a product to the wishlist
// @Summary Add to wishlist
// @Tags Wishlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.AddToWishlistRequest true "Product"
// @Success 200 {object} response.ApiResponse[entity.Wishlist]
// @Failure 409 {object} response.ApiResponse[any]
// @Router /api/v1/wishlist/items [post]
func (c *WishlistController) Add(ctx *gin.Context) {
	var req request.AddToWishlistRequest
	if !bindJSON(ctx, &req) {
		return
	}

	wishlist, err := c.wishlistService.Add(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(wishlist, "added to wishlist"))
}

// Remove drops a product from the wishlist
// @Summary Remove from wishlist
// @Tags Wishlist
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} response.ApiResponse[entity.Wishlist]
// @Router /api/v1/wishlist/items/{id} [delete]
func (c *WishlistController) Remove(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	wishlist, err := c.wishlistService.Remove(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(wishlist, "removed from wishlist"))
}

// Clear empties the wishlist
// @Summary Clear the wishlist
// @Tags Wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/wishlist [delete]
func (c *WishlistController) Clear(ctx *gin.Context) {
	if err := c.wishlistService.Clear(ctx.Request.Context(), middleware.CurrentUser(ctx).ID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "wishlist cleared"))
}

// MoveToCart moves a wishlist item into the cart
// @Summary Move a wishlist item to the cart
// @Tags Wishlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.MoveToCartRequest true "Product and quantity"
// @Success 200 {object} response.ApiResponse[entity.Cart]
// @Router /api/v1/wishlist/move-to-cart [post]
func (c *WishlistController) MoveToCart(ctx *gin.Context) {
	var req request.MoveToCartRequest
	if !bindJSON(ctx, &req) {
		return
	}

	cart, err := c.wishlistService.MoveToCart(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(cart, "moved to cart"))
}
