package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shoeshop/internal/domain"
)

type ShoeService interface {
	CreateShoe(ctx context.Context, shoe domain.Shoe) (*domain.Shoe, error)
	GetShoe(ctx context.Context, id string) (*domain.Shoe, error)
	ListShoes(ctx context.Context, filter domain.ShoeFilter, page domain.Page) ([]domain.Shoe, int, error)
	UpdateShoe(ctx context.Context, id string, shoe domain.Shoe) (*domain.Shoe, error)
	DeleteShoe(ctx context.Context, id string) error
}

type ReviewService interface {
	AddReview(ctx context.Context, shoeID string, review domain.Review) (*domain.Review, error)
	ListReviews(ctx context.Context, shoeID string, page domain.Page) ([]domain.Review, int, error)
	Rating(ctx context.Context, shoeID string) (*domain.RatingSummary, error)
	DeleteReview(ctx context.Context, id string) error
}

type ShoeHandler struct {
	shoes   ShoeService
	reviews ReviewService
	log     *slog.Logger
}

func NewShoeHandler(shoes ShoeService, reviews ReviewService, log *slog.Logger) *ShoeHandler {
	return &ShoeHandler{shoes: shoes, reviews: reviews, log: log}
}

// ListShoes
// @Summary List shoes
// @Tags shoes
// @Produce json
// @Param brand query string false "Brand"
// @Param category query string false "Category"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} listResponse
// @Failure 400 {object} errorResponse
// @Router /api/shoes [get]
func (h *ShoeHandler) ListShoes(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	filter := domain.ShoeFilter{Brand: c.Query("brand"), Category: c.Query("category")}
	shoes, total, err := h.shoes.ListShoes(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondList(c, shoes, total, page)
}

// GetShoe
// @Summary Get shoe by id
// @Tags shoes
// @Produce json
// @Param id path string true "Shoe ID"
// @Success 200 {object} domain.Shoe
// @Failure 404 {object} errorResponse
// @Router /api/shoes/{id} [get]
func (h *ShoeHandler) GetShoe(c *gin.Context) {
	shoe, err := h.shoes.GetShoe(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, shoe)
}

// CreateShoe
// @Summary Create shoe
// @Tags shoes
// @Accept json
// @Produce json
// @Param shoe body domain.Shoe true "Shoe"
// @Success 201 {object} domain.Shoe
// @Failure 400 {object} errorResponse
// @Router /api/shoes [post]
func (h *ShoeHandler) CreateShoe(c *gin.Context) {
	var input domain.Shoe
	if !bindJSON(c, &input) {
		return
	}
	shoe, err := h.shoes.CreateShoe(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, shoe)
}

// UpdateShoe
// @Summary Replace shoe
// @Tags shoes
// @Accept json
// @Produce json
// @Param id path string true "Shoe ID"
// @Param shoe body domain.Shoe true "Shoe"
// @Success 200 {object} domain.Shoe
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/shoes/{id} [put]
func (h *ShoeHandler) UpdateShoe(c *gin.Context) {
	var input domain.Shoe
	if !bindJSON(c, &input) {
		return
	}
	shoe, err := h.shoes.UpdateShoe(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, shoe)
}

// DeleteShoe
// @Summary Delete shoe and its reviews
// @Tags shoes
// @Param id path string true "Shoe ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /api/shoes/{id} [delete]
func (h *ShoeHandler) DeleteShoe(c *gin.Context) {
	if err := h.shoes.DeleteShoe(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListReviews
// @Summary List reviews of a shoe
// @Tags reviews
// @Produce json
// @Param id path string true "Shoe ID"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} listResponse
// @Failure 404 {object} errorResponse
// @Router /api/shoes/{id}/reviews [get]
func (h *ShoeHandler) ListReviews(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	reviews, total, err := h.reviews.ListReviews(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondList(c, reviews, total, page)
}

// AddReview
// @Summary Review a shoe
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "Shoe ID"
// @Param review body domain.Review true "Review"
// @Success 201 {object} domain.Review
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/shoes/{id}/reviews [post]
func (h *ShoeHandler) AddReview(c *gin.Context) {
	var input domain.Review
	if !bindJSON(c, &input) {
		return
	}
	review, err := h.reviews.AddReview(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// Rating
// @Summary Rating summary of a shoe
// @Tags reviews
// @Produce json
// @Param id path string true "Shoe ID"
// @Success 200 {object} domain.RatingSummary
// @Failure 404 {object} errorResponse
// @Router /api/shoes/{id}/rating [get]
func (h *ShoeHandler) Rating(c *gin.Context) {
	summary, err := h.reviews.Rating(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// DeleteReview
// @Summary Delete review
// @Tags reviews
// @Param id path string true "Review ID"
// @Success 204
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/reviews/{id} [delete]
func (h *ShoeHandler) DeleteReview(c *gin.Context) {
	if err := h.reviews.DeleteReview(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
