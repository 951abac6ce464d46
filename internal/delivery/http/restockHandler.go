package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shoeshop/internal/domain"
)

type RestockService interface {
	CreateRestock(ctx context.Context, r domain.RestockRequest) (*domain.RestockRequest, error)
	GetRestock(ctx context.Context, id string) (*domain.RestockRequest, error)
	ListRestocks(ctx context.Context, status domain.RestockStatus, page domain.Page) ([]domain.RestockRequest, int, error)
	FulfillRestock(ctx context.Context, id string) (*domain.RestockRequest, error)
	DeleteRestock(ctx context.Context, id string) error
}

type RestockHandler struct {
	uc  RestockService
	log *slog.Logger
}

func NewRestockHandler(uc RestockService, log *slog.Logger) *RestockHandler {
	return &RestockHandler{uc: uc, log: log}
}

// ListRestocks
// @Summary List restock requests
// @Tags restocks
// @Produce json
// @Param status query string false "pending, notified or fulfilled"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} listResponse
// @Router /api/restocks [get]
func (h *RestockHandler) ListRestocks(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	restocks, total, err := h.uc.ListRestocks(c.Request.Context(), domain.RestockStatus(c.Query("status")), page)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondList(c, restocks, total, page)
}

// GetRestock
// @Summary Get restock request by id
// @Tags restocks
// @Produce json
// @Param id path string true "Restock ID"
// @Success 200 {object} domain.RestockRequest
// @Failure 404 {object} errorResponse
// @Router /api/restocks/{id} [get]
func (h *RestockHandler) GetRestock(c *gin.Context) {
	r, err := h.uc.GetRestock(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// CreateRestock
// @Summary Ask a supplier for more pairs
// @Description Stored as pending and published for the supplier e-mail
// @Tags restocks
// @Accept json
// @Produce json
// @Param restock body domain.RestockRequest true "Restock request"
// @Success 201 {object} domain.RestockRequest
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/restocks [post]
func (h *RestockHandler) CreateRestock(c *gin.Context) {
	var input domain.RestockRequest
	if !bindJSON(c, &input) {
		return
	}
	r, err := h.uc.CreateRestock(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// FulfillRestock
// @Summary Book delivered pairs into stock
// @Tags restocks
// @Produce json
// @Param id path string true "Restock ID"
// @Success 200 {object} domain.RestockRequest
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /api/restocks/{id}/fulfill [put]
func (h *RestockHandler) FulfillRestock(c *gin.Context) {
	r, err := h.uc.FulfillRestock(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// DeleteRestock
// @Summary Delete restock request
// @Tags restocks
// @Param id path string true "Restock ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /api/restocks/{id} [delete]
func (h *RestockHandler) DeleteRestock(c *gin.Context) {
	if err := h.uc.DeleteRestock(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
