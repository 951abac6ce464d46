package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shoeshop/internal/domain"
)

type RefundService interface {
	CreateRefund(ctx context.Context, refund domain.Refund) (*domain.Refund, error)
	GetRefund(ctx context.Context, id string) (*domain.Refund, error)
	ListRefunds(ctx context.Context, status domain.RefundStatus, page domain.Page) ([]domain.Refund, int, error)
	ProcessRefund(ctx context.Context, id string, status domain.RefundStatus) (*domain.Refund, error)
	DeleteRefund(ctx context.Context, id string) error
}

type RefundHandler struct {
	uc  RefundService
	log *slog.Logger
}

func NewRefundHandler(uc RefundService, log *slog.Logger) *RefundHandler {
	return &RefundHandler{uc: uc, log: log}
}

// ListRefunds
// @Summary List refunds
// @Tags refunds
// @Produce json
// @Param status query string false "pending, approved or rejected"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} listResponse
// @Router /api/refunds [get]
func (h *RefundHandler) ListRefunds(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	refunds, total, err := h.uc.ListRefunds(c.Request.Context(), domain.RefundStatus(c.Query("status")), page)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondList(c, refunds, total, page)
}

// GetRefund
// @Summary Get refund by id
// @Tags refunds
// @Produce json
// @Param id path string true "Refund ID"
// @Success 200 {object} domain.Refund
// @Failure 404 {object} errorResponse
// @Router /api/refunds/{id} [get]
func (h *RefundHandler) GetRefund(c *gin.Context) {
	refund, err := h.uc.GetRefund(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, refund)
}

// CreateRefund
// @Summary Request a refund
// @Tags refunds
// @Accept json
// @Produce json
// @Param refund body domain.Refund true "Refund"
// @Success 201 {object} domain.Refund
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/refunds [post]
func (h *RefundHandler) CreateRefund(c *gin.Context) {
	var input domain.Refund
	if !bindJSON(c, &input) {
		return
	}
	refund, err := h.uc.CreateRefund(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, refund)
}

// ProcessRefund
// @Summary Approve or reject a pending refund
// @Tags refunds
// @Accept json
// @Produce json
// @Param id path string true "Refund ID"
// @Param status body statusRequest true "approved or rejected"
// @Success 200 {object} domain.Refund
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /api/refunds/{id}/status [put]
func (h *RefundHandler) ProcessRefund(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	refund, err := h.uc.ProcessRefund(c.Request.Context(), c.Param("id"), domain.RefundStatus(req.Status))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, refund)
}

// DeleteRefund
// @Summary Delete refund
// @Tags refunds
// @Param id path string true "Refund ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /api/refunds/{id} [delete]
func (h *RefundHandler) DeleteRefund(c *gin.Context) {
	if err := h.uc.DeleteRefund(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
