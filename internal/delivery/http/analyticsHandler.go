package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shoeshop/internal/domain"
)

type AnalyticsService interface {
	Sales(ctx context.Context, from, to time.Time, bucket domain.Bucket) ([]domain.SalesPoint, error)
	TopShoes(ctx context.Context, limit int) ([]domain.TopShoe, error)
	LowStock(ctx context.Context, threshold int) ([]domain.LowStockItem, error)
	OrderReport(ctx context.Context, from, to time.Time) ([]byte, error)
}

type AnalyticsHandler struct {
	uc  AnalyticsService
	log *slog.Logger
}

func NewAnalyticsHandler(uc AnalyticsService, log *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, log: log}
}

// Sales
// @Summary Sales per day or month
// @Tags analytics
// @Produce json
// @Param from query string false "RFC3339 or YYYY-MM-DD, default 30 days ago"
// @Param to query string false "RFC3339 or YYYY-MM-DD, default now"
// @Param bucket query string false "day or month" default(day)
// @Success 200 {array} domain.SalesPoint
// @Failure 400 {object} errorResponse
// @Router /api/analytics/sales [get]
func (h *AnalyticsHandler) Sales(c *gin.Context) {
	from, ok := parseTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseTimeQuery(c, "to")
	if !ok {
		return
	}
	points, err := h.uc.Sales(c.Request.Context(), from, to, domain.Bucket(c.Query("bucket")))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": points})
}

// TopShoes
// @Summary Best selling shoes
// @Tags analytics
// @Produce json
// @Param limit query int false "How many" default(5)
// @Success 200 {array} domain.TopShoe
// @Router /api/analytics/top-shoes [get]
func (h *AnalyticsHandler) TopShoes(c *gin.Context) {
	limit, ok := parseIntQuery(c, "limit", 0)
	if !ok {
		return
	}
	shoes, err := h.uc.TopShoes(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if shoes == nil {
		shoes = []domain.TopShoe{}
	}
	c.JSON(http.StatusOK, gin.H{"data": shoes})
}

// LowStock
// @Summary Variant sizes running out
// @Tags analytics
// @Produce json
// @Param threshold query int false "Stock at or below, default from config"
// @Success 200 {array} domain.LowStockItem
// @Router /api/analytics/low-stock [get]
func (h *AnalyticsHandler) LowStock(c *gin.Context) {
	threshold, ok := parseIntQuery(c, "threshold", -1)
	if !ok {
		return
	}
	items, err := h.uc.LowStock(c.Request.Context(), threshold)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if items == nil {
		items = []domain.LowStockItem{}
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// OrderReport
// @Summary Orders of a period as PDF
// @Tags reports
// @Produce application/pdf
// @Param from query string false "RFC3339 or YYYY-MM-DD"
// @Param to query string false "RFC3339 or YYYY-MM-DD"
// @Success 200 {file} file
// @Failure 400 {object} errorResponse
// @Router /api/reports/orders [get]
func (h *AnalyticsHandler) OrderReport(c *gin.Context) {
	from, ok := parseTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseTimeQuery(c, "to")
	if !ok {
		return
	}
	pdf, err := h.uc.OrderReport(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondPDF(c, "orders.pdf", pdf)
}
