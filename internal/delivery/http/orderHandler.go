package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shoeshop/internal/domain"
)

type OrderService interface {
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter, page domain.Page) ([]domain.Order, int, error)
	CreateOrder(ctx context.Context, order domain.Order) (*domain.Order, error)
	UpdateDeliveryStatus(ctx context.Context, id string, status domain.DeliveryStatus) (*domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Order, error)
	AssignDeliveryPerson(ctx context.Context, id, personID string) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

type assignRequest struct {
	DeliveryPersonID string `json:"delivery_person_id" binding:"required"`
}

type OrderHandler struct {
	uc  OrderService
	log *slog.Logger
}

func NewOrderHandler(uc OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:  uc,
		log: logger,
	}
}

// ListOrders
// @Summary List orders
// @Tags orders
// @Produce json
// @Param status query string false "Delivery status"
// @Param customer_email query string false "Customer e-mail"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} listResponse
// @Failure 400 {object} errorResponse
// @Router /api/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	filter := domain.OrderFilter{
		DeliveryStatus: domain.DeliveryStatus(c.Query("status")),
		CustomerEmail:  c.Query("customer_email"),
	}
	orders, total, err := h.uc.ListOrders(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondList(c, orders, total, page)
}

// GetOrder
// @Summary Get order by id
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} errorResponse
// @Router /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.uc.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// CreateOrder
// @Summary Place an order
// @Description Reserves stock for every line; prices come from the catalogue
// @Tags orders
// @Accept json
// @Produce json
// @Param order body domain.Order true "Order"
// @Success 201 {object} domain.Order
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /api/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var input domain.Order
	if !bindJSON(c, &input) {
		return
	}
	order, err := h.uc.CreateOrder(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.log.Info("Order placed", "order_id", order.ID, "total", order.Total)
	c.JSON(http.StatusCreated, order)
}

// UpdateDeliveryStatus
// @Summary Change delivery status
// @Description Cancelling returns the reserved stock
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param status body statusRequest true "New status"
// @Success 200 {object} domain.Order
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /api/orders/{id}/delivery-status [put]
func (h *OrderHandler) UpdateDeliveryStatus(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.uc.UpdateDeliveryStatus(c.Request.Context(), c.Param("id"), domain.DeliveryStatus(req.Status))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdatePaymentStatus
// @Summary Change payment status
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param status body statusRequest true "New status"
// @Success 200 {object} domain.Order
// @Failure 400 {object} errorResponse
// @Router /api/orders/{id}/payment-status [put]
func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.uc.UpdatePaymentStatus(c.Request.Context(), c.Param("id"), domain.PaymentStatus(req.Status))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// AssignDeliveryPerson
// @Summary Assign a courier
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param body body assignRequest true "Courier"
// @Success 200 {object} domain.Order
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /api/orders/{id}/assign [put]
func (h *OrderHandler) AssignDeliveryPerson(c *gin.Context) {
	var req assignRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.uc.AssignDeliveryPerson(c.Request.Context(), c.Param("id"), req.DeliveryPersonID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeleteOrder
// @Summary Delete order
// @Tags orders
// @Param id path string true "Order ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /api/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.uc.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
