package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shoeshop/internal/domain"
)

type DeliveryService interface {
	CreateDeliveryPerson(ctx context.Context, p domain.DeliveryPerson) (*domain.DeliveryPerson, error)
	GetDeliveryPerson(ctx context.Context, id string) (*domain.DeliveryPerson, error)
	ListDeliveryPersons(ctx context.Context, page domain.Page) ([]domain.DeliveryPerson, int, error)
	UpdateDeliveryPerson(ctx context.Context, id string, p domain.DeliveryPerson) (*domain.DeliveryPerson, error)
	DeleteDeliveryPerson(ctx context.Context, id string) error
	RecordTrip(ctx context.Context, id string, trip domain.Trip) (*domain.DeliveryPerson, error)
}

type DeliveryHandler struct {
	uc  DeliveryService
	log *slog.Logger
}

func NewDeliveryHandler(uc DeliveryService, log *slog.Logger) *DeliveryHandler {
	return &DeliveryHandler{uc: uc, log: log}
}

// ListDeliveryPersons
// @Summary List couriers
// @Tags delivery
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} listResponse
// @Router /api/delivery-persons [get]
func (h *DeliveryHandler) ListDeliveryPersons(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	persons, total, err := h.uc.ListDeliveryPersons(c.Request.Context(), page)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondList(c, persons, total, page)
}

// GetDeliveryPerson
// @Summary Get courier by id
// @Tags delivery
// @Produce json
// @Param id path string true "Courier ID"
// @Success 200 {object} domain.DeliveryPerson
// @Failure 404 {object} errorResponse
// @Router /api/delivery-persons/{id} [get]
func (h *DeliveryHandler) GetDeliveryPerson(c *gin.Context) {
	p, err := h.uc.GetDeliveryPerson(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreateDeliveryPerson
// @Summary Register courier
// @Tags delivery
// @Accept json
// @Produce json
// @Param person body domain.DeliveryPerson true "Courier"
// @Success 201 {object} domain.DeliveryPerson
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /api/delivery-persons [post]
func (h *DeliveryHandler) CreateDeliveryPerson(c *gin.Context) {
	var input domain.DeliveryPerson
	if !bindJSON(c, &input) {
		return
	}
	p, err := h.uc.CreateDeliveryPerson(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// UpdateDeliveryPerson
// @Summary Replace courier details
// @Description Trip counters are kept
// @Tags delivery
// @Accept json
// @Produce json
// @Param id path string true "Courier ID"
// @Param person body domain.DeliveryPerson true "Courier"
// @Success 200 {object} domain.DeliveryPerson
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/delivery-persons/{id} [put]
func (h *DeliveryHandler) UpdateDeliveryPerson(c *gin.Context) {
	var input domain.DeliveryPerson
	if !bindJSON(c, &input) {
		return
	}
	p, err := h.uc.UpdateDeliveryPerson(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteDeliveryPerson
// @Summary Delete courier
// @Tags delivery
// @Param id path string true "Courier ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /api/delivery-persons/{id} [delete]
func (h *DeliveryHandler) DeleteDeliveryPerson(c *gin.Context) {
	if err := h.uc.DeleteDeliveryPerson(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RecordTrip
// @Summary Record a delivery trip
// @Tags delivery
// @Accept json
// @Produce json
// @Param id path string true "Courier ID"
// @Param trip body domain.Trip true "Trip"
// @Success 200 {object} domain.DeliveryPerson
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/delivery-persons/{id}/trips [post]
func (h *DeliveryHandler) RecordTrip(c *gin.Context) {
	var trip domain.Trip
	if !bindJSON(c, &trip) {
		return
	}
	p, err := h.uc.RecordTrip(c.Request.Context(), c.Param("id"), trip)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
