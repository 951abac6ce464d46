package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"shoeshop/internal/domain"
	"shoeshop/pkg/prometheus"
)

type OrderUsecase struct {
	store      orderStore
	cache      shoeCache
	retryCount int
	log        *slog.Logger
}

func NewOrderUsecase(store orderStore, cache shoeCache, retryCount int, log *slog.Logger) *OrderUsecase {
	return &OrderUsecase{store: store, cache: cache, retryCount: retryCount, log: log}
}

func (uc *OrderUsecase) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	order, err := uc.store.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (uc *OrderUsecase) ListOrders(ctx context.Context, filter domain.OrderFilter, page domain.Page) ([]domain.Order, int, error) {
	if filter.DeliveryStatus != "" && !filter.DeliveryStatus.Valid() {
		return nil, 0, domain.ValidationErrorf("unknown delivery status %q", filter.DeliveryStatus)
	}
	return uc.store.ListOrders(ctx, filter, page.Normalize())
}

// CreateOrder places a new order. Prices come from the catalogue and stock is reserved by the store;
// whatever the client sent for prices, statuses or courier is discarded.
func (uc *OrderUsecase) CreateOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	startTime := time.Now()
	now := startTime.UTC()
	order.ID = uuid.NewString()
	order.PaymentStatus = domain.PaymentPending
	order.DeliveryStatus = domain.DeliveryPending
	order.DeliveryPersonID = nil
	order.CreatedAt = now
	order.UpdatedAt = now
	for i := range order.Items {
		order.Items[i].UnitPrice = 0
	}

	uc.log.Info("Order creation started",
		"order_id", order.ID,
		"customer_email", order.CustomerEmail,
		"items_count", len(order.Items),
	)

	if err := order.Validate(); err != nil {
		prometheus.OrdersProcessed.WithLabelValues("invalid").Inc()
		return nil, err
	}

	err := withRetry(ctx, uc.retryCount, uc.log, "save_order", func() error {
		return uc.store.SaveOrder(ctx, &order)
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientStock), errors.Is(err, domain.ErrRecordNotFound):
			prometheus.OrdersProcessed.WithLabelValues("rejected").Inc()
		default:
			prometheus.OrdersProcessed.WithLabelValues("failed").Inc()
			uc.log.Error("Order processing failed",
				"order_id", order.ID,
				"error", err,
				"error_type", "business",
			)
		}
		return nil, err
	}

	uc.cache.Invalidate(ctx, domain.ShoeIDs(order.Items)...)
	prometheus.OrdersProcessed.WithLabelValues("created").Inc()
	uc.log.Info("Order business processing completed",
		"order_id", order.ID,
		"total", order.Total,
		"processing_time_ms", time.Since(startTime).Milliseconds(),
	)
	return &order, nil
}

func (uc *OrderUsecase) UpdateDeliveryStatus(ctx context.Context, id string, status domain.DeliveryStatus) (*domain.Order, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.ValidationErrorf("unknown delivery status %q", status)
	}
	order, err := uc.store.UpdateDeliveryStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if status == domain.DeliveryCancelled {
		uc.cache.Invalidate(ctx, domain.ShoeIDs(order.Items)...)
		prometheus.OrdersProcessed.WithLabelValues("cancelled").Inc()
	}
	uc.log.Info("Delivery status updated", "order_id", id, "status", status)
	return order, nil
}

func (uc *OrderUsecase) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Order, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.ValidationErrorf("unknown payment status %q", status)
	}
	order, err := uc.store.UpdatePaymentStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	uc.log.Info("Payment status updated", "order_id", id, "status", status)
	return order, nil
}

func (uc *OrderUsecase) AssignDeliveryPerson(ctx context.Context, id, personID string) (*domain.Order, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	if err := uuid.Validate(personID); err != nil {
		return nil, domain.ValidationErrorf("delivery person id %q is not a uuid", personID)
	}
	return uc.store.AssignDeliveryPerson(ctx, id, personID)
}

func (uc *OrderUsecase) DeleteOrder(ctx context.Context, id string) error {
	if err := domain.ValidateID(id); err != nil {
		return err
	}
	return uc.store.DeleteOrder(ctx, id)
}
