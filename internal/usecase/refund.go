package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"shoeshop/internal/domain"
)

type RefundUsecase struct {
	store  refundStore
	orders orderGetter
	log    *slog.Logger
}

func NewRefundUsecase(store refundStore, orders orderGetter, log *slog.Logger) *RefundUsecase {
	return &RefundUsecase{store: store, orders: orders, log: log}
}

// CreateRefund files a pending refund against an existing order. The amount may not exceed the order total.
func (uc *RefundUsecase) CreateRefund(ctx context.Context, refund domain.Refund) (*domain.Refund, error) {
	refund.ID = uuid.NewString()
	refund.Status = domain.RefundPending
	refund.CreatedAt = time.Now().UTC()
	refund.ProcessedAt = nil

	if err := uuid.Validate(refund.OrderID); err != nil {
		return nil, domain.ValidationErrorf("order id %q is not a uuid", refund.OrderID)
	}
	order, err := uc.orders.GetOrderByID(ctx, refund.OrderID)
	if err != nil {
		return nil, err
	}
	if refund.CustomerEmail == "" {
		refund.CustomerEmail = order.CustomerEmail
	}

	if err := refund.Validate(); err != nil {
		return nil, err
	}
	if refund.Amount > order.Total {
		return nil, domain.ValidationErrorf("refund amount %.2f exceeds order total %.2f", refund.Amount, order.Total)
	}

	if err := uc.store.SaveRefund(ctx, &refund); err != nil {
		return nil, err
	}
	return &refund, nil
}

func (uc *RefundUsecase) GetRefund(ctx context.Context, id string) (*domain.Refund, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	return uc.store.GetRefundByID(ctx, id)
}

func (uc *RefundUsecase) ListRefunds(ctx context.Context, status domain.RefundStatus, page domain.Page) ([]domain.Refund, int, error) {
	if status != "" && !status.Valid() {
		return nil, 0, domain.ValidationErrorf("unknown refund status %q", status)
	}
	return uc.store.ListRefunds(ctx, status, page.Normalize())
}

// ProcessRefund approves or rejects a pending refund. It can happen once per refund.
func (uc *RefundUsecase) ProcessRefund(ctx context.Context, id string, status domain.RefundStatus) (*domain.Refund, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	refund, err := uc.store.GetRefundByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := refund.Process(status, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := uc.store.UpdateRefundStatus(ctx, refund); err != nil {
		return nil, err
	}
	uc.log.Info("Refund processed", "refund_id", id, "status", status, "amount", refund.Amount)
	return refund, nil
}

func (uc *RefundUsecase) DeleteRefund(ctx context.Context, id string) error {
	if err := domain.ValidateID(id); err != nil {
		return err
	}
	return uc.store.DeleteRefund(ctx, id)
}
