package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"shoeshop/internal/domain"
	"shoeshop/pkg/mailer"
	"shoeshop/pkg/prometheus"
)

type RestockUsecase struct {
	store      restockStore
	shoes      shoeGetter
	cache      shoeCache
	publisher  RestockPublisher
	mailer     Mailer
	retryCount int
	log        *slog.Logger
}

func NewRestockUsecase(store restockStore, shoes shoeGetter, cache shoeCache, publisher RestockPublisher,
	mailer Mailer, retryCount int, log *slog.Logger) *RestockUsecase {
	return &RestockUsecase{
		store:      store,
		shoes:      shoes,
		cache:      cache,
		publisher:  publisher,
		mailer:     mailer,
		retryCount: retryCount,
		log:        log,
	}
}

// CreateRestock stores a pending request and announces it on the broker.
// A failed publish leaves the request pending and is only logged.
func (uc *RestockUsecase) CreateRestock(ctx context.Context, r domain.RestockRequest) (*domain.RestockRequest, error) {
	now := time.Now().UTC()
	r.ID = uuid.NewString()
	r.Status = domain.RestockPending
	r.CreatedAt = now
	r.UpdatedAt = now

	if err := r.Validate(); err != nil {
		return nil, err
	}
	shoe, err := uc.shoes.GetShoeByID(ctx, r.ShoeID)
	if err != nil {
		return nil, err
	}
	if err := uc.store.SaveRestock(ctx, &r); err != nil {
		return nil, err
	}

	if err := uc.publisher.PublishRestock(ctx, domain.NewRestockEvent(&r, shoe)); err != nil {
		uc.log.Error("failed to publish restock event, request stays pending",
			"restock_id", r.ID,
			"shoe_id", r.ShoeID,
			"error", err,
		)
	}
	return &r, nil
}

func (uc *RestockUsecase) GetRestock(ctx context.Context, id string) (*domain.RestockRequest, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	return uc.store.GetRestockByID(ctx, id)
}

func (uc *RestockUsecase) ListRestocks(ctx context.Context, status domain.RestockStatus, page domain.Page) ([]domain.RestockRequest, int, error) {
	if status != "" && !status.Valid() {
		return nil, 0, domain.ValidationErrorf("unknown restock status %q", status)
	}
	return uc.store.ListRestocks(ctx, status, page.Normalize())
}

// FulfillRestock books the delivered pairs into stock. A request is fulfilled once.
func (uc *RestockUsecase) FulfillRestock(ctx context.Context, id string) (*domain.RestockRequest, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	r, err := uc.store.FulfillRestock(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, r.ShoeID)
	return r, nil
}

func (uc *RestockUsecase) DeleteRestock(ctx context.Context, id string) error {
	if err := domain.ValidateID(id); err != nil {
		return err
	}
	return uc.store.DeleteRestock(ctx, id)
}

// NotifySupplier e-mails the supplier about a restock event and marks the request notified.
// The mail is retried with backoff; an error left after the last attempt is returned.
func (uc *RestockUsecase) NotifySupplier(ctx context.Context, event domain.RestockEvent) error {
	msg := restockMail(event)
	err := withRetry(ctx, uc.retryCount, uc.log, "notify_supplier", func() error {
		return uc.mailer.Send(ctx, msg)
	})
	if err != nil {
		prometheus.RestockNotifications.WithLabelValues("mail_failed").Inc()
		return fmt.Errorf("failed to notify supplier: %w", err)
	}

	changed, err := uc.store.MarkRestockNotified(ctx, event.RestockID)
	if err != nil {
		prometheus.RestockNotifications.WithLabelValues("store_failed").Inc()
		return err
	}
	if !changed {
		uc.log.Warn("restock request was not pending, status left unchanged", "restock_id", event.RestockID)
	}

	prometheus.RestockNotifications.WithLabelValues("sent").Inc()
	uc.log.Info("Supplier notified",
		"restock_id", event.RestockID,
		"supplier_email", event.SupplierEmail,
	)
	return nil
}

func restockMail(e domain.RestockEvent) mailer.Message {
	product := strings.TrimSpace(e.Brand + " " + e.Model)
	if product == "" {
		product = e.ShoeID
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello,\n\nplease deliver the following pairs:\n\n")
	fmt.Fprintf(&b, "Product:  %s\n", product)
	fmt.Fprintf(&b, "Colour:   %s\n", e.Color)
	fmt.Fprintf(&b, "Size:     %g\n", e.Size)
	fmt.Fprintf(&b, "Quantity: %d\n", e.Quantity)
	if e.Note != "" {
		fmt.Fprintf(&b, "Note:     %s\n", e.Note)
	}
	fmt.Fprintf(&b, "\nReference: %s\n", e.RestockID)

	return mailer.Message{
		To:      e.SupplierEmail,
		Subject: "Restock request: " + product,
		Body:    b.String(),
	}
}
