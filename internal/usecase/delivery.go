package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"shoeshop/internal/domain"
)

type DeliveryUsecase struct {
	store     deliveryStore
	orders    orderGetter
	costPerKm float64
	log       *slog.Logger
}

func NewDeliveryUsecase(store deliveryStore, orders orderGetter, costPerKm float64, log *slog.Logger) *DeliveryUsecase {
	return &DeliveryUsecase{store: store, orders: orders, costPerKm: costPerKm, log: log}
}

// CreateDeliveryPerson registers a courier with empty trip counters.
func (uc *DeliveryUsecase) CreateDeliveryPerson(ctx context.Context, p domain.DeliveryPerson) (*domain.DeliveryPerson, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	p.Trips = 0
	p.MileageKm = 0
	p.Cost = 0

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := uc.store.SaveDeliveryPerson(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (uc *DeliveryUsecase) GetDeliveryPerson(ctx context.Context, id string) (*domain.DeliveryPerson, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	return uc.store.GetDeliveryPersonByID(ctx, id)
}

func (uc *DeliveryUsecase) ListDeliveryPersons(ctx context.Context, page domain.Page) ([]domain.DeliveryPerson, int, error) {
	return uc.store.ListDeliveryPersons(ctx, page.Normalize())
}

// UpdateDeliveryPerson replaces the personal details. Trip counters only change through RecordTrip.
func (uc *DeliveryUsecase) UpdateDeliveryPerson(ctx context.Context, id string, p domain.DeliveryPerson) (*domain.DeliveryPerson, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	existing, err := uc.store.GetDeliveryPersonByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.Trips = existing.Trips
	p.MileageKm = existing.MileageKm
	p.Cost = existing.Cost

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := uc.store.UpdateDeliveryPerson(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (uc *DeliveryUsecase) DeleteDeliveryPerson(ctx context.Context, id string) error {
	if err := domain.ValidateID(id); err != nil {
		return err
	}
	return uc.store.DeleteDeliveryPerson(ctx, id)
}

// RecordTrip adds a trip to the courier's counters, priced at the configured cost per km.
func (uc *DeliveryUsecase) RecordTrip(ctx context.Context, id string, trip domain.Trip) (*domain.DeliveryPerson, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	if err := trip.Validate(); err != nil {
		return nil, err
	}
	if trip.OrderID != "" {
		if _, err := uc.orders.GetOrderByID(ctx, trip.OrderID); err != nil {
			return nil, err
		}
	}
	return uc.store.RecordTrip(ctx, id, trip, uc.costPerKm)
}
