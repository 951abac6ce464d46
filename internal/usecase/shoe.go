package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"shoeshop/internal/domain"
)

type ShoeUsecase struct {
	store   shoeStore
	reviews reviewStore
	log     *slog.Logger
}

func NewShoeUsecase(store shoeStore, reviews reviewStore, log *slog.Logger) *ShoeUsecase {
	return &ShoeUsecase{store: store, reviews: reviews, log: log}
}

func (uc *ShoeUsecase) CreateShoe(ctx context.Context, shoe domain.Shoe) (*domain.Shoe, error) {
	now := time.Now().UTC()
	shoe.ID = uuid.NewString()
	shoe.CreatedAt = now
	shoe.UpdatedAt = now

	if err := shoe.Validate(); err != nil {
		return nil, err
	}
	if err := uc.store.SaveShoe(ctx, &shoe); err != nil {
		return nil, err
	}
	return &shoe, nil
}

func (uc *ShoeUsecase) GetShoe(ctx context.Context, id string) (*domain.Shoe, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	return uc.store.GetShoeByID(ctx, id)
}

func (uc *ShoeUsecase) ListShoes(ctx context.Context, filter domain.ShoeFilter, page domain.Page) ([]domain.Shoe, int, error) {
	return uc.store.ListShoes(ctx, filter, page.Normalize())
}

// UpdateShoe replaces every editable field of the shoe.
func (uc *ShoeUsecase) UpdateShoe(ctx context.Context, id string, shoe domain.Shoe) (*domain.Shoe, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	existing, err := uc.store.GetShoeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	shoe.ID = existing.ID
	shoe.CreatedAt = existing.CreatedAt
	shoe.UpdatedAt = time.Now().UTC()

	if err := shoe.Validate(); err != nil {
		return nil, err
	}
	if err := uc.store.UpdateShoe(ctx, &shoe); err != nil {
		return nil, err
	}
	return &shoe, nil
}

// DeleteShoe removes the shoe and then its reviews. Orphaned reviews are only logged.
func (uc *ShoeUsecase) DeleteShoe(ctx context.Context, id string) error {
	if err := domain.ValidateID(id); err != nil {
		return err
	}
	if err := uc.store.DeleteShoe(ctx, id); err != nil {
		return err
	}
	n, err := uc.reviews.DeleteReviewsByShoe(ctx, id)
	if err != nil {
		uc.log.Warn("failed to delete reviews of removed shoe", "shoe_id", id, "error", err)
		return nil
	}
	uc.log.Info("Shoe deleted", "shoe_id", id, "reviews_deleted", n)
	return nil
}
