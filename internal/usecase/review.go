package usecase

import (
	"context"
	"log/slog"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shoeshop/internal/domain"
)

type ReviewUsecase struct {
	store reviewStore
	shoes shoeGetter
	log   *slog.Logger
}

func NewReviewUsecase(store reviewStore, shoes shoeGetter, log *slog.Logger) *ReviewUsecase {
	return &ReviewUsecase{store: store, shoes: shoes, log: log}
}

func (uc *ReviewUsecase) AddReview(ctx context.Context, shoeID string, review domain.Review) (*domain.Review, error) {
	if err := domain.ValidateID(shoeID); err != nil {
		return nil, err
	}
	if _, err := uc.shoes.GetShoeByID(ctx, shoeID); err != nil {
		return nil, err
	}

	review.ID = primitive.NewObjectID()
	review.ShoeID = shoeID
	review.CreatedAt = time.Now().UTC()

	if err := review.Validate(); err != nil {
		return nil, err
	}
	if err := uc.store.CreateReview(ctx, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (uc *ReviewUsecase) ListReviews(ctx context.Context, shoeID string, page domain.Page) ([]domain.Review, int, error) {
	if err := domain.ValidateID(shoeID); err != nil {
		return nil, 0, err
	}
	if _, err := uc.shoes.GetShoeByID(ctx, shoeID); err != nil {
		return nil, 0, err
	}
	return uc.store.ListReviewsByShoe(ctx, shoeID, page.Normalize())
}

func (uc *ReviewUsecase) Rating(ctx context.Context, shoeID string) (*domain.RatingSummary, error) {
	if err := domain.ValidateID(shoeID); err != nil {
		return nil, err
	}
	if _, err := uc.shoes.GetShoeByID(ctx, shoeID); err != nil {
		return nil, err
	}
	summary, err := uc.store.RatingSummary(ctx, shoeID)
	if err != nil {
		return nil, err
	}
	summary.Average = math.Round(summary.Average*100) / 100
	return summary, nil
}

func (uc *ReviewUsecase) DeleteReview(ctx context.Context, id string) error {
	return uc.store.DeleteReview(ctx, id)
}
