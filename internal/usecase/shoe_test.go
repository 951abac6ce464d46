package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shoeshop/internal/domain"
	"shoeshop/internal/usecase"
	"shoeshop/pkg/logger"
)

func TestShoeUsecase_CreateShoe(t *testing.T) {
	store := new(MockShoeStore)
	uc := usecase.NewShoeUsecase(store, new(MockReviewStore), logger.NewTestLogger())

	t.Run("assigns id and timestamps", func(t *testing.T) {
		input := domain.CreateTestShoe()
		input.ID = ""

		store.On("SaveShoe", mock.Anything, mock.AnythingOfType("*domain.Shoe")).Return(nil).Once()

		shoe, err := uc.CreateShoe(context.Background(), input)

		require.NoError(t, err)
		assert.NotEmpty(t, shoe.ID)
		assert.False(t, shoe.CreatedAt.IsZero())
		assert.Equal(t, shoe.CreatedAt, shoe.UpdatedAt)
		store.AssertExpectations(t)
	})

	t.Run("invalid shoe is not stored", func(t *testing.T) {
		input := domain.CreateTestShoe()
		input.Price = -1

		_, err := uc.CreateShoe(context.Background(), input)

		assert.ErrorIs(t, err, domain.ErrValidation)
		store.AssertNumberOfCalls(t, "SaveShoe", 1)
	})
}

func TestShoeUsecase_UpdateShoe(t *testing.T) {
	store := new(MockShoeStore)
	uc := usecase.NewShoeUsecase(store, new(MockReviewStore), logger.NewTestLogger())
	existing := domain.CreateTestShoe()

	t.Run("keeps id and creation time", func(t *testing.T) {
		input := domain.CreateTestShoe()
		input.Price = 99.5

		store.On("GetShoeByID", mock.Anything, existing.ID).Return(&existing, nil).Once()
		store.On("UpdateShoe", mock.Anything, mock.MatchedBy(func(s *domain.Shoe) bool {
			return s.ID == existing.ID && s.CreatedAt.Equal(existing.CreatedAt) && s.Price == 99.5
		})).Return(nil).Once()

		shoe, err := uc.UpdateShoe(context.Background(), existing.ID, input)

		require.NoError(t, err)
		assert.Equal(t, existing.ID, shoe.ID)
		store.AssertExpectations(t)
	})

	t.Run("unknown shoe", func(t *testing.T) {
		store.On("GetShoeByID", mock.Anything, "9d1c3e1a-6f7b-4a8e-9c0d-1e2f3a4b5c6d").Return(nil, domain.ErrRecordNotFound).Once()

		_, err := uc.UpdateShoe(context.Background(), "9d1c3e1a-6f7b-4a8e-9c0d-1e2f3a4b5c6d", domain.CreateTestShoe())

		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})
}

func TestShoeUsecase_DeleteShoe(t *testing.T) {
	t.Run("reviews are removed too", func(t *testing.T) {
		store, reviews := new(MockShoeStore), new(MockReviewStore)
		uc := usecase.NewShoeUsecase(store, reviews, logger.NewTestLogger())

		store.On("DeleteShoe", mock.Anything, "3f2a1b0c-9d8e-4f7a-8b6c-5d4e3f2a1b0c").Return(nil).Once()
		reviews.On("DeleteReviewsByShoe", mock.Anything, "3f2a1b0c-9d8e-4f7a-8b6c-5d4e3f2a1b0c").Return(int64(4), nil).Once()

		assert.NoError(t, uc.DeleteShoe(context.Background(), "3f2a1b0c-9d8e-4f7a-8b6c-5d4e3f2a1b0c"))
		reviews.AssertExpectations(t)
	})

	t.Run("review cleanup failure is tolerated", func(t *testing.T) {
		store, reviews := new(MockShoeStore), new(MockReviewStore)
		uc := usecase.NewShoeUsecase(store, reviews, logger.NewTestLogger())

		store.On("DeleteShoe", mock.Anything, "3f2a1b0c-9d8e-4f7a-8b6c-5d4e3f2a1b0c").Return(nil).Once()
		reviews.On("DeleteReviewsByShoe", mock.Anything, "3f2a1b0c-9d8e-4f7a-8b6c-5d4e3f2a1b0c").Return(int64(0), errors.New("mongo down")).Once()

		assert.NoError(t, uc.DeleteShoe(context.Background(), "3f2a1b0c-9d8e-4f7a-8b6c-5d4e3f2a1b0c"))
	})

	t.Run("missing shoe", func(t *testing.T) {
		store, reviews := new(MockShoeStore), new(MockReviewStore)
		uc := usecase.NewShoeUsecase(store, reviews, logger.NewTestLogger())

		store.On("DeleteShoe", mock.Anything, "3f2a1b0c-9d8e-4f7a-8b6c-5d4e3f2a1b0c").Return(domain.ErrRecordNotFound).Once()

		assert.ErrorIs(t, uc.DeleteShoe(context.Background(), "3f2a1b0c-9d8e-4f7a-8b6c-5d4e3f2a1b0c"), domain.ErrRecordNotFound)
		reviews.AssertNotCalled(t, "DeleteReviewsByShoe", mock.Anything, mock.Anything)
	})
}

func TestReviewUsecase(t *testing.T) {
	shoe := domain.CreateTestShoe()

	t.Run("add review to existing shoe", func(t *testing.T) {
		store, shoes := new(MockReviewStore), new(MockShoeStore)
		uc := usecase.NewReviewUsecase(store, shoes, logger.NewTestLogger())

		shoes.On("GetShoeByID", mock.Anything, shoe.ID).Return(&shoe, nil).Once()
		store.On("CreateReview", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil).Once()

		review, err := uc.AddReview(context.Background(), shoe.ID, domain.Review{
			ShoeID:       "ignored",
			CustomerName: "Kasun Silva",
			Rating:       4,
			Comment:      "Good grip",
		})

		require.NoError(t, err)
		assert.Equal(t, shoe.ID, review.ShoeID)
		assert.False(t, review.ID.IsZero())
		store.AssertExpectations(t)
	})

	t.Run("rating out of range", func(t *testing.T) {
		store, shoes := new(MockReviewStore), new(MockShoeStore)
		uc := usecase.NewReviewUsecase(store, shoes, logger.NewTestLogger())

		shoes.On("GetShoeByID", mock.Anything, shoe.ID).Return(&shoe, nil).Once()

		_, err := uc.AddReview(context.Background(), shoe.ID, domain.Review{CustomerName: "Kasun Silva", Rating: 6})

		assert.ErrorIs(t, err, domain.ErrValidation)
		store.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything)
	})

	t.Run("review for unknown shoe", func(t *testing.T) {
		store, shoes := new(MockReviewStore), new(MockShoeStore)
		uc := usecase.NewReviewUsecase(store, shoes, logger.NewTestLogger())

		shoes.On("GetShoeByID", mock.Anything, "9d1c3e1a-6f7b-4a8e-9c0d-1e2f3a4b5c6d").Return(nil, domain.ErrRecordNotFound).Once()

		_, err := uc.AddReview(context.Background(), "9d1c3e1a-6f7b-4a8e-9c0d-1e2f3a4b5c6d", domain.Review{CustomerName: "Kasun Silva", Rating: 5})

		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})

	t.Run("rating is rounded", func(t *testing.T) {
		store, shoes := new(MockReviewStore), new(MockShoeStore)
		uc := usecase.NewReviewUsecase(store, shoes, logger.NewTestLogger())

		shoes.On("GetShoeByID", mock.Anything, shoe.ID).Return(&shoe, nil).Once()
		store.On("RatingSummary", mock.Anything, shoe.ID).
			Return(&domain.RatingSummary{ShoeID: shoe.ID, Count: 3, Average: 4.333333}, nil).Once()

		summary, err := uc.Rating(context.Background(), shoe.ID)

		require.NoError(t, err)
		assert.Equal(t, 4.33, summary.Average)
		assert.Equal(t, 3, summary.Count)
	})
}
