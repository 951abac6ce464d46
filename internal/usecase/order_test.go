package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shoeshop/internal/domain"
	"shoeshop/internal/usecase"
	"shoeshop/pkg/logger"
)

func TestOrderUsecase_GetOrder(t *testing.T) {
	log := logger.NewTestLogger()
	mockStore := new(MockOrderStore)
	uc := usecase.NewOrderUsecase(mockStore, new(MockShoeCache), 3, log)

	t.Run("successful get order", func(t *testing.T) {
		expected := domain.CreateTestOrder(domain.CreateTestShoe())

		mockStore.On("GetOrderByID", mock.Anything, expected.ID).
			Return(&expected, nil).
			Once()

		order, err := uc.GetOrder(context.Background(), expected.ID)

		assert.NoError(t, err)
		assert.Equal(t, &expected, order)
		mockStore.AssertExpectations(t)
	})

	t.Run("order not found", func(t *testing.T) {
		mockStore.On("GetOrderByID", mock.Anything, "9d1c3e1a-6f7b-4a8e-9c0d-1e2f3a4b5c6d").
			Return(nil, domain.ErrRecordNotFound).
			Once()

		order, err := uc.GetOrder(context.Background(), "9d1c3e1a-6f7b-4a8e-9c0d-1e2f3a4b5c6d")

		assert.Nil(t, order)
		assert.True(t, errors.Is(err, domain.ErrRecordNotFound))
		mockStore.AssertExpectations(t)
	})

	t.Run("malformed id never reaches the store", func(t *testing.T) {
		order, err := uc.GetOrder(context.Background(), "abc")

		assert.Nil(t, order)
		assert.ErrorIs(t, err, domain.ErrInvalidID)
		mockStore.AssertNotCalled(t, "GetOrderByID", mock.Anything, "abc")
	})
}

func TestOrderUsecase_CreateOrder(t *testing.T) {
	defer usecase.SetRetryBaseDelay(time.Millisecond)()
	log := logger.NewTestLogger()
	shoe := domain.CreateTestShoe()

	t.Run("successful order creation", func(t *testing.T) {
		mockStore, cache := new(MockOrderStore), new(MockShoeCache)
		uc := usecase.NewOrderUsecase(mockStore, cache, 3, log)

		input := domain.CreateTestOrder(shoe)
		input.PaymentStatus = domain.PaymentPaid
		input.Items[0].UnitPrice = 1

		mockStore.On("SaveOrder", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
			return o.ID != input.ID &&
				o.PaymentStatus == domain.PaymentPending &&
				o.DeliveryStatus == domain.DeliveryPending &&
				o.Items[0].UnitPrice == 0
		})).
			Run(func(args mock.Arguments) {
				o := args.Get(1).(*domain.Order)
				o.Items[0].UnitPrice = shoe.Price
				o.CalculateTotal()
			}).
			Return(nil).
			Once()
		cache.On("Invalidate", mock.Anything, []string{shoe.ID}).Once()

		order, err := uc.CreateOrder(context.Background(), input)

		require.NoError(t, err)
		assert.Equal(t, 259.98, order.Total)
		mockStore.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("order validation failed", func(t *testing.T) {
		mockStore := new(MockOrderStore)
		uc := usecase.NewOrderUsecase(mockStore, new(MockShoeCache), 3, log)

		invalid := domain.CreateTestOrder(shoe)
		invalid.Items = nil

		_, err := uc.CreateOrder(context.Background(), invalid)

		assert.ErrorIs(t, err, domain.ErrValidation)
		mockStore.AssertNotCalled(t, "SaveOrder", mock.Anything, mock.Anything)
	})

	t.Run("insufficient stock is not retried", func(t *testing.T) {
		mockStore, cache := new(MockOrderStore), new(MockShoeCache)
		uc := usecase.NewOrderUsecase(mockStore, cache, 3, log)

		mockStore.On("SaveOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
			Return(domain.ErrInsufficientStock).
			Once()

		_, err := uc.CreateOrder(context.Background(), domain.CreateTestOrder(shoe))

		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		mockStore.AssertExpectations(t)
		cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	})

	t.Run("retry on save failure", func(t *testing.T) {
		mockStore := new(MockOrderStore)
		uc := usecase.NewOrderUsecase(mockStore, new(MockShoeCache), 3, log)

		mockStore.On("SaveOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
			Return(errors.New("database error")).
			Times(3)

		_, err := uc.CreateOrder(context.Background(), domain.CreateTestOrder(shoe))

		assert.Error(t, err)
		mockStore.AssertExpectations(t)
	})

	t.Run("succeeds on second attempt", func(t *testing.T) {
		mockStore, cache := new(MockOrderStore), new(MockShoeCache)
		uc := usecase.NewOrderUsecase(mockStore, cache, 3, log)

		mockStore.On("SaveOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
			Return(errors.New("connection reset")).
			Once()
		mockStore.On("SaveOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
			Return(nil).
			Once()
		cache.On("Invalidate", mock.Anything, mock.Anything).Once()

		_, err := uc.CreateOrder(context.Background(), domain.CreateTestOrder(shoe))

		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
	})
}

func TestOrderUsecase_ContextCancellation(t *testing.T) {
	defer usecase.SetRetryBaseDelay(time.Second)()
	log := logger.NewTestLogger()
	mockStore := new(MockOrderStore)
	uc := usecase.NewOrderUsecase(mockStore, new(MockShoeCache), 3, log)

	t.Run("context cancellation during retry", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		mockStore.On("SaveOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
			Return(errors.New("database error")).
			Maybe()

		start := time.Now()
		_, err := uc.CreateOrder(ctx, domain.CreateTestOrder(domain.CreateTestShoe()))

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), time.Second)
	})
}

func TestOrderUsecase_UpdateDeliveryStatus(t *testing.T) {
	log := logger.NewTestLogger()
	shoe := domain.CreateTestShoe()

	t.Run("cancel invalidates cached stock", func(t *testing.T) {
		mockStore, cache := new(MockOrderStore), new(MockShoeCache)
		uc := usecase.NewOrderUsecase(mockStore, cache, 3, log)
		order := domain.CreateTestOrder(shoe)
		order.DeliveryStatus = domain.DeliveryCancelled

		mockStore.On("UpdateDeliveryStatus", mock.Anything, order.ID, domain.DeliveryCancelled).
			Return(&order, nil).Once()
		cache.On("Invalidate", mock.Anything, []string{shoe.ID}).Once()

		got, err := uc.UpdateDeliveryStatus(context.Background(), order.ID, domain.DeliveryCancelled)

		require.NoError(t, err)
		assert.Equal(t, domain.DeliveryCancelled, got.DeliveryStatus)
		cache.AssertExpectations(t)
	})

	t.Run("unknown status", func(t *testing.T) {
		mockStore := new(MockOrderStore)
		uc := usecase.NewOrderUsecase(mockStore, new(MockShoeCache), 3, log)

		_, err := uc.UpdateDeliveryStatus(context.Background(), "0b5e2c4f-8a1d-4e3b-9f6c-7d8e9a0b1c2d", "lost")

		assert.ErrorIs(t, err, domain.ErrValidation)
		mockStore.AssertNotCalled(t, "UpdateDeliveryStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("revive cancelled order", func(t *testing.T) {
		mockStore, cache := new(MockOrderStore), new(MockShoeCache)
		uc := usecase.NewOrderUsecase(mockStore, cache, 3, log)

		mockStore.On("UpdateDeliveryStatus", mock.Anything, "0b5e2c4f-8a1d-4e3b-9f6c-7d8e9a0b1c2d", domain.DeliveryShipped).
			Return(nil, domain.ErrInvalidStatus).Once()

		_, err := uc.UpdateDeliveryStatus(context.Background(), "0b5e2c4f-8a1d-4e3b-9f6c-7d8e9a0b1c2d", domain.DeliveryShipped)

		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})
}

func TestOrderUsecase_PaymentAndAssignment(t *testing.T) {
	log := logger.NewTestLogger()
	mockStore := new(MockOrderStore)
	uc := usecase.NewOrderUsecase(mockStore, new(MockShoeCache), 3, log)

	t.Run("unknown payment status", func(t *testing.T) {
		_, err := uc.UpdatePaymentStatus(context.Background(), "0b5e2c4f-8a1d-4e3b-9f6c-7d8e9a0b1c2d", "refunded")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("payment marked paid", func(t *testing.T) {
		order := domain.CreateTestOrder(domain.CreateTestShoe())
		order.PaymentStatus = domain.PaymentPaid
		mockStore.On("UpdatePaymentStatus", mock.Anything, order.ID, domain.PaymentPaid).Return(&order, nil).Once()

		got, err := uc.UpdatePaymentStatus(context.Background(), order.ID, domain.PaymentPaid)

		require.NoError(t, err)
		assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
	})

	t.Run("delivery person id must be a uuid", func(t *testing.T) {
		_, err := uc.AssignDeliveryPerson(context.Background(), "0b5e2c4f-8a1d-4e3b-9f6c-7d8e9a0b1c2d", "courier-7")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("assign delivery person", func(t *testing.T) {
		person := domain.CreateTestDeliveryPerson()
		order := domain.CreateTestOrder(domain.CreateTestShoe())
		order.DeliveryPersonID = &person.ID
		order.DeliveryStatus = domain.DeliveryProcessing
		mockStore.On("AssignDeliveryPerson", mock.Anything, order.ID, person.ID).Return(&order, nil).Once()

		got, err := uc.AssignDeliveryPerson(context.Background(), order.ID, person.ID)

		require.NoError(t, err)
		assert.Equal(t, domain.DeliveryProcessing, got.DeliveryStatus)
		mockStore.AssertExpectations(t)
	})
}

func TestOrderUsecase_ListOrders(t *testing.T) {
	mockStore := new(MockOrderStore)
	uc := usecase.NewOrderUsecase(mockStore, new(MockShoeCache), 3, logger.NewTestLogger())

	t.Run("page is normalized", func(t *testing.T) {
		mockStore.On("ListOrders", mock.Anything, domain.OrderFilter{}, domain.Page{Limit: 100, Offset: 0}).
			Return([]domain.Order{}, 0, nil).Once()

		_, _, err := uc.ListOrders(context.Background(), domain.OrderFilter{}, domain.Page{Limit: 1000, Offset: -5})

		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
	})

	t.Run("unknown status filter", func(t *testing.T) {
		_, _, err := uc.ListOrders(context.Background(), domain.OrderFilter{DeliveryStatus: "lost"}, domain.Page{})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
