package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"shoeshop/internal/domain"
	"shoeshop/pkg/mailer"
)

type MockShoeStore struct {
	mock.Mock
}

func (m *MockShoeStore) SaveShoe(ctx context.Context, shoe *domain.Shoe) error {
	return m.Called(ctx, shoe).Error(0)
}

func (m *MockShoeStore) UpdateShoe(ctx context.Context, shoe *domain.Shoe) error {
	return m.Called(ctx, shoe).Error(0)
}

func (m *MockShoeStore) GetShoeByID(ctx context.Context, id string) (*domain.Shoe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shoe), args.Error(1)
}

func (m *MockShoeStore) ListShoes(ctx context.Context, filter domain.ShoeFilter, page domain.Page) ([]domain.Shoe, int, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Shoe), args.Int(1), args.Error(2)
}

func (m *MockShoeStore) DeleteShoe(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockShoeCache struct {
	mock.Mock
}

func (m *MockShoeCache) Invalidate(ctx context.Context, ids ...string) {
	m.Called(ctx, ids)
}

type MockReviewStore struct {
	mock.Mock
}

func (m *MockReviewStore) CreateReview(ctx context.Context, review *domain.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewStore) ListReviewsByShoe(ctx context.Context, shoeID string, page domain.Page) ([]domain.Review, int, error) {
	args := m.Called(ctx, shoeID, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Review), args.Int(1), args.Error(2)
}

func (m *MockReviewStore) RatingSummary(ctx context.Context, shoeID string) (*domain.RatingSummary, error) {
	args := m.Called(ctx, shoeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RatingSummary), args.Error(1)
}

func (m *MockReviewStore) DeleteReview(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReviewStore) DeleteReviewsByShoe(ctx context.Context, shoeID string) (int64, error) {
	args := m.Called(ctx, shoeID)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) SaveOrder(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderStore) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderStore) ListOrders(ctx context.Context, filter domain.OrderFilter, page domain.Page) ([]domain.Order, int, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}

func (m *MockOrderStore) UpdateDeliveryStatus(ctx context.Context, id string, status domain.DeliveryStatus) (*domain.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderStore) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderStore) AssignDeliveryPerson(ctx context.Context, orderID, personID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderStore) DeleteOrder(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockRefundStore struct {
	mock.Mock
}

func (m *MockRefundStore) SaveRefund(ctx context.Context, refund *domain.Refund) error {
	return m.Called(ctx, refund).Error(0)
}

func (m *MockRefundStore) GetRefundByID(ctx context.Context, id string) (*domain.Refund, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}

func (m *MockRefundStore) ListRefunds(ctx context.Context, status domain.RefundStatus, page domain.Page) ([]domain.Refund, int, error) {
	args := m.Called(ctx, status, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Refund), args.Int(1), args.Error(2)
}

func (m *MockRefundStore) UpdateRefundStatus(ctx context.Context, refund *domain.Refund) error {
	return m.Called(ctx, refund).Error(0)
}

func (m *MockRefundStore) DeleteRefund(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockSalaryStore struct {
	mock.Mock
}

func (m *MockSalaryStore) SaveSalary(ctx context.Context, salary *domain.Salary) error {
	return m.Called(ctx, salary).Error(0)
}

func (m *MockSalaryStore) UpdateSalary(ctx context.Context, salary *domain.Salary) error {
	return m.Called(ctx, salary).Error(0)
}

func (m *MockSalaryStore) GetSalaryByID(ctx context.Context, id string) (*domain.Salary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Salary), args.Error(1)
}

func (m *MockSalaryStore) ListSalaries(ctx context.Context, month string, page domain.Page) ([]domain.Salary, int, error) {
	args := m.Called(ctx, month, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Salary), args.Int(1), args.Error(2)
}

func (m *MockSalaryStore) ListSalariesByMonth(ctx context.Context, month string) ([]domain.Salary, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Salary), args.Error(1)
}

func (m *MockSalaryStore) DeleteSalary(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockRestockStore struct {
	mock.Mock
}

func (m *MockRestockStore) SaveRestock(ctx context.Context, r *domain.RestockRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRestockStore) GetRestockByID(ctx context.Context, id string) (*domain.RestockRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RestockRequest), args.Error(1)
}

func (m *MockRestockStore) ListRestocks(ctx context.Context, status domain.RestockStatus, page domain.Page) ([]domain.RestockRequest, int, error) {
	args := m.Called(ctx, status, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.RestockRequest), args.Int(1), args.Error(2)
}

func (m *MockRestockStore) MarkRestockNotified(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRestockStore) FulfillRestock(ctx context.Context, id string) (*domain.RestockRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RestockRequest), args.Error(1)
}

func (m *MockRestockStore) DeleteRestock(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishRestock(ctx context.Context, event domain.RestockEvent) error {
	return m.Called(ctx, event).Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg mailer.Message) error {
	return m.Called(ctx, msg).Error(0)
}

type MockDeliveryStore struct {
	mock.Mock
}

func (m *MockDeliveryStore) SaveDeliveryPerson(ctx context.Context, p *domain.DeliveryPerson) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockDeliveryStore) UpdateDeliveryPerson(ctx context.Context, p *domain.DeliveryPerson) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockDeliveryStore) GetDeliveryPersonByID(ctx context.Context, id string) (*domain.DeliveryPerson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryPerson), args.Error(1)
}

func (m *MockDeliveryStore) ListDeliveryPersons(ctx context.Context, page domain.Page) ([]domain.DeliveryPerson, int, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.DeliveryPerson), args.Int(1), args.Error(2)
}

func (m *MockDeliveryStore) RecordTrip(ctx context.Context, id string, trip domain.Trip, costPerKm float64) (*domain.DeliveryPerson, error) {
	args := m.Called(ctx, id, trip, costPerKm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryPerson), args.Error(1)
}

func (m *MockDeliveryStore) DeleteDeliveryPerson(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockAnalyticsStore struct {
	mock.Mock
}

func (m *MockAnalyticsStore) ListOrderTotals(ctx context.Context, from, to time.Time) ([]domain.OrderTotal, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderTotal), args.Error(1)
}

func (m *MockAnalyticsStore) TopShoes(ctx context.Context, limit int) ([]domain.TopShoe, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopShoe), args.Error(1)
}

func (m *MockAnalyticsStore) ListLowStock(ctx context.Context, threshold int) ([]domain.LowStockItem, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LowStockItem), args.Error(1)
}
