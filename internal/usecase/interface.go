package usecase

import (
	"context"
	"time"

	"shoeshop/internal/domain"
	"shoeshop/pkg/mailer"
)

type shoeStore interface {
	SaveShoe(ctx context.Context, shoe *domain.Shoe) error
	UpdateShoe(ctx context.Context, shoe *domain.Shoe) error
	GetShoeByID(ctx context.Context, id string) (*domain.Shoe, error)
	ListShoes(ctx context.Context, filter domain.ShoeFilter, page domain.Page) ([]domain.Shoe, int, error)
	DeleteShoe(ctx context.Context, id string) error
}

type shoeGetter interface {
	GetShoeByID(ctx context.Context, id string) (*domain.Shoe, error)
}

// shoeCache drops cached shoes whose stock changed in the database.
type shoeCache interface {
	Invalidate(ctx context.Context, ids ...string)
}

type reviewStore interface {
	CreateReview(ctx context.Context, review *domain.Review) error
	ListReviewsByShoe(ctx context.Context, shoeID string, page domain.Page) ([]domain.Review, int, error)
	RatingSummary(ctx context.Context, shoeID string) (*domain.RatingSummary, error)
	DeleteReview(ctx context.Context, id string) error
	DeleteReviewsByShoe(ctx context.Context, shoeID string) (int64, error)
}

type orderStore interface {
	SaveOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter, page domain.Page) ([]domain.Order, int, error)
	UpdateDeliveryStatus(ctx context.Context, id string, status domain.DeliveryStatus) (*domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Order, error)
	AssignDeliveryPerson(ctx context.Context, orderID, personID string) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

type orderGetter interface {
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
}

type refundStore interface {
	SaveRefund(ctx context.Context, refund *domain.Refund) error
	GetRefundByID(ctx context.Context, id string) (*domain.Refund, error)
	ListRefunds(ctx context.Context, status domain.RefundStatus, page domain.Page) ([]domain.Refund, int, error)
	UpdateRefundStatus(ctx context.Context, refund *domain.Refund) error
	DeleteRefund(ctx context.Context, id string) error
}

type salaryStore interface {
	SaveSalary(ctx context.Context, salary *domain.Salary) error
	UpdateSalary(ctx context.Context, salary *domain.Salary) error
	GetSalaryByID(ctx context.Context, id string) (*domain.Salary, error)
	ListSalaries(ctx context.Context, month string, page domain.Page) ([]domain.Salary, int, error)
	ListSalariesByMonth(ctx context.Context, month string) ([]domain.Salary, error)
	DeleteSalary(ctx context.Context, id string) error
}

type restockStore interface {
	SaveRestock(ctx context.Context, r *domain.RestockRequest) error
	GetRestockByID(ctx context.Context, id string) (*domain.RestockRequest, error)
	ListRestocks(ctx context.Context, status domain.RestockStatus, page domain.Page) ([]domain.RestockRequest, int, error)
	MarkRestockNotified(ctx context.Context, id string) (bool, error)
	FulfillRestock(ctx context.Context, id string) (*domain.RestockRequest, error)
	DeleteRestock(ctx context.Context, id string) error
}

type deliveryStore interface {
	SaveDeliveryPerson(ctx context.Context, p *domain.DeliveryPerson) error
	UpdateDeliveryPerson(ctx context.Context, p *domain.DeliveryPerson) error
	GetDeliveryPersonByID(ctx context.Context, id string) (*domain.DeliveryPerson, error)
	ListDeliveryPersons(ctx context.Context, page domain.Page) ([]domain.DeliveryPerson, int, error)
	RecordTrip(ctx context.Context, id string, trip domain.Trip, costPerKm float64) (*domain.DeliveryPerson, error)
	DeleteDeliveryPerson(ctx context.Context, id string) error
}

type analyticsStore interface {
	ListOrderTotals(ctx context.Context, from, to time.Time) ([]domain.OrderTotal, error)
	TopShoes(ctx context.Context, limit int) ([]domain.TopShoe, error)
	ListLowStock(ctx context.Context, threshold int) ([]domain.LowStockItem, error)
}

// RestockPublisher hands restock events to the message broker.
type RestockPublisher interface {
	PublishRestock(ctx context.Context, event domain.RestockEvent) error
}

type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}
