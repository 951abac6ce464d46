package domain

import (
	"math"
	"time"

	"shoeshop/pkg/validation"
)

type PaymentMethod string

const (
	PaymentCard           PaymentMethod = "card"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

type DeliveryStatus string

const (
	DeliveryPending    DeliveryStatus = "pending"
	DeliveryProcessing DeliveryStatus = "processing"
	DeliveryShipped    DeliveryStatus = "shipped"
	DeliveryDelivered  DeliveryStatus = "delivered"
	DeliveryCancelled  DeliveryStatus = "cancelled"
)

func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryPending, DeliveryProcessing, DeliveryShipped, DeliveryDelivered, DeliveryCancelled:
		return true
	}
	return false
}

type OrderItem struct {
	ShoeID    string  `json:"shoe_id" validate:"required,uuid"`
	Color     string  `json:"color" validate:"required,max=50"`
	Size      float64 `json:"size" validate:"gt=0"`
	Quantity  int     `json:"quantity" validate:"min=1,max=100"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

type Shipping struct {
	FullName   string `json:"full_name" validate:"required,person_name"`
	Address    string `json:"address" validate:"required,min=5,max=255"`
	City       string `json:"city" validate:"required,min=2,max=100"`
	PostalCode string `json:"postal_code" validate:"required,postal_code"`
	Phone      string `json:"phone" validate:"required,phone"`
	Email      string `json:"email" validate:"required,email,max=100"`
}

type Order struct {
	ID               string         `json:"id"`
	CustomerEmail    string         `json:"customer_email" validate:"required,email,max=100"`
	Items            []OrderItem    `json:"items" validate:"required,min=1,dive"`
	Shipping         Shipping       `json:"shipping"`
	PaymentMethod    PaymentMethod  `json:"payment_method" validate:"required,oneof=card cash_on_delivery"`
	PaymentStatus    PaymentStatus  `json:"payment_status" validate:"required,oneof=pending paid failed"`
	DeliveryStatus   DeliveryStatus `json:"delivery_status" validate:"required,oneof=pending processing shipped delivered cancelled"`
	DeliveryPersonID *string        `json:"delivery_person_id,omitempty"`
	Total            float64        `json:"total"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (o *Order) Validate() error {
	if err := validation.Struct(o); err != nil {
		return validationError(err)
	}
	return nil
}

// CalculateTotal sums the line items, rounded to cents.
func (o *Order) CalculateTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	o.Total = math.Round(total*100) / 100
	return o.Total
}

// OrderFilter narrows ListOrders. Empty fields match everything.
type OrderFilter struct {
	DeliveryStatus DeliveryStatus
	CustomerEmail  string
}

// OrderTotal is the slice of an order analytics and reports need.
type OrderTotal struct {
	ID             string         `json:"id"`
	CustomerEmail  string         `json:"customer_email"`
	DeliveryStatus DeliveryStatus `json:"delivery_status"`
	Total          float64        `json:"total"`
	CreatedAt      time.Time      `json:"created_at"`
}
