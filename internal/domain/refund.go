package domain

import (
	"time"

	"shoeshop/pkg/validation"
)

type RefundStatus string

const (
	RefundPending  RefundStatus = "pending"
	RefundApproved RefundStatus = "approved"
	RefundRejected RefundStatus = "rejected"
)

func (s RefundStatus) Valid() bool {
	switch s {
	case RefundPending, RefundApproved, RefundRejected:
		return true
	}
	return false
}

type Refund struct {
	ID            string       `json:"id"`
	OrderID       string       `json:"order_id" validate:"required,uuid"`
	CustomerEmail string       `json:"customer_email" validate:"required,email,max=100"`
	Reason        string       `json:"reason" validate:"required,min=5,max=500"`
	Amount        float64      `json:"amount" validate:"gt=0"`
	Status        RefundStatus `json:"status" validate:"required,oneof=pending approved rejected"`
	CreatedAt     time.Time    `json:"created_at"`
	ProcessedAt   *time.Time   `json:"processed_at,omitempty"`
}

func (r *Refund) Validate() error {
	if err := validation.Struct(r); err != nil {
		return validationError(err)
	}
	return nil
}

// Process moves a pending refund to its final status. A refund is processed once.
func (r *Refund) Process(status RefundStatus, at time.Time) error {
	if status != RefundApproved && status != RefundRejected {
		return ValidationErrorf("refund can only be approved or rejected, got %q", status)
	}
	if r.Status != RefundPending {
		return ErrInvalidStatus
	}
	r.Status = status
	r.ProcessedAt = &at
	return nil
}
