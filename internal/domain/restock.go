package domain

import (
	"time"

	"shoeshop/pkg/validation"
)

type RestockStatus string

const (
	RestockPending   RestockStatus = "pending"
	RestockNotified  RestockStatus = "notified"
	RestockFulfilled RestockStatus = "fulfilled"
)

func (s RestockStatus) Valid() bool {
	switch s {
	case RestockPending, RestockNotified, RestockFulfilled:
		return true
	}
	return false
}

type RestockRequest struct {
	ID            string        `json:"id"`
	ShoeID        string        `json:"shoe_id" validate:"required,uuid"`
	Color         string        `json:"color" validate:"required,max=50"`
	Size          float64       `json:"size" validate:"gt=0"`
	Quantity      int           `json:"quantity" validate:"min=1,max=10000"`
	SupplierEmail string        `json:"supplier_email" validate:"required,email"`
	Note          string        `json:"note" validate:"max=500"`
	Status        RestockStatus `json:"status" validate:"required,oneof=pending notified fulfilled"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (r *RestockRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return validationError(err)
	}
	return nil
}

// RestockEvent is the message published for every new restock request.
type RestockEvent struct {
	RestockID     string  `json:"restock_id" validate:"required,uuid"`
	ShoeID        string  `json:"shoe_id" validate:"required,uuid"`
	Brand         string  `json:"brand"`
	Model         string  `json:"model"`
	Color         string  `json:"color" validate:"required"`
	Size          float64 `json:"size" validate:"gt=0"`
	Quantity      int     `json:"quantity" validate:"min=1"`
	SupplierEmail string  `json:"supplier_email" validate:"required,email"`
	Note          string  `json:"note,omitempty"`
}

func (e *RestockEvent) Validate() error {
	if err := validation.Struct(e); err != nil {
		return validationError(err)
	}
	return nil
}

func NewRestockEvent(r *RestockRequest, shoe *Shoe) RestockEvent {
	ev := RestockEvent{
		RestockID:     r.ID,
		ShoeID:        r.ShoeID,
		Color:         r.Color,
		Size:          r.Size,
		Quantity:      r.Quantity,
		SupplierEmail: r.SupplierEmail,
		Note:          r.Note,
	}
	if shoe != nil {
		ev.Brand = shoe.Brand
		ev.Model = shoe.Model
	}
	return ev
}
