package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shoeshop/pkg/validation"
)

type Review struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ShoeID       string             `json:"shoe_id" bson:"shoe_id" validate:"required,uuid"`
	CustomerName string             `json:"customer_name" bson:"customer_name" validate:"required,person_name"`
	Rating       int                `json:"rating" bson:"rating" validate:"min=1,max=5"`
	Comment      string             `json:"comment" bson:"comment" validate:"max=1000"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}

func (r *Review) Validate() error {
	if err := validation.Struct(r); err != nil {
		return validationError(err)
	}
	return nil
}

type RatingSummary struct {
	ShoeID  string  `json:"shoe_id" bson:"_id"`
	Count   int     `json:"count" bson:"count"`
	Average float64 `json:"average" bson:"average"`
}
