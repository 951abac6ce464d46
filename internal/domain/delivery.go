package domain

import (
	"math"
	"time"

	"shoeshop/pkg/validation"
)

// DeliveryPerson is a courier with running trip counters.
type DeliveryPerson struct {
	ID            string    `json:"id"`
	Name          string    `json:"name" validate:"required,person_name"`
	NIC           string    `json:"nic" validate:"required,nic"`
	Phone         string    `json:"phone" validate:"required,phone"`
	VehicleNumber string    `json:"vehicle_number" validate:"required,vehicle"`
	Trips         int       `json:"trips" validate:"gte=0"`
	MileageKm     float64   `json:"mileage_km" validate:"gte=0"`
	Cost          float64   `json:"cost" validate:"gte=0"`
	CreatedAt     time.Time `json:"created_at"`
}

func (d *DeliveryPerson) Validate() error {
	if err := validation.Struct(d); err != nil {
		return validationError(err)
	}
	return nil
}

type Trip struct {
	DistanceKm float64 `json:"distance_km" validate:"gt=0,lte=2000"`
	OrderID    string  `json:"order_id" validate:"omitempty,uuid"`
}

func (t *Trip) Validate() error {
	if err := validation.Struct(t); err != nil {
		return validationError(err)
	}
	return nil
}

// RecordTrip adds one trip to the counters.
func (d *DeliveryPerson) RecordTrip(t Trip, costPerKm float64) {
	d.Trips++
	d.MileageKm = math.Round((d.MileageKm+t.DistanceKm)*100) / 100
	d.Cost = math.Round((d.Cost+t.DistanceKm*costPerKm)*100) / 100
}
