package domain

import (
	"time"

	"github.com/google/uuid"
)

// Fixtures used by the mock producer and by tests across packages.

func CreateTestShoe() Shoe {
	now := time.Now().UTC()
	return Shoe{
		ID:          uuid.NewString(),
		Brand:       "Nike",
		Model:       "Air Zoom Pegasus 40",
		Description: "Daily running trainer",
		Category:    "running",
		Price:       129.99,
		Variants: []Variant{
			{
				Color:    "black",
				ImageURL: "https://cdn.shoeshop.local/pegasus-black.png",
				Sizes:    []SizeStock{{Size: 42, Stock: 10}, {Size: 43, Stock: 2}},
			},
			{
				Color:    "white",
				ImageURL: "https://cdn.shoeshop.local/pegasus-white.png",
				Sizes:    []SizeStock{{Size: 41, Stock: 5}},
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func CreateTestOrder(shoe Shoe) Order {
	now := time.Now().UTC()
	order := Order{
		ID:            uuid.NewString(),
		CustomerEmail: "kasun@example.com",
		Items: []OrderItem{
			{ShoeID: shoe.ID, Color: "black", Size: 42, Quantity: 2, UnitPrice: shoe.Price},
		},
		Shipping: Shipping{
			FullName:   "Kasun Silva",
			Address:    "12 Galle Road",
			City:       "Colombo",
			PostalCode: "00300",
			Phone:      "0771234567",
			Email:      "kasun@example.com",
		},
		PaymentMethod:  PaymentCard,
		PaymentStatus:  PaymentPending,
		DeliveryStatus: DeliveryPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	order.CalculateTotal()
	return order
}

func CreateTestRestock(shoeID string) RestockRequest {
	now := time.Now().UTC()
	return RestockRequest{
		ID:            uuid.NewString(),
		ShoeID:        shoeID,
		Color:         "black",
		Size:          43,
		Quantity:      24,
		SupplierEmail: "orders@supplier.example.com",
		Note:          "before the weekend sale",
		Status:        RestockPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func CreateTestDeliveryPerson() DeliveryPerson {
	return DeliveryPerson{
		ID:            uuid.NewString(),
		Name:          "Nimal Perera",
		NIC:           "981234567V",
		Phone:         "0711234567",
		VehicleNumber: "CAB-1234",
		CreatedAt:     time.Now().UTC(),
	}
}

func CreateTestSalary() Salary {
	s := Salary{
		ID:            uuid.NewString(),
		EmployeeID:    "EMP001",
		EmployeeName:  "Dilani Fernando",
		Position:      "Store Manager",
		Month:         "2024-05",
		Basic:         85000,
		Allowances:    10000,
		OvertimeHours: 6,
		OvertimeRate:  750,
		Deductions:    6800,
		Status:        SalaryPending,
		CreatedAt:     time.Now().UTC(),
	}
	s.ComputeNet()
	return s
}
