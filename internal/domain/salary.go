package domain

import (
	"math"
	"time"

	"shoeshop/pkg/validation"
)

type SalaryStatus string

const (
	SalaryPending SalaryStatus = "pending"
	SalaryPaid    SalaryStatus = "paid"
)

type Salary struct {
	ID            string       `json:"id"`
	EmployeeID    string       `json:"employee_id" validate:"required,alphanum,max=20"`
	EmployeeName  string       `json:"employee_name" validate:"required,person_name"`
	Position      string       `json:"position" validate:"required,max=50"`
	Month         string       `json:"month" validate:"required,month"`
	Basic         float64      `json:"basic" validate:"gte=0"`
	Allowances    float64      `json:"allowances" validate:"gte=0"`
	OvertimeHours float64      `json:"overtime_hours" validate:"gte=0,lte=200"`
	OvertimeRate  float64      `json:"overtime_rate" validate:"gte=0"`
	Deductions    float64      `json:"deductions" validate:"gte=0"`
	Net           float64      `json:"net"`
	Status        SalaryStatus `json:"status" validate:"required,oneof=pending paid"`
	CreatedAt     time.Time    `json:"created_at"`
}

func (s *Salary) Overtime() float64 {
	return math.Round(s.OvertimeHours*s.OvertimeRate*100) / 100
}

// ComputeNet derives the net pay from the components.
func (s *Salary) ComputeNet() float64 {
	net := s.Basic + s.Allowances + s.Overtime() - s.Deductions
	s.Net = math.Round(net*100) / 100
	return s.Net
}

func (s *Salary) Validate() error {
	if err := validation.Struct(s); err != nil {
		return validationError(err)
	}
	if s.ComputeNet() < 0 {
		return ValidationErrorf("deductions exceed gross pay")
	}
	return nil
}
