package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type courier struct {
	Name    string `validate:"required,person_name"`
	NIC     string `validate:"required,nic"`
	Phone   string `validate:"required,phone"`
	Vehicle string `validate:"required,vehicle"`
}

type payslip struct {
	Month      string `validate:"required,month"`
	PostalCode string `validate:"required,postal_code"`
}

func TestStruct_CustomRules(t *testing.T) {
	valid := courier{Name: "Nimal Perera", NIC: "981234567V", Phone: "0771234567", Vehicle: "CAB-1234"}
	assert.NoError(t, Struct(valid))

	tests := []struct {
		name   string
		mutate func(c *courier)
	}{
		{"name with digits", func(c *courier) { c.Name = "N1mal" }},
		{"name too short", func(c *courier) { c.Name = "N" }},
		{"old nic without letter", func(c *courier) { c.NIC = "981234567" }},
		{"nic with 11 digits", func(c *courier) { c.NIC = "19981234567" }},
		{"phone without prefix", func(c *courier) { c.Phone = "771234567" }},
		{"vehicle lowercase", func(c *courier) { c.Vehicle = "cab-1234" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, Struct(c))
		})
	}

	t.Run("new nic format", func(t *testing.T) {
		c := valid
		c.NIC = "199812345678"
		assert.NoError(t, Struct(c))
	})
}

func TestStruct_Month(t *testing.T) {
	assert.NoError(t, Struct(payslip{Month: "2024-05", PostalCode: "10115"}))
	assert.Error(t, Struct(payslip{Month: "2024-13", PostalCode: "10115"}))
	assert.Error(t, Struct(payslip{Month: "May 2024", PostalCode: "10115"}))
	assert.Error(t, Struct(payslip{Month: "2024-05", PostalCode: "AB1"}))
}
