package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoeshop/internal/domain"
)

var generatedAt = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func TestSalaryReport(t *testing.T) {
	t.Run("rows and totals", func(t *testing.T) {
		a := domain.CreateTestSalary()
		b := domain.CreateTestSalary()
		b.EmployeeID = "EMP002"
		b.EmployeeName = "Ruwan Jayasuriya"
		b.Position = "Cashier"
		b.Basic = 50000
		b.ComputeNet()

		doc := salaryDoc("2024-05", []domain.Salary{a, b}, generatedAt)
		doc.SetCompression(false)
		out, err := render(doc)

		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
		assert.Contains(t, string(out), "Salary report 2024-05")
		assert.Contains(t, string(out), "Ruwan Jayasuriya")
		assert.Contains(t, string(out), "92700.00")
		assert.Contains(t, string(out), "150400.00")
		assert.Contains(t, string(out), "Total \\(2\\)")
	})

	t.Run("empty month still renders", func(t *testing.T) {
		out, err := SalaryReport("2024-01", nil, generatedAt)

		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	})
}

func TestOrderReport(t *testing.T) {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	orders := []domain.OrderTotal{
		{ID: "0b7e5a52-1111-4a7e-a3b5-000000000001", CustomerEmail: "a@example.com", DeliveryStatus: domain.DeliveryDelivered, Total: 100.5, CreatedAt: from.Add(time.Hour)},
		{ID: "0b7e5a52-2222-4a7e-a3b5-000000000002", CustomerEmail: "b@example.com", DeliveryStatus: domain.DeliveryCancelled, Total: 80, CreatedAt: from.Add(48 * time.Hour)},
	}

	doc := orderDoc(from, to, orders, generatedAt)
	doc.SetCompression(false)
	out, err := render(doc)

	require.NoError(t, err)
	assert.Contains(t, string(out), "Order report 2024-05-01 - 2024-06-01")
	assert.Contains(t, string(out), "0b7e5a52")
	assert.Contains(t, string(out), "2 orders, 1 not cancelled")
	assert.Contains(t, string(out), "100.50")
	assert.NotContains(t, string(out), "180.50")
}
