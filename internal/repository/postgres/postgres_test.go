package postgres

import (
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"shoeshop/internal/domain"
	"shoeshop/pkg/logger"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewStoreWithDB(db, logger.NewTestLogger()), mock
}

func shoeRows(t *testing.T, shoes ...domain.Shoe) *sqlmock.Rows {
	t.Helper()
	rows := sqlmock.NewRows([]string{
		"id", "brand", "model", "description", "category", "price", "variants", "created_at", "updated_at",
	})
	for _, s := range shoes {
		variants, err := json.Marshal(s.Variants)
		require.NoError(t, err)
		rows.AddRow(s.ID, s.Brand, s.Model, s.Description, s.Category, s.Price, variants, s.CreatedAt, s.UpdatedAt)
	}
	return rows
}

func orderRows(t *testing.T, orders ...domain.Order) *sqlmock.Rows {
	t.Helper()
	rows := sqlmock.NewRows([]string{
		"id", "customer_email", "shipping", "payment_method", "payment_status", "delivery_status",
		"delivery_person_id", "total", "created_at", "updated_at",
	})
	for _, o := range orders {
		shipping, err := json.Marshal(o.Shipping)
		require.NoError(t, err)
		var personID any
		if o.DeliveryPersonID != nil {
			personID = *o.DeliveryPersonID
		}
		rows.AddRow(o.ID, o.CustomerEmail, shipping, string(o.PaymentMethod), string(o.PaymentStatus),
			string(o.DeliveryStatus), personID, o.Total, o.CreatedAt, o.UpdatedAt)
	}
	return rows
}

func itemRows(items ...domain.OrderItem) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"shoe_id", "color", "size", "quantity", "unit_price"})
	for _, it := range items {
		rows.AddRow(it.ShoeID, it.Color, it.Size, it.Quantity, it.UnitPrice)
	}
	return rows
}
