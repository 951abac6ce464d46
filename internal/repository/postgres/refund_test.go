package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoeshop/internal/domain"
)

func TestStore_GetRefundByID(t *testing.T) {
	store, mock := newMockStore(t)
	processed := time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM refunds WHERE id = \$1`).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "order_id", "customer_email", "reason", "amount", "status", "created_at", "processed_at",
		}).AddRow("r1", "o1", "kasun@example.com", "wrong size", 129.99, "approved", processed, processed))

	refund, err := store.GetRefundByID(context.Background(), "r1")

	require.NoError(t, err)
	assert.Equal(t, domain.RefundApproved, refund.Status)
	require.NotNil(t, refund.ProcessedAt)
	assert.True(t, processed.Equal(*refund.ProcessedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UpdateRefundStatus(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()
	refund := &domain.Refund{ID: "r1", Status: domain.RefundApproved, ProcessedAt: &now}

	t.Run("pending refund is processed", func(t *testing.T) {
		mock.ExpectExec(`UPDATE refunds SET status = \$2, processed_at = \$3 WHERE id = \$1 AND status = 'pending'`).
			WithArgs("r1", "approved", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, store.UpdateRefundStatus(context.Background(), refund))
	})

	t.Run("refund already processed", func(t *testing.T) {
		mock.ExpectExec(`UPDATE refunds`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.UpdateRefundStatus(context.Background(), refund)

		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_SaveSalary(t *testing.T) {
	store, mock := newMockStore(t)
	salary := domain.CreateTestSalary()

	t.Run("successful save", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO salaries`).
			WithArgs(salary.ID, "EMP001", "Dilani Fernando", "Store Manager", "2024-05", 85000.0, 10000.0,
				6.0, 750.0, 6800.0, 92700.0, "pending", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, store.SaveSalary(context.Background(), &salary))
	})

	t.Run("same employee twice in a month", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO salaries`).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "salaries_employee_id_month_key"})

		err := store.SaveSalary(context.Background(), &salary)

		assert.ErrorIs(t, err, domain.ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_ListOrderTotals(t *testing.T) {
	store, mock := newMockStore(t)
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	mock.ExpectQuery(`SELECT id, customer_email, delivery_status, total, created_at FROM orders WHERE created_at >= \$1 AND created_at < \$2`).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_email", "delivery_status", "total", "created_at"}).
			AddRow("o1", "a@example.com", "delivered", 100.5, from.Add(time.Hour)).
			AddRow("o2", "b@example.com", "cancelled", 20.0, from.Add(2*time.Hour)))

	totals, err := store.ListOrderTotals(context.Background(), from, to)

	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, domain.DeliveryCancelled, totals[1].DeliveryStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}
