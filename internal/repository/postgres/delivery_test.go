package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoeshop/internal/domain"
)

func deliveryPersonRows(ps ...domain.DeliveryPerson) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "nic", "phone", "vehicle_number", "trips", "mileage_km", "cost", "created_at",
	})
	for _, p := range ps {
		rows.AddRow(p.ID, p.Name, p.NIC, p.Phone, p.VehicleNumber, p.Trips, p.MileageKm, p.Cost, p.CreatedAt)
	}
	return rows
}

func TestStore_RecordTrip(t *testing.T) {
	store, mock := newMockStore(t)

	t.Run("counters are updated", func(t *testing.T) {
		person := domain.CreateTestDeliveryPerson()
		person.Trips = 3
		person.MileageKm = 40
		person.Cost = 1800

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .* FROM delivery_persons WHERE id = \$1 FOR UPDATE`).
			WithArgs(person.ID).
			WillReturnRows(deliveryPersonRows(person))
		mock.ExpectExec(`UPDATE delivery_persons SET trips = \$2, mileage_km = \$3, cost = \$4`).
			WithArgs(person.ID, 4, 52.5, 2362.5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		got, err := store.RecordTrip(context.Background(), person.ID, domain.Trip{DistanceKm: 12.5}, 45)

		require.NoError(t, err)
		assert.Equal(t, 4, got.Trips)
		assert.Equal(t, 52.5, got.MileageKm)
		assert.Equal(t, 2362.5, got.Cost)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown delivery person", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .* FROM delivery_persons`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := store.RecordTrip(context.Background(), "missing", domain.Trip{DistanceKm: 1}, 45)

		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_SaveDeliveryPerson(t *testing.T) {
	store, mock := newMockStore(t)
	person := domain.CreateTestDeliveryPerson()

	t.Run("duplicate nic", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO delivery_persons`).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "delivery_persons_nic_key"})

		err := store.SaveDeliveryPerson(context.Background(), &person)

		assert.ErrorIs(t, err, domain.ErrDuplicate)
		assert.Contains(t, err.Error(), "delivery_persons_nic_key")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("successful save", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO delivery_persons`).
			WithArgs(person.ID, "Nimal Perera", "981234567V", "0711234567", "CAB-1234", 0, 0.0, 0.0, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, store.SaveDeliveryPerson(context.Background(), &person))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
