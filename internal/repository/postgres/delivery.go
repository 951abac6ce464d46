package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shoeshop/internal/domain"
	"shoeshop/pkg/prometheus"
)

const deliveryPersonColumns = `id, name, nic, phone, vehicle_number, trips, mileage_km, cost, created_at`

func (s *Store) SaveDeliveryPerson(ctx context.Context, p *domain.DeliveryPerson) error {
	defer prometheus.ObserveQuery("insert", "delivery_persons", time.Now())

	_, err := s.db.ExecContext(ctx, `
        INSERT INTO delivery_persons (`+deliveryPersonColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Name, p.NIC, p.Phone, p.VehicleNumber, p.Trips, p.MileageKm, p.Cost, p.CreatedAt,
	)
	if err != nil {
		s.log.Error("Failed to insert delivery person", "delivery_person_id", p.ID, "error", err.Error())
		return wrapWriteErr("failed to insert delivery person", err)
	}
	return nil
}

func (s *Store) UpdateDeliveryPerson(ctx context.Context, p *domain.DeliveryPerson) error {
	defer prometheus.ObserveQuery("update", "delivery_persons", time.Now())

	res, err := s.db.ExecContext(ctx, `
        UPDATE delivery_persons
        SET name = $2, nic = $3, phone = $4, vehicle_number = $5, trips = $6, mileage_km = $7, cost = $8
        WHERE id = $1`,
		p.ID, p.Name, p.NIC, p.Phone, p.VehicleNumber, p.Trips, p.MileageKm, p.Cost,
	)
	if err != nil {
		return wrapWriteErr("failed to update delivery person", err)
	}
	return expectOneRow(res, "delivery person", p.ID)
}

func (s *Store) GetDeliveryPersonByID(ctx context.Context, id string) (*domain.DeliveryPerson, error) {
	defer prometheus.ObserveQuery("get", "delivery_persons", time.Now())

	row := s.db.QueryRowContext(ctx, `SELECT `+deliveryPersonColumns+` FROM delivery_persons WHERE id = $1`, id)
	p, err := scanDeliveryPerson(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get delivery person: %w", err)
	}
	return p, nil
}

func (s *Store) ListDeliveryPersons(ctx context.Context, page domain.Page) ([]domain.DeliveryPerson, int, error) {
	defer prometheus.ObserveQuery("list", "delivery_persons", time.Now())

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM delivery_persons`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count delivery persons: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT `+deliveryPersonColumns+` FROM delivery_persons
        ORDER BY name LIMIT $1 OFFSET $2`, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list delivery persons: %w", err)
	}
	defer rows.Close()

	persons := make([]domain.DeliveryPerson, 0, page.Limit)
	for rows.Next() {
		p, err := scanDeliveryPerson(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan delivery person: %w", err)
		}
		persons = append(persons, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating delivery persons: %w", err)
	}
	return persons, total, nil
}

// RecordTrip adds a finished trip to the courier's counters under a row lock.
func (s *Store) RecordTrip(ctx context.Context, id string, trip domain.Trip, costPerKm float64) (*domain.DeliveryPerson, error) {
	defer prometheus.ObserveQuery("record_trip", "delivery_persons", time.Now())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+deliveryPersonColumns+` FROM delivery_persons WHERE id = $1 FOR UPDATE`, id)
	p, err := scanDeliveryPerson(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to lock delivery person: %w", err)
	}

	p.RecordTrip(trip, costPerKm)

	if _, err := tx.ExecContext(ctx, `
        UPDATE delivery_persons SET trips = $2, mileage_km = $3, cost = $4 WHERE id = $1`,
		id, p.Trips, p.MileageKm, p.Cost); err != nil {
		return nil, fmt.Errorf("failed to record trip: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.log.Info("Trip recorded",
		"delivery_person_id", id,
		"distance_km", trip.DistanceKm,
		"trips", p.Trips,
	)
	return p, nil
}

func (s *Store) DeleteDeliveryPerson(ctx context.Context, id string) error {
	defer prometheus.ObserveQuery("delete", "delivery_persons", time.Now())

	res, err := s.db.ExecContext(ctx, `DELETE FROM delivery_persons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete delivery person: %w", err)
	}
	return expectOneRow(res, "delivery person", id)
}

func scanDeliveryPerson(row scanner) (*domain.DeliveryPerson, error) {
	var p domain.DeliveryPerson
	err := row.Scan(&p.ID, &p.Name, &p.NIC, &p.Phone, &p.VehicleNumber, &p.Trips, &p.MileageKm, &p.Cost, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
