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

const restockColumns = `id, shoe_id, color, size, quantity, supplier_email, note, status, created_at, updated_at`

func (s *Store) SaveRestock(ctx context.Context, r *domain.RestockRequest) error {
	defer prometheus.ObserveQuery("insert", "restock_requests", time.Now())

	_, err := s.db.ExecContext(ctx, `
        INSERT INTO restock_requests (`+restockColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		r.ID, r.ShoeID, r.Color, r.Size, r.Quantity, r.SupplierEmail, r.Note, r.Status, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		s.log.Error("Failed to insert restock request",
			"restock_id", r.ID,
			"shoe_id", r.ShoeID,
			"error", err.Error(),
		)
		return wrapWriteErr("failed to insert restock request", err)
	}
	s.log.Info("Restock request saved", "restock_id", r.ID, "shoe_id", r.ShoeID, "quantity", r.Quantity)
	return nil
}

func (s *Store) GetRestockByID(ctx context.Context, id string) (*domain.RestockRequest, error) {
	defer prometheus.ObserveQuery("get", "restock_requests", time.Now())

	row := s.db.QueryRowContext(ctx, `SELECT `+restockColumns+` FROM restock_requests WHERE id = $1`, id)
	r, err := scanRestock(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get restock request: %w", err)
	}
	return r, nil
}

func (s *Store) ListRestocks(ctx context.Context, status domain.RestockStatus, page domain.Page) ([]domain.RestockRequest, int, error) {
	defer prometheus.ObserveQuery("list", "restock_requests", time.Now())

	where := ""
	var args []any
	if status != "" {
		where = " WHERE status = $1"
		args = append(args, status)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM restock_requests`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count restock requests: %w", err)
	}

	args = append(args, page.Limit, page.Offset)
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT %s FROM restock_requests%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		restockColumns, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list restock requests: %w", err)
	}
	defer rows.Close()

	list := make([]domain.RestockRequest, 0, page.Limit)
	for rows.Next() {
		r, err := scanRestock(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan restock request: %w", err)
		}
		list = append(list, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating restock requests: %w", err)
	}
	return list, total, nil
}

// MarkRestockNotified flips a pending request to notified. Requests already past pending are left alone
// and reported with false.
func (s *Store) MarkRestockNotified(ctx context.Context, id string) (bool, error) {
	defer prometheus.ObserveQuery("mark_notified", "restock_requests", time.Now())

	res, err := s.db.ExecContext(ctx, `
        UPDATE restock_requests SET status = 'notified', updated_at = $2
        WHERE id = $1 AND status = 'pending'`, id, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to mark restock request notified: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n == 1, nil
}

// FulfillRestock adds the requested pairs to the shoe's stock and closes the request in one transaction.
func (s *Store) FulfillRestock(ctx context.Context, id string) (*domain.RestockRequest, error) {
	startTime := time.Now()
	defer prometheus.ObserveQuery("fulfill", "restock_requests", startTime)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+restockColumns+` FROM restock_requests WHERE id = $1 FOR UPDATE`, id)
	r, err := scanRestock(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to lock restock request: %w", err)
	}
	if r.Status == domain.RestockFulfilled {
		return nil, fmt.Errorf("restock request %s already fulfilled: %w", id, domain.ErrInvalidStatus)
	}

	shoes, err := lockShoes(ctx, tx, []string{r.ShoeID})
	if err != nil {
		return nil, err
	}
	shoe, ok := shoes[r.ShoeID]
	if !ok {
		return nil, fmt.Errorf("shoe %s: %w", r.ShoeID, domain.ErrRecordNotFound)
	}
	shoe.AddStock(r.Color, r.Size, r.Quantity)

	now := time.Now().UTC()
	if err := writeVariants(ctx, tx, shoes, []string{r.ShoeID}, now); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `
        UPDATE restock_requests SET status = 'fulfilled', updated_at = $2 WHERE id = $1`, id, now); err != nil {
		return nil, fmt.Errorf("failed to update restock request: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.Status = domain.RestockFulfilled
	r.UpdatedAt = now
	s.log.Info("Restock fulfilled",
		"restock_id", id,
		"shoe_id", r.ShoeID,
		"quantity", r.Quantity,
		"total_processing_time_ms", time.Since(startTime).Milliseconds(),
	)
	return r, nil
}

func (s *Store) DeleteRestock(ctx context.Context, id string) error {
	defer prometheus.ObserveQuery("delete", "restock_requests", time.Now())

	res, err := s.db.ExecContext(ctx, `DELETE FROM restock_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete restock request: %w", err)
	}
	return expectOneRow(res, "restock request", id)
}

func scanRestock(row scanner) (*domain.RestockRequest, error) {
	var r domain.RestockRequest
	err := row.Scan(&r.ID, &r.ShoeID, &r.Color, &r.Size, &r.Quantity, &r.SupplierEmail, &r.Note, &r.Status,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
