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

const refundColumns = `id, order_id, customer_email, reason, amount, status, created_at, processed_at`

func (s *Store) SaveRefund(ctx context.Context, refund *domain.Refund) error {
	defer prometheus.ObserveQuery("insert", "refunds", time.Now())

	_, err := s.db.ExecContext(ctx, `
        INSERT INTO refunds (`+refundColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		refund.ID, refund.OrderID, refund.CustomerEmail, refund.Reason, refund.Amount, refund.Status,
		refund.CreatedAt, refund.ProcessedAt,
	)
	if err != nil {
		s.log.Error("Failed to insert refund",
			"refund_id", refund.ID,
			"order_id", refund.OrderID,
			"error", err.Error(),
		)
		return wrapWriteErr("failed to insert refund", err)
	}
	s.log.Info("Refund saved", "refund_id", refund.ID, "order_id", refund.OrderID, "amount", refund.Amount)
	return nil
}

func (s *Store) GetRefundByID(ctx context.Context, id string) (*domain.Refund, error) {
	defer prometheus.ObserveQuery("get", "refunds", time.Now())

	row := s.db.QueryRowContext(ctx, `SELECT `+refundColumns+` FROM refunds WHERE id = $1`, id)
	refund, err := scanRefund(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get refund: %w", err)
	}
	return refund, nil
}

func (s *Store) ListRefunds(ctx context.Context, status domain.RefundStatus, page domain.Page) ([]domain.Refund, int, error) {
	defer prometheus.ObserveQuery("list", "refunds", time.Now())

	where := ""
	var args []any
	if status != "" {
		where = " WHERE status = $1"
		args = append(args, status)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM refunds`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count refunds: %w", err)
	}

	args = append(args, page.Limit, page.Offset)
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT %s FROM refunds%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		refundColumns, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list refunds: %w", err)
	}
	defer rows.Close()

	refunds := make([]domain.Refund, 0, page.Limit)
	for rows.Next() {
		refund, err := scanRefund(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan refund: %w", err)
		}
		refunds = append(refunds, *refund)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating refunds: %w", err)
	}
	return refunds, total, nil
}

// UpdateRefundStatus persists a processed refund. Only a refund still pending in the table is touched.
func (s *Store) UpdateRefundStatus(ctx context.Context, refund *domain.Refund) error {
	defer prometheus.ObserveQuery("update_status", "refunds", time.Now())

	res, err := s.db.ExecContext(ctx, `
        UPDATE refunds SET status = $2, processed_at = $3
        WHERE id = $1 AND status = 'pending'`,
		refund.ID, refund.Status, refund.ProcessedAt)
	if err != nil {
		return fmt.Errorf("failed to update refund status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("refund %s is no longer pending: %w", refund.ID, domain.ErrInvalidStatus)
	}
	s.log.Info("Refund processed", "refund_id", refund.ID, "status", refund.Status)
	return nil
}

func (s *Store) DeleteRefund(ctx context.Context, id string) error {
	defer prometheus.ObserveQuery("delete", "refunds", time.Now())

	res, err := s.db.ExecContext(ctx, `DELETE FROM refunds WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete refund: %w", err)
	}
	return expectOneRow(res, "refund", id)
}

func scanRefund(row scanner) (*domain.Refund, error) {
	var r domain.Refund
	var processedAt sql.NullTime
	if err := row.Scan(&r.ID, &r.OrderID, &r.CustomerEmail, &r.Reason, &r.Amount, &r.Status,
		&r.CreatedAt, &processedAt); err != nil {
		return nil, err
	}
	if processedAt.Valid {
		r.ProcessedAt = &processedAt.Time
	}
	return &r, nil
}
