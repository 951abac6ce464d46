package postgres

import (
	"context"
	"fmt"
	"time"

	"shoeshop/internal/domain"
	"shoeshop/pkg/prometheus"
)

// ListOrderTotals returns every order created in [from, to), oldest first.
// Cancelled orders are included; callers decide what to count.
func (s *Store) ListOrderTotals(ctx context.Context, from, to time.Time) ([]domain.OrderTotal, error) {
	defer prometheus.ObserveQuery("order_totals", "orders", time.Now())

	rows, err := s.db.QueryContext(ctx, `
        SELECT id, customer_email, delivery_status, total, created_at
        FROM orders
        WHERE created_at >= $1 AND created_at < $2
        ORDER BY created_at`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query order totals: %w", err)
	}
	defer rows.Close()

	totals := []domain.OrderTotal{}
	for rows.Next() {
		var t domain.OrderTotal
		if err := rows.Scan(&t.ID, &t.CustomerEmail, &t.DeliveryStatus, &t.Total, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order totals: %w", err)
	}
	return totals, nil
}

// TopShoes ranks shoes by units sold over non-cancelled orders.
func (s *Store) TopShoes(ctx context.Context, limit int) ([]domain.TopShoe, error) {
	defer prometheus.ObserveQuery("top_shoes", "order_items", time.Now())

	rows, err := s.db.QueryContext(ctx, `
        SELECT oi.shoe_id, COALESCE(s.brand, ''), COALESCE(s.model, ''),
               SUM(oi.quantity) AS units, SUM(oi.quantity * oi.unit_price) AS revenue
        FROM order_items oi
        JOIN orders o ON o.id = oi.order_id
        LEFT JOIN shoes s ON s.id = oi.shoe_id
        WHERE o.delivery_status <> 'cancelled'
        GROUP BY oi.shoe_id, s.brand, s.model
        ORDER BY units DESC, revenue DESC
        LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top shoes: %w", err)
	}
	defer rows.Close()

	top := []domain.TopShoe{}
	for rows.Next() {
		var t domain.TopShoe
		if err := rows.Scan(&t.ShoeID, &t.Brand, &t.Model, &t.UnitsSold, &t.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan top shoe: %w", err)
		}
		top = append(top, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top shoes: %w", err)
	}
	return top, nil
}
