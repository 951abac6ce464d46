package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"shoeshop/internal/domain"
	"shoeshop/pkg/prometheus"
)

const orderColumns = `id, customer_email, shipping, payment_method, payment_status, delivery_status,
            delivery_person_id, total, created_at, updated_at`

// SaveOrder reserves stock for every item and stores the order in one transaction.
// Unit prices and the total are taken from the shoes at the time of the reservation.
func (s *Store) SaveOrder(ctx context.Context, order *domain.Order) error {
	startTime := time.Now()
	defer prometheus.ObserveQuery("insert", "orders", startTime)
	s.log.Info("Database operation started",
		"operation", "SaveOrder",
		"order_id", order.ID,
		"items_count", len(order.Items),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.log.Error("Failed to begin transaction",
			"order_id", order.ID,
			"error", err.Error(),
			"operation", "begin_transaction",
		)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ids := domain.ShoeIDs(order.Items)
	shoes, err := lockShoes(ctx, tx, ids)
	if err != nil {
		return err
	}
	if err := domain.ReserveStock(order.Items, shoes); err != nil {
		s.log.Warn("Stock reservation rejected",
			"order_id", order.ID,
			"reason", err.Error(),
		)
		return err
	}
	order.CalculateTotal()

	if err := writeVariants(ctx, tx, shoes, ids, order.UpdatedAt); err != nil {
		s.log.Error("Failed to write stock", "order_id", order.ID, "error", err.Error())
		return err
	}

	shipping, err := json.Marshal(order.Shipping)
	if err != nil {
		return fmt.Errorf("failed to encode shipping: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
        INSERT INTO orders (`+orderColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		order.ID, order.CustomerEmail, shipping, order.PaymentMethod, order.PaymentStatus, order.DeliveryStatus,
		order.DeliveryPersonID, order.Total, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		s.log.Error("Failed to insert order",
			"order_id", order.ID,
			"error", err.Error(),
			"table", "orders",
		)
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
            INSERT INTO order_items (order_id, line, shoe_id, color, size, quantity, unit_price)
            VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			order.ID, i+1, item.ShoeID, item.Color, item.Size, item.Quantity, item.UnitPrice,
		)
		if err != nil {
			s.log.Error("Failed to insert order item",
				"order_id", order.ID,
				"line", i+1,
				"error", err.Error(),
				"table", "order_items",
			)
			return fmt.Errorf("failed to insert order item %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.log.Error("Failed to commit transaction",
			"order_id", order.ID,
			"error", err.Error(),
			"operation", "commit",
		)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.log.Info("Order saved successfully",
		"order_id", order.ID,
		"total", order.Total,
		"total_processing_time_ms", time.Since(startTime).Milliseconds(),
	)
	return nil
}

func (s *Store) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	defer prometheus.ObserveQuery("get", "orders", time.Now())

	row := s.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.log.Warn("Order not found", "order_id", id)
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := s.getOrderItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	order.Items = items
	return order, nil
}

func (s *Store) ListOrders(ctx context.Context, filter domain.OrderFilter, page domain.Page) ([]domain.Order, int, error) {
	defer prometheus.ObserveQuery("list", "orders", time.Now())

	var conds []string
	var args []any
	if filter.DeliveryStatus != "" {
		args = append(args, filter.DeliveryStatus)
		conds = append(conds, fmt.Sprintf("delivery_status = $%d", len(args)))
	}
	if filter.CustomerEmail != "" {
		args = append(args, filter.CustomerEmail)
		conds = append(conds, fmt.Sprintf("customer_email = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	args = append(args, page.Limit, page.Offset)
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT %s FROM orders%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]domain.Order, 0, page.Limit)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating orders: %w", err)
	}

	for i := range orders {
		items, err := s.getOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to get order items: %w", err)
		}
		orders[i].Items = items
	}
	return orders, total, nil
}

func (s *Store) getOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT shoe_id, color, size, quantity, unit_price
        FROM order_items
        WHERE order_id = $1
        ORDER BY line`, orderID)
	if err != nil {
		s.log.Error("Failed to query order items",
			"order_id", orderID,
			"error", err.Error(),
		)
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ShoeID, &item.Color, &item.Size, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}
	return items, nil
}

// UpdateDeliveryStatus overwrites the delivery status. Cancelling returns the items to stock;
// a cancelled order cannot be revived.
func (s *Store) UpdateDeliveryStatus(ctx context.Context, id string, status domain.DeliveryStatus) (*domain.Order, error) {
	defer prometheus.ObserveQuery("update_delivery_status", "orders", time.Now())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current domain.DeliveryStatus
	err = tx.QueryRowContext(ctx, `SELECT delivery_status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}

	if current == domain.DeliveryCancelled && status != domain.DeliveryCancelled {
		return nil, fmt.Errorf("order %s is cancelled: %w", id, domain.ErrInvalidStatus)
	}

	now := time.Now().UTC()
	if status == domain.DeliveryCancelled && current != domain.DeliveryCancelled {
		items, err := txOrderItems(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		ids := domain.ShoeIDs(items)
		shoes, err := lockShoes(ctx, tx, ids)
		if err != nil {
			return nil, err
		}
		domain.ReleaseStock(items, shoes)
		if err := writeVariants(ctx, tx, shoes, ids, now); err != nil {
			return nil, err
		}
		s.log.Info("Order cancelled, stock released", "order_id", id, "items_count", len(items))
	}

	if _, err := tx.ExecContext(ctx, `UPDATE orders SET delivery_status = $2, updated_at = $3 WHERE id = $1`,
		id, status, now); err != nil {
		return nil, fmt.Errorf("failed to update delivery status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return s.GetOrderByID(ctx, id)
}

func (s *Store) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Order, error) {
	defer prometheus.ObserveQuery("update_payment_status", "orders", time.Now())

	res, err := s.db.ExecContext(ctx, `UPDATE orders SET payment_status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	if err := expectOneRow(res, "order", id); err != nil {
		return nil, err
	}
	return s.GetOrderByID(ctx, id)
}

// AssignDeliveryPerson links the order to a courier and moves a pending order to processing.
// Cancelled orders cannot be assigned.
func (s *Store) AssignDeliveryPerson(ctx context.Context, orderID, personID string) (*domain.Order, error) {
	defer prometheus.ObserveQuery("assign", "orders", time.Now())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current domain.DeliveryStatus
	err = tx.QueryRowContext(ctx, `SELECT delivery_status FROM orders WHERE id = $1 FOR UPDATE`, orderID).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order %s: %w", orderID, domain.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}
	if current == domain.DeliveryCancelled {
		return nil, fmt.Errorf("order %s is cancelled: %w", orderID, domain.ErrInvalidStatus)
	}

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM delivery_persons WHERE id = $1)`,
		personID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check delivery person existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("delivery person %s: %w", personID, domain.ErrRecordNotFound)
	}

	status := current
	if status == domain.DeliveryPending {
		status = domain.DeliveryProcessing
	}
	if _, err := tx.ExecContext(ctx, `
        UPDATE orders
        SET delivery_person_id = $2, delivery_status = $3, updated_at = $4
        WHERE id = $1`,
		orderID, personID, status, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to assign delivery person: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return s.GetOrderByID(ctx, orderID)
}

func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `
        SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)
    `, id).Scan(&exists)

	if err != nil {
		return fmt.Errorf("failed to check order existence: %w", err)
	}

	if !exists {
		return fmt.Errorf("order %s: %w", id, domain.ErrRecordNotFound)
	}

	_, err = tx.ExecContext(ctx, `
        DELETE FROM orders WHERE id = $1
    `, id)

	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func txOrderItems(ctx context.Context, tx *sql.Tx, orderID string) ([]domain.OrderItem, error) {
	rows, err := tx.QueryContext(ctx, `
        SELECT shoe_id, color, size, quantity, unit_price
        FROM order_items
        WHERE order_id = $1
        ORDER BY line`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ShoeID, &item.Color, &item.Size, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(row scanner) (*domain.Order, error) {
	var order domain.Order
	var shipping []byte
	var personID sql.NullString
	err := row.Scan(&order.ID, &order.CustomerEmail, &shipping, &order.PaymentMethod, &order.PaymentStatus,
		&order.DeliveryStatus, &personID, &order.Total, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(shipping, &order.Shipping); err != nil {
		return nil, fmt.Errorf("failed to decode shipping of order %s: %w", order.ID, err)
	}
	if personID.Valid {
		order.DeliveryPersonID = &personID.String
	}
	return &order, nil
}
