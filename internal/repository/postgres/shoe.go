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

const shoeColumns = `id, brand, model, description, category, price, variants, created_at, updated_at`

func (s *Store) SaveShoe(ctx context.Context, shoe *domain.Shoe) error {
	defer prometheus.ObserveQuery("insert", "shoes", time.Now())

	variants, err := json.Marshal(shoe.Variants)
	if err != nil {
		return fmt.Errorf("failed to encode variants: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO shoes (`+shoeColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		shoe.ID, shoe.Brand, shoe.Model, shoe.Description, shoe.Category, shoe.Price,
		variants, shoe.CreatedAt, shoe.UpdatedAt,
	)
	if err != nil {
		s.log.Error("Failed to insert shoe",
			"shoe_id", shoe.ID,
			"error", err.Error(),
			"table", "shoes",
		)
		return fmt.Errorf("failed to insert shoe: %w", err)
	}

	s.log.Info("Shoe saved", "shoe_id", shoe.ID, "brand", shoe.Brand, "model", shoe.Model)
	return nil
}

func (s *Store) UpdateShoe(ctx context.Context, shoe *domain.Shoe) error {
	defer prometheus.ObserveQuery("update", "shoes", time.Now())

	variants, err := json.Marshal(shoe.Variants)
	if err != nil {
		return fmt.Errorf("failed to encode variants: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
        UPDATE shoes
        SET brand = $2, model = $3, description = $4, category = $5, price = $6, variants = $7, updated_at = $8
        WHERE id = $1`,
		shoe.ID, shoe.Brand, shoe.Model, shoe.Description, shoe.Category, shoe.Price, variants, shoe.UpdatedAt,
	)
	if err != nil {
		s.log.Error("Failed to update shoe", "shoe_id", shoe.ID, "error", err.Error())
		return fmt.Errorf("failed to update shoe: %w", err)
	}
	return expectOneRow(res, "shoe", shoe.ID)
}

func (s *Store) GetShoeByID(ctx context.Context, id string) (*domain.Shoe, error) {
	defer prometheus.ObserveQuery("get", "shoes", time.Now())

	row := s.db.QueryRowContext(ctx, `SELECT `+shoeColumns+` FROM shoes WHERE id = $1`, id)
	shoe, err := scanShoe(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.log.Debug("Shoe not found", "shoe_id", id)
			return nil, domain.ErrRecordNotFound
		}
		s.log.Error("Failed to get shoe", "shoe_id", id, "error", err.Error())
		return nil, fmt.Errorf("failed to get shoe: %w", err)
	}
	return shoe, nil
}

func (s *Store) ListShoes(ctx context.Context, filter domain.ShoeFilter, page domain.Page) ([]domain.Shoe, int, error) {
	defer prometheus.ObserveQuery("list", "shoes", time.Now())

	where, args := shoeWhere(filter)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shoes`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shoes: %w", err)
	}

	args = append(args, page.Limit, page.Offset)
	query := fmt.Sprintf(`SELECT %s FROM shoes%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		shoeColumns, where, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.log.Error("Failed to list shoes", "error", err.Error())
		return nil, 0, fmt.Errorf("failed to list shoes: %w", err)
	}
	defer rows.Close()

	shoes := make([]domain.Shoe, 0, page.Limit)
	for rows.Next() {
		shoe, err := scanShoe(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan shoe: %w", err)
		}
		shoes = append(shoes, *shoe)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating shoes: %w", err)
	}
	return shoes, total, nil
}

func (s *Store) DeleteShoe(ctx context.Context, id string) error {
	defer prometheus.ObserveQuery("delete", "shoes", time.Now())

	res, err := s.db.ExecContext(ctx, `DELETE FROM shoes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shoe: %w", err)
	}
	return expectOneRow(res, "shoe", id)
}

// ListLowStock flattens every variant size whose stock is at or below threshold.
func (s *Store) ListLowStock(ctx context.Context, threshold int) ([]domain.LowStockItem, error) {
	defer prometheus.ObserveQuery("low_stock", "shoes", time.Now())

	rows, err := s.db.QueryContext(ctx, `
        SELECT s.id, s.brand, s.model, v->>'color', (sz->>'size')::numeric, (sz->>'stock')::int AS stock
        FROM shoes s
        CROSS JOIN LATERAL jsonb_array_elements(s.variants) v
        CROSS JOIN LATERAL jsonb_array_elements(v->'sizes') sz
        WHERE (sz->>'stock')::int <= $1
        ORDER BY stock, s.brand, s.model`, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock: %w", err)
	}
	defer rows.Close()

	items := []domain.LowStockItem{}
	for rows.Next() {
		var it domain.LowStockItem
		if err := rows.Scan(&it.ShoeID, &it.Brand, &it.Model, &it.Color, &it.Size, &it.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan low stock row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating low stock: %w", err)
	}
	return items, nil
}

func shoeWhere(filter domain.ShoeFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.Brand != "" {
		args = append(args, filter.Brand)
		conds = append(conds, fmt.Sprintf("LOWER(brand) = LOWER($%d)", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanShoe(row scanner) (*domain.Shoe, error) {
	var shoe domain.Shoe
	var variants []byte
	err := row.Scan(&shoe.ID, &shoe.Brand, &shoe.Model, &shoe.Description, &shoe.Category, &shoe.Price,
		&variants, &shoe.CreatedAt, &shoe.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(variants, &shoe.Variants); err != nil {
		return nil, fmt.Errorf("failed to decode variants of shoe %s: %w", shoe.ID, err)
	}
	return &shoe, nil
}

// lockShoes loads the shoes FOR UPDATE inside tx, in the given order.
func lockShoes(ctx context.Context, tx *sql.Tx, ids []string) (map[string]*domain.Shoe, error) {
	shoes := make(map[string]*domain.Shoe, len(ids))
	for _, id := range ids {
		row := tx.QueryRowContext(ctx, `SELECT `+shoeColumns+` FROM shoes WHERE id = $1 FOR UPDATE`, id)
		shoe, err := scanShoe(row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, fmt.Errorf("failed to lock shoe %s: %w", id, err)
		}
		shoes[id] = shoe
	}
	return shoes, nil
}

func writeVariants(ctx context.Context, tx *sql.Tx, shoes map[string]*domain.Shoe, ids []string, now time.Time) error {
	for _, id := range ids {
		shoe, ok := shoes[id]
		if !ok {
			continue
		}
		variants, err := json.Marshal(shoe.Variants)
		if err != nil {
			return fmt.Errorf("failed to encode variants: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE shoes SET variants = $2, updated_at = $3 WHERE id = $1`,
			id, variants, now); err != nil {
			return fmt.Errorf("failed to update stock of shoe %s: %w", id, err)
		}
	}
	return nil
}

func expectOneRow(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrRecordNotFound)
	}
	return nil
}
