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

const salaryColumns = `id, employee_id, employee_name, position, month, basic, allowances, overtime_hours,
            overtime_rate, deductions, net, status, created_at`

func (s *Store) SaveSalary(ctx context.Context, salary *domain.Salary) error {
	defer prometheus.ObserveQuery("insert", "salaries", time.Now())

	_, err := s.db.ExecContext(ctx, `
        INSERT INTO salaries (`+salaryColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		salary.ID, salary.EmployeeID, salary.EmployeeName, salary.Position, salary.Month, salary.Basic,
		salary.Allowances, salary.OvertimeHours, salary.OvertimeRate, salary.Deductions, salary.Net,
		salary.Status, salary.CreatedAt,
	)
	if err != nil {
		s.log.Error("Failed to insert salary",
			"salary_id", salary.ID,
			"employee_id", salary.EmployeeID,
			"month", salary.Month,
			"error", err.Error(),
		)
		return wrapWriteErr("failed to insert salary", err)
	}
	return nil
}

func (s *Store) UpdateSalary(ctx context.Context, salary *domain.Salary) error {
	defer prometheus.ObserveQuery("update", "salaries", time.Now())

	res, err := s.db.ExecContext(ctx, `
        UPDATE salaries
        SET employee_id = $2, employee_name = $3, position = $4, month = $5, basic = $6, allowances = $7,
            overtime_hours = $8, overtime_rate = $9, deductions = $10, net = $11, status = $12
        WHERE id = $1`,
		salary.ID, salary.EmployeeID, salary.EmployeeName, salary.Position, salary.Month, salary.Basic,
		salary.Allowances, salary.OvertimeHours, salary.OvertimeRate, salary.Deductions, salary.Net, salary.Status,
	)
	if err != nil {
		return wrapWriteErr("failed to update salary", err)
	}
	return expectOneRow(res, "salary", salary.ID)
}

func (s *Store) GetSalaryByID(ctx context.Context, id string) (*domain.Salary, error) {
	defer prometheus.ObserveQuery("get", "salaries", time.Now())

	row := s.db.QueryRowContext(ctx, `SELECT `+salaryColumns+` FROM salaries WHERE id = $1`, id)
	salary, err := scanSalary(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get salary: %w", err)
	}
	return salary, nil
}

func (s *Store) ListSalaries(ctx context.Context, month string, page domain.Page) ([]domain.Salary, int, error) {
	defer prometheus.ObserveQuery("list", "salaries", time.Now())

	where := ""
	var args []any
	if month != "" {
		where = " WHERE month = $1"
		args = append(args, month)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM salaries`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count salaries: %w", err)
	}

	args = append(args, page.Limit, page.Offset)
	salaries, err := s.querySalaries(ctx, fmt.Sprintf(
		`SELECT %s FROM salaries%s ORDER BY month DESC, employee_id LIMIT $%d OFFSET $%d`,
		salaryColumns, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	return salaries, total, nil
}

// ListSalariesByMonth returns the whole payroll of a month, for the report.
func (s *Store) ListSalariesByMonth(ctx context.Context, month string) ([]domain.Salary, error) {
	defer prometheus.ObserveQuery("list_month", "salaries", time.Now())

	return s.querySalaries(ctx, `SELECT `+salaryColumns+` FROM salaries WHERE month = $1 ORDER BY employee_id`, month)
}

func (s *Store) DeleteSalary(ctx context.Context, id string) error {
	defer prometheus.ObserveQuery("delete", "salaries", time.Now())

	res, err := s.db.ExecContext(ctx, `DELETE FROM salaries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete salary: %w", err)
	}
	return expectOneRow(res, "salary", id)
}

func (s *Store) querySalaries(ctx context.Context, query string, args ...any) ([]domain.Salary, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}
	defer rows.Close()

	salaries := []domain.Salary{}
	for rows.Next() {
		salary, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary: %w", err)
		}
		salaries = append(salaries, *salary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating salaries: %w", err)
	}
	return salaries, nil
}

func scanSalary(row scanner) (*domain.Salary, error) {
	var s domain.Salary
	err := row.Scan(&s.ID, &s.EmployeeID, &s.EmployeeName, &s.Position, &s.Month, &s.Basic, &s.Allowances,
		&s.OvertimeHours, &s.OvertimeRate, &s.Deductions, &s.Net, &s.Status, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
