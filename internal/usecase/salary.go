package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"shoeshop/internal/domain"
	"shoeshop/internal/report"
)

type SalaryUsecase struct {
	store salaryStore
	log   *slog.Logger
}

func NewSalaryUsecase(store salaryStore, log *slog.Logger) *SalaryUsecase {
	return &SalaryUsecase{store: store, log: log}
}

func (uc *SalaryUsecase) CreateSalary(ctx context.Context, salary domain.Salary) (*domain.Salary, error) {
	salary.ID = uuid.NewString()
	salary.CreatedAt = time.Now().UTC()
	if salary.Status == "" {
		salary.Status = domain.SalaryPending
	}

	if err := salary.Validate(); err != nil {
		return nil, err
	}
	if err := uc.store.SaveSalary(ctx, &salary); err != nil {
		return nil, err
	}
	return &salary, nil
}

func (uc *SalaryUsecase) GetSalary(ctx context.Context, id string) (*domain.Salary, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	return uc.store.GetSalaryByID(ctx, id)
}

func (uc *SalaryUsecase) ListSalaries(ctx context.Context, month string, page domain.Page) ([]domain.Salary, int, error) {
	if month != "" {
		if err := validMonth(month); err != nil {
			return nil, 0, err
		}
	}
	return uc.store.ListSalaries(ctx, month, page.Normalize())
}

// UpdateSalary replaces the salary fields and recomputes the net pay.
func (uc *SalaryUsecase) UpdateSalary(ctx context.Context, id string, salary domain.Salary) (*domain.Salary, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	existing, err := uc.store.GetSalaryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	salary.ID = existing.ID
	salary.CreatedAt = existing.CreatedAt
	if salary.Status == "" {
		salary.Status = existing.Status
	}

	if err := salary.Validate(); err != nil {
		return nil, err
	}
	if err := uc.store.UpdateSalary(ctx, &salary); err != nil {
		return nil, err
	}
	return &salary, nil
}

func (uc *SalaryUsecase) DeleteSalary(ctx context.Context, id string) error {
	if err := domain.ValidateID(id); err != nil {
		return err
	}
	return uc.store.DeleteSalary(ctx, id)
}

// SalaryReport renders the payroll of a month as PDF.
func (uc *SalaryUsecase) SalaryReport(ctx context.Context, month string) ([]byte, error) {
	if err := validMonth(month); err != nil {
		return nil, err
	}
	salaries, err := uc.store.ListSalariesByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	pdf, err := report.SalaryReport(month, salaries, time.Now())
	if err != nil {
		return nil, err
	}
	uc.log.Info("Salary report generated", "month", month, "rows", len(salaries), "bytes", len(pdf))
	return pdf, nil
}

func validMonth(month string) error {
	if _, err := time.Parse("2006-01", month); err != nil {
		return domain.ValidationErrorf("month %q must look like YYYY-MM", month)
	}
	return nil
}
