package usecase_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shoeshop/internal/domain"
	"shoeshop/internal/usecase"
	"shoeshop/pkg/logger"
)

func TestSalaryUsecase_CreateSalary(t *testing.T) {
	store := new(MockSalaryStore)
	uc := usecase.NewSalaryUsecase(store, logger.NewTestLogger())

	t.Run("net is derived", func(t *testing.T) {
		input := domain.CreateTestSalary()
		input.Net = 1
		input.Status = ""

		store.On("SaveSalary", mock.Anything, mock.AnythingOfType("*domain.Salary")).Return(nil).Once()

		salary, err := uc.CreateSalary(context.Background(), input)

		require.NoError(t, err)
		assert.Equal(t, 92700.0, salary.Net)
		assert.Equal(t, domain.SalaryPending, salary.Status)
	})

	t.Run("deductions above gross pay", func(t *testing.T) {
		input := domain.CreateTestSalary()
		input.Deductions = 200000

		_, err := uc.CreateSalary(context.Background(), input)

		assert.ErrorIs(t, err, domain.ErrValidation)
		store.AssertNumberOfCalls(t, "SaveSalary", 1)
	})

	t.Run("duplicate month for employee", func(t *testing.T) {
		store.On("SaveSalary", mock.Anything, mock.AnythingOfType("*domain.Salary")).Return(domain.ErrDuplicate).Once()

		_, err := uc.CreateSalary(context.Background(), domain.CreateTestSalary())

		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})
}

func TestSalaryUsecase_UpdateSalary(t *testing.T) {
	store := new(MockSalaryStore)
	uc := usecase.NewSalaryUsecase(store, logger.NewTestLogger())
	existing := domain.CreateTestSalary()
	existing.Status = domain.SalaryPaid

	input := domain.CreateTestSalary()
	input.Status = ""
	input.Basic = 90000

	store.On("GetSalaryByID", mock.Anything, existing.ID).Return(&existing, nil).Once()
	store.On("UpdateSalary", mock.Anything, mock.MatchedBy(func(s *domain.Salary) bool {
		return s.ID == existing.ID && s.Net == 97700 && s.Status == domain.SalaryPaid
	})).Return(nil).Once()

	salary, err := uc.UpdateSalary(context.Background(), existing.ID, input)

	require.NoError(t, err)
	assert.Equal(t, 97700.0, salary.Net)
	store.AssertExpectations(t)
}

func TestSalaryUsecase_SalaryReport(t *testing.T) {
	store := new(MockSalaryStore)
	uc := usecase.NewSalaryUsecase(store, logger.NewTestLogger())

	t.Run("renders pdf", func(t *testing.T) {
		store.On("ListSalariesByMonth", mock.Anything, "2024-05").
			Return([]domain.Salary{domain.CreateTestSalary()}, nil).Once()

		pdf, err := uc.SalaryReport(context.Background(), "2024-05")

		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	})

	t.Run("bad month", func(t *testing.T) {
		_, err := uc.SalaryReport(context.Background(), "May 2024")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("list with bad month filter", func(t *testing.T) {
		_, _, err := uc.ListSalaries(context.Background(), "2024-13", domain.Page{})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
