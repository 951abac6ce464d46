package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shoeshop/internal/domain"
)

type SalaryService interface {
	CreateSalary(ctx context.Context, salary domain.Salary) (*domain.Salary, error)
	GetSalary(ctx context.Context, id string) (*domain.Salary, error)
	ListSalaries(ctx context.Context, month string, page domain.Page) ([]domain.Salary, int, error)
	UpdateSalary(ctx context.Context, id string, salary domain.Salary) (*domain.Salary, error)
	DeleteSalary(ctx context.Context, id string) error
	SalaryReport(ctx context.Context, month string) ([]byte, error)
}

type SalaryHandler struct {
	uc  SalaryService
	log *slog.Logger
}

func NewSalaryHandler(uc SalaryService, log *slog.Logger) *SalaryHandler {
	return &SalaryHandler{uc: uc, log: log}
}

// ListSalaries
// @Summary List salaries
// @Tags salaries
// @Produce json
// @Param month query string false "YYYY-MM"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} listResponse
// @Failure 400 {object} errorResponse
// @Router /api/salaries [get]
func (h *SalaryHandler) ListSalaries(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	salaries, total, err := h.uc.ListSalaries(c.Request.Context(), c.Query("month"), page)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondList(c, salaries, total, page)
}

// GetSalary
// @Summary Get salary by id
// @Tags salaries
// @Produce json
// @Param id path string true "Salary ID"
// @Success 200 {object} domain.Salary
// @Failure 404 {object} errorResponse
// @Router /api/salaries/{id} [get]
func (h *SalaryHandler) GetSalary(c *gin.Context) {
	salary, err := h.uc.GetSalary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, salary)
}

// CreateSalary
// @Summary Create salary record
// @Description Net pay is computed by the server
// @Tags salaries
// @Accept json
// @Produce json
// @Param salary body domain.Salary true "Salary"
// @Success 201 {object} domain.Salary
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /api/salaries [post]
func (h *SalaryHandler) CreateSalary(c *gin.Context) {
	var input domain.Salary
	if !bindJSON(c, &input) {
		return
	}
	salary, err := h.uc.CreateSalary(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, salary)
}

// UpdateSalary
// @Summary Replace salary record
// @Tags salaries
// @Accept json
// @Produce json
// @Param id path string true "Salary ID"
// @Param salary body domain.Salary true "Salary"
// @Success 200 {object} domain.Salary
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/salaries/{id} [put]
func (h *SalaryHandler) UpdateSalary(c *gin.Context) {
	var input domain.Salary
	if !bindJSON(c, &input) {
		return
	}
	salary, err := h.uc.UpdateSalary(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, salary)
}

// DeleteSalary
// @Summary Delete salary record
// @Tags salaries
// @Param id path string true "Salary ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /api/salaries/{id} [delete]
func (h *SalaryHandler) DeleteSalary(c *gin.Context) {
	if err := h.uc.DeleteSalary(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SalaryReport
// @Summary Monthly payroll as PDF
// @Tags reports
// @Produce application/pdf
// @Param month query string true "YYYY-MM"
// @Success 200 {file} file
// @Failure 400 {object} errorResponse
// @Router /api/reports/salaries [get]
func (h *SalaryHandler) SalaryReport(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		badRequest(c, "month is required")
		return
	}
	pdf, err := h.uc.SalaryReport(c.Request.Context(), month)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondPDF(c, "salaries-"+month+".pdf", pdf)
}
