package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"shoeshop/internal/domain"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type pagination struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type listResponse struct {
	Data       any        `json:"data"`
	Pagination pagination `json:"pagination"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// respondError maps domain errors to status codes. Anything unknown is a 500 and is logged.
func respondError(c *gin.Context, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, errorResponse{Error: "validation_failed", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidID):
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid_request", Message: err.Error()})
	case errors.Is(err, domain.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		c.JSON(http.StatusConflict, errorResponse{Error: "insufficient_stock", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidStatus):
		c.JSON(http.StatusConflict, errorResponse{Error: "invalid_status", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		c.JSON(http.StatusConflict, errorResponse{Error: "already_exists", Message: err.Error()})
	default:
		log.Error("Request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: "internal server error"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid_request", Message: message})
}

// bindJSON decodes the body and answers 400 on malformed input.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, fmt.Sprintf("malformed request body: %v", err))
		return false
	}
	return true
}

func parsePage(c *gin.Context) (domain.Page, bool) {
	var page domain.Page
	var err error
	if v := c.Query("limit"); v != "" {
		if page.Limit, err = strconv.Atoi(v); err != nil || page.Limit < 0 {
			badRequest(c, "limit must be a non-negative integer")
			return page, false
		}
	}
	if v := c.Query("offset"); v != "" {
		if page.Offset, err = strconv.Atoi(v); err != nil || page.Offset < 0 {
			badRequest(c, "offset must be a non-negative integer")
			return page, false
		}
	}
	return page.Normalize(), true
}

func respondList[T any](c *gin.Context, items []T, total int, page domain.Page) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, listResponse{
		Data:       items,
		Pagination: pagination{Total: total, Limit: page.Limit, Offset: page.Offset},
	})
}

// parseTimeQuery accepts RFC3339 or a bare date. A missing value is the zero time.
func parseTimeQuery(c *gin.Context, key string) (time.Time, bool) {
	v := c.Query(key)
	if v == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return t, true
	}
	badRequest(c, fmt.Sprintf("%s must be RFC3339 or YYYY-MM-DD", key))
	return time.Time{}, false
}

func parseIntQuery(c *gin.Context, key string, def int) (int, bool) {
	v := c.Query(key)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		badRequest(c, fmt.Sprintf("%s must be an integer", key))
		return 0, false
	}
	return n, true
}

func respondPDF(c *gin.Context, filename string, pdf []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func serverTimestamp() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Server-Timestamp", time.Now().Format(time.RFC3339))
		c.Next()
	}
}

type HealthHandler struct {
	checks map[string]func(context.Context) error
}

// HealthCheck endpoint
// @Summary Health check
// @Description Check if the service and its stores are reachable
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 503 {object} map[string]any
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			deps[name] = err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	c.JSON(code, gin.H{
		"status":       status,
		"timestamp":    time.Now().Format(time.RFC3339),
		"service":      "shoeshop-api",
		"dependencies": deps,
	})
}
