package usecase

import (
	"context"
	"log/slog"
	"math"
	"time"

	"shoeshop/internal/domain"
	"shoeshop/internal/report"
)

const (
	defaultSalesWindow = 30 * 24 * time.Hour
	maxSalesBuckets    = 366
	defaultTopShoes    = 5
	maxTopShoes        = 50
)

type AnalyticsUsecase struct {
	store             analyticsStore
	lowStockThreshold int
	log               *slog.Logger
	now               func() time.Time
}

func NewAnalyticsUsecase(store analyticsStore, lowStockThreshold int, log *slog.Logger) *AnalyticsUsecase {
	return &AnalyticsUsecase{store: store, lowStockThreshold: lowStockThreshold, log: log, now: time.Now}
}

// Sales groups non-cancelled orders into UTC day or month buckets. The range is widened
// to whole buckets, so the first and last bucket count their full period.
// Every bucket of the range is present, empty ones with zeros.
func (uc *AnalyticsUsecase) Sales(ctx context.Context, from, to time.Time, bucket domain.Bucket) ([]domain.SalesPoint, error) {
	if bucket == "" {
		bucket = domain.BucketDay
	}
	if bucket != domain.BucketDay && bucket != domain.BucketMonth {
		return nil, domain.ValidationErrorf("bucket must be day or month, got %q", bucket)
	}
	from, to, err := uc.window(from, to)
	if err != nil {
		return nil, err
	}

	from = truncate(from, bucket)
	if end := truncate(to, bucket); end.Before(to) {
		to = next(end, bucket)
	}

	var periods []string
	for t := from; t.Before(to); t = next(t, bucket) {
		periods = append(periods, period(t, bucket))
		if len(periods) > maxSalesBuckets {
			return nil, domain.ValidationErrorf("range covers more than %d buckets", maxSalesBuckets)
		}
	}

	orders, err := uc.store.ListOrderTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(periods))
	points := make([]domain.SalesPoint, len(periods))
	for i, p := range periods {
		index[p] = i
		points[i].Period = p
	}
	for _, o := range orders {
		if o.DeliveryStatus == domain.DeliveryCancelled {
			continue
		}
		i, ok := index[period(o.CreatedAt.UTC(), bucket)]
		if !ok {
			continue
		}
		points[i].Orders++
		points[i].Revenue += o.Total
	}
	for i := range points {
		points[i].Revenue = math.Round(points[i].Revenue*100) / 100
	}
	return points, nil
}

func (uc *AnalyticsUsecase) TopShoes(ctx context.Context, limit int) ([]domain.TopShoe, error) {
	if limit <= 0 {
		limit = defaultTopShoes
	}
	if limit > maxTopShoes {
		limit = maxTopShoes
	}
	return uc.store.TopShoes(ctx, limit)
}

// LowStock lists variant sizes at or below threshold. A negative threshold means the configured default.
func (uc *AnalyticsUsecase) LowStock(ctx context.Context, threshold int) ([]domain.LowStockItem, error) {
	if threshold < 0 {
		threshold = uc.lowStockThreshold
	}
	return uc.store.ListLowStock(ctx, threshold)
}

// OrderReport renders the orders of [from, to) as PDF.
func (uc *AnalyticsUsecase) OrderReport(ctx context.Context, from, to time.Time) ([]byte, error) {
	from, to, err := uc.window(from, to)
	if err != nil {
		return nil, err
	}
	orders, err := uc.store.ListOrderTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	pdf, err := report.OrderReport(from, to, orders, uc.now())
	if err != nil {
		return nil, err
	}
	uc.log.Info("Order report generated", "from", from, "to", to, "rows", len(orders))
	return pdf, nil
}

// window fills in the default range: the 30 days up to now.
func (uc *AnalyticsUsecase) window(from, to time.Time) (time.Time, time.Time, error) {
	if to.IsZero() {
		to = uc.now()
	}
	if from.IsZero() {
		from = to.Add(-defaultSalesWindow)
	}
	from, to = from.UTC(), to.UTC()
	if !from.Before(to) {
		return time.Time{}, time.Time{}, domain.ValidationErrorf("from must be before to")
	}
	return from, to, nil
}

func truncate(t time.Time, b domain.Bucket) time.Time {
	if b == domain.BucketMonth {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func next(t time.Time, b domain.Bucket) time.Time {
	if b == domain.BucketMonth {
		return t.AddDate(0, 1, 0)
	}
	return t.AddDate(0, 0, 1)
}

func period(t time.Time, b domain.Bucket) string {
	if b == domain.BucketMonth {
		return t.Format("2006-01")
	}
	return t.Format(time.DateOnly)
}
