package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shoeshop/configs"
	_ "shoeshop/docs"
	"shoeshop/pkg/prometheus"
)

// Services bundles what the router serves. Checks feed /health.
type Services struct {
	Shoes     ShoeService
	Reviews   ReviewService
	Orders    OrderService
	Refunds   RefundService
	Salaries  SalaryService
	Restocks  RestockService
	Delivery  DeliveryService
	Analytics AnalyticsService
	Checks    map[string]func(context.Context) error
}

func SetupRouter(s Services, log *slog.Logger) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(prometheus.Middleware())
	router.Use(serverTimestamp())

	health := &HealthHandler{checks: s.Checks}
	router.GET("/health", health.HealthCheck)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	shoes := NewShoeHandler(s.Shoes, s.Reviews, log)
	api.GET("/shoes", shoes.ListShoes)
	api.GET("/shoes/:id", shoes.GetShoe)
	api.POST("/shoes", shoes.CreateShoe)
	api.PUT("/shoes/:id", shoes.UpdateShoe)
	api.DELETE("/shoes/:id", shoes.DeleteShoe)
	api.GET("/shoes/:id/reviews", shoes.ListReviews)
	api.POST("/shoes/:id/reviews", shoes.AddReview)
	api.GET("/shoes/:id/rating", shoes.Rating)
	api.DELETE("/reviews/:id", shoes.DeleteReview)

	orders := NewOrderHandler(s.Orders, log)
	api.GET("/orders", orders.ListOrders)
	api.GET("/orders/:id", orders.GetOrder)
	api.POST("/orders", orders.CreateOrder)
	api.PUT("/orders/:id/delivery-status", orders.UpdateDeliveryStatus)
	api.PUT("/orders/:id/payment-status", orders.UpdatePaymentStatus)
	api.PUT("/orders/:id/assign", orders.AssignDeliveryPerson)
	api.DELETE("/orders/:id", orders.DeleteOrder)

	refunds := NewRefundHandler(s.Refunds, log)
	api.GET("/refunds", refunds.ListRefunds)
	api.GET("/refunds/:id", refunds.GetRefund)
	api.POST("/refunds", refunds.CreateRefund)
	api.PUT("/refunds/:id/status", refunds.ProcessRefund)
	api.DELETE("/refunds/:id", refunds.DeleteRefund)

	salaries := NewSalaryHandler(s.Salaries, log)
	api.GET("/salaries", salaries.ListSalaries)
	api.GET("/salaries/:id", salaries.GetSalary)
	api.POST("/salaries", salaries.CreateSalary)
	api.PUT("/salaries/:id", salaries.UpdateSalary)
	api.DELETE("/salaries/:id", salaries.DeleteSalary)

	restocks := NewRestockHandler(s.Restocks, log)
	api.GET("/restocks", restocks.ListRestocks)
	api.GET("/restocks/:id", restocks.GetRestock)
	api.POST("/restocks", restocks.CreateRestock)
	api.PUT("/restocks/:id/fulfill", restocks.FulfillRestock)
	api.DELETE("/restocks/:id", restocks.DeleteRestock)

	delivery := NewDeliveryHandler(s.Delivery, log)
	api.GET("/delivery-persons", delivery.ListDeliveryPersons)
	api.GET("/delivery-persons/:id", delivery.GetDeliveryPerson)
	api.POST("/delivery-persons", delivery.CreateDeliveryPerson)
	api.PUT("/delivery-persons/:id", delivery.UpdateDeliveryPerson)
	api.DELETE("/delivery-persons/:id", delivery.DeleteDeliveryPerson)
	api.POST("/delivery-persons/:id/trips", delivery.RecordTrip)

	analytics := NewAnalyticsHandler(s.Analytics, log)
	api.GET("/analytics/sales", analytics.Sales)
	api.GET("/analytics/top-shoes", analytics.TopShoes)
	api.GET("/analytics/low-stock", analytics.LowStock)

	api.GET("/reports/salaries", salaries.SalaryReport)
	api.GET("/reports/orders", analytics.OrderReport)

	return router
}

func NewServer(cfg configs.HttpConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// NewMetricsServer exposes /metrics on its own port.
func NewMetricsServer(cfg configs.HttpConfig) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadTimeout,
	}
}
