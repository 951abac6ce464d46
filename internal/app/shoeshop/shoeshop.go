package shoeshop

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"shoeshop/configs"
	"shoeshop/configs/loader/dotEnvLoader"
	h "shoeshop/internal/delivery/http"
	k "shoeshop/internal/delivery/kafka"
	"shoeshop/internal/delivery/kafka/kafkaHandler"
	"shoeshop/internal/domain"
	"shoeshop/internal/repository/cachedRepo"
	"shoeshop/internal/repository/mongoStore"
	"shoeshop/internal/repository/postgres"
	"shoeshop/internal/repository/redisCache"
	"shoeshop/internal/usecase"
	"shoeshop/pkg/logger"
	lr "shoeshop/pkg/logger/logrus"
	"shoeshop/pkg/mailer"
)

const shutdownTimeout = 10 * time.Second

// noCache stands in when Redis is unreachable at startup.
type noCache struct{}

func (noCache) Invalidate(context.Context, ...string) {}

// shoeRepo is the shoe store seen by usecases, with or without the cache in front.
type shoeRepo interface {
	SaveShoe(ctx context.Context, shoe *domain.Shoe) error
	UpdateShoe(ctx context.Context, shoe *domain.Shoe) error
	GetShoeByID(ctx context.Context, id string) (*domain.Shoe, error)
	ListShoes(ctx context.Context, filter domain.ShoeFilter, page domain.Page) ([]domain.Shoe, int, error)
	DeleteShoe(ctx context.Context, id string) error
	Invalidate(ctx context.Context, ids ...string)
}

func Run() {

	envLoader := dotEnvLoader.DotEnvLoader{}
	cfg := configs.MustLoad(envLoader)
	log := logger.NewLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err = db.Migrate(ctx); err != nil {
		log.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	mongoClient, err := mongoStore.NewMongoConnection(ctx, cfg.MG, log)
	if err != nil {
		log.Error("failed to connect to mongo", "error", err)
		os.Exit(1)
	}
	reviews := mongoStore.NewReviewStore(mongoClient.Database(cfg.MG.Database), log)
	if err = reviews.EnsureIndexes(ctx); err != nil {
		log.Warn("failed to create review indexes", "error", err)
	}

	checks := map[string]func(context.Context) error{
		"postgres": db.Ping,
		"mongo":    func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
	}

	var shoes shoeRepo
	cache, err := redisCache.NewCache(ctx, cfg, "shoe:", log)
	if err == nil {
		shoes = cachedRepo.NewCachedRepo(db, cache, log)
		checks["redis"] = cache.Ping
	} else {
		log.Warn("redis unavailable, serving shoes without cache", "error", err)
		shoes = struct {
			*postgres.Store
			noCache
		}{db, noCache{}}
	}

	producer, err := k.NewProducer(cfg.KF, log)
	if err != nil {
		log.Error("failed to create kafka producer", "error", err)
		os.Exit(1)
	}

	smtpMailer, err := mailer.NewSMTPMailer(cfg)
	if err != nil {
		log.Error("failed to create mailer", "error", err)
		os.Exit(1)
	}

	shoeUsecase := usecase.NewShoeUsecase(shoes, reviews, log)
	reviewUsecase := usecase.NewReviewUsecase(reviews, shoes, log)
	orderUsecase := usecase.NewOrderUsecase(db, shoes, cfg.Shop.RetryCount, log)
	refundUsecase := usecase.NewRefundUsecase(db, db, log)
	salaryUsecase := usecase.NewSalaryUsecase(db, log)
	restockUsecase := usecase.NewRestockUsecase(db, shoes, shoes, producer, smtpMailer, cfg.Shop.RetryCount, log)
	deliveryUsecase := usecase.NewDeliveryUsecase(db, db, cfg.Shop.CostPerKm, log)
	analyticsUsecase := usecase.NewAnalyticsUsecase(db, cfg.Shop.LowStockThreshold, log)

	consumerLog := lr.NewLogger(cfg)
	handler := kafkaHandler.NewRestockHandler(restockUsecase, consumerLog)
	c1, err := k.NewConsumer(cfg.KF, handler, 1, consumerLog)
	if err != nil {
		log.Error("failed to connect to consumer", "error", err)
		os.Exit(1)
	}

	go func() {
		c1.Start()
	}()

	router := h.SetupRouter(h.Services{
		Shoes:     shoeUsecase,
		Reviews:   reviewUsecase,
		Orders:    orderUsecase,
		Refunds:   refundUsecase,
		Salaries:  salaryUsecase,
		Restocks:  restockUsecase,
		Delivery:  deliveryUsecase,
		Analytics: analyticsUsecase,
		Checks:    checks,
	}, log)

	server := h.NewServer(cfg.HTTP, router)

	go func() {
		log.Info("Server started", "port", cfg.HTTP.Port)
		if serverErr := server.ListenAndServe(); serverErr != nil && !errors.Is(serverErr, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", serverErr)
			os.Exit(1)
		}
	}()

	metricsSrv := h.NewMetricsServer(cfg.HTTP)

	go func() {
		log.Info("Starting prometheus", "port", cfg.HTTP.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP prometheus server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Stopping services")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, shutdownTimeout)
	defer shutdownCancel()
	wg := &sync.WaitGroup{}

	// Servers and the consumer stop first so nothing writes to closed stores.
	wg.Add(3)
	go func() {
		defer wg.Done()
		if consumerErr := c1.Stop(); consumerErr != nil {
			log.Error("failed to stop consumer", "error", consumerErr)
		}
	}()

	go func() {
		defer wg.Done()
		log.Info("Shutting down server...")
		if serverErr := server.Shutdown(shutdownCtx); serverErr != nil {
			log.Error("Server shutdown error", "error", serverErr)
		}
		log.Info("Server stopped")
	}()

	go func() {
		defer wg.Done()
		log.Info("Shutting down prometheus server...")
		if serverErr := metricsSrv.Shutdown(shutdownCtx); serverErr != nil {
			log.Error("Server shutdown error", "error", serverErr)
		}
		log.Info("Prometheus server stopped")
	}()

	completed := make(chan struct{})

	go func() {
		wg.Wait()
		producer.Close()
		if err := db.Disconnect(shutdownCtx); err != nil {
			log.Error("failed to close database", "error", err)
		}
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error("failed to close mongo", "error", err)
		}
		if cache != nil {
			if err := cache.Close(); err != nil {
				log.Error("failed to close redis", "error", err)
			}
		}
		close(completed)
	}()

	select {
	case <-completed:
		log.Info("All services correctly stopped")
	case <-shutdownCtx.Done():
		log.Info("Shutdown timeout exceeded, forced stop")
	}

}
