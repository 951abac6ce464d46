package main

import (
	"context"
	"flag"
	"sync"
	"time"

	"shoeshop/configs"
	"shoeshop/configs/loader/dotEnvLoader"
	k "shoeshop/internal/delivery/kafka"
	"shoeshop/internal/domain"
	"shoeshop/pkg/logger"
	lr "shoeshop/pkg/logger/logrus"
)

const (
	workers = 10
)

// Publishes test restock events so the consumer and supplier mail can be tried without the API.
func main() {
	amountTask := flag.Int("n", 1, "number of events to publish")
	supplier := flag.String("supplier", "", "override supplier e-mail")

	envLoader := dotEnvLoader.DotEnvLoader{}
	cfg := configs.MustLoad(envLoader)
	log := logger.NewLogger(cfg)
	eventLog := lr.NewLogger(cfg)

	p, err := k.NewProducer(cfg.KF, log)
	if err != nil {
		eventLog.Fatal(err)
	}
	defer p.Close()

	sem := make(chan struct{}, workers)
	wg := &sync.WaitGroup{}

	for i := 0; i < *amountTask; i++ {
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() {
				<-sem
				wg.Done()
			}()

			shoe := domain.CreateTestShoe()
			r := domain.CreateTestRestock(shoe.ID)
			if *supplier != "" {
				r.SupplierEmail = *supplier
			}
			event := domain.NewRestockEvent(&r, &shoe)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := p.PublishRestock(ctx, event); err != nil {
				eventLog.Errorf("error producing restock %s: %v", event.RestockID, err)
				return
			}
			eventLog.Infof("produced restock %s for shoe %s", event.RestockID, event.ShoeID)
		}()
	}
	wg.Wait()
}
