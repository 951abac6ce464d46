package main

import "shoeshop/internal/app/shoeshop"

// @title Shoeshop API
// @version 1.0
// @description Catalogue, orders, refunds, payroll, restocks and delivery of a shoe shop.
// @host localhost:8080
// @BasePath /
func main() {
	shoeshop.Run()
}
