// Command paycoordworker runs the payment coordinator: it consumes
// create_offer, cancel_offer, make_payment_order, and the accounts
// service's prepared/rejected transfer signals, drains the outbox into
// RabbitMQ, and serves the read-only offer/proof HTTP surface.
package main

import (
	"log"

	"github.com/epandurski/swpt-payments/internal/bootstrap"
)

func main() {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		log.Fatalf("paycoordworker: %v", err)
	}

	svc, err := bootstrap.InitService(cfg)
	if err != nil {
		log.Fatalf("paycoordworker: %v", err)
	}

	if err := svc.Run(); err != nil {
		log.Fatalf("paycoordworker: %v", err)
	}
}
