package http

import (
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/standortcheck/internal/adapters/postgres"
	"github.com/samirrijal/standortcheck/internal/adapters/valkey"
	"github.com/samirrijal/standortcheck/internal/core/ports"
	"github.com/samirrijal/standortcheck/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
// NATS, DB, and Cache are optional; handlers degrade when they are nil.
type Dependencies struct {
	Checks    *usecases.CheckService
	Addresses *usecases.AddressService
	CheckLog  ports.CheckLogRepository
	NATS      *nats.Conn
	DB        *postgres.DB
	Cache     *valkey.Cache
}
