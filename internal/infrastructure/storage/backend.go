// Package storage assembles a complete persistence backend, either
// in-memory (default) or PostgreSQL.
package storage

import (
	"context"
	"time"

	"edr/internal/core/apperror"
	"edr/internal/core/numerator"
	"edr/internal/core/tx"
	"edr/internal/domain/audit"
	"edr/internal/domain/auth"
	"edr/internal/domain/hr"
	"edr/internal/domain/interventions"
	"edr/internal/domain/inventory"
	"edr/internal/domain/projects"
	"edr/internal/domain/quotes"
	"edr/internal/domain/settings"
	"edr/internal/domain/suppliers"
	"edr/internal/infrastructure/storage/memstore"
	"edr/internal/infrastructure/storage/postgres"
	"edr/pkg/logger"
)

// Kind selects the backend implementation.
type Kind string

const (
	KindMemory   Kind = "memory"
	KindPostgres Kind = "postgres"
)

// Config holds backend configuration.
type Config struct {
	Kind Kind

	// DSN is required for the postgres backend.
	DSN string

	// TablePrefix is prepended to every table name.
	TablePrefix string

	// Latency is the artificial delay of the memory backend.
	Latency time.Duration
}

// Backend bundles the repositories and infrastructure services of one
// storage implementation.
type Backend struct {
	TxManager tx.Manager
	Trail     audit.Trail
	Numerator numerator.Generator

	Interventions interventions.Repository
	Quotes        quotes.Repository
	Inventory     inventory.Repository
	Suppliers     suppliers.Repository
	Employees     hr.EmployeeRepository
	Leaves        hr.LeaveRepository
	Projects      projects.Repository
	Settings      settings.Store
	Users         auth.UserRepository

	closeFn func()
	pingFn  func(context.Context) error
}

// Close releases backend resources.
func (b *Backend) Close() {
	if b.closeFn != nil {
		b.closeFn()
	}
}

// Ping reports whether the backend is reachable.
func (b *Backend) Ping(ctx context.Context) error {
	if b.pingFn == nil {
		return nil
	}
	return b.pingFn(ctx)
}

// New creates the backend selected by cfg.
func New(ctx context.Context, cfg Config) (*Backend, error) {
	switch cfg.Kind {
	case KindPostgres:
		return newPostgres(ctx, cfg)
	case KindMemory, "":
		return newMemory(cfg), nil
	default:
		return nil, apperror.NewValidation("unknown storage backend").
			WithDetail("kind", string(cfg.Kind))
	}
}

func newMemory(cfg Config) *Backend {
	interventionRepo := memstore.NewInterventionRepo()
	quoteRepo := memstore.NewQuoteRepo()
	inventoryRepo := memstore.NewInventoryRepo()
	supplierRepo := memstore.NewSupplierRepo()
	employeeRepo := memstore.NewEmployeeRepo()
	leaveRepo := memstore.NewLeaveRepo()
	projectRepo := memstore.NewProjectRepo()

	interventionRepo.Latency = cfg.Latency
	quoteRepo.Latency = cfg.Latency
	inventoryRepo.Latency = cfg.Latency
	supplierRepo.Latency = cfg.Latency
	employeeRepo.Latency = cfg.Latency
	leaveRepo.Latency = cfg.Latency
	projectRepo.Latency = cfg.Latency

	return &Backend{
		TxManager:     tx.NopManager{},
		Trail:         memstore.NewAuditTrail(200),
		Numerator:     memstore.NewNumerator(),
		Interventions: interventionRepo,
		Quotes:        quoteRepo,
		Inventory:     inventoryRepo,
		Suppliers:     supplierRepo,
		Employees:     employeeRepo,
		Leaves:        leaveRepo,
		Projects:      projectRepo,
		Settings:      memstore.NewSettingsStore(),
		Users:         memstore.NewUserStore(),
	}
}

func newPostgres(ctx context.Context, cfg Config) (*Backend, error) {
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DSN))
	if err != nil {
		return nil, err
	}

	if err := postgres.CreateSchema(ctx, pool, cfg.TablePrefix); err != nil {
		pool.Close()
		return nil, err
	}

	txm := postgres.NewTxManager(pool)
	trail, err := postgres.NewAuditTrail(txm, cfg.TablePrefix)
	if err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info(ctx, "postgres backend ready", "table_prefix", cfg.TablePrefix)
	postgres.LogPoolStats(ctx, pool.Pool)

	return &Backend{
		TxManager:     txm,
		Trail:         trail,
		Numerator:     postgres.NewNumerator(txm, cfg.TablePrefix),
		Interventions: postgres.NewInterventionRepo(txm, cfg.TablePrefix),
		Quotes:        postgres.NewQuoteRepo(txm, cfg.TablePrefix),
		Inventory:     postgres.NewInventoryRepo(txm, cfg.TablePrefix),
		Suppliers:     postgres.NewSupplierRepo(txm, cfg.TablePrefix),
		Employees:     postgres.NewEmployeeRepo(txm, cfg.TablePrefix),
		Leaves:        postgres.NewLeaveRepo(txm, cfg.TablePrefix),
		Projects:      postgres.NewProjectRepo(txm, cfg.TablePrefix),
		Settings:      postgres.NewSettingsStore(txm, cfg.TablePrefix),
		Users:         postgres.NewUserStore(txm, cfg.TablePrefix),
		closeFn:       pool.Close,
		pingFn:        pool.Ping,
	}, nil
}
