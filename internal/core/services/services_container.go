package services

import (
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/platform/config"
)

// LimitsFromConfig copies the configured business ceilings.
func LimitsFromConfig(cfg *config.Config) Limits {
	limits := DefaultLimits()
	if !cfg.MaxPaymentAmount.IsZero() {
		limits.MaxPaymentAmount = cfg.MaxPaymentAmount
	}
	if !cfg.MaxCreditLimit.IsZero() {
		limits.MaxCreditLimit = cfg.MaxCreditLimit
	}
	if cfg.DefaultPaymentTerms != "" {
		limits.DefaultPaymentTerms = cfg.DefaultPaymentTerms
	}
	if cfg.PhoneRegion != "" {
		limits.PhoneRegion = cfg.PhoneRegion
	}
	return limits
}

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The options are shared by every service, after the limits taken from cfg.
func NewServiceContainer(cfg *config.Config, store portsrepo.Store, options ...ServiceOption) *portssvc.ServiceContainer {
	opts := append([]ServiceOption{WithLimits(LimitsFromConfig(cfg))}, options...)

	// The stock ledger is shared by sales and the catalog
	stock := NewStockService(store, opts...)

	return &portssvc.ServiceContainer{
		Product:     NewProductService(store, stock, opts...),
		Customer:    NewCustomerService(store, opts...),
		Credit:      NewCreditService(store, opts...),
		Stock:       stock,
		Sale:        NewSaleService(store, stock, opts...),
		Payment:     NewPaymentService(store, opts...),
		Outstanding: NewOutstandingService(store, opts...),
		Reporting:   NewReportingService(store, opts...),
		Auth:        NewAuthService(cfg, store.Users(), opts...),
	}
}
