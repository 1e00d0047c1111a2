package services

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/dto"
)

// ReportingSvc defines the sales and inventory reports
type ReportingSvc interface {
	// GetSalesReport totals sales created in the requested range, per day.
	GetSalesReport(ctx context.Context, params dto.ReportRangeParams) (*domain.SalesReport, error)

	// GetInventoryReport lists active products that are low on stock.
	GetInventoryReport(ctx context.Context) (*domain.InventoryReport, error)

	// GetAnalytics combines catalog, customer and sales figures for the requested range.
	GetAnalytics(ctx context.Context, params dto.ReportRangeParams) (*domain.Analytics, error)
}
