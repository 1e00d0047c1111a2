package domain

// Event types published after a mutation commits.
const (
	EventSaleCreated      = "SaleCreated"
	EventPaymentProcessed = "PaymentProcessed"
	EventCreditUpdated    = "CreditUpdated"
	EventStockAdjusted    = "StockAdjusted"
)
