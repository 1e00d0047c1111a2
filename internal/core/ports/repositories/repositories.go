package repositories

// Store is the ledger's data-access boundary. Services receive a Store and
// never reach the storage engine directly.
type Store interface {
	TransactionManager

	Products() ProductRepositoryFacade
	Customers() CustomerRepositoryFacade
	Sales() SaleRepositoryFacade
	Stock() StockRepositoryFacade
	Payments() PaymentRepositoryFacade
	Users() UserRepositoryFacade
	Reports() ReportingRepository
}
