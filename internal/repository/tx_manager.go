package repository

import "context"

// Repositories bound to one transaction.
type TxRepos interface {
	Products() ProductRepository
	Customers() CustomerRepository
	Bikes() BikeRepository
	Orders() OrderRepository
	OrderItems() OrderItemRepository
}

// TransactionManager hides begin/commit/rollback from the usecases.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
