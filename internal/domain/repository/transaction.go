package repository

import "context"

// TransactionManager defines the interface for running several writes as one unit.
// This allows the use case layer to handle transactions without depending on a specific store.
type TransactionManager interface {
	// Execute runs a function within a transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// Stores that require it (Firestore) expect every read inside fn to happen before the first write.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific transaction.
type RepositoryFactory interface {
	// UserRepo returns a UserRepository instance bound to the current transaction.
	UserRepo() UserRepository

	// SellerRepo returns a SellerRepository instance bound to the current transaction.
	SellerRepo() SellerRepository
}
