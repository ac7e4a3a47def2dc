package firestore

import (
	"context"

	"himart/internal/domain/repository"

	"cloud.google.com/go/firestore"
)

type transactionManager struct {
	client *firestore.Client
}

type repositoryFactory struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

func (f *repositoryFactory) UserRepo() repository.UserRepository {
	return &userRepository{client: f.client, tx: f.tx}
}

func (f *repositoryFactory) SellerRepo() repository.SellerRepository {
	return &sellerRepository{client: f.client, tx: f.tx}
}

// NewTransactionManager runs units of work inside Firestore transactions.
func NewTransactionManager(client *firestore.Client) repository.TransactionManager {
	return &transactionManager{client: client}
}

// Execute may invoke fn more than once when Firestore retries on contention.
func (tm *transactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return tm.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		return fn(&repositoryFactory{client: tm.client, tx: tx})
	})
}
