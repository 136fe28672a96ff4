package interfaces

import (
	"context"

	"chapa_billing/internal/domain/entities"
)

// ITransactionRepository abstracts DynamoDB persistence for Transaction.

type ITransactionRepository interface {
	Create(ctx context.Context, tx entities.Transaction) (entities.Transaction, error)
	GetByID(ctx context.Context, id string) (entities.Transaction, error)
	GetByTxRef(ctx context.Context, txRef string) (entities.Transaction, error)
	Save(ctx context.Context, tx entities.Transaction) (entities.Transaction, error)
}
