package ports

import (
	"context"
	"errors"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrDuplicateKey is returned by WalletRepository.Create when the
// (user_document, currency) unique constraint is violated. The service
// layer translates it to a Conflict.
var ErrDuplicateKey = errors.New("duplicate key")

// WalletFilter holds the optional exact-match filters for listing wallets.
// Both filters combine with AND; nil means "no filter". No pagination.
type WalletFilter struct {
	Currency     *string
	UserDocument *string
}

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx run inside transaction blocks; GetByIDForUpdate
// takes a pessimistic row lock.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error)
	GetByDocumentAndCurrency(ctx context.Context, userDocument, currency string) (*domain.Wallet, error)
	List(ctx context.Context, filter WalletFilter) ([]domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance int64) error
}

// TransactionRepository defines persistence operations for the append-only
// transaction log. Transactions are never updated or deleted.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	GetAllByWalletID(ctx context.Context, walletID uuid.UUID) ([]domain.Transaction, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
