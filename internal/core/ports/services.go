package ports

import (
	"context"

	"wallet-ledger/internal/core/domain"

	"github.com/google/uuid"
)

// WalletService covers wallet onboarding and queries.
type WalletService interface {
	CreateWallet(ctx context.Context, req CreateWalletRequest) (*domain.Wallet, error)
	ListWallets(ctx context.Context, req ListWalletsRequest) ([]domain.Wallet, error)
}

// CreateWalletRequest holds validated input for wallet onboarding.
// Identity fields are normalized by the service before the uniqueness check.
type CreateWalletRequest struct {
	UserDocument   string
	UserName       string
	Currency       string
	InitialBalance int64
}

// ListWalletsRequest holds the optional wallet list filters.
type ListWalletsRequest struct {
	Currency     *string
	UserDocument *string
}

// TransferService is the transfer engine: the single writer of wallet
// balances and the sole creator of transactions.
type TransferService interface {
	Transfer(ctx context.Context, req TransferRequest) (*domain.Transaction, error)
	GetTransactionsByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.Transaction, error)
}

// TransferRequest holds validated input for a transfer.
type TransferRequest struct {
	SourceWalletID uuid.UUID
	TargetWalletID uuid.UUID
	Amount         int64
}

// TransferEventPublisher emits a notification after a transfer commits.
// Publishing is best-effort; failures never roll back the transfer.
type TransferEventPublisher interface {
	PublishTransferCompleted(ctx context.Context, transaction *domain.Transaction) error
}
