package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/internal/telemetry"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WalletServiceImpl implements ports.WalletService.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	currencies domain.CurrencySet
	log        zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl. The allowed currency
// set is configuration, owned by the service rather than a global.
func NewWalletService(walletRepo ports.WalletRepository, currencies domain.CurrencySet, log zerolog.Logger) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		currencies: currencies,
		log:        log,
	}
}

// CreateWallet onboards a new wallet. Identity fields are normalized
// before validation so " usd " and "USD" resolve to the same account.
func (s *WalletServiceImpl) CreateWallet(ctx context.Context, req ports.CreateWalletRequest) (*domain.Wallet, error) {
	document := domain.NormalizeDocument(req.UserDocument)
	currency := domain.NormalizeCurrency(req.Currency)

	if !s.currencies.Contains(currency) {
		return nil, apperror.ErrInvalidCurrency(s.currencies.List())
	}
	if req.InitialBalance < 0 {
		return nil, apperror.ErrNegativeBalance()
	}

	existing, err := s.walletRepo.GetByDocumentAndCurrency(ctx, document, currency)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("check existing wallet: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrDuplicateWallet()
	}

	now := time.Now().UTC()
	wallet := &domain.Wallet{
		ID:           uuid.New(),
		UserDocument: document,
		UserName:     req.UserName,
		Currency:     currency,
		Balance:      req.InitialBalance,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		// The unique index backstops the read-then-create race.
		if errors.Is(err, ports.ErrDuplicateKey) {
			return nil, apperror.ErrDuplicateWallet()
		}
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create wallet: %w", err))
	}

	telemetry.WalletsCreatedTotal.WithLabelValues(currency).Inc()

	s.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Str("user_document", wallet.UserDocument).
		Str("currency", wallet.Currency).
		Msg("wallet created")

	return wallet, nil
}

// ListWallets returns wallets matching the optional exact-match filters.
// Filters are normalized the same way as stored identity fields.
func (s *WalletServiceImpl) ListWallets(ctx context.Context, req ports.ListWalletsRequest) ([]domain.Wallet, error) {
	filter := ports.WalletFilter{}
	if req.Currency != nil && *req.Currency != "" {
		c := domain.NormalizeCurrency(*req.Currency)
		filter.Currency = &c
	}
	if req.UserDocument != nil && *req.UserDocument != "" {
		d := domain.NormalizeDocument(*req.UserDocument)
		filter.UserDocument = &d
	}

	wallets, err := s.walletRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list wallets: %w", err))
	}
	return wallets, nil
}
