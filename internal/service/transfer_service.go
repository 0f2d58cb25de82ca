package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/internal/telemetry"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TransferServiceImpl implements ports.TransferService. It is the sole
// writer of wallet balances and the sole creator of transactions.
type TransferServiceImpl struct {
	walletRepo ports.WalletRepository
	txRepo     ports.TransactionRepository
	transactor ports.DBTransactor
	publisher  ports.TransferEventPublisher // nil = event publishing disabled
	log        zerolog.Logger
}

// NewTransferService creates a new TransferServiceImpl.
func NewTransferService(
	walletRepo ports.WalletRepository,
	txRepo ports.TransactionRepository,
	transactor ports.DBTransactor,
	publisher ports.TransferEventPublisher,
	log zerolog.Logger,
) *TransferServiceImpl {
	return &TransferServiceImpl{
		walletRepo: walletRepo,
		txRepo:     txRepo,
		transactor: transactor,
		publisher:  publisher,
		log:        log,
	}
}

// Transfer moves amount from the source wallet to the target wallet and
// records the resulting transaction. The two balance updates and the
// transaction insert commit as one database transaction.
//
// Validation order is part of the contract: amount, then existence, then
// currency match, then sufficient balance. Each failure short-circuits.
func (s *TransferServiceImpl) Transfer(ctx context.Context, req ports.TransferRequest) (*domain.Transaction, error) {
	txn, err := s.transfer(ctx, req)
	if err != nil {
		telemetry.TransfersTotal.WithLabelValues(transferStatus(err)).Inc()
		return nil, err
	}

	telemetry.TransfersTotal.WithLabelValues("success").Inc()
	telemetry.TransferAmount.Observe(float64(txn.Amount))

	// Post-commit event notification (best-effort)
	if s.publisher != nil {
		if err := s.publisher.PublishTransferCompleted(ctx, txn); err != nil {
			s.log.Warn().Err(err).Str("tx_id", txn.ID.String()).Msg("failed to publish transfer event")
		}
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("source_wallet", txn.WalletOutgoingID.String()).
		Str("target_wallet", txn.WalletIncomingID.String()).
		Int64("amount", txn.Amount).
		Msg("transfer completed")

	return txn, nil
}

func (s *TransferServiceImpl) transfer(ctx context.Context, req ports.TransferRequest) (*domain.Transaction, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidTransferAmount()
	}
	if req.SourceWalletID == req.TargetWalletID {
		return nil, apperror.ErrSameWallet()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock both wallets FOR UPDATE in ascending id order, so two transfers
	// over the same pair in opposite directions cannot deadlock.
	firstID, secondID := req.SourceWalletID, req.TargetWalletID
	if bytes.Compare(secondID[:], firstID[:]) < 0 {
		firstID, secondID = secondID, firstID
	}

	first, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, firstID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock wallet %s: %w", firstID, err))
	}
	second, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, secondID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock wallet %s: %w", secondID, err))
	}

	source, target := first, second
	if firstID != req.SourceWalletID {
		source, target = second, first
	}

	var missing []string
	if source == nil {
		missing = append(missing, "source wallet "+req.SourceWalletID.String())
	}
	if target == nil {
		missing = append(missing, "target wallet "+req.TargetWalletID.String())
	}
	if len(missing) > 0 {
		return nil, apperror.ErrWalletNotFound(missing...)
	}

	if source.Currency != target.Currency {
		return nil, apperror.ErrCurrencyMismatch()
	}
	if !source.CanDebit(req.Amount) {
		return nil, apperror.ErrInsufficientBalance()
	}

	txn := &domain.Transaction{
		ID:               uuid.New(),
		Amount:           req.Amount,
		Date:             time.Now().UTC(),
		Description:      domain.TransferDescription(source.UserDocument, target.UserDocument),
		WalletOutgoingID: source.ID,
		WalletIncomingID: target.ID,
	}

	if err := s.walletRepo.UpdateBalance(ctx, dbTx, source.ID, source.Balance-req.Amount); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("debit source wallet: %w", err))
	}
	if err := s.walletRepo.UpdateBalance(ctx, dbTx, target.ID, target.Balance+req.Amount); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("credit target wallet: %w", err))
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create transaction: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}

	return txn, nil
}

// GetTransactionsByWallet returns every transaction where the wallet is
// sender or receiver, in insertion order. The wallet must exist.
func (s *TransferServiceImpl) GetTransactionsByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.Transaction, error) {
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound("wallet " + walletID.String())
	}

	txns, err := s.txRepo.GetAllByWalletID(ctx, walletID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list transactions: %w", err))
	}
	return txns, nil
}

// transferStatus maps a transfer failure to a metrics label.
func transferStatus(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return strings.ToLower(string(appErr.Kind))
	}
	return "error"
}
