package service

import (
	"context"
	"errors"
	"testing"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/internal/core/ports/mocks"
	"wallet-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type transferTestDeps struct {
	svc        *TransferServiceImpl
	walletRepo *mocks.MockWalletRepository
	txRepo     *mocks.MockTransactionRepository
	transactor *mocks.MockDBTransactor
	publisher  *mocks.MockTransferEventPublisher
	ctrl       *gomock.Controller
}

func setupTransferService(t *testing.T) *transferTestDeps {
	ctrl := gomock.NewController(t)
	d := &transferTestDeps{
		walletRepo: mocks.NewMockWalletRepository(ctrl),
		txRepo:     mocks.NewMockTransactionRepository(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		publisher:  mocks.NewMockTransferEventPublisher(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewTransferService(d.walletRepo, d.txRepo, d.transactor, d.publisher, zerolog.Nop())
	return d
}

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

func newTestWallet(currency string, balance int64) *domain.Wallet {
	return &domain.Wallet{
		ID:           uuid.New(),
		UserDocument: "12345678",
		UserName:     "Ada Lovelace",
		Currency:     currency,
		Balance:      balance,
	}
}

func appErrKind(t *testing.T, err error) apperror.Kind {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Kind
}

// ==================== Transfer Tests ====================

func TestTransferService_Transfer_Success(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}

	source := newTestWallet("USD", 200)
	source.UserDocument = "11111111"
	target := newTestWallet("USD", 100)
	target.UserDocument = "22222222"

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, source.ID).Return(source, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, target.ID).Return(target, nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, source.ID, int64(150)).Return(nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, target.ID, int64(150)).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.publisher.EXPECT().PublishTransferCompleted(ctx, gomock.Any()).Return(nil)

	txn, err := d.svc.Transfer(ctx, ports.TransferRequest{
		SourceWalletID: source.ID,
		TargetWalletID: target.ID,
		Amount:         50,
	})
	require.NoError(t, err)
	require.NotNil(t, txn)

	assert.Equal(t, int64(50), txn.Amount)
	assert.Equal(t, source.ID, txn.WalletOutgoingID)
	assert.Equal(t, target.ID, txn.WalletIncomingID)
	assert.Equal(t, "Transfer from 11111111 to 22222222", txn.Description)
	assert.False(t, txn.Date.IsZero())
}

func TestTransferService_Transfer_InvalidAmount(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	for _, amount := range []int64{0, -1, -500} {
		_, err := d.svc.Transfer(context.Background(), ports.TransferRequest{
			SourceWalletID: uuid.New(),
			TargetWalletID: uuid.New(),
			Amount:         amount,
		})
		require.Error(t, err)
		assert.Equal(t, apperror.KindInvalidRequest, appErrKind(t, err))
		assert.Contains(t, err.Error(), "The transfer amount must be greater than 0.")
	}
}

// The amount check must fire before wallet resolution: no repository call
// may happen for a non-positive amount, even against nonexistent wallets.
func TestTransferService_Transfer_AmountCheckedBeforeExistence(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	// No expectations set: any Begin/GetByIDForUpdate call fails the test.
	_, err := d.svc.Transfer(context.Background(), ports.TransferRequest{
		SourceWalletID: uuid.New(),
		TargetWalletID: uuid.New(),
		Amount:         -10,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidRequest, appErrKind(t, err))
}

func TestTransferService_Transfer_SameWallet(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	id := uuid.New()
	_, err := d.svc.Transfer(context.Background(), ports.TransferRequest{
		SourceWalletID: id,
		TargetWalletID: id,
		Amount:         50,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidRequest, appErrKind(t, err))
}

func TestTransferService_Transfer_TargetNotFound(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	source := newTestWallet("USD", 200)
	targetID := uuid.New()

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, source.ID).Return(source, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, targetID).Return(nil, nil)

	_, err := d.svc.Transfer(ctx, ports.TransferRequest{
		SourceWalletID: source.ID,
		TargetWalletID: targetID,
		Amount:         50,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, appErrKind(t, err))
	assert.Contains(t, err.Error(), "target wallet "+targetID.String())
}

func TestTransferService_Transfer_BothWalletsNotFound(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	sourceID := uuid.New()
	targetID := uuid.New()

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, sourceID).Return(nil, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, targetID).Return(nil, nil)

	_, err := d.svc.Transfer(ctx, ports.TransferRequest{
		SourceWalletID: sourceID,
		TargetWalletID: targetID,
		Amount:         50,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, appErrKind(t, err))
	assert.Contains(t, err.Error(), "source wallet "+sourceID.String())
	assert.Contains(t, err.Error(), "target wallet "+targetID.String())
}

func TestTransferService_Transfer_CurrencyMismatch(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	source := newTestWallet("USD", 200)
	target := newTestWallet("EUR", 100)

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, source.ID).Return(source, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, target.ID).Return(target, nil)

	_, err := d.svc.Transfer(ctx, ports.TransferRequest{
		SourceWalletID: source.ID,
		TargetWalletID: target.ID,
		Amount:         50,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindBusinessRuleViolation, appErrKind(t, err))
	assert.Contains(t, err.Error(), "The wallets must have the same currency.")
}

// Currency mismatch must be reported before insufficient balance, even
// when both rules would independently fail.
func TestTransferService_Transfer_CurrencyCheckedBeforeBalance(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	source := newTestWallet("USD", 20) // would also fail the balance check
	target := newTestWallet("EUR", 100)

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, source.ID).Return(source, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, target.ID).Return(target, nil)

	_, err := d.svc.Transfer(ctx, ports.TransferRequest{
		SourceWalletID: source.ID,
		TargetWalletID: target.ID,
		Amount:         50,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "The wallets must have the same currency.")
}

func TestTransferService_Transfer_InsufficientBalance(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	source := newTestWallet("USD", 20)
	target := newTestWallet("USD", 100)

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, source.ID).Return(source, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, target.ID).Return(target, nil)

	_, err := d.svc.Transfer(ctx, ports.TransferRequest{
		SourceWalletID: source.ID,
		TargetWalletID: target.ID,
		Amount:         50,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindBusinessRuleViolation, appErrKind(t, err))
	assert.Contains(t, err.Error(), "Insufficient balance in the source wallet.")
}

func TestTransferService_Transfer_ExactBalanceSucceeds(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	source := newTestWallet("USD", 50)
	target := newTestWallet("USD", 0)

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, source.ID).Return(source, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, target.ID).Return(target, nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, source.ID, int64(0)).Return(nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, target.ID, int64(50)).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.publisher.EXPECT().PublishTransferCompleted(ctx, gomock.Any()).Return(nil)

	txn, err := d.svc.Transfer(ctx, ports.TransferRequest{
		SourceWalletID: source.ID,
		TargetWalletID: target.ID,
		Amount:         50,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), txn.Amount)
}

func TestTransferService_Transfer_BeginFails(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.transactor.EXPECT().Begin(ctx).Return(nil, errors.New("pool exhausted"))

	_, err := d.svc.Transfer(ctx, ports.TransferRequest{
		SourceWalletID: uuid.New(),
		TargetWalletID: uuid.New(),
		Amount:         50,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindStorageFailure, appErrKind(t, err))
}

func TestTransferService_Transfer_PublishFailureDoesNotFailTransfer(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	tx := &mockTx{}
	source := newTestWallet("USD", 200)
	target := newTestWallet("USD", 100)

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, source.ID).Return(source, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, target.ID).Return(target, nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, source.ID, gomock.Any()).Return(nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, target.ID, gomock.Any()).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.publisher.EXPECT().PublishTransferCompleted(ctx, gomock.Any()).Return(errors.New("nats down"))

	txn, err := d.svc.Transfer(ctx, ports.TransferRequest{
		SourceWalletID: source.ID,
		TargetWalletID: target.ID,
		Amount:         50,
	})
	require.NoError(t, err)
	require.NotNil(t, txn)
}

func TestTransferService_Transfer_NilPublisher(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()
	d.svc = NewTransferService(d.walletRepo, d.txRepo, d.transactor, nil, zerolog.Nop())

	ctx := context.Background()
	tx := &mockTx{}
	source := newTestWallet("USD", 200)
	target := newTestWallet("USD", 100)

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, source.ID).Return(source, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, target.ID).Return(target, nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, source.ID, gomock.Any()).Return(nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, target.ID, gomock.Any()).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	_, err := d.svc.Transfer(ctx, ports.TransferRequest{
		SourceWalletID: source.ID,
		TargetWalletID: target.ID,
		Amount:         50,
	})
	require.NoError(t, err)
}

// ==================== GetTransactionsByWallet Tests ====================

func TestTransferService_GetTransactionsByWallet(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wallet := newTestWallet("USD", 100)
	txns := []domain.Transaction{
		{ID: uuid.New(), Amount: 50, WalletOutgoingID: wallet.ID},
		{ID: uuid.New(), Amount: 25, WalletIncomingID: wallet.ID},
	}

	d.walletRepo.EXPECT().GetByID(ctx, wallet.ID).Return(wallet, nil)
	d.txRepo.EXPECT().GetAllByWalletID(ctx, wallet.ID).Return(txns, nil)

	result, err := d.svc.GetTransactionsByWallet(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, txns, result)
}

func TestTransferService_GetTransactionsByWallet_WalletNotFound(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	d.walletRepo.EXPECT().GetByID(ctx, walletID).Return(nil, nil)

	_, err := d.svc.GetTransactionsByWallet(ctx, walletID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, appErrKind(t, err))
	assert.Contains(t, err.Error(), walletID.String())
}

func TestTransferService_GetTransactionsByWallet_EmptyIsValid(t *testing.T) {
	d := setupTransferService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	wallet := newTestWallet("USD", 100)

	d.walletRepo.EXPECT().GetByID(ctx, wallet.ID).Return(wallet, nil)
	d.txRepo.EXPECT().GetAllByWalletID(ctx, wallet.ID).Return([]domain.Transaction{}, nil)

	result, err := d.svc.GetTransactionsByWallet(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Empty(t, result)
}
