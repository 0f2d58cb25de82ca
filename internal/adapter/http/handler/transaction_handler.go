package handler

import (
	"time"

	"wallet-ledger/internal/adapter/http/dto"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"
	"wallet-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionHandler handles transfer and transaction-history endpoints.
type TransactionHandler struct {
	transferSvc ports.TransferService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transferSvc ports.TransferService) *TransactionHandler {
	return &TransactionHandler{transferSvc: transferSvc}
}

// Transfer handles POST /api/v1/transactions/transfer.
func (h *TransactionHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	sourceID, err := uuid.Parse(req.SourceWalletID)
	if err != nil {
		response.Error(c, apperror.Validation("source_wallet_id must be a valid UUID"))
		return
	}
	targetID, err := uuid.Parse(req.TargetWalletID)
	if err != nil {
		response.Error(c, apperror.Validation("target_wallet_id must be a valid UUID"))
		return
	}

	txn, err := h.transferSvc.Transfer(c.Request.Context(), ports.TransferRequest{
		SourceWalletID: sourceID,
		TargetWalletID: targetID,
		Amount:         req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(txn))
}

// GetTransactionsByWallet handles GET /api/v1/transactions/wallets/:walletId.
func (h *TransactionHandler) GetTransactionsByWallet(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("walletId"))
	if err != nil {
		response.Error(c, apperror.Validation("walletId must be a valid UUID"))
		return
	}

	txns, err := h.transferSvc.GetTransactionsByWallet(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, toTransactionResponse(&txns[i]))
	}
	response.OK(c, dto.TransactionListResponse{
		Items: items,
		Total: len(items),
	})
}

func toTransactionResponse(txn *domain.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:               txn.ID.String(),
		Amount:           txn.Amount,
		Date:             txn.Date.Format(time.RFC3339),
		Description:      txn.Description,
		WalletOutgoingID: txn.WalletOutgoingID.String(),
		WalletIncomingID: txn.WalletIncomingID.String(),
	}
}
