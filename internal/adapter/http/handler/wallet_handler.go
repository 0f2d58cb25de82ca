package handler

import (
	"time"

	"wallet-ledger/internal/adapter/http/dto"
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"
	"wallet-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet-related endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// CreateWallet handles POST /api/v1/wallets.
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	wallet, err := h.walletSvc.CreateWallet(c.Request.Context(), ports.CreateWalletRequest{
		UserDocument:   req.UserDocument,
		UserName:       req.UserName,
		Currency:       req.Currency,
		InitialBalance: req.InitialBalance,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toWalletResponse(wallet))
}

// ListWallets handles GET /api/v1/wallets with optional currency and
// user_document query filters.
func (h *WalletHandler) ListWallets(c *gin.Context) {
	req := ports.ListWalletsRequest{}
	if currency := c.Query("currency"); currency != "" {
		req.Currency = &currency
	}
	if document := c.Query("user_document"); document != "" {
		req.UserDocument = &document
	}

	wallets, err := h.walletSvc.ListWallets(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.WalletResponse, 0, len(wallets))
	for i := range wallets {
		items = append(items, toWalletResponse(&wallets[i]))
	}
	response.OK(c, items)
}

func toWalletResponse(w *domain.Wallet) dto.WalletResponse {
	return dto.WalletResponse{
		ID:           w.ID.String(),
		UserDocument: w.UserDocument,
		UserName:     w.UserName,
		Currency:     w.Currency,
		Balance:      w.Balance,
		CreatedAt:    w.CreatedAt.Format(time.RFC3339),
	}
}
