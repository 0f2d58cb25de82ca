package dto

// CreateWalletRequest is the request body for wallet onboarding.
// Amount fields are integer minor units (cents). Currency membership in
// the allowed set and the non-negative balance rule are validated by the
// service after normalization, so inputs like " usd " bind fine here.
type CreateWalletRequest struct {
	UserDocument   string `json:"user_document" binding:"required,max=50,safe_document"`
	UserName       string `json:"user_name" binding:"required,min=1,max=100"`
	Currency       string `json:"currency" binding:"required,max=10"`
	InitialBalance int64  `json:"initial_balance"`
}

// TransferRequest is the request body for a point-to-point transfer.
// The amount is deliberately unconstrained here: amount validation is
// the first business rule of the transfer pipeline.
type TransferRequest struct {
	SourceWalletID string `json:"source_wallet_id" binding:"required,uuid"`
	TargetWalletID string `json:"target_wallet_id" binding:"required,uuid"`
	Amount         int64  `json:"amount"`
}

// WalletResponse is the response body for wallet resources.
type WalletResponse struct {
	ID           string `json:"id"`
	UserDocument string `json:"user_document"`
	UserName     string `json:"user_name"`
	Currency     string `json:"currency"`
	Balance      int64  `json:"balance"`
	CreatedAt    string `json:"created_at"`
}

// TransactionResponse is the response body for transaction resources.
type TransactionResponse struct {
	ID               string `json:"id"`
	Amount           int64  `json:"amount"`
	Date             string `json:"date"`
	Description      string `json:"description"`
	WalletOutgoingID string `json:"wallet_outgoing_id"`
	WalletIncomingID string `json:"wallet_incoming_id"`
}

// TransactionListResponse wraps a wallet's transaction history.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Total int                   `json:"total"`
}
