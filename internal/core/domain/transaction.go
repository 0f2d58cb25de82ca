package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Transaction is the immutable record of a completed transfer. It stores
// wallet ids rather than live wallet references; "transactions for wallet
// X" is derived by query, never maintained as a back-pointer list.
type Transaction struct {
	ID               uuid.UUID `json:"id"`
	Amount           int64     `json:"amount"`
	Date             time.Time `json:"date"`
	Description      string    `json:"description"`
	WalletOutgoingID uuid.UUID `json:"wallet_outgoing_id"`
	WalletIncomingID uuid.UUID `json:"wallet_incoming_id"`
}

// Involves reports whether the wallet is the sender or the receiver.
func (t *Transaction) Involves(walletID uuid.UUID) bool {
	return t.WalletOutgoingID == walletID || t.WalletIncomingID == walletID
}

// TransferDescription builds the system-generated description referencing
// both parties' user documents.
func TransferDescription(sourceDocument, targetDocument string) string {
	return fmt.Sprintf("Transfer from %s to %s", sourceDocument, targetDocument)
}
