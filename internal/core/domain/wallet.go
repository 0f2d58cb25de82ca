package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Wallet holds a balance in one currency for one user document.
// Balance is kept in minor units (cents) and never goes negative.
type Wallet struct {
	ID           uuid.UUID `json:"id"`
	UserDocument string    `json:"user_document"`
	UserName     string    `json:"user_name"`
	Currency     string    `json:"currency"`
	Balance      int64     `json:"balance"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CanDebit reports whether the wallet holds at least amount.
func (w *Wallet) CanDebit(amount int64) bool {
	return w.Balance >= amount
}

// NormalizeCurrency trims, strips internal whitespace, and uppercases a
// currency code: " us d " -> "USD".
func NormalizeCurrency(currency string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(currency), " ", ""))
}

// NormalizeDocument trims a user document.
func NormalizeDocument(document string) string {
	return strings.TrimSpace(document)
}

// CurrencySet is the configured set of currencies wallets may use.
type CurrencySet struct {
	allowed []string
}

// NewCurrencySet builds a set, normalizing each configured code.
func NewCurrencySet(allowed []string) CurrencySet {
	codes := make([]string, 0, len(allowed))
	for _, c := range allowed {
		codes = append(codes, NormalizeCurrency(c))
	}
	return CurrencySet{allowed: codes}
}

// Contains reports whether the normalized code belongs to the set.
func (s CurrencySet) Contains(currency string) bool {
	for _, c := range s.allowed {
		if c == currency {
			return true
		}
	}
	return false
}

// List returns the allowed codes, for error messages.
func (s CurrencySet) List() []string {
	return s.allowed
}
