package apperror

import (
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an error beyond its HTTP status. Transport code maps
// statuses; callers inside the core branch on Kind.
type Kind string

const (
	KindInvalidRequest        Kind = "INVALID_REQUEST"
	KindNotFound              Kind = "NOT_FOUND"
	KindBusinessRuleViolation Kind = "BUSINESS_RULE_VIOLATION"
	KindConflict              Kind = "CONFLICT"
	KindStorageFailure        Kind = "STORAGE_FAILURE"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Kind       Kind   `json:"-"`
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(kind Kind, code string, message string, httpStatus int) *AppError {
	return &AppError{
		Kind:       kind,
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(kind Kind, code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Kind:       kind,
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Transfer Business Logic (TRF) ----

func ErrInvalidTransferAmount() *AppError {
	return New(KindInvalidRequest, "TRF_001", "The transfer amount must be greater than 0.", http.StatusBadRequest)
}

func ErrSameWallet() *AppError {
	return New(KindInvalidRequest, "TRF_002", "The source and target wallets must be different.", http.StatusBadRequest)
}

func ErrCurrencyMismatch() *AppError {
	return New(KindBusinessRuleViolation, "TRF_003", "The wallets must have the same currency.", http.StatusBadRequest)
}

func ErrInsufficientBalance() *AppError {
	return New(KindBusinessRuleViolation, "TRF_004", "Insufficient balance in the source wallet.", http.StatusBadRequest)
}

// ---- Wallet (WAL) ----

// ErrWalletNotFound names the missing wallet(s), e.g. "source wallet <id>".
func ErrWalletNotFound(missing ...string) *AppError {
	return New(KindNotFound, "WAL_001",
		fmt.Sprintf("Wallet not found: %s.", strings.Join(missing, ", ")),
		http.StatusNotFound)
}

func ErrDuplicateWallet() *AppError {
	return New(KindConflict, "WAL_002", "The user already has an account with this currency.", http.StatusConflict)
}

func ErrInvalidCurrency(allowed []string) *AppError {
	return New(KindInvalidRequest, "WAL_003",
		fmt.Sprintf("The currency must be one of the following: %s.", strings.Join(allowed, ", ")),
		http.StatusBadRequest)
}

func ErrNegativeBalance() *AppError {
	return New(KindInvalidRequest, "WAL_004", "The balance must be greater than or equal to 0.", http.StatusBadRequest)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(KindInvalidRequest, "RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap(KindStorageFailure, "SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 storage failure.
func InternalError(err error) *AppError {
	return Wrap(KindStorageFailure, "SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New(KindInvalidRequest, "REQ_001", message, http.StatusBadRequest)
}
