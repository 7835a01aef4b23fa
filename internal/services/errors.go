package services

import "errors"

// Terminal business errors. The transfer processor never retries these:
// re-running the operation cannot change the outcome.
var (
	// ErrWalletNotFound is returned when a referenced wallet does not exist.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrJobNotFound is returned when no job exists under the given identifier.
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidAmount is returned for non-positive amounts or amounts with
	// more than two fractional digits.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidArgument is returned for malformed operation parameters,
	// such as an undecodable job payload or a missing wallet reference.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSameWallet is returned when a transfer names the same wallet as
	// source and destination.
	ErrSameWallet = errors.New("source and destination wallets must differ")

	// ErrInsufficientFunds is returned when an operation would drive a
	// balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrDuplicateToken is returned on the synchronous path when a
	// transaction already exists under the submitted idempotency token.
	ErrDuplicateToken = errors.New("duplicate idempotency token")
)

// IsRetryable classifies an error for the job queue's retry policy. Business
// failures are terminal; everything else (lock timeouts, connection loss,
// any unknown storage failure) is presumed transient and retried with
// backoff. Classification depends only on error identity, never on message
// text.
func IsRetryable(err error) bool {
	for _, terminal := range []error{
		ErrWalletNotFound,
		ErrInvalidAmount,
		ErrInvalidArgument,
		ErrSameWallet,
		ErrInsufficientFunds,
		ErrDuplicateToken,
	} {
		if errors.Is(err, terminal) {
			return false
		}
	}
	return true
}
