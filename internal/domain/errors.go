package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidChainID is returned when a chain ID is invalid
	ErrInvalidChainID = errors.New("invalid chain ID")

	// ErrNoBaseFee is returned when the latest header carries no base fee (pre-London chain)
	ErrNoBaseFee = errors.New("network does not expose a base fee")

	// ErrReverted is returned when a mined transaction has a failed status
	ErrReverted = errors.New("transaction reverted")

	// ErrMissingContractAddress is returned when no deployed address is known for a contract key
	ErrMissingContractAddress = errors.New("contract address not configured")

	// ErrAborted is returned when the operator declines to broadcast
	ErrAborted = errors.New("aborted by user")

	// ErrPendingMismatch is returned when a journaled transaction carries a different payload than the current request
	ErrPendingMismatch = errors.New("pending transaction was sent with a different payload")

	// ErrNoSigner is returned when the profile has no credential at the requested index
	ErrNoSigner = errors.New("no signing credential")
)

// ConfigLoadError is returned when the configuration record cannot be read or parsed
type ConfigLoadError struct {
	Path string
	Err  error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("failed to load config %s: %v", e.Path, e.Err)
}

func (e *ConfigLoadError) Unwrap() error { return e.Err }

// PersistenceError is returned when the configuration record cannot be written back
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist config %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NetworkResolutionError is returned when a network name cannot be turned into a profile
type NetworkResolutionError struct {
	Network     string
	Reason      string
	Suggestions []string
	Err         error
}

func (e *NetworkResolutionError) Error() string {
	msg := fmt.Sprintf("cannot resolve network %q", e.Network)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *NetworkResolutionError) Unwrap() error { return e.Err }

// FeeEstimationError is returned when no boosted fee can be derived from the network
type FeeEstimationError struct {
	Network string
	Err     error
}

func (e *FeeEstimationError) Error() string {
	return fmt.Sprintf("fee estimation failed on %s: %v", e.Network, e.Err)
}

func (e *FeeEstimationError) Unwrap() error { return e.Err }

// ValidationError is returned when a payload fails local validation. It never reaches the chain.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TransactionRejectedError is returned when the network refuses a transaction,
// either at submission or by reverting it.
type TransactionRejectedError struct {
	Hash  common.Hash // zero when rejected before broadcast
	Nonce uint64
	Err   error
}

func (e *TransactionRejectedError) Error() string {
	if e.Hash == (common.Hash{}) {
		return fmt.Sprintf("transaction rejected (nonce %d): %v", e.Nonce, e.Err)
	}
	return fmt.Sprintf("transaction %s rejected (nonce %d): %v", e.Hash.Hex(), e.Nonce, e.Err)
}

func (e *TransactionRejectedError) Unwrap() error { return e.Err }

// TransactionTimeoutError is returned when a submitted transaction is not included in time.
// The transaction may still be mined later.
type TransactionTimeoutError struct {
	Hash    common.Hash
	Timeout string
}

func (e *TransactionTimeoutError) Error() string {
	return fmt.Sprintf("transaction %s not included within %s; it may still be mined, rerun to pick it up", e.Hash.Hex(), e.Timeout)
}
