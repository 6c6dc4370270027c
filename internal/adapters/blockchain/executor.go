package blockchain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
)

// Submit signs payload with the credential and broadcasts it once. The nonce is
// read from the network, never from a local counter. beforeBroadcast runs after
// signing and may abort the submission.
func (c *Connection) Submit(ctx context.Context, cred domain.Credential, payload domain.Payload, fee *domain.FeeQuote, beforeBroadcast usecase.BroadcastHook) (*domain.PendingTransaction, error) {
	if cred.Key == nil {
		return nil, errors.New("no signing credential")
	}
	if fee == nil || fee.BoostedFeePerUnit == nil {
		return nil, errors.New("no fee quote")
	}

	from := cred.Address()
	value := payload.Value
	if value == nil {
		value = new(big.Int)
	}

	nonce, err := c.client.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce for %s: %w", from.Hex(), err)
	}

	gasLimit, err := c.client.EstimateGas(ctx, ethereum.CallMsg{
		From:     from,
		To:       payload.To,
		GasPrice: fee.BoostedFeePerUnit,
		Value:    value,
		Data:     payload.Data,
	})
	if err != nil {
		return nil, &domain.TransactionRejectedError{Nonce: nonce, Err: fmt.Errorf("gas estimation failed: %w", err)}
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: fee.BoostedFeePerUnit,
		Gas:      gasLimit,
		To:       payload.To,
		Value:    value,
		Data:     payload.Data,
	})

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), cred.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	pending := &domain.PendingTransaction{
		Hash:        signedTx.Hash(),
		Nonce:       nonce,
		From:        from,
		To:          payload.To,
		Fee:         fee,
		GasLimit:    gasLimit,
		SubmittedAt: c.now().UTC(),
	}
	if payload.IsCreation() {
		expected := crypto.CreateAddress(from, nonce)
		pending.ExpectedAddress = &expected
	}

	if beforeBroadcast != nil {
		if err := beforeBroadcast(pending); err != nil {
			return nil, err
		}
	}

	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		var rpcErr rpc.Error
		switch {
		case isAlreadyKnown(err):
			c.log.Info("transaction already known to the node", "hash", pending.Hash.Hex())
		case errors.As(err, &rpcErr):
			return nil, &domain.TransactionRejectedError{Hash: pending.Hash, Nonce: nonce, Err: err}
		default:
			// the node may still have accepted it
			return nil, fmt.Errorf("broadcast of %s did not complete, rerun to check its outcome: %w", pending.Hash.Hex(), err)
		}
	}

	c.log.Info("transaction submitted",
		"method", payload.Method,
		"hash", pending.Hash.Hex(),
		"nonce", nonce,
		"gasLimit", gasLimit,
		"gasPrice", fee.BoostedFeePerUnit,
	)

	return pending, nil
}

// AwaitConfirmation polls for the receipt of pending until it is mined or the
// confirmation window elapses. It does not resubmit.
func (c *Connection) AwaitConfirmation(ctx context.Context, pending *domain.PendingTransaction) (*domain.Receipt, error) {
	waitCtx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.LookupReceipt(waitCtx, pending.Hash)
		if err != nil {
			var rejected *domain.TransactionRejectedError
			if errors.As(err, &rejected) {
				rejected.Nonce = pending.Nonce
				return nil, rejected
			}
			c.log.Debug("receipt lookup failed, retrying", "hash", pending.Hash.Hex(), "error", err)
		} else if receipt != nil {
			c.log.Info("transaction confirmed",
				"hash", receipt.Hash.Hex(),
				"block", receipt.BlockNumber,
				"gasUsed", receipt.GasUsed,
			)
			return receipt, nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, &domain.TransactionTimeoutError{Hash: pending.Hash, Timeout: c.confirmTimeout.String()}
		case <-ticker.C:
		}
	}
}

// LookupReceipt returns the receipt of hash, or nil if it is not mined yet.
// A reverted transaction yields a TransactionRejectedError.
func (c *Connection) LookupReceipt(ctx context.Context, hash common.Hash) (*domain.Receipt, error) {
	receipt, err := c.client.TransactionReceipt(ctx, hash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, nil
		}
		return nil, err
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, &domain.TransactionRejectedError{Hash: hash, Err: domain.ErrReverted}
	}

	out := &domain.Receipt{
		Hash:    hash,
		GasUsed: receipt.GasUsed,
	}
	if receipt.BlockNumber != nil {
		out.BlockNumber = receipt.BlockNumber.Uint64()
	}
	if receipt.ContractAddress != (common.Address{}) {
		addr := receipt.ContractAddress
		out.ContractAddress = &addr
	}
	return out, nil
}

// ConfirmedNonce returns the number of transactions from account included in the latest block
func (c *Connection) ConfirmedNonce(ctx context.Context, account common.Address) (uint64, error) {
	nonce, err := c.client.NonceAt(ctx, account, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get nonce for %s: %w", account.Hex(), err)
	}
	return nonce, nil
}

// isAlreadyKnown reports a node answer meaning the exact transaction is already in its pool
func isAlreadyKnown(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "already known")
}
