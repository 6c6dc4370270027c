package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func deployRequest(apply bool) usecase.TransactionRequest {
	req := usecase.TransactionRequest{
		Operation: "deploy:lp",
		Payload:   domain.Payload{Data: []byte{0x60, 0x80}, Method: "deploy RifaiNFTree"},
	}
	if apply {
		req.Apply = func(record *domain.ConfigRecord, receipt *domain.Receipt) error {
			record.Contracts.Set("lp", receipt.ContractAddress.Hex())
			return nil
		}
	}
	return req
}

func TestTransactor_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("submits, confirms and persists", func(t *testing.T) {
		f := newFixture("amoy")
		fee := domain.NewBaseFeeQuote(big.NewInt(100))
		contract := addressOf(0xcc)
		pending := &domain.PendingTransaction{Hash: hashOf(1), Nonce: 7, From: f.signer(), ExpectedAddress: &contract}

		f.conn.On("EstimateFee", mock.Anything).Return(fee, nil)
		f.conn.On("Submit", mock.Anything, f.profile.Credentials[0], mock.Anything, fee).Return(pending, nil)
		f.conn.On("AwaitConfirmation", mock.Anything, pending).Return(&domain.Receipt{Hash: hashOf(1), ContractAddress: &contract}, nil)
		f.store.On("Persist", mock.Anything, f.record).Return(nil)

		session, err := f.tx.Open(ctx)
		require.NoError(t, err)
		result, err := f.tx.Execute(ctx, session, deployRequest(true))
		require.NoError(t, err)

		assert.Equal(t, hashOf(1), result.Hash)
		assert.Equal(t, uint64(7), result.Nonce)
		assert.Equal(t, int64(120), result.Fee.BoostedFeePerUnit.Int64())
		assert.True(t, result.Persisted)
		assert.False(t, result.Recovered)

		addr, ok := f.record.Contracts.Lookup("lp")
		require.True(t, ok)
		assert.Equal(t, contract.Hex(), addr)

		// journalled before broadcast, cleared after persistence
		require.Len(t, f.journal.recorded, 1)
		assert.Equal(t, "amoy", f.journal.recorded[0].Network)
		assert.Equal(t, uint64(80002), f.journal.recorded[0].ChainID)
		assert.Equal(t, &contract, f.journal.recorded[0].ExpectedAddress)
		assert.Equal(t, deployRequest(true).Payload.Digest(), f.journal.recorded[0].PayloadDigest)
		assert.Empty(t, f.journal.entries)
		f.store.AssertExpectations(t)
	})

	t.Run("rejected nonce leaves the record unchanged", func(t *testing.T) {
		f := newFixture("amoy")
		fee := domain.NewBaseFeeQuote(big.NewInt(100))
		rejected := &domain.TransactionRejectedError{Hash: hashOf(2), Nonce: 3, Err: errors.New("nonce too low")}
		pending := &domain.PendingTransaction{Hash: hashOf(2), Nonce: 3, From: f.signer()}

		f.conn.On("EstimateFee", mock.Anything).Return(fee, nil)
		f.conn.On("Submit", mock.Anything, mock.Anything, mock.Anything, fee).Return(pending, rejected)

		session, err := f.tx.Open(ctx)
		require.NoError(t, err)
		before := *f.record

		_, err = f.tx.Execute(ctx, session, deployRequest(true))
		var rejErr *domain.TransactionRejectedError
		require.ErrorAs(t, err, &rejErr)
		assert.Equal(t, uint64(3), rejErr.Nonce)

		assert.Equal(t, before, *f.record)
		f.store.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything)
		f.conn.AssertNotCalled(t, "AwaitConfirmation", mock.Anything, mock.Anything)
		assert.Empty(t, f.journal.entries)
	})

	t.Run("interrupted broadcast keeps the journal entry", func(t *testing.T) {
		f := newFixture("amoy")
		fee := domain.NewBaseFeeQuote(big.NewInt(100))
		pending := &domain.PendingTransaction{Hash: hashOf(6), Nonce: 4, From: f.signer()}
		sendErr := fmt.Errorf("broadcast of %s did not complete: %w", hashOf(6).Hex(), context.DeadlineExceeded)

		f.conn.On("EstimateFee", mock.Anything).Return(fee, nil)
		f.conn.On("Submit", mock.Anything, mock.Anything, mock.Anything, fee).Return(pending, sendErr)

		session, err := f.tx.Open(ctx)
		require.NoError(t, err)
		_, err = f.tx.Execute(ctx, session, deployRequest(true))
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		entry := f.journal.entries[domain.JournalKey("amoy", "deploy:lp")]
		require.NotNil(t, entry, "the next run must look up this hash before sending again")
		assert.Equal(t, hashOf(6), entry.Hash)
		assert.Equal(t, uint64(4), entry.Nonce)
		f.store.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything)
	})

	t.Run("revert clears the journal without persisting", func(t *testing.T) {
		f := newFixture("amoy")
		fee := domain.NewBaseFeeQuote(big.NewInt(100))
		pending := &domain.PendingTransaction{Hash: hashOf(3), Nonce: 1, From: f.signer()}

		f.conn.On("EstimateFee", mock.Anything).Return(fee, nil)
		f.conn.On("Submit", mock.Anything, mock.Anything, mock.Anything, fee).Return(pending, nil)
		f.conn.On("AwaitConfirmation", mock.Anything, pending).
			Return(nil, &domain.TransactionRejectedError{Hash: hashOf(3), Nonce: 1, Err: domain.ErrReverted})

		session, err := f.tx.Open(ctx)
		require.NoError(t, err)
		_, err = f.tx.Execute(ctx, session, deployRequest(true))
		assert.ErrorIs(t, err, domain.ErrReverted)

		f.store.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything)
		assert.Empty(t, f.journal.entries)
	})

	t.Run("timeout keeps the journal entry", func(t *testing.T) {
		f := newFixture("amoy")
		fee := domain.NewBaseFeeQuote(big.NewInt(100))
		pending := &domain.PendingTransaction{Hash: hashOf(4), Nonce: 2, From: f.signer()}

		f.conn.On("EstimateFee", mock.Anything).Return(fee, nil)
		f.conn.On("Submit", mock.Anything, mock.Anything, mock.Anything, fee).Return(pending, nil)
		f.conn.On("AwaitConfirmation", mock.Anything, pending).
			Return(nil, &domain.TransactionTimeoutError{Hash: hashOf(4), Timeout: "5m0s"})

		session, err := f.tx.Open(ctx)
		require.NoError(t, err)
		_, err = f.tx.Execute(ctx, session, deployRequest(true))
		var timeout *domain.TransactionTimeoutError
		require.ErrorAs(t, err, &timeout)

		entry := f.journal.entries[domain.JournalKey("amoy", "deploy:lp")]
		require.NotNil(t, entry)
		assert.Equal(t, hashOf(4), entry.Hash)
		f.store.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything)
	})

	t.Run("persistence failure keeps the journal entry", func(t *testing.T) {
		f := newFixture("amoy")
		fee := domain.NewBaseFeeQuote(big.NewInt(100))
		contract := addressOf(0xcd)
		pending := &domain.PendingTransaction{Hash: hashOf(5), Nonce: 0, From: f.signer()}

		f.conn.On("EstimateFee", mock.Anything).Return(fee, nil)
		f.conn.On("Submit", mock.Anything, mock.Anything, mock.Anything, fee).Return(pending, nil)
		f.conn.On("AwaitConfirmation", mock.Anything, pending).Return(&domain.Receipt{Hash: hashOf(5), ContractAddress: &contract}, nil)
		f.store.On("Persist", mock.Anything, f.record).Return(&domain.PersistenceError{Path: "/tmp/config.json", Err: errors.New("disk full")})

		session, err := f.tx.Open(ctx)
		require.NoError(t, err)
		_, err = f.tx.Execute(ctx, session, deployRequest(true))
		var persistErr *domain.PersistenceError
		require.ErrorAs(t, err, &persistErr)
		assert.NotEmpty(t, f.journal.entries)
	})
}

func TestTransactor_Recovery(t *testing.T) {
	ctx := context.Background()
	key := domain.JournalKey("amoy", "deploy:lp")

	seed := func(f *fixture, nonce uint64) {
		f.journal.entries[key] = &domain.PendingEntry{
			Operation: "deploy:lp",
			Network:   "amoy",
			ChainID:   80002,
			Hash:      hashOf(9),
			Nonce:     nonce,
			From:      f.signer(),
		}
	}

	t.Run("mined transaction is persisted without a new broadcast", func(t *testing.T) {
		f := newFixture("amoy")
		seed(f, 4)
		contract := addressOf(0xee)
		f.conn.On("LookupReceipt", mock.Anything, hashOf(9)).Return(&domain.Receipt{Hash: hashOf(9), ContractAddress: &contract}, nil)
		f.store.On("Persist", mock.Anything, f.record).Return(nil)

		session, err := f.tx.Open(ctx)
		require.NoError(t, err)
		result, err := f.tx.Execute(ctx, session, deployRequest(true))
		require.NoError(t, err)

		assert.True(t, result.Recovered)
		assert.True(t, result.Receipt.Recovered)
		assert.Equal(t, hashOf(9), result.Hash)
		assert.Equal(t, uint64(4), result.Nonce)
		f.conn.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.conn.AssertNotCalled(t, "EstimateFee", mock.Anything)
		assert.Empty(t, f.journal.entries)
	})

	t.Run("reverted transaction is dropped and a new one sent", func(t *testing.T) {
		f := newFixture("amoy")
		seed(f, 4)
		fee := domain.NewBaseFeeQuote(big.NewInt(10))
		contract := addressOf(0xef)
		pending := &domain.PendingTransaction{Hash: hashOf(10), Nonce: 5, From: f.signer()}

		f.conn.On("LookupReceipt", mock.Anything, hashOf(9)).
			Return(nil, &domain.TransactionRejectedError{Hash: hashOf(9), Err: domain.ErrReverted})
		f.conn.On("EstimateFee", mock.Anything).Return(fee, nil)
		f.conn.On("Submit", mock.Anything, mock.Anything, mock.Anything, fee).Return(pending, nil)
		f.conn.On("AwaitConfirmation", mock.Anything, pending).Return(&domain.Receipt{Hash: hashOf(10), ContractAddress: &contract}, nil)
		f.store.On("Persist", mock.Anything, f.record).Return(nil)

		session, err := f.tx.Open(ctx)
		require.NoError(t, err)
		result, err := f.tx.Execute(ctx, session, deployRequest(true))
		require.NoError(t, err)
		assert.False(t, result.Recovered)
		assert.Equal(t, hashOf(10), result.Hash)
	})

	t.Run("unknown transaction with a used nonce is dropped", func(t *testing.T) {
		f := newFixture("amoy")
		seed(f, 4)
		fee := domain.NewBaseFeeQuote(big.NewInt(10))
		pending := &domain.PendingTransaction{Hash: hashOf(11), Nonce: 5, From: f.signer()}
		contract := addressOf(0xf0)

		f.conn.On("LookupReceipt", mock.Anything, hashOf(9)).Return(nil, nil)
		f.conn.On("ConfirmedNonce", mock.Anything, f.signer()).Return(uint64(5), nil)
		f.conn.On("EstimateFee", mock.Anything).Return(fee, nil)
		f.conn.On("Submit", mock.Anything, mock.Anything, mock.Anything, fee).Return(pending, nil)
		f.conn.On("AwaitConfirmation", mock.Anything, pending).Return(&domain.Receipt{Hash: hashOf(11), ContractAddress: &contract}, nil)
		f.store.On("Persist", mock.Anything, f.record).Return(nil)

		session, err := f.tx.Open(ctx)
		require.NoError(t, err)
		result, err := f.tx.Execute(ctx, session, deployRequest(true))
		require.NoError(t, err)
		assert.Equal(t, hashOf(11), result.Hash)
	})

	t.Run("transaction mined while the nonce is read is recovered", func(t *testing.T) {
		f := newFixture("amoy")
		seed(f, 4)
		contract := addressOf(0xf2)

		f.conn.On("LookupReceipt", mock.Anything, hashOf(9)).Return(nil, nil).Once()
		f.conn.On("ConfirmedNonce", mock.Anything, f.signer()).Return(uint64(5), nil)
		f.conn.On("LookupReceipt", mock.Anything, hashOf(9)).Return(&domain.Receipt{Hash: hashOf(9), ContractAddress: &contract}, nil).Once()
		f.store.On("Persist", mock.Anything, f.record).Return(nil)

		session, err := f.tx.Open(ctx)
		require.NoError(t, err)
		result, err := f.tx.Execute(ctx, session, deployRequest(true))
		require.NoError(t, err)

		assert.True(t, result.Recovered)
		assert.Equal(t, hashOf(9), result.Hash)
		f.conn.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.conn.AssertNumberOfCalls(t, "LookupReceipt", 2)
	})

	t.Run("entry for the same payload is recovered", func(t *testing.T) {
		f := newFixture("amoy")
		seed(f, 4)
		f.journal.entries[key].PayloadDigest = deployRequest(true).Payload.Digest()
		contract := addressOf(0xf3)

		f.conn.On("LookupReceipt", mock.Anything, hashOf(9)).Return(&domain.Receipt{Hash: hashOf(9), ContractAddress: &contract}, nil)
		f.store.On("Persist", mock.Anything, f.record).Return(nil)

		session, err := f.tx.Open(ctx)
		require.NoError(t, err)
		result, err := f.tx.Execute(ctx, session, deployRequest(true))
		require.NoError(t, err)
		assert.True(t, result.Recovered)
	})

	t.Run("entry for a different payload is refused", func(t *testing.T) {
		f := newFixture("amoy")
		seed(f, 4)
		other := domain.Payload{Data: []byte{0x60, 0x81}}
		f.journal.entries[key].PayloadDigest = other.Digest()

		session, err := f.tx.Open(ctx)
		require.NoError(t, err)
		_, err = f.tx.Execute(ctx, session, deployRequest(true))
		require.ErrorIs(t, err, domain.ErrPendingMismatch)
		assert.Contains(t, err.Error(), "--discard-pending")
		assert.Contains(t, err.Error(), hashOf(9).Hex())

		assert.NotNil(t, f.journal.entries[key], "the entry is kept for the operator to decide")
		f.conn.AssertNotCalled(t, "LookupReceipt", mock.Anything, mock.Anything)
		f.conn.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.store.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything)
	})

	t.Run("unknown transaction with an unused nonce is awaited, not resubmitted", func(t *testing.T) {
		f := newFixture("amoy")
		seed(f, 4)
		contract := addressOf(0xf1)

		f.conn.On("LookupReceipt", mock.Anything, hashOf(9)).Return(nil, nil)
		f.conn.On("ConfirmedNonce", mock.Anything, f.signer()).Return(uint64(4), nil)
		f.conn.On("AwaitConfirmation", mock.Anything, mock.MatchedBy(func(p *domain.PendingTransaction) bool {
			return p.Hash == hashOf(9) && p.Nonce == 4
		})).Return(&domain.Receipt{Hash: hashOf(9), ContractAddress: &contract}, nil)
		f.store.On("Persist", mock.Anything, f.record).Return(nil)

		session, err := f.tx.Open(ctx)
		require.NoError(t, err)
		result, err := f.tx.Execute(ctx, session, deployRequest(true))
		require.NoError(t, err)
		assert.True(t, result.Recovered)
		f.conn.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("discard pending skips recovery", func(t *testing.T) {
		f := newFixture("amoy")
		seed(f, 4)
		fee := domain.NewBaseFeeQuote(big.NewInt(10))
		pending := &domain.PendingTransaction{Hash: hashOf(12), Nonce: 4, From: f.signer()}

		f.conn.On("EstimateFee", mock.Anything).Return(fee, nil)
		f.conn.On("Submit", mock.Anything, mock.Anything, mock.Anything, fee).Return(pending, nil)
		f.conn.On("AwaitConfirmation", mock.Anything, pending).Return(&domain.Receipt{Hash: hashOf(12)}, nil)

		req := deployRequest(false)
		req.DiscardPending = true

		session, err := f.tx.Open(ctx)
		require.NoError(t, err)
		result, err := f.tx.Execute(ctx, session, req)
		require.NoError(t, err)
		assert.Equal(t, hashOf(12), result.Hash)
		assert.False(t, result.Persisted)
		f.conn.AssertNotCalled(t, "LookupReceipt", mock.Anything, mock.Anything)
	})

	t.Run("entry from another chain is dropped", func(t *testing.T) {
		f := newFixture("amoy")
		seed(f, 4)
		f.journal.entries[key].ChainID = 1
		fee := domain.NewBaseFeeQuote(big.NewInt(10))
		pending := &domain.PendingTransaction{Hash: hashOf(13), Nonce: 0, From: f.signer()}

		f.conn.On("EstimateFee", mock.Anything).Return(fee, nil)
		f.conn.On("Submit", mock.Anything, mock.Anything, mock.Anything, fee).Return(pending, nil)
		f.conn.On("AwaitConfirmation", mock.Anything, pending).Return(&domain.Receipt{Hash: hashOf(13)}, nil)

		session, err := f.tx.Open(ctx)
		require.NoError(t, err)
		_, err = f.tx.Execute(ctx, session, deployRequest(false))
		require.NoError(t, err)
		f.conn.AssertNotCalled(t, "LookupReceipt", mock.Anything, mock.Anything)
	})
}

func TestTransactor_Fee(t *testing.T) {
	ctx := context.Background()
	noBaseFee := &domain.FeeEstimationError{Network: "amoy", Err: domain.ErrNoBaseFee}

	t.Run("static gas price is used when there is no base fee", func(t *testing.T) {
		f := newFixture("amoy")
		f.cfg.StaticGasPrice = big.NewInt(30_000_000_000)
		pending := &domain.PendingTransaction{Hash: hashOf(1), From: f.signer()}

		f.conn.On("EstimateFee", mock.Anything).Return(nil, noBaseFee)
		f.conn.On("Submit", mock.Anything, mock.Anything, mock.Anything, mock.MatchedBy(func(q *domain.FeeQuote) bool {
			return q.Source == domain.FeeSourceStatic && q.BoostedFeePerUnit.Cmp(big.NewInt(30_000_000_000)) == 0
		})).Return(pending, nil)
		f.conn.On("AwaitConfirmation", mock.Anything, pending).Return(&domain.Receipt{Hash: hashOf(1)}, nil)

		session, err := f.tx.Open(ctx)
		require.NoError(t, err)
		result, err := f.tx.Execute(ctx, session, deployRequest(false))
		require.NoError(t, err)
		assert.Equal(t, domain.FeeSourceStatic, result.Fee.Source)
	})

	t.Run("no base fee and no static price fails", func(t *testing.T) {
		f := newFixture("amoy")
		f.conn.On("EstimateFee", mock.Anything).Return(nil, noBaseFee)

		session, err := f.tx.Open(ctx)
		require.NoError(t, err)
		_, err = f.tx.Execute(ctx, session, deployRequest(false))
		var feeErr *domain.FeeEstimationError
		require.ErrorAs(t, err, &feeErr)
		f.conn.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("static price does not mask an RPC failure", func(t *testing.T) {
		f := newFixture("amoy")
		f.cfg.StaticGasPrice = big.NewInt(1)
		f.conn.On("EstimateFee", mock.Anything).Return(nil, &domain.FeeEstimationError{Network: "amoy", Err: errors.New("connection refused")})

		session, err := f.tx.Open(ctx)
		require.NoError(t, err)
		_, err = f.tx.Execute(ctx, session, deployRequest(false))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNoBaseFee)
	})
}

func TestTransactor_Guards(t *testing.T) {
	ctx := context.Background()

	t.Run("local credentials with a balance are funded", func(t *testing.T) {
		f := newFixture(domain.LocalNetworkName)
		f.profile.Credentials[0].Balance = domain.LocalAccountBalance
		fee := domain.NewBaseFeeQuote(big.NewInt(1))
		pending := &domain.PendingTransaction{Hash: hashOf(1), From: f.signer()}

		f.funder.On("Fund", mock.Anything, "http://localhost:8545", f.signer(), domain.LocalAccountBalance).Return(nil)
		f.conn.On("EstimateFee", mock.Anything).Return(fee, nil)
		f.conn.On("Submit", mock.Anything, mock.Anything, mock.Anything, fee).Return(pending, nil)
		f.conn.On("AwaitConfirmation", mock.Anything, pending).Return(&domain.Receipt{Hash: hashOf(1)}, nil)

		session, err := f.tx.Open(ctx)
		require.NoError(t, err)
		_, err = f.tx.Execute(ctx, session, deployRequest(false))
		require.NoError(t, err)
		f.funder.AssertExpectations(t)
	})

	t.Run("declined confirmation aborts before broadcast", func(t *testing.T) {
		f := newFixture("polygon")
		f.cfg.AssumeYes = false
		fee := domain.NewBaseFeeQuote(big.NewInt(1_000_000_000))

		f.conn.On("EstimateFee", mock.Anything).Return(fee, nil)
		f.confirmer.On("Confirm", mock.Anything, "Broadcast deploy RifaiNFTree on polygon at 1.2 gwei").Return(false, nil)

		session, err := f.tx.Open(ctx)
		require.NoError(t, err)
		_, err = f.tx.Execute(ctx, session, deployRequest(false))
		assert.ErrorIs(t, err, domain.ErrAborted)
		f.conn.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, f.journal.recorded)
	})

	t.Run("signer index out of range", func(t *testing.T) {
		f := newFixture("amoy")
		f.cfg.SignerIndex = 3

		session, err := f.tx.Open(ctx)
		require.NoError(t, err)
		_, err = f.tx.Execute(ctx, session, deployRequest(false))
		assert.ErrorIs(t, err, domain.ErrNoSigner)
	})

	t.Run("config load failure stops the run", func(t *testing.T) {
		f := newFixture("amoy")
		f.store.ExpectedCalls = nil
		f.store.On("Load", mock.Anything).Return(nil, &domain.ConfigLoadError{Path: "/tmp/config.json", Err: errors.New("missing owner_key")})

		_, err := f.tx.Open(ctx)
		var loadErr *domain.ConfigLoadError
		require.ErrorAs(t, err, &loadErr)
		f.resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
	})
}
