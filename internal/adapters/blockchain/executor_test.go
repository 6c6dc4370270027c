package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.HexToECDSA("ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	require.NoError(t, err)
	return key
}

func testAddress(b byte) common.Address {
	return common.BytesToAddress([]byte{b})
}

func TestSubmit_ContractCreation(t *testing.T) {
	client := newFakeClient()
	client.pendingNonce = 7
	client.gas = 1_500_000
	conn := newTestConnection(client)
	cred := domain.Credential{Key: testKey(t)}
	fee := domain.NewBaseFeeQuote(big.NewInt(1_000_000_000))

	var hooked *domain.PendingTransaction
	pending, err := conn.Submit(context.Background(), cred, domain.Payload{Data: []byte{0x60, 0x80}, Method: "RifaiNFTree"}, fee,
		func(p *domain.PendingTransaction) error {
			client.events = append(client.events, "hook")
			hooked = p
			return nil
		})
	require.NoError(t, err)

	assert.Equal(t, []string{"hook", "send"}, client.events, "journal hook runs before broadcast")
	assert.Same(t, pending, hooked)

	require.Len(t, client.sent, 1)
	tx := client.sent[0]
	assert.Equal(t, uint8(types.LegacyTxType), tx.Type())
	assert.Equal(t, uint64(7), tx.Nonce())
	assert.Equal(t, uint64(1_500_000), tx.Gas())
	assert.Equal(t, 0, tx.GasPrice().Cmp(big.NewInt(1_200_000_000)))
	assert.Nil(t, tx.To())
	assert.Equal(t, 0, tx.ChainId().Cmp(big.NewInt(31337)))

	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(31337)), tx)
	require.NoError(t, err)
	assert.Equal(t, cred.Address(), sender)

	assert.Equal(t, tx.Hash(), pending.Hash)
	require.NotNil(t, pending.ExpectedAddress)
	assert.Equal(t, crypto.CreateAddress(cred.Address(), 7), *pending.ExpectedAddress)
}

func TestSubmit_ContractCall(t *testing.T) {
	client := newFakeClient()
	conn := newTestConnection(client)
	to := testAddress(9)

	pending, err := conn.Submit(context.Background(), domain.Credential{Key: testKey(t)},
		domain.Payload{To: &to, Data: []byte{0x01}}, domain.NewStaticFeeQuote(big.NewInt(5)), nil)
	require.NoError(t, err)
	assert.Nil(t, pending.ExpectedAddress)
	require.Len(t, client.sent, 1)
	assert.Equal(t, &to, client.sent[0].To())
	assert.Equal(t, 0, client.sent[0].GasPrice().Cmp(big.NewInt(5)))
}

func TestSubmit_StaleNonceRejected(t *testing.T) {
	client := newFakeClient()
	client.pendingNonce = 3
	client.sendErr = &jsonRPCError{code: -32000, message: "nonce too low: next nonce 4, tx nonce 3"}
	conn := newTestConnection(client)

	_, err := conn.Submit(context.Background(), domain.Credential{Key: testKey(t)},
		domain.Payload{Data: []byte{0x60}}, domain.NewBaseFeeQuote(big.NewInt(10)), nil)

	var rejected *domain.TransactionRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, uint64(3), rejected.Nonce)
	assert.NotEqual(t, common.Hash{}, rejected.Hash)
	assert.Contains(t, err.Error(), "nonce too low")
	assert.Equal(t, []string{"send"}, client.events, "no retry after rejection")
}

func TestSubmit_NodeRefusals(t *testing.T) {
	refusals := []string{
		"insufficient funds for gas * price + value",
		"transaction underpriced",
		"replacement transaction underpriced",
	}
	for _, msg := range refusals {
		t.Run(msg, func(t *testing.T) {
			client := newFakeClient()
			client.sendErr = &jsonRPCError{code: -32000, message: msg}

			_, err := newTestConnection(client).Submit(context.Background(), domain.Credential{Key: testKey(t)},
				domain.Payload{Data: []byte{0x60}}, domain.NewBaseFeeQuote(big.NewInt(10)), nil)

			var rejected *domain.TransactionRejectedError
			require.ErrorAs(t, err, &rejected)
			assert.Contains(t, err.Error(), msg)
		})
	}
}

func TestSubmit_TransportFailureIsNotRejection(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "deadline", err: context.DeadlineExceeded},
		{name: "connection reset", err: errors.New("read tcp 127.0.0.1:8545: connection reset by peer")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newFakeClient()
			client.sendErr = tt.err
			var hooked *domain.PendingTransaction

			_, err := newTestConnection(client).Submit(context.Background(), domain.Credential{Key: testKey(t)},
				domain.Payload{Data: []byte{0x60}}, domain.NewBaseFeeQuote(big.NewInt(10)),
				func(p *domain.PendingTransaction) error { hooked = p; return nil })

			require.Error(t, err)
			var rejected *domain.TransactionRejectedError
			assert.False(t, errors.As(err, &rejected), "outcome is unknown, not refused")
			assert.ErrorIs(t, err, tt.err)
			require.NotNil(t, hooked)
			assert.Contains(t, err.Error(), hooked.Hash.Hex())
		})
	}
}

func TestSubmit_AlreadyKnownIsAccepted(t *testing.T) {
	client := newFakeClient()
	client.pendingNonce = 5
	client.sendErr = &jsonRPCError{code: -32000, message: "already known"}

	pending, err := newTestConnection(client).Submit(context.Background(), domain.Credential{Key: testKey(t)},
		domain.Payload{Data: []byte{0x60}}, domain.NewBaseFeeQuote(big.NewInt(10)), nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), pending.Nonce)
}

func TestSubmit_EstimationRevertRejected(t *testing.T) {
	client := newFakeClient()
	client.estimateErr = errors.New("execution reverted: AccessControl")
	conn := newTestConnection(client)
	hookCalled := false

	_, err := conn.Submit(context.Background(), domain.Credential{Key: testKey(t)},
		domain.Payload{Data: []byte{0x60}}, domain.NewBaseFeeQuote(big.NewInt(10)),
		func(*domain.PendingTransaction) error { hookCalled = true; return nil })

	var rejected *domain.TransactionRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, common.Hash{}, rejected.Hash)
	assert.False(t, hookCalled)
	assert.Empty(t, client.events)
}

func TestSubmit_HookFailureAbortsBroadcast(t *testing.T) {
	client := newFakeClient()
	conn := newTestConnection(client)
	hookErr := errors.New("disk full")

	_, err := conn.Submit(context.Background(), domain.Credential{Key: testKey(t)},
		domain.Payload{Data: []byte{0x60}}, domain.NewBaseFeeQuote(big.NewInt(10)),
		func(*domain.PendingTransaction) error { return hookErr })

	assert.ErrorIs(t, err, hookErr)
	assert.Empty(t, client.sent)
}

func TestAwaitConfirmation_PollsUntilMined(t *testing.T) {
	client := newFakeClient()
	created := testAddress(42)
	client.receipts = []receiptAnswer{
		{err: ethereum.NotFound},
		{err: errors.New("503 service unavailable")},
		{err: ethereum.NotFound},
		{receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(12), GasUsed: 1_234_567, ContractAddress: created}},
	}
	conn := newTestConnection(client)

	receipt, err := conn.AwaitConfirmation(context.Background(), &domain.PendingTransaction{Hash: common.HexToHash("0x01")})
	require.NoError(t, err)
	assert.Equal(t, uint64(12), receipt.BlockNumber)
	assert.Equal(t, uint64(1_234_567), receipt.GasUsed)
	require.NotNil(t, receipt.ContractAddress)
	assert.Equal(t, created, *receipt.ContractAddress)
	assert.Equal(t, 4, client.receiptCall)
}

func TestAwaitConfirmation_Reverted(t *testing.T) {
	client := newFakeClient()
	client.receipts = []receiptAnswer{
		{receipt: &types.Receipt{Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(3)}},
	}
	conn := newTestConnection(client)

	_, err := conn.AwaitConfirmation(context.Background(), &domain.PendingTransaction{Hash: common.HexToHash("0x02"), Nonce: 11})

	var rejected *domain.TransactionRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.True(t, errors.Is(err, domain.ErrReverted))
	assert.Equal(t, uint64(11), rejected.Nonce)
}

func TestAwaitConfirmation_Timeout(t *testing.T) {
	client := newFakeClient()
	conn := newTestConnection(client)
	conn.confirmTimeout = 20 * time.Millisecond

	_, err := conn.AwaitConfirmation(context.Background(), &domain.PendingTransaction{Hash: common.HexToHash("0x03")})

	var timeout *domain.TransactionTimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, common.HexToHash("0x03"), timeout.Hash)
	assert.Empty(t, client.sent, "a timed out transaction is never resubmitted")
}

func TestAwaitConfirmation_Cancelled(t *testing.T) {
	client := newFakeClient()
	conn := newTestConnection(client)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conn.AwaitConfirmation(ctx, &domain.PendingTransaction{Hash: common.HexToHash("0x04")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLookupReceipt_NotMined(t *testing.T) {
	receipt, err := newTestConnection(newFakeClient()).LookupReceipt(context.Background(), common.HexToHash("0x05"))
	require.NoError(t, err)
	assert.Nil(t, receipt)
}

func TestConfirmedNonce(t *testing.T) {
	client := newFakeClient()
	client.nonce = 5
	nonce, err := newTestConnection(client).ConfirmedNonce(context.Background(), testAddress(1))
	require.NoError(t, err)
	assert.Equal(t, uint64(5), nonce)
}
