package blockchain

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// fakeClient is an in-memory ChainClient
type fakeClient struct {
	mu sync.Mutex

	chainID      *big.Int
	baseFee      *big.Int
	pendingNonce uint64
	nonce        uint64
	gas          uint64
	estimateErr  error
	headerErr    error
	sendErr      error
	code         map[common.Address][]byte
	callResult   []byte

	// receipts returns the successive answers of TransactionReceipt
	receipts    []receiptAnswer
	receiptCall int

	sent   []*types.Transaction
	events []string
	closed bool
}

type receiptAnswer struct {
	receipt *types.Receipt
	err     error
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		chainID: big.NewInt(31337),
		baseFee: big.NewInt(1_000_000_000),
		gas:     21_000,
		code:    make(map[common.Address][]byte),
	}
}

func (f *fakeClient) ChainID(context.Context) (*big.Int, error) {
	return f.chainID, nil
}

func (f *fakeClient) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	if f.headerErr != nil {
		return nil, f.headerErr
	}
	return &types.Header{Number: big.NewInt(1), BaseFee: f.baseFee}, nil
}

func (f *fakeClient) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return f.pendingNonce, nil
}

func (f *fakeClient) NonceAt(context.Context, common.Address, *big.Int) (uint64, error) {
	return f.nonce, nil
}

func (f *fakeClient) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return f.gas, f.estimateErr
}

func (f *fakeClient) SendTransaction(_ context.Context, tx *types.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, "send")
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, tx)
	return nil
}

func (f *fakeClient) TransactionReceipt(context.Context, common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.receipts) == 0 {
		return nil, ethereum.NotFound
	}
	i := f.receiptCall
	if i >= len(f.receipts) {
		i = len(f.receipts) - 1
	}
	f.receiptCall++
	return f.receipts[i].receipt, f.receipts[i].err
}

func (f *fakeClient) CallContract(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error) {
	return f.callResult, nil
}

func (f *fakeClient) CodeAt(_ context.Context, account common.Address, _ *big.Int) ([]byte, error) {
	return f.code[account], nil
}

func (f *fakeClient) Close() {
	f.closed = true
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConnection(client *fakeClient) *Connection {
	return &Connection{
		client:         client,
		network:        "hardhat",
		chainID:        client.chainID,
		pollInterval:   time.Millisecond,
		confirmTimeout: time.Second,
		log:            discardLogger(),
		now:            func() time.Time { return time.Date(2024, 12, 22, 10, 0, 0, 0, time.UTC) },
	}
}

// jsonRPCError is an error response returned by the node
type jsonRPCError struct {
	code    int
	message string
}

func (e *jsonRPCError) Error() string  { return e.message }
func (e *jsonRPCError) ErrorCode() int { return e.code }
