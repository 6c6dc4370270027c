package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/config"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
	"github.com/stretchr/testify/mock"
)

// hardhat default account 0
const ownerKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// MockConfigStore is a mock implementation of ConfigStore
type MockConfigStore struct {
	mock.Mock
}

func (m *MockConfigStore) Load(ctx context.Context) (*domain.ConfigRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConfigRecord), args.Error(1)
}

func (m *MockConfigStore) Persist(ctx context.Context, record *domain.ConfigRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockConfigStore) Path() string {
	return "/tmp/config.json"
}

// memJournal is an in-memory PendingJournal that keeps a history of recorded entries
type memJournal struct {
	mu       sync.Mutex
	entries  map[string]*domain.PendingEntry
	recorded []*domain.PendingEntry
	cleared  []string
}

func newMemJournal() *memJournal {
	return &memJournal{entries: make(map[string]*domain.PendingEntry)}
}

func (j *memJournal) Get(_ context.Context, key string) (*domain.PendingEntry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.entries[key], nil
}

func (j *memJournal) Record(_ context.Context, key string, entry *domain.PendingEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries[key] = entry
	j.recorded = append(j.recorded, entry)
	return nil
}

func (j *memJournal) Clear(_ context.Context, key string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.entries, key)
	j.cleared = append(j.cleared, key)
	return nil
}

// MockResolver is a mock implementation of NetworkResolver
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, networkName string, record *domain.ConfigRecord) (*domain.NetworkProfile, error) {
	args := m.Called(ctx, networkName, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NetworkProfile), args.Error(1)
}

func (m *MockResolver) Networks(ctx context.Context) []*domain.Network {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Network)
}

// staticConnector always hands out the same connection
type staticConnector struct {
	conn usecase.ChainConnection
	err  error
}

func (c *staticConnector) Connect(context.Context, *domain.NetworkProfile) (usecase.ChainConnection, error) {
	return c.conn, c.err
}

// MockConnection is a mock implementation of ChainConnection
type MockConnection struct {
	mock.Mock
	chainID uint64
}

func (m *MockConnection) EstimateFee(ctx context.Context) (*domain.FeeQuote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeQuote), args.Error(1)
}

// Submit runs the broadcast hook like the real executor before reporting the outcome
func (m *MockConnection) Submit(ctx context.Context, cred domain.Credential, payload domain.Payload, fee *domain.FeeQuote, hook usecase.BroadcastHook) (*domain.PendingTransaction, error) {
	args := m.Called(ctx, cred, payload, fee)
	pending, _ := args.Get(0).(*domain.PendingTransaction)
	if pending != nil && hook != nil {
		if err := hook(pending); err != nil {
			return nil, err
		}
	}
	if err := args.Error(1); err != nil {
		return nil, err
	}
	return pending, nil
}

func (m *MockConnection) AwaitConfirmation(ctx context.Context, pending *domain.PendingTransaction) (*domain.Receipt, error) {
	args := m.Called(ctx, pending)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockConnection) LookupReceipt(ctx context.Context, hash common.Hash) (*domain.Receipt, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockConnection) ConfirmedNonce(ctx context.Context, account common.Address) (uint64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockConnection) Call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	args := m.Called(ctx, to, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockConnection) HasCode(ctx context.Context, address common.Address) (bool, error) {
	args := m.Called(ctx, address)
	return args.Bool(0), args.Error(1)
}

func (m *MockConnection) ChainID() uint64 { return m.chainID }

func (m *MockConnection) Close() {}

// MockFunder is a mock implementation of AccountFunder
type MockFunder struct {
	mock.Mock
}

func (m *MockFunder) Fund(ctx context.Context, endpoint string, account common.Address, balance *big.Int) error {
	args := m.Called(ctx, endpoint, account, balance)
	return args.Error(0)
}

// MockConfirmer is a mock implementation of Confirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	args := m.Called(ctx, prompt)
	return args.Bool(0), args.Error(1)
}

// MockArtifactLoader is a mock implementation of ArtifactLoader
type MockArtifactLoader struct {
	mock.Mock
}

func (m *MockArtifactLoader) Load(ctx context.Context, contractName string) (*domain.Artifact, error) {
	args := m.Called(ctx, contractName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artifact), args.Error(1)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	events []usecase.ProgressEvent
	infos  []string
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(message string) { m.infos = append(m.infos, message) }

func (m *MockProgressSink) Error(message string) {}

// fixture bundles a Transactor with its collaborators
type fixture struct {
	cfg       *config.RuntimeConfig
	record    *domain.ConfigRecord
	profile   *domain.NetworkProfile
	store     *MockConfigStore
	journal   *memJournal
	resolver  *MockResolver
	conn      *MockConnection
	funder    *MockFunder
	confirmer *MockConfirmer
	progress  *MockProgressSink
	tx        *usecase.Transactor
}

func newFixture(network string) *fixture {
	key, err := crypto.HexToECDSA(ownerKeyHex)
	if err != nil {
		panic(err)
	}

	f := &fixture{
		cfg: &config.RuntimeConfig{NetworkName: network, AssumeYes: true},
		record: &domain.ConfigRecord{
			Provider:     "http://localhost:8545",
			OwnerKey:     "0x" + ownerKeyHex,
			DefaultAdmin: "0x1111111111111111111111111111111111111111",
			Minter:       "0x2222222222222222222222222222222222222222",
			Validator:    "0x3333333333333333333333333333333333333333",
		},
		profile: &domain.NetworkProfile{
			Name:        network,
			Endpoint:    "http://localhost:8545",
			ChainID:     80002,
			Local:       network == domain.LocalNetworkName,
			Credentials: []domain.Credential{{Key: key}},
		},
		store:     &MockConfigStore{},
		journal:   newMemJournal(),
		resolver:  &MockResolver{},
		conn:      &MockConnection{chainID: 80002},
		funder:    &MockFunder{},
		confirmer: &MockConfirmer{},
		progress:  &MockProgressSink{},
	}

	f.store.On("Load", mock.Anything).Return(f.record, nil)
	f.resolver.On("Resolve", mock.Anything, network, f.record).Return(f.profile, nil)

	f.tx = usecase.NewTransactor(
		f.cfg, f.store, f.journal, f.resolver,
		&staticConnector{conn: f.conn},
		f.funder, f.confirmer, f.progress, discardLogger(),
	)
	return f
}

func (f *fixture) signer() common.Address {
	return f.profile.Credentials[0].Address()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func hashOf(b byte) common.Hash {
	return common.BytesToHash([]byte{b})
}

func addressOf(b byte) common.Address {
	return common.BytesToAddress([]byte{b})
}
