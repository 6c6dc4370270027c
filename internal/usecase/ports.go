package usecase

import (
	"context"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/config"
)

// ConfigStore loads and persists the shared configuration record
type ConfigStore interface {
	Load(ctx context.Context) (*domain.ConfigRecord, error)
	Persist(ctx context.Context, record *domain.ConfigRecord) error
	Path() string
}

// PendingJournal tracks transactions that were broadcast but not yet confirmed
type PendingJournal interface {
	Get(ctx context.Context, key string) (*domain.PendingEntry, error)
	Record(ctx context.Context, key string, entry *domain.PendingEntry) error
	Clear(ctx context.Context, key string) error
}

// LocalConfigRepository handles per-project preferences
type LocalConfigRepository interface {
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, config *config.LocalConfig) error
	GetPath() string
}

// ArtifactLoader reads compiled contract artifacts
type ArtifactLoader interface {
	Load(ctx context.Context, contractName string) (*domain.Artifact, error)
}

// NetworkResolver turns a network name into a per-run profile
type NetworkResolver interface {
	Resolve(ctx context.Context, networkName string, record *domain.ConfigRecord) (*domain.NetworkProfile, error)
	Networks(ctx context.Context) []*domain.Network
}

// NetworkConnector dials the endpoint of a resolved profile
type NetworkConnector interface {
	Connect(ctx context.Context, profile *domain.NetworkProfile) (ChainConnection, error)
}

// ChainConnection is an open connection to one network
type ChainConnection interface {
	FeeEstimator
	TransactionExecutor
	ContractReader
	ChainID() uint64
	Close()
}

// FeeEstimator derives the boosted fee for the current run
type FeeEstimator interface {
	EstimateFee(ctx context.Context) (*domain.FeeQuote, error)
}

// BroadcastHook is called with the signed transaction right before it is broadcast
type BroadcastHook func(pending *domain.PendingTransaction) error

// TransactionExecutor signs, submits and tracks transactions. It never retries.
type TransactionExecutor interface {
	Submit(ctx context.Context, cred domain.Credential, payload domain.Payload, fee *domain.FeeQuote, beforeBroadcast BroadcastHook) (*domain.PendingTransaction, error)
	AwaitConfirmation(ctx context.Context, pending *domain.PendingTransaction) (*domain.Receipt, error)
	// LookupReceipt returns nil when the transaction is not mined yet
	LookupReceipt(ctx context.Context, hash common.Hash) (*domain.Receipt, error)
	ConfirmedNonce(ctx context.Context, account common.Address) (uint64, error)
}

// ContractReader performs read-only calls. It never submits a transaction.
type ContractReader interface {
	Call(ctx context.Context, to common.Address, data []byte) ([]byte, error)
	HasCode(ctx context.Context, address common.Address) (bool, error)
}

// AccountFunder credits synthetic balances on a local node
type AccountFunder interface {
	Fund(ctx context.Context, endpoint string, account common.Address, balance *big.Int) error
}

// DevNodeManager manages the local development node
type DevNodeManager interface {
	Start(ctx context.Context, node *domain.DevNode) error
	Stop(ctx context.Context, node *domain.DevNode) error
	GetStatus(ctx context.Context, node *domain.DevNode) (*domain.DevNodeStatus, error)
	StreamLogs(ctx context.Context, node *domain.DevNode, writer io.Writer) error
}

// NetworkSelector handles interactive selection of a network
type NetworkSelector interface {
	SelectNetwork(ctx context.Context, networks []string, prompt string) (string, error)
}

// Confirmer asks the operator before a transaction is broadcast
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
