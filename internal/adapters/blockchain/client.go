package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/config"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
)

// ChainClient is the subset of the JSON-RPC API used by a connection.
// *ethclient.Client satisfies it.
type ChainClient interface {
	ChainID(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	NonceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (uint64, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	Close()
}

// DialFunc opens a ChainClient for an endpoint
type DialFunc func(ctx context.Context, endpoint string) (ChainClient, error)

// DialEthClient dials endpoint with go-ethereum's client
func DialEthClient(ctx context.Context, endpoint string) (ChainClient, error) {
	client, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Connector implements NetworkConnector
type Connector struct {
	dial           DialFunc
	pollInterval   time.Duration
	confirmTimeout time.Duration
	log            *slog.Logger
}

// NewConnector creates a connector dialing real endpoints
func NewConnector(cfg *config.RuntimeConfig, log *slog.Logger) *Connector {
	return NewConnectorWithDialer(cfg, log, DialEthClient)
}

// NewConnectorWithDialer creates a connector using a custom dial function
func NewConnectorWithDialer(cfg *config.RuntimeConfig, log *slog.Logger, dial DialFunc) *Connector {
	return &Connector{
		dial:           dial,
		pollInterval:   cfg.PollInterval,
		confirmTimeout: cfg.ConfirmTimeout,
		log:            log,
	}
}

// Connect dials the profile endpoint and verifies the chain ID it reports.
// A profile without a chain ID adopts the endpoint's.
func (c *Connector) Connect(ctx context.Context, profile *domain.NetworkProfile) (usecase.ChainConnection, error) {
	client, err := c.dial(ctx, profile.Endpoint)
	if err != nil {
		return nil, &domain.NetworkResolutionError{
			Network: profile.Name,
			Reason:  "failed to connect to " + profile.Endpoint,
			Err:     err,
		}
	}

	networkChainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, &domain.NetworkResolutionError{
			Network: profile.Name,
			Reason:  "failed to get chain ID",
			Err:     err,
		}
	}

	if profile.ChainID == 0 {
		profile.ChainID = networkChainID.Uint64()
	} else if networkChainID.Uint64() != profile.ChainID {
		client.Close()
		return nil, &domain.NetworkResolutionError{
			Network: profile.Name,
			Reason:  fmt.Sprintf("chain ID mismatch: expected %d, endpoint reports %d", profile.ChainID, networkChainID.Uint64()),
			Err:     domain.ErrInvalidChainID,
		}
	}

	c.log.Debug("connected", "network", profile.Name, "chainId", profile.ChainID)

	return &Connection{
		client:         client,
		network:        profile.Name,
		chainID:        new(big.Int).SetUint64(profile.ChainID),
		pollInterval:   c.pollInterval,
		confirmTimeout: c.confirmTimeout,
		log:            c.log.With("network", profile.Name),
		now:            time.Now,
	}, nil
}

// Connection is an open connection to one network. It implements the fee
// estimation, transaction execution and contract reading ports.
type Connection struct {
	client         ChainClient
	network        string
	chainID        *big.Int
	pollInterval   time.Duration
	confirmTimeout time.Duration
	log            *slog.Logger
	now            func() time.Time
}

// ChainID returns the verified chain ID
func (c *Connection) ChainID() uint64 {
	return c.chainID.Uint64()
}

// Close releases the underlying client
func (c *Connection) Close() {
	c.client.Close()
}

// Ensure Connector implements NetworkConnector
var _ usecase.NetworkConnector = (*Connector)(nil)

// Ensure Connection implements ChainConnection
var _ usecase.ChainConnection = (*Connection)(nil)
