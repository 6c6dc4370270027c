package usecase

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
)

// DevNode operations
const (
	DevNodeStart   = "start"
	DevNodeStop    = "stop"
	DevNodeRestart = "restart"
	DevNodeStatus  = "status"
	DevNodeLogs    = "logs"
	DevNodeFund    = "fund"
)

// ManageDevNodeParams contains parameters for dev node operations
type ManageDevNodeParams struct {
	Operation string
	Name      string
	Port      string
	ChainID   uint64
	// LogWriter receives the node log for the logs operation
	LogWriter io.Writer
}

// ManageDevNodeResult contains the result of dev node operations
type ManageDevNodeResult struct {
	Operation string                 `json:"operation" yaml:"operation"`
	Node      *domain.DevNode        `json:"node" yaml:"node"`
	Status    *domain.DevNodeStatus  `json:"status,omitempty" yaml:"status,omitempty"`
	Funded    []domain.FundedAccount `json:"funded,omitempty" yaml:"funded,omitempty"`
	Message   string                 `json:"message" yaml:"message"`
}

// ManageDevNode handles local development node operations
type ManageDevNode struct {
	manager  DevNodeManager
	funder   AccountFunder
	store    ConfigStore
	resolver NetworkResolver
	progress ProgressSink
}

// NewManageDevNode creates a new dev node management use case
func NewManageDevNode(manager DevNodeManager, funder AccountFunder, store ConfigStore, resolver NetworkResolver, progress ProgressSink) *ManageDevNode {
	return &ManageDevNode{
		manager:  manager,
		funder:   funder,
		store:    store,
		resolver: resolver,
		progress: progress,
	}
}

// Run performs the dev node operation
func (m *ManageDevNode) Run(ctx context.Context, params ManageDevNodeParams) (*ManageDevNodeResult, error) {
	node := &domain.DevNode{
		Name:    params.Name,
		Port:    params.Port,
		ChainID: params.ChainID,
	}

	switch params.Operation {
	case DevNodeStart:
		return m.start(ctx, node)
	case DevNodeStop:
		return m.stop(ctx, node)
	case DevNodeRestart:
		return m.restart(ctx, node)
	case DevNodeStatus:
		return m.status(ctx, node)
	case DevNodeLogs:
		return m.logs(ctx, node, params.LogWriter)
	case DevNodeFund:
		return m.fund(ctx, node)
	default:
		return nil, fmt.Errorf("unknown operation: %s", params.Operation)
	}
}

func (m *ManageDevNode) start(ctx context.Context, node *domain.DevNode) (*ManageDevNodeResult, error) {
	m.progress.Info(fmt.Sprintf("Starting dev node '%s' on port %s...", nodeName(node), nodePort(node)))

	if err := m.manager.Start(ctx, node); err != nil {
		return nil, fmt.Errorf("failed to start dev node: %w", err)
	}

	status, err := m.manager.GetStatus(ctx, node)
	if err != nil {
		return nil, fmt.Errorf("failed to get status after start: %w", err)
	}

	return &ManageDevNodeResult{
		Operation: DevNodeStart,
		Node:      node,
		Status:    status,
		Message:   fmt.Sprintf("Dev node '%s' started with PID %d", node.Name, status.PID),
	}, nil
}

func (m *ManageDevNode) stop(ctx context.Context, node *domain.DevNode) (*ManageDevNodeResult, error) {
	status, err := m.manager.GetStatus(ctx, node)
	if err != nil || !status.Running {
		return &ManageDevNodeResult{
			Operation: DevNodeStop,
			Node:      node,
			Message:   fmt.Sprintf("Dev node '%s' is not running", node.Name),
		}, nil
	}

	if err := m.manager.Stop(ctx, node); err != nil {
		return nil, fmt.Errorf("failed to stop dev node: %w", err)
	}

	return &ManageDevNodeResult{
		Operation: DevNodeStop,
		Node:      node,
		Message:   fmt.Sprintf("Dev node '%s' stopped", node.Name),
	}, nil
}

func (m *ManageDevNode) restart(ctx context.Context, node *domain.DevNode) (*ManageDevNodeResult, error) {
	status, err := m.manager.GetStatus(ctx, node)
	if err == nil && status.Running {
		if err := m.manager.Stop(ctx, node); err != nil {
			return nil, fmt.Errorf("failed to stop dev node: %w", err)
		}
	}

	result, err := m.start(ctx, node)
	if err != nil {
		return nil, err
	}
	result.Operation = DevNodeRestart
	result.Message = fmt.Sprintf("Dev node '%s' restarted with PID %d", node.Name, result.Status.PID)
	return result, nil
}

func (m *ManageDevNode) status(ctx context.Context, node *domain.DevNode) (*ManageDevNodeResult, error) {
	status, err := m.manager.GetStatus(ctx, node)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return &ManageDevNodeResult{Operation: DevNodeStatus, Node: node, Status: status}, nil
}

func (m *ManageDevNode) logs(ctx context.Context, node *domain.DevNode, w io.Writer) (*ManageDevNodeResult, error) {
	if w == nil {
		return nil, fmt.Errorf("no log writer given")
	}
	if err := m.manager.StreamLogs(ctx, node, w); err != nil {
		return nil, err
	}
	return &ManageDevNodeResult{Operation: DevNodeLogs, Node: node}, nil
}

// fund credits every credential of the local network. Credentials that carry
// no synthetic balance get the default one.
func (m *ManageDevNode) fund(ctx context.Context, node *domain.DevNode) (*ManageDevNodeResult, error) {
	record, err := m.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := m.resolver.Resolve(ctx, domain.LocalNetworkName, record)
	if err != nil {
		return nil, err
	}

	result := &ManageDevNodeResult{Operation: DevNodeFund, Node: node}
	for _, cred := range profile.Credentials {
		balance := cred.Balance
		if balance == nil {
			balance = new(big.Int).Set(domain.LocalAccountBalance)
		}
		if err := m.funder.Fund(ctx, profile.Endpoint, cred.Address(), balance); err != nil {
			return nil, err
		}
		result.Funded = append(result.Funded, domain.FundedAccount{
			Address: cred.Address().Hex(),
			Balance: balance.String(),
		})
	}
	result.Message = fmt.Sprintf("Funded %d account(s) on %s", len(result.Funded), profile.Endpoint)
	return result, nil
}

func nodeName(node *domain.DevNode) string {
	if node.Name == "" {
		return "anvil"
	}
	return node.Name
}

func nodePort(node *domain.DevNode) string {
	if node.Port == "" {
		return "8545"
	}
	return node.Port
}
