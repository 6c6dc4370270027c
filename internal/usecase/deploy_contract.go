package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/bindings"
)

// DefaultContractName is the artifact deployed when the record names none
const DefaultContractName = "RifaiNFTree"

// DeployContractParams contains parameters for deploying the NFTree contract
type DeployContractParams struct {
	Key            string // contract_address entry, defaults to "lp"
	ContractName   string // overrides the record's contract_name
	Redeploy       bool
	DiscardPending bool
}

// DeployContractResult contains the result of a deployment
type DeployContractResult struct {
	Key          string             `json:"key" yaml:"key"`
	ContractName string             `json:"contractName" yaml:"contract_name"`
	Address      common.Address     `json:"address" yaml:"address"`
	Skipped      bool               `json:"skipped" yaml:"skipped"`
	Transaction  *TransactionResult `json:"transaction,omitempty" yaml:"transaction,omitempty"`
}

// DeployContract deploys the NFTree contract and records its address
type DeployContract struct {
	transactor *Transactor
	artifacts  ArtifactLoader
	progress   ProgressSink
	log        *slog.Logger
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(transactor *Transactor, artifacts ArtifactLoader, progress ProgressSink, log *slog.Logger) *DeployContract {
	return &DeployContract{
		transactor: transactor,
		artifacts:  artifacts,
		progress:   progress,
		log:        log.With("component", "DeployContract"),
	}
}

// Run executes the deployment
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) (*DeployContractResult, error) {
	key := params.Key
	if key == "" {
		key = domain.DefaultContractKey
	}

	session, err := uc.transactor.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	record := session.Record
	name := firstNonEmpty(params.ContractName, record.ContractName, DefaultContractName)
	result := &DeployContractResult{Key: key, ContractName: name}

	if !params.Redeploy {
		if existing, ok := record.Contracts.Lookup(key); ok && common.IsHexAddress(existing) {
			addr := common.HexToAddress(existing)
			deployed, err := session.Conn.HasCode(ctx, addr)
			if err != nil {
				return nil, err
			}
			if deployed {
				uc.log.Info("contract already deployed, skipping", "key", key, "address", addr.Hex())
				result.Address = addr
				result.Skipped = true
				return result, nil
			}
			uc.log.Debug("recorded address has no code, deploying", "key", key, "address", addr.Hex())
		}
	}

	args, err := constructorArgs(record)
	if err != nil {
		return nil, err
	}

	artifact, err := uc.artifacts.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	code, err := artifact.CreationCode()
	if err != nil {
		return nil, err
	}

	contract := bindings.NewRifaiNFTree()
	data := append(code, contract.PackConstructor(args[0], args[1], args[2])...)

	uc.progress.Info(fmt.Sprintf("Deploying %s (admin %s, minter %s, validator %s)", name, args[0].Hex(), args[1].Hex(), args[2].Hex()))

	tx, err := uc.transactor.Execute(ctx, session, TransactionRequest{
		Operation:      "deploy:" + key,
		Payload:        domain.Payload{Data: data, Method: "deploy " + name},
		DiscardPending: params.DiscardPending,
		Apply: func(record *domain.ConfigRecord, receipt *domain.Receipt) error {
			if receipt.ContractAddress == nil {
				return fmt.Errorf("receipt %s carries no contract address", receipt.Hash.Hex())
			}
			record.Contracts.Set(key, receipt.ContractAddress.Hex())
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	result.Address = *tx.Receipt.ContractAddress
	result.Transaction = tx
	return result, nil
}

// constructorArgs reads (default_admin, minter, validator) from the record
func constructorArgs(record *domain.ConfigRecord) ([3]common.Address, error) {
	var out [3]common.Address
	fields := []struct {
		name  string
		value string
	}{
		{"default_admin", record.DefaultAdmin},
		{"minter", record.Minter},
		{"validator", record.Validator},
	}
	for i, f := range fields {
		v := strings.TrimSpace(f.value)
		if !common.IsHexAddress(v) {
			return out, &domain.ValidationError{Field: f.name, Reason: fmt.Sprintf("config must hold a hex address, got %q", v)}
		}
		out[i] = common.HexToAddress(v)
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
