package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/bindings"
	"github.com/samber/lo"
)

// DefaultTokenSymbol is the auxiliary token deployed by default
const DefaultTokenSymbol = "usdc"

// DeployTokenParams contains parameters for deploying an auxiliary token
type DeployTokenParams struct {
	Symbol         string // record key, defaults to "usdc"
	ContractName   string // artifact name, defaults to the upper-cased symbol
	DiscardPending bool
}

// DeployTokenResult contains the result of a token deployment
type DeployTokenResult struct {
	Symbol       string             `json:"symbol" yaml:"symbol"`
	ContractName string             `json:"contractName" yaml:"contract_name"`
	Address      common.Address     `json:"address" yaml:"address"`
	Transaction  *TransactionResult `json:"transaction" yaml:"transaction"`
}

// DeployToken deploys the test payment token used by campaigns
type DeployToken struct {
	transactor *Transactor
	artifacts  ArtifactLoader
	log        *slog.Logger
}

// NewDeployToken creates a new DeployToken use case
func NewDeployToken(transactor *Transactor, artifacts ArtifactLoader, log *slog.Logger) *DeployToken {
	return &DeployToken{
		transactor: transactor,
		artifacts:  artifacts,
		log:        log.With("component", "DeployToken"),
	}
}

// Run executes the token deployment
func (uc *DeployToken) Run(ctx context.Context, params DeployTokenParams) (*DeployTokenResult, error) {
	symbol := strings.ToLower(firstNonEmpty(params.Symbol, DefaultTokenSymbol))
	if !lo.Contains(domain.AuxiliaryTokenSymbols, symbol) {
		return nil, &domain.ValidationError{Field: "symbol", Reason: fmt.Sprintf("unsupported token %q", symbol)}
	}
	name := firstNonEmpty(params.ContractName, strings.ToUpper(symbol))

	artifact, err := uc.artifacts.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	code, err := artifact.CreationCode()
	if err != nil {
		return nil, err
	}
	data := append(code, bindings.NewERC20().PackConstructor()...)

	session, err := uc.transactor.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	tx, err := uc.transactor.Execute(ctx, session, TransactionRequest{
		Operation:      "token:" + symbol,
		Payload:        domain.Payload{Data: data, Method: "deploy " + name},
		DiscardPending: params.DiscardPending,
		Apply: func(record *domain.ConfigRecord, receipt *domain.Receipt) error {
			if receipt.ContractAddress == nil {
				return fmt.Errorf("receipt %s carries no contract address", receipt.Hash.Hex())
			}
			record.SetToken(symbol, receipt.ContractAddress.Hex())
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("token deployed", "symbol", symbol, "address", tx.Receipt.ContractAddress.Hex())
	return &DeployTokenResult{
		Symbol:       symbol,
		ContractName: name,
		Address:      *tx.Receipt.ContractAddress,
		Transaction:  tx,
	}, nil
}
