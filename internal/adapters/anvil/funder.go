package anvil

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
)

// setBalanceMethods are tried in order; anvil accepts both, hardhat only the second
var setBalanceMethods = []string{"anvil_setBalance", "hardhat_setBalance"}

// Funder credits synthetic balances through the dev node's cheat RPC methods
type Funder struct {
	log *slog.Logger
}

// NewFunder creates a new Funder
func NewFunder(log *slog.Logger) *Funder {
	return &Funder{log: log}
}

// Fund sets the balance of account on the node at endpoint
func (f *Funder) Fund(ctx context.Context, endpoint string, account common.Address, balance *big.Int) error {
	client, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", endpoint, err)
	}
	defer client.Close()

	var lastErr error
	for _, method := range setBalanceMethods {
		err := client.CallContext(ctx, nil, method, account, hexutil.EncodeBig(balance))
		if err == nil {
			f.log.Debug("account funded", "account", account.Hex(), "method", method)
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to set balance of %s: %w", account.Hex(), lastErr)
}

// Ensure Funder implements AccountFunder
var _ usecase.AccountFunder = (*Funder)(nil)
