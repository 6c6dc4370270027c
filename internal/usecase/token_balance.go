package usecase

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/bindings"
)

// TokenBalanceParams contains parameters for reading a token balance
type TokenBalanceParams struct {
	Symbol  string // record key, defaults to "usdc"
	Account string // defaults to the selected signer
}

// TokenBalanceResult contains a token balance
type TokenBalanceResult struct {
	Token    common.Address `json:"token" yaml:"token"`
	Symbol   string         `json:"symbol" yaml:"symbol"`
	Decimals uint8          `json:"decimals" yaml:"decimals"`
	Account  common.Address `json:"account" yaml:"account"`
	Balance  *big.Int       `json:"balance" yaml:"balance"`
}

// Formatted renders the balance in whole token units
func (r *TokenBalanceResult) Formatted() string {
	if r.Balance == nil {
		return "0"
	}
	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(r.Decimals)), nil)
	whole, frac := new(big.Int).QuoRem(r.Balance, unit, new(big.Int))
	if r.Decimals == 0 {
		return whole.String()
	}
	fracStr := frac.String()
	fracStr = strings.Repeat("0", int(r.Decimals)-len(fracStr)) + fracStr
	fracStr = strings.TrimRight(fracStr, "0")
	if fracStr == "" {
		return whole.String()
	}
	return whole.String() + "." + fracStr
}

// TokenBalance reads an auxiliary token balance. It never submits a transaction.
type TokenBalance struct {
	transactor *Transactor
}

// NewTokenBalance creates a new TokenBalance use case
func NewTokenBalance(transactor *Transactor) *TokenBalance {
	return &TokenBalance{transactor: transactor}
}

// Run executes the lookup
func (uc *TokenBalance) Run(ctx context.Context, params TokenBalanceParams) (*TokenBalanceResult, error) {
	symbol := strings.ToLower(firstNonEmpty(params.Symbol, DefaultTokenSymbol))

	session, err := uc.transactor.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	tokenAddr := session.Record.Token(symbol)
	if !common.IsHexAddress(tokenAddr) {
		return nil, fmt.Errorf("%w: %s (run token deploy first)", domain.ErrMissingContractAddress, symbol)
	}
	token := common.HexToAddress(tokenAddr)

	var account common.Address
	switch {
	case params.Account != "":
		if !common.IsHexAddress(params.Account) {
			return nil, &domain.ValidationError{Field: "account", Reason: "not a hex address: " + params.Account}
		}
		account = common.HexToAddress(params.Account)
	default:
		cred, ok := session.Profile.Signer(uc.transactor.cfg.SignerIndex)
		if !ok {
			return nil, &domain.NetworkResolutionError{Network: session.Profile.Name, Reason: "no account to query", Err: domain.ErrNoSigner}
		}
		account = cred.Address()
	}

	erc20 := bindings.NewERC20()
	raw, err := session.Conn.Call(ctx, token, erc20.PackBalanceOf(account))
	if err != nil {
		return nil, err
	}
	balance, err := erc20.UnpackBalanceOf(raw)
	if err != nil {
		return nil, err
	}

	raw, err = session.Conn.Call(ctx, token, erc20.PackDecimals())
	if err != nil {
		return nil, err
	}
	decimals, err := erc20.UnpackDecimals(raw)
	if err != nil {
		return nil, err
	}

	name := strings.ToUpper(symbol)
	if raw, err := session.Conn.Call(ctx, token, erc20.PackSymbol()); err == nil {
		if s, err := erc20.UnpackSymbol(raw); err == nil && s != "" {
			name = s
		}
	}

	return &TokenBalanceResult{
		Token:    token,
		Symbol:   name,
		Decimals: decimals,
		Account:  account,
		Balance:  balance,
	}, nil
}
