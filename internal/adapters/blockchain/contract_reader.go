package blockchain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

// Call executes a read-only call against the latest block
func (c *Connection) Call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	out, err := c.client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call to %s failed: %w", to.Hex(), err)
	}
	return out, nil
}

// HasCode reports whether a contract is deployed at address
func (c *Connection) HasCode(ctx context.Context, address common.Address) (bool, error) {
	code, err := c.client.CodeAt(ctx, address, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check code at %s: %w", address.Hex(), err)
	}
	return len(code) > 0, nil
}
