package bindings

import (
	"fmt"
	"math/big"

	"github.com/samber/lo"
)

// TreeIDs converts plain tree ids to the uint256 arguments expected by the contract
func TreeIDs(ids []int64) []*big.Int {
	return lo.Map(ids, func(id int64, _ int) *big.Int {
		return big.NewInt(id)
	})
}

// MethodName returns the name of the contract method selected by calldata
// This is a helper method that works alongside the generated ABI bindings
func (rifaiNFTree *RifaiNFTree) MethodName(data []byte) (string, error) {
	if len(data) < 4 {
		return "", fmt.Errorf("calldata too short: %d bytes", len(data))
	}
	method, err := rifaiNFTree.abi.MethodById(data[:4])
	if err != nil {
		return "", err
	}
	return method.Name, nil
}
