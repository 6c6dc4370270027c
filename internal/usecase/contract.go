package usecase

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/bindings"
)

// contractAddress returns the deployed NFTree address recorded under key
func contractAddress(record *domain.ConfigRecord, key string) (common.Address, error) {
	if key == "" {
		key = domain.DefaultContractKey
	}
	addr, ok := record.Contracts.Lookup(key)
	if !ok {
		return common.Address{}, fmt.Errorf("%w: contract_address.%s (run deploy first)", domain.ErrMissingContractAddress, key)
	}
	if !common.IsHexAddress(addr) {
		return common.Address{}, &domain.ValidationError{Field: "contract_address." + key, Reason: "not a hex address: " + addr}
	}
	return common.HexToAddress(addr), nil
}

// callPayload builds a contract call payload named after the selected method
func callPayload(contract *bindings.RifaiNFTree, to common.Address, data []byte) domain.Payload {
	method, err := contract.MethodName(data)
	if err != nil {
		method = "call"
	}
	return domain.Payload{To: &to, Data: data, Method: method}
}
