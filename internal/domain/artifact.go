package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Artifact is a compiled contract as emitted by the hardhat toolchain
type Artifact struct {
	ContractName string          `json:"contractName"`
	SourceName   string          `json:"sourceName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}

// CreationCode decodes the deployment bytecode
func (a *Artifact) CreationCode() ([]byte, error) {
	code := strings.TrimSpace(a.Bytecode)
	if code == "" || code == "0x" {
		return nil, fmt.Errorf("artifact %s has no bytecode (abstract contract or interface?)", a.ContractName)
	}
	if strings.Contains(code, "__$") {
		return nil, fmt.Errorf("artifact %s has unlinked library references", a.ContractName)
	}
	if !strings.HasPrefix(code, "0x") {
		code = "0x" + code
	}
	return hexutil.Decode(code)
}
