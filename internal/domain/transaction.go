package domain

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Payload is what a transaction carries: either a call to an existing contract
// or the init code of a contract creation (To == nil).
type Payload struct {
	To    *common.Address
	Data  []byte
	Value *big.Int
	// Method names the contract entry point or artifact for logs and the journal
	Method string
}

// IsCreation reports whether the payload deploys a contract
func (p Payload) IsCreation() bool {
	return p.To == nil
}

// Digest identifies what the payload does: recipient, value and calldata
func (p Payload) Digest() common.Hash {
	var to []byte
	if p.To != nil {
		to = p.To.Bytes()
	}
	var value []byte
	if p.Value != nil {
		value = p.Value.Bytes()
	}
	return crypto.Keccak256Hash(to, []byte{byte(len(value))}, value, p.Data)
}

// PendingTransaction is a broadcast transaction awaiting inclusion
type PendingTransaction struct {
	Hash     common.Hash
	Nonce    uint64
	From     common.Address
	To       *common.Address
	Fee      *FeeQuote
	GasLimit uint64
	// ExpectedAddress is the address a contract creation will occupy
	ExpectedAddress *common.Address
	SubmittedAt     time.Time
}

// Receipt is the confirmation record of an included transaction
type Receipt struct {
	Hash            common.Hash     `json:"hash" yaml:"hash"`
	BlockNumber     uint64          `json:"blockNumber" yaml:"block_number"`
	GasUsed         uint64          `json:"gasUsed" yaml:"gas_used"`
	ContractAddress *common.Address `json:"contractAddress,omitempty" yaml:"contract_address,omitempty"` // set for contract creations only
	// Recovered is true when the receipt belongs to a transaction broadcast by an earlier run
	Recovered bool `json:"recovered" yaml:"recovered"`
}

// PendingEntry is the journal record of a broadcast whose outcome is not yet persisted
type PendingEntry struct {
	Operation       string          `json:"operation"`
	Network         string          `json:"network"`
	ChainID         uint64          `json:"chainId"`
	Hash            common.Hash     `json:"hash"`
	Nonce           uint64          `json:"nonce"`
	From            common.Address  `json:"from"`
	ExpectedAddress *common.Address `json:"expectedAddress,omitempty"`
	SubmittedAt     time.Time       `json:"submittedAt"`
	// PayloadDigest is Payload.Digest of the broadcast; zero in entries written before it existed
	PayloadDigest common.Hash `json:"payloadDigest"`
}

// Journal holds pending entries keyed by JournalKey
type Journal struct {
	Entries map[string]*PendingEntry `json:"entries"`
}

// NewJournal returns an empty journal
func NewJournal() *Journal {
	return &Journal{Entries: make(map[string]*PendingEntry)}
}

// JournalKey identifies an operation on a network
func JournalKey(network, operation string) string {
	return network + "/" + operation
}
