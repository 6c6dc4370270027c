package usecase

import (
	"context"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/bindings"
)

// TagTreeParams contains parameters for tagging a tree
type TagTreeParams struct {
	TreeID         int64
	Metadata       []byte
	ContractKey    string
	DiscardPending bool
}

// TagTreeResult contains the result of tagging a tree
type TagTreeResult struct {
	Contract    common.Address     `json:"contract" yaml:"contract"`
	Tree        *domain.TreeRecord `json:"tree" yaml:"tree"`
	Transaction *TransactionResult `json:"transaction" yaml:"transaction"`
}

// TagTree attaches extended metadata to a tree with setTreeExtendedMetadata
type TagTree struct {
	transactor *Transactor
}

// NewTagTree creates a new TagTree use case
func NewTagTree(transactor *Transactor) *TagTree {
	return &TagTree{transactor: transactor}
}

// Run executes the tagging
func (uc *TagTree) Run(ctx context.Context, params TagTreeParams) (*TagTreeResult, error) {
	tree, err := domain.EncodeTree(params.TreeID, params.Metadata)
	if err != nil {
		return nil, err
	}

	session, err := uc.transactor.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	to, err := contractAddress(session.Record, params.ContractKey)
	if err != nil {
		return nil, err
	}

	contract := bindings.NewRifaiNFTree()
	data := contract.PackSetTreeExtendedMetadata(tree.ID, tree.Metadata)

	tx, err := uc.transactor.Execute(ctx, session, TransactionRequest{
		Operation:      "tree:" + strconv.FormatInt(params.TreeID, 10),
		Payload:        callPayload(contract, to, data),
		DiscardPending: params.DiscardPending,
	})
	if err != nil {
		return nil, err
	}

	return &TagTreeResult{Contract: to, Tree: tree, Transaction: tx}, nil
}
