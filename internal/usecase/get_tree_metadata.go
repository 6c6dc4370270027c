package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/bindings"
	"github.com/samber/lo"
)

// GetTreeMetadataParams contains parameters for a batch metadata lookup
type GetTreeMetadataParams struct {
	TreeIDs     []int64
	ContractKey string
}

// GetTreeMetadata reads extended metadata for several trees in one call.
// Untagged trees come back with empty metadata.
type GetTreeMetadata struct {
	transactor *Transactor
}

// NewGetTreeMetadata creates a new GetTreeMetadata use case
func NewGetTreeMetadata(transactor *Transactor) *GetTreeMetadata {
	return &GetTreeMetadata{transactor: transactor}
}

// Run executes the lookup
func (uc *GetTreeMetadata) Run(ctx context.Context, params GetTreeMetadataParams) ([]domain.TreeMetadata, error) {
	if len(params.TreeIDs) == 0 {
		return nil, &domain.ValidationError{Field: "tree ids", Reason: "at least one id is required"}
	}
	if bad, found := lo.Find(params.TreeIDs, func(id int64) bool { return id <= 0 }); found {
		return nil, &domain.ValidationError{Field: "tree id", Reason: fmt.Sprintf("%d is not a positive integer", bad)}
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
	ids := bindings.TreeIDs(params.TreeIDs)
	raw, err := session.Conn.Call(ctx, to, contract.PackGetTreeExtendedMetadataBatch(ids))
	if err != nil {
		return nil, err
	}
	metadata, err := contract.UnpackGetTreeExtendedMetadataBatch(raw)
	if err != nil {
		return nil, err
	}
	if len(metadata) != len(ids) {
		return nil, fmt.Errorf("contract returned %d entries for %d trees", len(metadata), len(ids))
	}

	return lo.Map(ids, func(id *big.Int, i int) domain.TreeMetadata {
		return domain.TreeMetadata{ID: id, Metadata: metadata[i]}
	}), nil
}
