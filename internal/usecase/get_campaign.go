package usecase

import (
	"context"
	"math/big"

	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/bindings"
)

// GetCampaignParams contains parameters for reading a campaign
type GetCampaignParams struct {
	ID          int64
	ContractKey string
}

// GetCampaign reads a planting campaign from the contract. It never submits a transaction.
type GetCampaign struct {
	transactor *Transactor
}

// NewGetCampaign creates a new GetCampaign use case
func NewGetCampaign(transactor *Transactor) *GetCampaign {
	return &GetCampaign{transactor: transactor}
}

// Run executes the lookup
func (uc *GetCampaign) Run(ctx context.Context, params GetCampaignParams) (*domain.Campaign, error) {
	if params.ID <= 0 {
		return nil, &domain.ValidationError{Field: "campaign id", Reason: "must be a positive integer"}
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
	id := big.NewInt(params.ID)
	raw, err := session.Conn.Call(ctx, to, contract.PackPlantingCampaigns(id))
	if err != nil {
		return nil, err
	}
	out, err := contract.UnpackPlantingCampaigns(raw)
	if err != nil {
		return nil, err
	}

	return &domain.Campaign{
		ID:               id,
		Metadata:         out.CampaignMetadata,
		StartDate:        out.StartDate,
		EndDate:          out.EndDate,
		TotalTrees:       out.TotalTrees,
		TreesPlanted:     out.TreesPlanted,
		Beneficiary:      out.Beneficiary,
		ContributeToken:  out.ContributeToken,
		ContributeAmount: out.ContributeAmount,
	}, nil
}
