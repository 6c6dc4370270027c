package usecase

import (
	"context"
	"log/slog"
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/bindings"
)

// Campaign defaults used when a field is not given
const (
	DefaultCampaignID          = 1
	DefaultCampaignDuration    = 30 * 24 * time.Hour
	DefaultCampaignTrees       = 20
	DefaultCampaignBeneficiary = "0x108675f06FdEc2F12af3fFbf8171C3335E1efA92"
)

// DefaultCampaignMetadata describes the first campaign run on the contract
const DefaultCampaignMetadata = `{
	"name": "Maccia Festival 2024",
	"organizer": "CaratoDAO",
	"location": "Ragusa, Italia",
	"description": "The Maccia Festival is a project created by CaratoDAO, an informal network of environmental associations in the Ragusa area, which carries out reforestation and environmental education activities every year. This year we will establish an oak grove and an agroforest. The planting event will be done in the Public Park 'Alessandro Licitra' in Ragusa on 22th of December 2024.",
	"image": "https://ipfs.io/ipfs/QmRNFBPs99RixtSjp4chzUcKBCMiYJkUS89ZqrPEBFhzdJ"
}`

// DefaultCampaignFields returns the default campaign starting at now.
// The contribute token is left empty and taken from the record's usdc entry.
func DefaultCampaignFields(now time.Time) domain.CampaignFields {
	start := now.Unix()
	return domain.CampaignFields{
		ID:               DefaultCampaignID,
		StartTimestamp:   start,
		EndTimestamp:     start + int64(DefaultCampaignDuration/time.Second),
		TotalUnits:       DefaultCampaignTrees,
		Beneficiary:      DefaultCampaignBeneficiary,
		ContributeAmount: big.NewInt(10_000_000), // 10 USDC
		FeeAmount:        big.NewInt(2_000_000),  // 2 USDC
		Metadata:         []byte(DefaultCampaignMetadata),
	}
}

// PublishCampaignParams contains parameters for publishing a campaign
type PublishCampaignParams struct {
	Fields         domain.CampaignFields
	ContractKey    string
	DiscardPending bool
}

// PublishCampaignResult contains the result of a campaign publication
type PublishCampaignResult struct {
	Contract    common.Address             `json:"contract" yaml:"contract"`
	Campaign    *domain.CampaignDescriptor `json:"campaign" yaml:"campaign"`
	Transaction *TransactionResult         `json:"transaction" yaml:"transaction"`
}

// PublishCampaign validates a campaign and publishes it with setPublicCampaign
type PublishCampaign struct {
	transactor *Transactor
	log        *slog.Logger
}

// NewPublishCampaign creates a new PublishCampaign use case
func NewPublishCampaign(transactor *Transactor, log *slog.Logger) *PublishCampaign {
	return &PublishCampaign{transactor: transactor, log: log.With("component", "PublishCampaign")}
}

// Run executes the publication
func (uc *PublishCampaign) Run(ctx context.Context, params PublishCampaignParams) (*PublishCampaignResult, error) {
	session, err := uc.transactor.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	fields := params.Fields
	if fields.ContributeToken == "" {
		fields.ContributeToken = session.Record.Token(DefaultTokenSymbol)
		if fields.ContributeToken == "" {
			return nil, &domain.ValidationError{Field: "contribute_token", Reason: "not given and no usdc address in config (run token deploy first)"}
		}
	}

	descriptor, err := domain.EncodeCampaign(fields)
	if err != nil {
		return nil, err
	}

	to, err := contractAddress(session.Record, params.ContractKey)
	if err != nil {
		return nil, err
	}

	contract := bindings.NewRifaiNFTree()
	data := contract.PackSetPublicCampaign(
		descriptor.ID,
		descriptor.StartTimestamp,
		descriptor.EndTimestamp,
		descriptor.TotalUnits,
		descriptor.Beneficiary,
		descriptor.ContributeToken,
		descriptor.ContributeAmount,
		descriptor.FeeAmount,
		descriptor.Metadata,
	)

	uc.log.Debug("publishing campaign", "id", descriptor.ID, "contract", to.Hex(), "trees", descriptor.TotalUnits)

	tx, err := uc.transactor.Execute(ctx, session, TransactionRequest{
		Operation:      "campaign:" + strconv.FormatInt(fields.ID, 10),
		Payload:        callPayload(contract, to, data),
		DiscardPending: params.DiscardPending,
	})
	if err != nil {
		return nil, err
	}

	return &PublishCampaignResult{Contract: to, Campaign: descriptor, Transaction: tx}, nil
}
