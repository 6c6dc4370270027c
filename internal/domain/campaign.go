package domain

import (
	"bytes"
	"encoding/json"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// CampaignFields is the raw, unvalidated input of a campaign publication
type CampaignFields struct {
	ID               int64    `json:"id" yaml:"id"`
	StartTimestamp   int64    `json:"start" yaml:"start"`
	EndTimestamp     int64    `json:"end" yaml:"end"`
	TotalUnits       int64    `json:"total_trees" yaml:"total_trees"`
	Beneficiary      string   `json:"beneficiary" yaml:"beneficiary"`
	ContributeToken  string   `json:"contribute_token" yaml:"contribute_token"`
	ContributeAmount *big.Int `json:"contribute_amount" yaml:"contribute_amount"`
	FeeAmount        *big.Int `json:"dao_fee" yaml:"dao_fee"`
	Metadata         []byte   `json:"-" yaml:"-"`
}

// CampaignDescriptor is a validated campaign ready to be embedded in a transaction
type CampaignDescriptor struct {
	ID               *big.Int       `json:"id" yaml:"id"`
	StartTimestamp   *big.Int       `json:"startDate" yaml:"start_date"`
	EndTimestamp     *big.Int       `json:"endDate" yaml:"end_date"`
	TotalUnits       *big.Int       `json:"totalTrees" yaml:"total_trees"`
	Beneficiary      common.Address `json:"beneficiary" yaml:"beneficiary"`
	ContributeToken  common.Address `json:"contributeToken" yaml:"contribute_token"`
	ContributeAmount *big.Int       `json:"contributeAmount" yaml:"contribute_amount"`
	FeeAmount        *big.Int       `json:"daoFee" yaml:"dao_fee"`
	Metadata         string         `json:"metadataJson" yaml:"metadata_json"`
}

// TreeRecord is a validated tree metadata entry
type TreeRecord struct {
	ID       *big.Int `json:"id" yaml:"id"`
	Metadata string   `json:"metadata" yaml:"metadata"`
}

// Campaign is the on-chain view returned by plantingCampaigns
type Campaign struct {
	ID               *big.Int       `json:"id" yaml:"id"`
	Metadata         string         `json:"campaignMetadata" yaml:"campaign_metadata"`
	StartDate        *big.Int       `json:"startDate" yaml:"start_date"`
	EndDate          *big.Int       `json:"endDate" yaml:"end_date"`
	TotalTrees       *big.Int       `json:"totalTrees" yaml:"total_trees"`
	TreesPlanted     *big.Int       `json:"treesPlanted" yaml:"trees_planted"`
	Beneficiary      common.Address `json:"beneficiary" yaml:"beneficiary"`
	ContributeToken  common.Address `json:"contributeToken" yaml:"contribute_token"`
	ContributeAmount *big.Int       `json:"contributeAmount" yaml:"contribute_amount"`
}

// TreeMetadata is one entry of a batch metadata lookup. Untagged trees have empty metadata.
type TreeMetadata struct {
	ID       *big.Int `json:"id" yaml:"id"`
	Metadata string   `json:"metadata" yaml:"metadata"`
}

// EncodeCampaign validates fields and builds the descriptor sent on-chain
func EncodeCampaign(fields CampaignFields) (*CampaignDescriptor, error) {
	if fields.ID <= 0 {
		return nil, &ValidationError{Field: "id", Reason: "must be a positive integer"}
	}
	if fields.EndTimestamp <= fields.StartTimestamp {
		return nil, &ValidationError{Field: "end", Reason: "must be after start"}
	}
	if fields.TotalUnits <= 0 {
		return nil, &ValidationError{Field: "total_trees", Reason: "must be greater than zero"}
	}
	if fields.ContributeAmount == nil || fields.ContributeAmount.Sign() <= 0 {
		return nil, &ValidationError{Field: "contribute_amount", Reason: "must be greater than zero"}
	}
	fee := fields.FeeAmount
	if fee == nil {
		fee = new(big.Int)
	}
	if fee.Sign() < 0 {
		return nil, &ValidationError{Field: "dao_fee", Reason: "must not be negative"}
	}
	if fee.Cmp(fields.ContributeAmount) >= 0 {
		return nil, &ValidationError{Field: "dao_fee", Reason: "must be lower than contribute_amount"}
	}
	beneficiary, err := parseAddressField("beneficiary", fields.Beneficiary)
	if err != nil {
		return nil, err
	}
	token, err := parseAddressField("contribute_token", fields.ContributeToken)
	if err != nil {
		return nil, err
	}
	metadata, err := CompactMetadata(fields.Metadata)
	if err != nil {
		return nil, err
	}

	return &CampaignDescriptor{
		ID:               big.NewInt(fields.ID),
		StartTimestamp:   big.NewInt(fields.StartTimestamp),
		EndTimestamp:     big.NewInt(fields.EndTimestamp),
		TotalUnits:       big.NewInt(fields.TotalUnits),
		Beneficiary:      beneficiary,
		ContributeToken:  token,
		ContributeAmount: new(big.Int).Set(fields.ContributeAmount),
		FeeAmount:        new(big.Int).Set(fee),
		Metadata:         metadata,
	}, nil
}

// EncodeTree validates a tree id and its metadata document
func EncodeTree(id int64, metadata []byte) (*TreeRecord, error) {
	if id <= 0 {
		return nil, &ValidationError{Field: "tree id", Reason: "must be a positive integer"}
	}
	doc, err := CompactMetadata(metadata)
	if err != nil {
		return nil, err
	}
	return &TreeRecord{ID: big.NewInt(id), Metadata: doc}, nil
}

// CompactMetadata checks that doc is a JSON document and returns its compact form
func CompactMetadata(doc []byte) (string, error) {
	if len(bytes.TrimSpace(doc)) == 0 {
		return "", &ValidationError{Field: "metadata", Reason: "document is empty"}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, doc); err != nil {
		return "", &ValidationError{Field: "metadata", Reason: "not valid JSON: " + err.Error()}
	}
	return buf.String(), nil
}

func parseAddressField(field, value string) (common.Address, error) {
	value = strings.TrimSpace(value)
	if !common.IsHexAddress(value) {
		return common.Address{}, &ValidationError{Field: field, Reason: "not a hex address: " + value}
	}
	return common.HexToAddress(value), nil
}
