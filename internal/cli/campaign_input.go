package cli

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
	"gopkg.in/yaml.v3"
)

// campaignFile is the YAML or JSON document accepted by campaign set --file.
// Absent fields keep their default.
type campaignFile struct {
	ID               *int64     `yaml:"id"`
	Start            *timestamp `yaml:"start"`
	End              *timestamp `yaml:"end"`
	Duration         string     `yaml:"duration"`
	TotalTrees       *int64     `yaml:"total_trees"`
	Beneficiary      string     `yaml:"beneficiary"`
	ContributeToken  string     `yaml:"contribute_token"`
	ContributeAmount *amount    `yaml:"contribute_amount"`
	DaoFee           *amount    `yaml:"dao_fee"`
	Metadata         yaml.Node  `yaml:"metadata"`
}

// timestamp accepts unix seconds or an RFC 3339 date
type timestamp int64

func (t *timestamp) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := parseTimestamp(value.Value)
	if err != nil {
		return err
	}
	*t = timestamp(parsed)
	return nil
}

// amount accepts integers of any size, as numbers or strings ("10_000_000", "0x989680")
type amount struct {
	big.Int
}

func (a *amount) UnmarshalYAML(value *yaml.Node) error {
	v, err := parseAmount(value.Value)
	if err != nil {
		return err
	}
	a.Set(v)
	return nil
}

func parseTimestamp(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.Unix(), nil
		}
	}
	return 0, fmt.Errorf("invalid time %q (unix seconds, RFC 3339 or YYYY-MM-DD)", raw)
}

func parseAmount(raw string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(raw), 0)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", raw)
	}
	return v, nil
}

// loadCampaignFile reads path and overlays its fields on fields
func loadCampaignFile(path string, fields *domain.CampaignFields) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read campaign file: %w", err)
	}

	var doc campaignFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse campaign file %s: %w", path, err)
	}

	if doc.ID != nil {
		fields.ID = *doc.ID
	}
	if doc.Start != nil {
		fields.StartTimestamp = int64(*doc.Start)
	}
	switch {
	case doc.End != nil:
		fields.EndTimestamp = int64(*doc.End)
	case doc.Duration != "":
		d, err := time.ParseDuration(doc.Duration)
		if err != nil {
			return fmt.Errorf("invalid duration in campaign file: %w", err)
		}
		fields.EndTimestamp = fields.StartTimestamp + int64(d/time.Second)
	case doc.Start != nil:
		fields.EndTimestamp = fields.StartTimestamp + int64(usecase.DefaultCampaignDuration/time.Second)
	}
	if doc.TotalTrees != nil {
		fields.TotalUnits = *doc.TotalTrees
	}
	if doc.Beneficiary != "" {
		fields.Beneficiary = doc.Beneficiary
	}
	if doc.ContributeToken != "" {
		fields.ContributeToken = doc.ContributeToken
	}
	if doc.ContributeAmount != nil {
		fields.ContributeAmount = new(big.Int).Set(&doc.ContributeAmount.Int)
	}
	if doc.DaoFee != nil {
		fields.FeeAmount = new(big.Int).Set(&doc.DaoFee.Int)
	}
	if !doc.Metadata.IsZero() {
		metadata, err := metadataFromNode(&doc.Metadata)
		if err != nil {
			return err
		}
		fields.Metadata = metadata
	}
	return nil
}

// metadataFromNode accepts metadata written either as a nested document or as a JSON string
func metadataFromNode(node *yaml.Node) ([]byte, error) {
	if node.Kind == yaml.ScalarNode {
		return []byte(node.Value), nil
	}
	var doc any
	if err := node.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid metadata: %w", err)
	}
	return json.Marshal(doc)
}

// readMetadata takes inline JSON or @path
func readMetadata(value string) ([]byte, error) {
	if path, ok := strings.CutPrefix(value, "@"); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read metadata file: %w", err)
		}
		return data, nil
	}
	return []byte(value), nil
}
