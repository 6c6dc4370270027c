package render

import (
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
)

// CampaignRenderer renders read-only campaign, tree and token lookups
type CampaignRenderer struct {
	out io.Writer
}

// NewCampaignRenderer creates a new campaign renderer
func NewCampaignRenderer(out io.Writer) *CampaignRenderer {
	return &CampaignRenderer{out: out}
}

// RenderCampaign renders the on-chain view of a campaign
func (r *CampaignRenderer) RenderCampaign(c *domain.Campaign) error {
	if c.StartDate == nil || c.StartDate.Sign() == 0 {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("Campaign %s is not published", c.ID)))
		return nil
	}

	fmt.Fprintln(r.out, headerStyle.Sprintf("🌳 Campaign %s", c.ID))
	kv := newKVTable()
	kv.add("Start", formatTimestamp(c.StartDate))
	kv.add("End", formatTimestamp(c.EndDate))
	kv.add("Trees", fmt.Sprintf("%s planted of %s", bigString(c.TreesPlanted), bigString(c.TotalTrees)))
	kv.add("Beneficiary", addressStyle.Sprint(c.Beneficiary.Hex()))
	kv.add("Token", addressStyle.Sprint(c.ContributeToken.Hex()))
	kv.add("Contribution", bigString(c.ContributeAmount))
	kv.add("Metadata", c.Metadata)
	kv.render(r.out)
	return nil
}

// RenderTrees renders a batch metadata lookup, one row per requested id
func (r *CampaignRenderer) RenderTrees(trees []domain.TreeMetadata) error {
	t := newListTable(table.Row{"TREE", "METADATA"})
	for _, tree := range trees {
		metadata := tree.Metadata
		if metadata == "" {
			metadata = labelStyle.Sprint("(untagged)")
		}
		t.AppendRow(table.Row{bigString(tree.ID), metadata})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

// RenderBalance renders a token balance
func (r *CampaignRenderer) RenderBalance(result *usecase.TokenBalanceResult) error {
	kv := newKVTable()
	kv.add("Token", fmt.Sprintf("%s (%s)", result.Symbol, addressStyle.Sprint(result.Token.Hex())))
	kv.add("Account", addressStyle.Sprint(result.Account.Hex()))
	kv.add("Balance", valueStyle.Sprint(result.Formatted()))
	kv.add("Raw", labelStyle.Sprint(bigString(result.Balance)))
	kv.render(r.out)
	return nil
}

func formatTimestamp(ts *big.Int) string {
	if ts == nil || !ts.IsInt64() {
		return bigString(ts)
	}
	return time.Unix(ts.Int64(), 0).UTC().Format(time.RFC3339)
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
