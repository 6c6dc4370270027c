package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList renders the topology with the endpoints resolved for this run
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := newListTable(table.Row{"", "NETWORK", "CHAIN ID", "ENDPOINT", "SIGNERS", "EXPLORER"})
	for _, n := range result.Networks {
		marker := " "
		if n.Name == result.Selected {
			marker = okStyle.Sprint("●")
		}
		name := n.Name
		if n.Local {
			name += labelStyle.Sprint(" (local)")
		}

		endpoint := n.Endpoint
		signers := strconv.Itoa(n.Signers)
		if n.Error != "" {
			endpoint = errStyle.Sprint(n.Error)
			signers = "-"
		}

		explorer := n.ExplorerURL
		if explorer == "" {
			explorer = "-"
		}

		t.AppendRow(table.Row{marker, name, n.ChainID, endpoint, signers, explorer})
	}
	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintln(r.out)

	if !result.RecordLoaded {
		fmt.Fprintln(r.out, FormatWarning("No config record loaded, endpoints and signers come from the environment only"))
	}
	for _, n := range result.Networks {
		if n.MissingVar != "" {
			fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%s: endpoint needs ${%s}, which is not set", n.Name, n.MissingVar)))
		}
	}
	if result.ProviderSet {
		fmt.Fprintln(r.out, labelStyle.Sprint("PROVIDER is set and overrides remote endpoints"))
	}
	if result.ExplorerKey {
		fmt.Fprintln(r.out, okStyle.Sprint("Explorer API key configured (ETHERSCAN)"))
	} else {
		fmt.Fprintln(r.out, labelStyle.Sprint("No explorer API key configured (ETHERSCAN)"))
	}
	return nil
}
