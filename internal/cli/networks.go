package cli

import (
	"github.com/rifaisiciliadao/nftree-contracts/internal/cli/render"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/config"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List available networks",
		Long: `List the built-in networks and those added by networks.toml, with the
endpoint and signers each one resolves to for this run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context())
			if err != nil {
				return err
			}

			return printResult(cmd, app, result, func() error {
				return render.NewNetworksRenderer(cmd.OutOrStdout()).RenderNetworksList(result)
			})
		},
	}

	cmd.AddCommand(newNetworksUseCmd())

	return cmd
}

func newNetworksUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use [network]",
		Short: "Select the default network",
		Long: `Store the default network in the local config. Without an argument the
network is picked interactively.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			var network string
			if len(args) == 1 {
				network = args[0]
			} else {
				list, err := app.ListNetworks.Run(cmd.Context())
				if err != nil {
					return err
				}
				names := lo.Map(list.Networks, func(n usecase.NetworkStatus, _ int) string { return n.Name })
				network, err = app.Selector.SelectNetwork(cmd.Context(), names, "Select default network")
				if err != nil {
					return err
				}
			}

			result, err := app.SetConfig.Run(cmd.Context(), usecase.SetConfigParams{
				Key:   string(config.ConfigKeyNetwork),
				Value: network,
			})
			if err != nil {
				return err
			}

			return printResult(cmd, app, result, func() error {
				return render.NewConfigRenderer(cmd.OutOrStdout()).RenderSet(result)
			})
		},
	}
}
