package cli

import (
	"github.com/rifaisiciliadao/nftree-contracts/internal/cli/render"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var params usecase.DeployContractParams

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the NFTree contract",
		Long: `Deploy the contract named by contract_name (default RifaiNFTree) with the
default_admin, minter and validator of the config record as constructor
arguments, then store its address under contract_address.<key>.

A contract already recorded under the key is left alone as long as code is
deployed at its address; pass --redeploy to deploy a new instance.

Examples:
  nftree deploy --network amoy
  nftree deploy --key marketplace --contract RifaiNFTree --redeploy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.DeployContract.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return printResult(cmd, app, result, func() error {
				return render.NewTransactionRenderer(cmd.OutOrStdout()).RenderDeploy(result)
			})
		},
	}

	cmd.Flags().StringVar(&params.Key, "key", domain.DefaultContractKey, "contract_address entry to write")
	cmd.Flags().StringVar(&params.ContractName, "contract", "", "Artifact to deploy (overrides contract_name)")
	cmd.Flags().BoolVar(&params.Redeploy, "redeploy", false, "Deploy even when the recorded address has code")
	addDiscardPendingFlag(cmd, &params.DiscardPending)

	return cmd
}

// addDiscardPendingFlag registers the flag that drops a journaled transaction of an earlier run
func addDiscardPendingFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVar(target, "discard-pending", false, "Forget a transaction left pending by an earlier run instead of waiting for it")
}
