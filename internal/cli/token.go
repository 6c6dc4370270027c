package cli

import (
	"github.com/rifaisiciliadao/nftree-contracts/internal/cli/render"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
	"github.com/spf13/cobra"
)

// NewTokenCmd creates the token command with subcommands
func NewTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the contribution token",
		Long:  `Deploy the auxiliary ERC-20 token used to pay contributions and inspect balances.`,
	}

	cmd.AddCommand(newTokenDeployCmd())
	cmd.AddCommand(newTokenBalanceCmd())

	return cmd
}

func newTokenDeployCmd() *cobra.Command {
	var params usecase.DeployTokenParams

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the contribution token",
		Long: `Deploy the token artifact (default USDC) and store its address under the
symbol key of the config record.

Examples:
  nftree token deploy --network hardhat
  nftree token deploy --symbol usdc --contract MockUSDC`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.DeployToken.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return printResult(cmd, app, result, func() error {
				return render.NewTransactionRenderer(cmd.OutOrStdout()).RenderToken(result)
			})
		},
	}

	cmd.Flags().StringVar(&params.Symbol, "symbol", usecase.DefaultTokenSymbol, "Record key of the token")
	cmd.Flags().StringVar(&params.ContractName, "contract", "", "Artifact to deploy (defaults to the upper-cased symbol)")
	addDiscardPendingFlag(cmd, &params.DiscardPending)

	return cmd
}

func newTokenBalanceCmd() *cobra.Command {
	var params usecase.TokenBalanceParams

	cmd := &cobra.Command{
		Use:   "balance [account]",
		Short: "Show a token balance",
		Long: `Show the balance of the recorded token for an account, or for the selected
signer when no account is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				params.Account = args[0]
			}

			result, err := app.TokenBalance.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return printResult(cmd, app, result, func() error {
				return render.NewCampaignRenderer(cmd.OutOrStdout()).RenderBalance(result)
			})
		},
	}

	cmd.Flags().StringVar(&params.Symbol, "symbol", usecase.DefaultTokenSymbol, "Record key of the token")

	return cmd
}
