package cli

import (
	"github.com/rifaisiciliadao/nftree-contracts/internal/cli/render"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDevCmd creates the dev command with subcommands
func NewDevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Manage the local development node",
		Long: `Manage a local anvil node serving the hardhat network and credit the
local accounts with their synthetic balances.`,
	}

	cmd.AddCommand(newDevNodeCmd(usecase.DevNodeStart, "Start the local node", "Start a local anvil node. Fails if it is already running."))
	cmd.AddCommand(newDevNodeCmd(usecase.DevNodeStop, "Stop the local node", "Stop the local node if it is running."))
	cmd.AddCommand(newDevNodeCmd(usecase.DevNodeRestart, "Restart the local node", "Stop the local node if it is running and start it again."))
	cmd.AddCommand(newDevNodeCmd(usecase.DevNodeStatus, "Show the local node status", "Show whether the local node is running and answering RPC calls."))
	cmd.AddCommand(newDevNodeCmd(usecase.DevNodeLogs, "Follow the local node logs", "Stream the log file of the local node until interrupted."))
	cmd.AddCommand(newDevNodeCmd(usecase.DevNodeFund, "Fund the local accounts", "Set the balance of every local credential on the hardhat network endpoint."))

	return cmd
}

// devNodeFlags holds common flags for dev node commands
type devNodeFlags struct {
	name    string
	port    string
	chainID uint64
}

func newDevNodeCmd(operation, short, long string) *cobra.Command {
	flags := &devNodeFlags{}

	cmd := &cobra.Command{
		Use:   operation,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDevNodeCommand(cmd, operation, flags)
		},
	}

	cmd.Flags().StringVar(&flags.name, "name", "anvil", "Instance name")
	cmd.Flags().StringVar(&flags.port, "port", "8545", "RPC port to bind")
	cmd.Flags().Uint64Var(&flags.chainID, "chain-id", 0, "Chain ID of the instance (anvil default when unset)")
	return cmd
}

// runDevNodeCommand executes a dev node management command
func runDevNodeCommand(cmd *cobra.Command, operation string, flags *devNodeFlags) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	params := usecase.ManageDevNodeParams{
		Operation: operation,
		Name:      flags.name,
		Port:      flags.port,
		ChainID:   flags.chainID,
	}
	renderer := render.NewDevNodeRenderer(cmd.OutOrStdout())

	if operation == usecase.DevNodeLogs {
		status, err := app.ManageDevNode.Run(cmd.Context(), usecase.ManageDevNodeParams{
			Operation: usecase.DevNodeStatus,
			Name:      flags.name,
			Port:      flags.port,
		})
		if err != nil {
			return err
		}
		renderer.RenderLogsHeader(status.Node.Name, status.Node.LogFile)
		params.LogWriter = cmd.OutOrStdout()
	}

	result, err := app.ManageDevNode.Run(cmd.Context(), params)
	if err != nil {
		return err
	}

	return printResult(cmd, app, result, func() error {
		return renderer.Render(result)
	})
}
