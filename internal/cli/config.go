package cli

import (
	"github.com/rifaisiciliadao/nftree-contracts/internal/cli/render"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the config record and manage local preferences",
		Long: `Show the config record (CONFIG) with signing keys masked, and manage the
local preferences stored in .nftree/config.local.json.

Available subcommands:
  config           Show the config record and local preferences
  config get       Print a local preference
  config set       Set a local preference
  config remove    Remove a local preference

Local preference keys: network (net), artifacts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigRemoveCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the config record and local preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a local preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.SetConfig.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printResult(cmd, app, result, func() error {
				return render.NewConfigRenderer(cmd.OutOrStdout()).RenderGet(result)
			})
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a local preference",
		Long: `Set a local preference in .nftree/config.local.json.

Examples:
  nftree config set network amoy
  nftree config set artifacts ../contracts/artifacts`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.SetConfig.Run(cmd.Context(), usecase.SetConfigParams{
				Key:   args[0],
				Value: args[1],
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

func newConfigRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <key>",
		Aliases: []string{"unset"},
		Short:   "Remove a local preference",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.SetConfig.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printResult(cmd, app, result, func() error {
				return render.NewConfigRenderer(cmd.OutOrStdout()).RenderRemove(result)
			})
		},
	}
}

func showConfig(cmd *cobra.Command) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := app.ShowConfig.Run(cmd.Context())
	if err != nil {
		return err
	}

	return printResult(cmd, app, result, func() error {
		return render.NewConfigRenderer(cmd.OutOrStdout()).RenderConfig(result)
	})
}
