package cli

import (
	"context"
	"fmt"

	"github.com/rifaisiciliadao/nftree-contracts/internal/app"
	"github.com/rifaisiciliadao/nftree-contracts/internal/cli/render"
	"github.com/rifaisiciliadao/nftree-contracts/internal/config"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/spf13/cobra"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// commands that run without a wired app
var appless = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nftree",
		Short: "Deploy and operate the RifaiNFTree contracts",
		Long: `nftree deploys the RifaiNFTree contract and its auxiliary token, publishes
planting campaigns and tags trees on any configured EVM network.

Every state-changing command reads the shared config record (CONFIG), resolves
the selected network, sends at most one transaction and writes the outcome back
to the record.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if appless[cmd.Name()] {
				return nil
			}

			projectRoot := config.FindProjectRoot()

			// Set up viper with every flag of the command bound
			v := config.SetupViper(projectRoot, cmd)

			// Initialize app with DI
			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				// Store cancel func to be called on command completion
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("network", "n", "", fmt.Sprintf("Network to use (default %q)", domain.LocalNetworkName))
	flags.String("config", "", "Path of the config record (env CONFIG)")
	flags.String("artifacts", "", "Directory of compiled contract artifacts (default \"artifacts\")")
	flags.String("gas-price", "", "Static gas price used when the network reports no base fee (wei, or e.g. \"30gwei\")")
	flags.Duration("confirm-timeout", 0, "How long to wait for a transaction to be mined (default 5m)")
	flags.Duration("poll-interval", 0, "Interval between receipt polls (default 2s)")
	flags.Duration("timeout", 0, "Overall command timeout (default 15m)")
	flags.Int("signer", 0, "Index of the signing credential")
	flags.StringP("output", "o", "", "Output format: text, json or yaml (default \"text\")")
	flags.Bool("non-interactive", false, "Disable interactive prompts")
	flags.BoolP("yes", "y", false, "Broadcast without asking for confirmation")
	flags.Bool("debug", false, "Enable debug output")

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	// Main commands
	for _, cmd := range []*cobra.Command{
		NewDeployCmd(),
		NewTokenCmd(),
		NewCampaignCmd(),
		NewTreeCmd(),
	} {
		cmd.GroupID = "main"
		rootCmd.AddCommand(cmd)
	}

	// Management commands
	for _, cmd := range []*cobra.Command{
		NewNetworksCmd(),
		NewConfigCmd(),
		NewDevCmd(),
	} {
		cmd.GroupID = "management"
		rootCmd.AddCommand(cmd)
	}

	// Version command
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// printResult writes result in the structured output format when one is
// selected, otherwise it calls text.
func printResult(cmd *cobra.Command, a *app.App, result any, text func() error) error {
	printer := render.NewPrinter(cmd.OutOrStdout(), a.Config.Output)
	if printer.Structured() {
		return printer.Print(result)
	}
	return text()
}
