package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rifaisiciliadao/nftree-contracts/internal/cli/render"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// NewCampaignCmd creates the campaign command with subcommands
func NewCampaignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Publish and inspect planting campaigns",
	}

	cmd.AddCommand(newCampaignSetCmd())
	cmd.AddCommand(newCampaignGetCmd())

	return cmd
}

// campaignFlags holds the per-field overrides of campaign set
type campaignFlags struct {
	file        string
	id          int64
	start       string
	end         string
	duration    time.Duration
	trees       int64
	beneficiary string
	token       string
	amount      string
	fee         string
	metadata    string
}

func newCampaignSetCmd() *cobra.Command {
	flags := &campaignFlags{}
	var params usecase.PublishCampaignParams

	cmd := &cobra.Command{
		Use:     "set",
		Aliases: []string{"publish"},
		Short:   "Publish a planting campaign",
		Long: `Publish a planting campaign on the NFTree contract.

Fields start from the defaults (id 1, starting now for 30 days, 20 trees,
10 USDC contribution, 2 USDC DAO fee, contribution token from the usdc entry
of the config record), are overlaid with --file and then with flags.

The campaign file is YAML or JSON:

  id: 2
  start: 2024-12-01T00:00:00Z
  end: 2024-12-31T00:00:00Z
  total_trees: 50
  beneficiary: "0x108675f06FdEc2F12af3fFbf8171C3335E1efA92"
  contribute_amount: 10_000_000
  dao_fee: 2_000_000
  metadata:
    name: Maccia Festival 2024

Examples:
  nftree campaign set --network amoy
  nftree campaign set --file campaign.yaml --trees 30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			fields, err := flags.campaignFields(cmd, time.Now())
			if err != nil {
				return err
			}
			params.Fields = fields

			result, err := app.PublishCampaign.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return printResult(cmd, app, result, func() error {
				return render.NewTransactionRenderer(cmd.OutOrStdout()).RenderCampaign(result)
			})
		},
	}

	flags.bind(cmd.Flags())
	cmd.Flags().StringVar(&params.ContractKey, "contract-key", domain.DefaultContractKey, "contract_address entry of the target contract")
	addDiscardPendingFlag(cmd, &params.DiscardPending)

	return cmd
}

// bind registers the campaign field flags
func (flags *campaignFlags) bind(f *pflag.FlagSet) {
	f.StringVarP(&flags.file, "file", "f", "", "YAML or JSON campaign file")
	f.Int64Var(&flags.id, "id", usecase.DefaultCampaignID, "Campaign id")
	f.StringVar(&flags.start, "start", "", "Start time (unix seconds, RFC 3339 or YYYY-MM-DD, default now)")
	f.StringVar(&flags.end, "end", "", "End time (default start + duration)")
	f.DurationVar(&flags.duration, "duration", usecase.DefaultCampaignDuration, "Campaign length when --end is not given")
	f.Int64Var(&flags.trees, "trees", usecase.DefaultCampaignTrees, "Number of trees to plant")
	f.StringVar(&flags.beneficiary, "beneficiary", usecase.DefaultCampaignBeneficiary, "Address receiving contributions")
	f.StringVar(&flags.token, "token", "", "Contribution token (default: usdc of the config record)")
	f.StringVar(&flags.amount, "amount", "", "Contribution per tree in token units (default 10000000)")
	f.StringVar(&flags.fee, "fee", "", "DAO fee per tree in token units (default 2000000)")
	f.StringVar(&flags.metadata, "metadata", "", "Campaign metadata as JSON or @file")
}

// campaignFields merges defaults, the campaign file and the flags the user set
func (flags *campaignFlags) campaignFields(cmd *cobra.Command, now time.Time) (domain.CampaignFields, error) {
	fields := usecase.DefaultCampaignFields(now)

	if flags.file != "" {
		if err := loadCampaignFile(flags.file, &fields); err != nil {
			return fields, err
		}
	}

	changed := func(name string) bool { return cmd.Flags().Changed(name) }

	if changed("id") {
		fields.ID = flags.id
	}
	if changed("start") {
		start, err := parseTimestamp(flags.start)
		if err != nil {
			return fields, &domain.ValidationError{Field: "start", Reason: err.Error()}
		}
		fields.StartTimestamp = start
		if !changed("end") && !changed("duration") {
			fields.EndTimestamp = start + int64(usecase.DefaultCampaignDuration/time.Second)
		}
	}
	switch {
	case changed("end"):
		end, err := parseTimestamp(flags.end)
		if err != nil {
			return fields, &domain.ValidationError{Field: "end", Reason: err.Error()}
		}
		fields.EndTimestamp = end
	case changed("duration"):
		fields.EndTimestamp = fields.StartTimestamp + int64(flags.duration/time.Second)
	}
	if changed("trees") {
		fields.TotalUnits = flags.trees
	}
	if changed("beneficiary") {
		fields.Beneficiary = flags.beneficiary
	}
	if changed("token") {
		fields.ContributeToken = flags.token
	}
	if changed("amount") {
		v, err := parseAmount(flags.amount)
		if err != nil {
			return fields, &domain.ValidationError{Field: "contribute_amount", Reason: err.Error()}
		}
		fields.ContributeAmount = v
	}
	if changed("fee") {
		v, err := parseAmount(flags.fee)
		if err != nil {
			return fields, &domain.ValidationError{Field: "dao_fee", Reason: err.Error()}
		}
		fields.FeeAmount = v
	}
	if changed("metadata") {
		metadata, err := readMetadata(flags.metadata)
		if err != nil {
			return fields, err
		}
		fields.Metadata = metadata
	}

	return fields, nil
}

func newCampaignGetCmd() *cobra.Command {
	var params usecase.GetCampaignParams

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show a campaign as stored on chain",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params.ID = usecase.DefaultCampaignID
			if len(args) == 1 {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return &domain.ValidationError{Field: "id", Reason: fmt.Sprintf("%q is not an integer", args[0])}
				}
				params.ID = id
			}

			campaign, err := app.GetCampaign.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return printResult(cmd, app, campaign, func() error {
				return render.NewCampaignRenderer(cmd.OutOrStdout()).RenderCampaign(campaign)
			})
		},
	}

	cmd.Flags().StringVar(&params.ContractKey, "contract-key", domain.DefaultContractKey, "contract_address entry of the target contract")

	return cmd
}
