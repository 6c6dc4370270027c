package cli

import (
	"fmt"
	"strconv"

	"github.com/rifaisiciliadao/nftree-contracts/internal/cli/render"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
	"github.com/spf13/cobra"
)

// NewTreeCmd creates the tree command with subcommands
func NewTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Tag trees and read their metadata",
	}

	cmd.AddCommand(newTreeTagCmd())
	cmd.AddCommand(newTreeGetCmd())

	return cmd
}

func newTreeTagCmd() *cobra.Command {
	var params usecase.TagTreeParams
	var metadata string

	cmd := &cobra.Command{
		Use:   "tag <id>",
		Short: "Attach metadata to a tree",
		Long: `Attach a JSON metadata document to a tree. The document is compacted
before it is sent.

Examples:
  nftree tree tag 1 --metadata '{"species":"Quercus ilex"}'
  nftree tree tag 1 --metadata @tree-1.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			id, err := parseTreeID(args[0])
			if err != nil {
				return err
			}
			params.TreeID = id

			params.Metadata, err = readMetadata(metadata)
			if err != nil {
				return err
			}

			result, err := app.TagTree.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return printResult(cmd, app, result, func() error {
				return render.NewTransactionRenderer(cmd.OutOrStdout()).RenderTree(result)
			})
		},
	}

	cmd.Flags().StringVarP(&metadata, "metadata", "m", "", "Metadata as JSON or @file")
	_ = cmd.MarkFlagRequired("metadata")
	cmd.Flags().StringVar(&params.ContractKey, "contract-key", domain.DefaultContractKey, "contract_address entry of the target contract")
	addDiscardPendingFlag(cmd, &params.DiscardPending)

	return cmd
}

func newTreeGetCmd() *cobra.Command {
	var params usecase.GetTreeMetadataParams

	cmd := &cobra.Command{
		Use:   "get <id>...",
		Short: "Read the metadata of one or more trees",
		Long: `Read the metadata of the given trees in one call. Untagged trees are
listed with empty metadata.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := parseTreeID(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			params.TreeIDs = ids

			trees, err := app.GetTreeMetadata.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return printResult(cmd, app, trees, func() error {
				return render.NewCampaignRenderer(cmd.OutOrStdout()).RenderTrees(trees)
			})
		},
	}

	cmd.Flags().StringVar(&params.ContractKey, "contract-key", domain.DefaultContractKey, "contract_address entry of the target contract")

	return cmd
}

func parseTreeID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &domain.ValidationError{Field: "tree id", Reason: fmt.Sprintf("%q is not an integer", raw)}
	}
	return id, nil
}
