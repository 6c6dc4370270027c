package app

import (
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/config"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Selector usecase.NetworkSelector

	// Transactions
	DeployContract  *usecase.DeployContract
	DeployToken     *usecase.DeployToken
	PublishCampaign *usecase.PublishCampaign
	TagTree         *usecase.TagTree

	// Reads
	GetCampaign     *usecase.GetCampaign
	GetTreeMetadata *usecase.GetTreeMetadata
	TokenBalance    *usecase.TokenBalance

	// Management
	ListNetworks  *usecase.ListNetworks
	ShowConfig    *usecase.ShowConfig
	SetConfig     *usecase.SetConfig
	ManageDevNode *usecase.ManageDevNode
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	selector usecase.NetworkSelector,
	deployContract *usecase.DeployContract,
	deployToken *usecase.DeployToken,
	publishCampaign *usecase.PublishCampaign,
	tagTree *usecase.TagTree,
	getCampaign *usecase.GetCampaign,
	getTreeMetadata *usecase.GetTreeMetadata,
	tokenBalance *usecase.TokenBalance,
	listNetworks *usecase.ListNetworks,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	manageDevNode *usecase.ManageDevNode,
) (*App, error) {
	return &App{
		Config:          cfg,
		Selector:        selector,
		DeployContract:  deployContract,
		DeployToken:     deployToken,
		PublishCampaign: publishCampaign,
		TagTree:         tagTree,
		GetCampaign:     getCampaign,
		GetTreeMetadata: getTreeMetadata,
		TokenBalance:    tokenBalance,
		ListNetworks:    listNetworks,
		ShowConfig:      showConfig,
		SetConfig:       setConfig,
		ManageDevNode:   manageDevNode,
	}, nil
}
