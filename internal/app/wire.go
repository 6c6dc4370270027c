//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/rifaisiciliadao/nftree-contracts/internal/adapters"
	"github.com/rifaisiciliadao/nftree-contracts/internal/config"
	"github.com/rifaisiciliadao/nftree-contracts/internal/logging"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewTransactor,
		usecase.NewDeployContract,
		usecase.NewDeployToken,
		usecase.NewPublishCampaign,
		usecase.NewTagTree,
		usecase.NewGetCampaign,
		usecase.NewGetTreeMetadata,
		usecase.NewTokenBalance,
		usecase.NewListNetworks,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewManageDevNode,

		// App
		NewApp,
	)
	return nil, nil
}
