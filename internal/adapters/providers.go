package adapters

import (
	"github.com/google/wire"
	"github.com/rifaisiciliadao/nftree-contracts/internal/adapters/anvil"
	"github.com/rifaisiciliadao/nftree-contracts/internal/adapters/blockchain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/adapters/fs"
	"github.com/rifaisiciliadao/nftree-contracts/internal/adapters/interactive"
	"github.com/rifaisiciliadao/nftree-contracts/internal/adapters/network"
	"github.com/rifaisiciliadao/nftree-contracts/internal/adapters/progress"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewConfigStoreAdapter,
	wire.Bind(new(usecase.ConfigStore), new(*fs.ConfigStoreAdapter)),

	fs.NewJournalStoreAdapter,
	wire.Bind(new(usecase.PendingJournal), new(*fs.JournalStoreAdapter)),

	fs.NewArtifactLoaderAdapter,
	wire.Bind(new(usecase.ArtifactLoader), new(*fs.ArtifactLoaderAdapter)),

	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigRepository), new(*fs.LocalConfigStoreAdapter)),
)

// NetworkSet resolves and connects to networks
var NetworkSet = wire.NewSet(
	network.NewResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*network.Resolver)),

	blockchain.NewConnector,
	wire.Bind(new(usecase.NetworkConnector), new(*blockchain.Connector)),
)

// DevNodeSet provides the local node implementations
var DevNodeSet = wire.NewSet(
	anvil.NewManager,
	wire.Bind(new(usecase.DevNodeManager), new(*anvil.Manager)),

	anvil.NewFunder,
	wire.Bind(new(usecase.AccountFunder), new(*anvil.Funder)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.NetworkSelector), new(*interactive.SelectorAdapter)),
	wire.Bind(new(usecase.Confirmer), new(*interactive.SelectorAdapter)),
)

// ProgressSet picks the progress sink for the configured output
var ProgressSet = wire.NewSet(
	progress.NewSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	NetworkSet,
	DevNodeSet,
	InteractiveSet,
	ProgressSet,
)
