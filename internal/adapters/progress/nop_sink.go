package progress

import (
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain/config"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
)

// NewNopSink creates a new no-op progress sink
func NewNopSink() usecase.ProgressSink {
	return usecase.NopProgress{}
}

// NewSink picks the spinner for interactive text output and stays silent otherwise
func NewSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive || cfg.Output != config.OutputText {
		return NewNopSink()
	}
	return NewSpinnerSink()
}
