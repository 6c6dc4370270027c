package blockchain

import (
	"context"

	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
)

// EstimateFee reads the base fee of the latest block and applies the fixed margin
func (c *Connection) EstimateFee(ctx context.Context) (*domain.FeeQuote, error) {
	header, err := c.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, &domain.FeeEstimationError{Network: c.network, Err: err}
	}
	if header.BaseFee == nil {
		return nil, &domain.FeeEstimationError{Network: c.network, Err: domain.ErrNoBaseFee}
	}

	quote := domain.NewBaseFeeQuote(header.BaseFee)
	c.log.Debug("fee estimated", "baseFee", quote.BaseFeePerUnit, "boosted", quote.BoostedFeePerUnit)
	return quote, nil
}
