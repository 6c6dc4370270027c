package domain

import "math/big"

// FeeMarginPercent is the margin added on top of the observed base fee
const FeeMarginPercent = 20

// FeeSource records where a fee quote came from
type FeeSource string

const (
	FeeSourceBaseFee FeeSource = "base-fee"
	FeeSourceStatic  FeeSource = "static"
)

// FeeQuote is the gas price used for a single run. It is never cached across runs.
type FeeQuote struct {
	BaseFeePerUnit    *big.Int  `json:"baseFeePerUnit,omitempty" yaml:"base_fee_per_unit,omitempty"` // nil for a static quote
	BoostedFeePerUnit *big.Int  `json:"boostedFeePerUnit" yaml:"boosted_fee_per_unit"`
	Source            FeeSource `json:"source" yaml:"source"`
}

// BoostedFee returns base + floor(base*FeeMarginPercent/100) using integer arithmetic only
func BoostedFee(base *big.Int) *big.Int {
	margin := new(big.Int).Mul(base, big.NewInt(FeeMarginPercent))
	margin.Quo(margin, big.NewInt(100))
	return margin.Add(margin, base)
}

// NewBaseFeeQuote builds a quote from an observed base fee
func NewBaseFeeQuote(base *big.Int) *FeeQuote {
	return &FeeQuote{
		BaseFeePerUnit:    new(big.Int).Set(base),
		BoostedFeePerUnit: BoostedFee(base),
		Source:            FeeSourceBaseFee,
	}
}

// NewStaticFeeQuote builds a quote from the configured static gas price
func NewStaticFeeQuote(gasPrice *big.Int) *FeeQuote {
	return &FeeQuote{
		BoostedFeePerUnit: new(big.Int).Set(gasPrice),
		Source:            FeeSourceStatic,
	}
}
