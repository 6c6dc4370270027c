package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoostedFee(t *testing.T) {
	tests := []struct {
		name string
		base int64
		want int64
	}{
		{"zero", 0, 0},
		{"below rounding threshold", 4, 4},
		{"rounds down", 9, 10},
		{"exact multiple", 100, 120},
		{"one gwei", 1_000_000_000, 1_200_000_000},
		{"odd wei", 30_000_000_007, 36_000_000_008},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BoostedFee(big.NewInt(tt.base))
			assert.Equal(t, tt.want, got.Int64())
		})
	}
}

func TestBoostedFee_Properties(t *testing.T) {
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	bases := []*big.Int{huge}
	for b := int64(0); b < 2_000; b += 7 {
		bases = append(bases, big.NewInt(b))
	}

	for _, b := range bases {
		got := BoostedFee(b)

		want := new(big.Int).Mul(b, big.NewInt(20))
		want.Quo(want, big.NewInt(100))
		want.Add(want, b)

		assert.Equal(t, 0, want.Cmp(got), "base %s", b)
		assert.GreaterOrEqual(t, got.Cmp(b), 0, "boosted fee below base for %s", b)
	}
}

func TestBoostedFee_DoesNotMutateInput(t *testing.T) {
	base := big.NewInt(1000)
	_ = BoostedFee(base)
	assert.Equal(t, int64(1000), base.Int64())
}

func TestFeeQuotes(t *testing.T) {
	q := NewBaseFeeQuote(big.NewInt(50))
	assert.Equal(t, FeeSourceBaseFee, q.Source)
	assert.Equal(t, int64(50), q.BaseFeePerUnit.Int64())
	assert.Equal(t, int64(60), q.BoostedFeePerUnit.Int64())

	s := NewStaticFeeQuote(big.NewInt(7))
	assert.Equal(t, FeeSourceStatic, s.Source)
	assert.Nil(t, s.BaseFeePerUnit)
	assert.Equal(t, int64(7), s.BoostedFeePerUnit.Int64())
}
