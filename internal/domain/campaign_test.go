package domain

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testBeneficiary = "0x108675f06FdEc2F12af3fFbf8171C3335E1efA92"
	testToken       = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
)

func validCampaignFields() CampaignFields {
	return CampaignFields{
		ID:               1,
		StartTimestamp:   1_700_000_000,
		EndTimestamp:     1_700_000_000 + 30*24*60*60,
		TotalUnits:       20,
		Beneficiary:      testBeneficiary,
		ContributeToken:  testToken,
		ContributeAmount: big.NewInt(10_000_000),
		FeeAmount:        big.NewInt(2_000_000),
		Metadata:         []byte(`{"name": "Maccia Festival 2024", "organizer": "CaratoDAO"}`),
	}
}

func TestEncodeCampaign_Defaults(t *testing.T) {
	desc, err := EncodeCampaign(validCampaignFields())
	require.NoError(t, err)

	assert.Equal(t, int64(1), desc.ID.Int64())
	assert.Equal(t, int64(20), desc.TotalUnits.Int64())
	assert.Equal(t, -1, desc.FeeAmount.Cmp(desc.ContributeAmount))
	assert.Equal(t, testBeneficiary, desc.Beneficiary.Hex())
	assert.Equal(t, `{"name":"Maccia Festival 2024","organizer":"CaratoDAO"}`, desc.Metadata)
}

func TestEncodeCampaign_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *CampaignFields)
		field  string
	}{
		{"zero id", func(f *CampaignFields) { f.ID = 0 }, "id"},
		{"end equals start", func(f *CampaignFields) { f.EndTimestamp = f.StartTimestamp }, "end"},
		{"end before start", func(f *CampaignFields) { f.EndTimestamp = f.StartTimestamp - 1 }, "end"},
		{"zero trees", func(f *CampaignFields) { f.TotalUnits = 0 }, "total_trees"},
		{"negative trees", func(f *CampaignFields) { f.TotalUnits = -3 }, "total_trees"},
		{"missing amount", func(f *CampaignFields) { f.ContributeAmount = nil }, "contribute_amount"},
		{"zero amount", func(f *CampaignFields) { f.ContributeAmount = big.NewInt(0) }, "contribute_amount"},
		{"fee equals amount", func(f *CampaignFields) { f.FeeAmount = big.NewInt(10_000_000) }, "dao_fee"},
		{"fee above amount", func(f *CampaignFields) { f.FeeAmount = big.NewInt(10_000_001) }, "dao_fee"},
		{"negative fee", func(f *CampaignFields) { f.FeeAmount = big.NewInt(-1) }, "dao_fee"},
		{"bad beneficiary", func(f *CampaignFields) { f.Beneficiary = "0x1234" }, "beneficiary"},
		{"bad token", func(f *CampaignFields) { f.ContributeToken = "" }, "contribute_token"},
		{"metadata not json", func(f *CampaignFields) { f.Metadata = []byte(`{"name":`) }, "metadata"},
		{"metadata empty", func(f *CampaignFields) { f.Metadata = nil }, "metadata"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validCampaignFields()
			tt.mutate(&fields)

			desc, err := EncodeCampaign(fields)
			require.Error(t, err)
			assert.Nil(t, desc)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestEncodeCampaign_AcceptsZeroFee(t *testing.T) {
	fields := validCampaignFields()
	fields.FeeAmount = nil

	desc, err := EncodeCampaign(fields)
	require.NoError(t, err)
	assert.Equal(t, 0, desc.FeeAmount.Sign())
}

func TestEncodeTree(t *testing.T) {
	rec, err := EncodeTree(1, []byte(`{
		"name": "Test tree",
		"coordinates": "123.456,789.012"
	}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.ID.Int64())
	assert.Equal(t, `{"name":"Test tree","coordinates":"123.456,789.012"}`, rec.Metadata)

	_, err = EncodeTree(0, []byte(`{}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "tree id", verr.Field)

	_, err = EncodeTree(2, []byte(`not json`))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "metadata", verr.Field)
}
