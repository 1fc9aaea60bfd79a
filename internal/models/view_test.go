package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"bcbp_trmnl/internal/bcbp"
)

const twoLegPass = "M2DESMARAIS/LUC       EABC123 YULFRAAC 0834 226F001A0025 14D>6181WW6225BAC 00141234560032A0141234567890 1AC AC 1234567890123    20KYLX58ZDEF456 FRAGVALH 3664 227C012C0002 12E2A0140987654321 1AC AC 1234567890123    2PCNWQ^164GIWVC5EH7JNT684FVNJ91W2QA4DVN5J8K4F0L0GEQ3DF5TGBN8709HKT5D3DW3GBHFCVHMY7J5T6HFR41W2QA4DVN5J8K4F0L0GE"

func TestNewPassView(t *testing.T) {
	pass, err := bcbp.Parse(twoLegPass)
	require.NoError(t, err)

	v := NewPassView(pass)
	assert.Equal(t, "DESMARAIS/LUC", v.PassengerName)
	require.NotNil(t, v.VersionNumber)
	assert.Equal(t, "6", *v.VersionNumber)
	assert.Nil(t, v.FirstNonConsecutiveTags)

	require.Len(t, v.Legs, 2)
	assert.Equal(t, "GVA", v.Legs[1].ToCityAirportCode)
	assert.Nil(t, v.Legs[0].SelecteeIndicator)
	require.NotNil(t, v.Legs[0].FastTrack)
	assert.Equal(t, "Y", *v.Legs[0].FastTrack)

	require.NotNil(t, v.SecurityData)
	require.NotNil(t, v.SecurityData.Type)
	assert.Equal(t, "1", *v.SecurityData.Type)
}

func TestPassViewEncoding(t *testing.T) {
	pass, err := bcbp.Parse(knownGoodPass)
	require.NoError(t, err)
	v := NewPassView(pass)

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"passenger_name":"DESMARAIS/LUC"`)
	assert.NotContains(t, string(data), "version_number")
	assert.NotContains(t, string(data), "security_data")

	out, err := yaml.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(out), "seat: 001A")
	assert.NotContains(t, string(out), "marketing_carrier")
}
