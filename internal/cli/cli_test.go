package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const (
	knownGoodPass = "M1DESMARAIS/LUC       EABC123 YULFRAAC 0834 326J001A0025 100"
	twoLegPass    = "M2DESMARAIS/LUC       EABC123 YULFRAAC 0834 226F001A0025 14D>6181WW6225BAC 00141234560032A0141234567890 1AC AC 1234567890123    20KYLX58ZDEF456 FRAGVALH 3664 227C012C0002 12E2A0140987654321 1AC AC 1234567890123    2PCNWQ"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseCommand_Text(t *testing.T) {
	out, err := execute(t, "", "parse", twoLegPass)
	require.NoError(t, err)

	assert.Contains(t, out, "DESMARAIS/LUC")
	assert.Contains(t, out, "YUL -> FRA")
	assert.Contains(t, out, "FRA -> GVA")
	assert.Contains(t, out, `"LX58Z"`)
	assert.NotContains(t, out, "Security type")
}

func TestParseCommand_JSONFromStdin(t *testing.T) {
	out, err := execute(t, knownGoodPass+"\r\n\n"+twoLegPass+"\n", "parse", "--format", "json")
	require.NoError(t, err)

	var results []parseResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	require.NotNil(t, results[0].Pass)
	assert.Equal(t, "0834", results[0].Pass.Legs[0].FlightNumber)
	assert.Len(t, results[1].Pass.Legs, 2)
}

func TestParseCommand_YAML(t *testing.T) {
	out, err := execute(t, "", "parse", "-f", "yaml", knownGoodPass)
	require.NoError(t, err)

	var results []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, knownGoodPass, results[0]["input"])
}

func TestParseCommand_Failure(t *testing.T) {
	out, err := execute(t, "", "parse", "--format", "json", knownGoodPass, "X"+knownGoodPass[1:])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 payloads failed")

	var results []parseResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Empty(t, results[0].Error)
	assert.Equal(t, "unsupported_format", results[1].Code)
	assert.Nil(t, results[1].Pass)
}

func TestParseCommand_BadFormat(t *testing.T) {
	_, err := execute(t, "", "parse", "--format", "xml", knownGoodPass)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestFieldsCommand(t *testing.T) {
	out, err := execute(t, "", "fields")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines[0], "ITEM")
	assert.Contains(t, lines[1], "Format Code")
	assert.Contains(t, out, "Passenger Name")
	assert.Regexp(t, `30\s+var\s+Security Data`, out)
}

func TestRunCommand_InvalidConfig(t *testing.T) {
	t.Setenv("BCBP_TRMNL_CONFIG_PATH", "")
	t.Setenv("BCBP_TRMNL_BATCH_SIZE", "0")
	chdirForTest(t, t.TempDir())

	_, err := execute(t, "", "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch_size")
}
