package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iotaledger/hive.go/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosschain-labs/cvmroute/packages/asset"
	"github.com/crosschain-labs/cvmroute/packages/chainaddr"
	"github.com/crosschain-labs/cvmroute/packages/cvm"
	"github.com/crosschain-labs/cvmroute/packages/database"
)

const testContract = "wasm1qqqsyqcyq5rqwzqfpg9scrgwpugpzysnzs23v9ccrydpk8qarc0sutya6q"

const testAssetItems = `[
	{"asset_id": 3, "network_id": 1, "local": {"cw20": {"contract": "` + testContract + `"}}, "bridged": null},
	{"asset_id": 7, "network_id": 1, "local": {"native": {"denom": "uusdc"}}, "bridged": null},
	{"asset_id": 9, "network_id": 2, "local": {"native": {"denom": "uatom"}}},
	{"asset_id": 8, "network_id": 1, "local": {"native": {"denom": "uatom"}}, "bridged": {"location_on_network": {"ibc_ics20": {"trace_path": "transfer/channel-0", "base_denom": "uatom"}}}}
]`

func TestDescribeReference(t *testing.T) {
	assert.Equal(t, [][2]string{
		{"Variant", "native"},
		{"Denom", "uatom"},
		{"Key", "007561746f6d"},
	}, describeReference(asset.Native{Denomination: "uatom"}))

	rows := describeReference(asset.NewCW20(chainaddr.UncheckedAddr("wasm1abc")))
	assert.Equal(t, "cw20", rows[0][1])
	assert.Equal(t, "cw20:wasm1abc", rows[1][1])
	assert.Equal(t, "01"+"7761736d31616263", rows[2][1])
}

func TestTrimKey(t *testing.T) {
	assert.Equal(t, "007561746f6d", trimKey(" 0x007561746f6d\n"))
	assert.Equal(t, "01", trimKey("01"))
}

func TestLoadAssetItems(t *testing.T) {
	items, err := loadAssetItems(strings.NewReader(testAssetItems))
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, cvm.AssetID(3), items[0].AssetID)
	assert.Equal(t, asset.CW20DenomPrefix+testContract, items[0].Denom())
	assert.False(t, items[1].IsBridged())
	assert.False(t, items[2].IsBridged())
	assert.True(t, items[3].IsBridged())

	_, err = loadAssetItems(strings.NewReader(`[{"asset_id": 1, "network_id": 1, "local": {"erc20": {}}}]`))
	assert.Error(t, err)
}

func TestRegisterAndPrintAssets(t *testing.T) {
	log = logger.NewExampleLogger("AssetKey")
	Parameters.Engine = database.EngineMapDB
	Parameters.Directory = t.TempDir()

	registry, shutdown, err := openRegistry()
	require.NoError(t, err)
	defer shutdown()

	items, err := loadAssetItems(strings.NewReader(testAssetItems))
	require.NoError(t, err)

	networkIDs, err := registerAssets(registry, items)
	require.NoError(t, err)
	assert.Equal(t, []cvm.NetworkID{1, 2}, networkIDs)

	var output bytes.Buffer
	require.NoError(t, printAssets(&output, registry, 1))

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[4], "8"))
	assert.True(t, strings.HasPrefix(lines[5], "7"))
	assert.True(t, strings.HasPrefix(lines[6], "3"))
	assert.Contains(t, lines[4], "transfer/channel-0/uatom")

	output.Reset()
	require.NoError(t, printAssets(&output, registry, 5))
	assert.Contains(t, output.String(), "<EMPTY>")

	_, err = registerAssets(registry, []asset.AssetItem{asset.NewAssetItem(10, 1, asset.Native{Denomination: "uusdc"})})
	assert.Error(t, err)
}

func TestNewCommand(t *testing.T) {
	command := newCommand("list")
	assert.Equal(t, "list", command.name)

	networkPtr := command.Uint32("network", 0, "network whose assets are listed")
	require.NoError(t, command.Parse([]string{"--network", "2", "--" + database.CfgDatabaseEngine, string(database.EnginePebble)}))
	assert.Equal(t, uint32(2), *networkPtr)

	engine, err := command.GetString(database.CfgDatabaseEngine)
	require.NoError(t, err)
	assert.Equal(t, string(database.EnginePebble), engine)
}
