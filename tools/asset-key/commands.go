package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/crosschain-labs/cvmroute/packages/asset"
	"github.com/crosschain-labs/cvmroute/packages/cvm"
	"github.com/crosschain-labs/cvmroute/packages/transport"
)

func execDenomCommand(command *subCommand) {
	parseCommand(command)
	if command.NArg() != 1 {
		printUsage(command, "expected exactly one denom")
	}

	reference, err := asset.ReferenceFromDenom(command.Arg(0))
	if err != nil {
		printUsage(command, err.Error())
	}

	printProperties(os.Stdout, describeReference(reference))
}

func execKeyCommand(command *subCommand) {
	parseCommand(command)
	if command.NArg() != 1 {
		printUsage(command, "expected exactly one hex encoded key")
	}

	key, err := hex.DecodeString(trimKey(command.Arg(0)))
	if err != nil {
		printUsage(command, fmt.Sprintf("invalid hex key: %s", err))
	}

	reference, err := asset.ReferenceFromKey(key)
	if err != nil {
		printUsage(command, err.Error())
	}

	printProperties(os.Stdout, describeReference(reference))
}

func execIBCCommand(command *subCommand) {
	parseCommand(command)
	if command.NArg() != 1 {
		printUsage(command, "expected exactly one denomination trace")
	}

	prefixedDenom, err := transport.ParsePrefixedDenom(command.Arg(0))
	if err != nil {
		printUsage(command, err.Error())
	}

	printProperties(os.Stdout, [][2]string{
		{"Trace Path", prefixedDenom.TracePath},
		{"Base Denom", prefixedDenom.BaseDenom},
		{"Voucher Denom", prefixedDenom.IBCDenom()},
	})
}

func execRegisterCommand(command *subCommand) {
	filePtr := command.String("file", "-", "JSON file containing the list of asset items (- reads from stdin)")
	parseCommand(command)

	var input io.Reader = os.Stdin
	if *filePtr != "-" {
		file, err := os.Open(*filePtr)
		if err != nil {
			printUsage(command, err.Error())
		}
		defer file.Close()
		input = file
	}

	items, err := loadAssetItems(input)
	if err != nil {
		printUsage(command, err.Error())
	}

	registry, shutdown, err := openRegistry()
	if err != nil {
		printUsage(command, err.Error())
	}
	defer shutdown()

	networkIDs, err := registerAssets(registry, items)
	if err != nil {
		log.Error(err)
		return
	}
	log.Infof("registered %d asset items", len(items))

	for _, networkID := range networkIDs {
		fmt.Println()
		if err = printAssets(os.Stdout, registry, networkID); err != nil {
			log.Error(err)
			return
		}
	}
}

func execListCommand(command *subCommand) {
	networkPtr := command.Uint32("network", 0, "network whose assets are listed")
	parseCommand(command)

	registry, shutdown, err := openRegistry()
	if err != nil {
		printUsage(command, err.Error())
	}
	defer shutdown()

	fmt.Println()
	if err = printAssets(os.Stdout, registry, cvm.NetworkID(*networkPtr)); err != nil {
		log.Error(err)
	}
}
