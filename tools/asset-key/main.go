package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

func main() {
	flag.Usage = func() {
		printUsage(nil)
	}

	// check if parameter counts is large enough
	if len(os.Args) < 2 {
		printUsage(nil)
	}

	// define sub commands
	denomCommand := newCommand("denom")
	keyCommand := newCommand("key")
	ibcCommand := newCommand("ibc")
	registerCommand := newCommand("register")
	listCommand := newCommand("list")

	// switch logic according to provided sub command
	switch os.Args[1] {
	case "denom":
		execDenomCommand(denomCommand)
	case "key":
		execKeyCommand(keyCommand)
	case "ibc":
		execIBCCommand(ibcCommand)
	case "register":
		execRegisterCommand(registerCommand)
	case "list":
		execListCommand(listCommand)
	case "help":
		printUsage(nil)
	default:
		printUsage(nil, "unknown [COMMAND]: "+os.Args[1])
	}
}

// subCommand is the flag set of a sub command together with the name it is invoked with.
type subCommand struct {
	*flag.FlagSet

	name string
}

// newCommand creates the flag set of a sub command that also accepts the global flags.
func newCommand(name string) (command *subCommand) {
	command = &subCommand{
		FlagSet: flag.NewFlagSet(name, flag.ExitOnError),
		name:    name,
	}
	command.AddFlagSet(flag.CommandLine)
	command.Usage = func() {
		printUsage(command)
	}

	return command
}

// parseCommand parses the arguments of the sub command and loads the configuration.
func parseCommand(command *subCommand) {
	if err := command.Parse(os.Args[2:]); err != nil {
		printUsage(command, err.Error())
	}

	if err := loadConfig(command.FlagSet); err != nil {
		printUsage(command, err.Error())
	}
}

func printUsage(command *subCommand, optionalErrorMessage ...string) {
	if len(optionalErrorMessage) >= 1 {
		_, _ = fmt.Fprintf(os.Stderr, "\n")
		_, _ = fmt.Fprintf(os.Stderr, "ERROR:\n  "+optionalErrorMessage[0]+"\n")
	}

	if command == nil {
		fmt.Println()
		fmt.Println("USAGE:")
		fmt.Println("  asset-key [COMMAND]")
		fmt.Println()
		fmt.Println("COMMANDS:")
		fmt.Println("  denom <denom>")
		fmt.Println("        show the variant tag, the denom and the storage key of an asset reference")
		fmt.Println("  key <hex>")
		fmt.Println("        decode a hex encoded storage key into its asset reference")
		fmt.Println("  ibc <trace path/base denom>")
		fmt.Println("        show the voucher denom of an ICS-20 denomination trace")
		fmt.Println("  register")
		fmt.Println("        load a JSON list of asset items into the registry database")
		fmt.Println("  list")
		fmt.Println("        list the assets of a network in storage key order")
		fmt.Println("  help")
		fmt.Println("        display this help screen")

		flag.PrintDefaults()

		if len(optionalErrorMessage) >= 1 {
			os.Exit(1)
		}

		os.Exit(0)
	}

	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  asset-key " + command.name + " [OPTIONS]")
	fmt.Println()
	fmt.Println("OPTIONS:")
	command.PrintDefaults()

	if len(optionalErrorMessage) >= 1 {
		os.Exit(1)
	}

	os.Exit(0)
}
