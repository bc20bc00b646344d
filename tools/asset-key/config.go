package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/configuration"
	"github.com/iotaledger/hive.go/logger"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/crosschain-labs/cvmroute/packages/database"
)

const (
	// CfgConfigName contains the name of the parameter that defines the config file name (without extension).
	CfgConfigName = "config"
	// CfgConfigDir contains the name of the parameter that defines the directory of the config file.
	CfgConfigDir = "config-dir"
	// CfgLogLevel contains the name of the parameter that defines the log level.
	CfgLogLevel = "logger.level"

	envPrefix = "ASSETKEY"
)

// ParametersDefinition contains the definition of the parameters of the asset-key tool.
type ParametersDefinition struct {
	// Engine defines the storage engine of the registry database.
	Engine database.Engine
	// Directory defines the folder of the registry database.
	Directory string
	// LogLevel defines the level of the log output.
	LogLevel string
}

// Parameters contains the configuration parameters of the asset-key tool.
var Parameters = &ParametersDefinition{}

// config contains the merged view on flags, environment variables and the config file.
var config = viper.New()

var log *logger.Logger

// loadConfig merges the parsed flags of the command with the environment and the optional config file and
// initializes the logger.
func loadConfig(command *flag.FlagSet) (err error) {
	if err = config.BindPFlags(command); err != nil {
		return errors.Errorf("failed to bind flags: %w", err)
	}

	config.SetEnvPrefix(envPrefix)
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	config.AutomaticEnv()

	config.SetConfigName(config.GetString(CfgConfigName))
	config.AddConfigPath(config.GetString(CfgConfigDir))
	if err = config.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) {
			return errors.Errorf("failed to read config file: %w", err)
		}
	}

	Parameters.Engine = database.Engine(config.GetString(database.CfgDatabaseEngine))
	Parameters.Directory = config.GetString(database.CfgDatabaseDir)
	Parameters.LogLevel = config.GetString(CfgLogLevel)

	return initLogger()
}

func initLogger() (err error) {
	loggerConfig := configuration.New()
	if err = loggerConfig.Set(logger.ConfigurationKeyLevel, Parameters.LogLevel); err != nil {
		return errors.Errorf("failed to set log level: %w", err)
	}
	if err = logger.InitGlobalLogger(loggerConfig); err != nil {
		return errors.Errorf("failed to initialize logger: %w", err)
	}
	log = logger.NewLogger("AssetKey")

	return nil
}

func init() {
	flag.StringP(CfgConfigName, "c", "config", "filename of the config file without the file extension")
	flag.StringP(CfgConfigDir, "d", ".", "path to the directory containing the config file")
	flag.String(CfgLogLevel, "warn", "the log level (debug, info, warn, error)")
}
