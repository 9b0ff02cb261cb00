package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/NethermindEth/ethrpc/eth"
	"github.com/NethermindEth/ethrpc/jsonrpc"
	"github.com/NethermindEth/ethrpc/utils"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Version is overridden with the release tag at build time.
var Version = "0.1.0"

const (
	configF   = "config"
	endpointF = "endpoint"
	timeoutF  = "timeout"
	logLevelF = "log-level"
	colourF   = "colour"
	prettyF   = "pretty"
	blockF    = "block"
	fullF     = "full"
	checkF    = "check"

	defaultConfig = ""
	defaultColour = true
	defaultPretty = false

	configFlagUsage   = "The yaml configuration file."
	endpointFlagUsage = "The Ethereum JSON-RPC endpoint to send requests to."
	timeoutFlagUsage  = "Timeout applied to every request."
	logLevelFlagUsage = "Options: trace, debug, info, warn, error."
	colourFlagUsage   = "Use colour in log output."
	prettyFlagUsage   = "Pretty print the response."
	blockFlagUsage    = "Block to query: a tag (latest, earliest, pending, finalized, safe), a height or a 0x-prefixed hex height."
	fullFlagUsage     = "Return full transaction objects instead of hashes."
	checkFlagUsage    = "Check GitHub for a newer release."
)

// Config is the top-level ethrpc configuration.
type Config struct {
	LogLevel utils.LogLevel `mapstructure:"log-level"`
	Endpoint string         `mapstructure:"endpoint"`
	Timeout  time.Duration  `mapstructure:"timeout"`
	Colour   bool           `mapstructure:"colour"`
	Pretty   bool           `mapstructure:"pretty"`
}

// NewCallerFn builds the dispatcher the query commands run on. Tests
// substitute their own to capture the parsed config and the calls.
type NewCallerFn func(cfg *Config, log utils.StructuredLogger) (eth.Caller, error)

var (
	cfgFile string

	cfg    *Config
	log    utils.StructuredLogger
	caller eth.Caller
	client *eth.Client
)

func NewRPCCaller(cfg *Config, log utils.StructuredLogger) (eth.Caller, error) {
	return jsonrpc.NewClient(cfg.Endpoint).
		WithTimeout(cfg.Timeout).
		WithLogger(log), nil
}

func NewCmd(newCaller NewCallerFn) *cobra.Command {
	ethrpcCmd := &cobra.Command{
		Use:     "ethrpc [command]",
		Short:   "Query Ethereum nodes over JSON-RPC.",
		Version: Version,
	}

	defaultLogLevel := utils.NewLogLevel(zapcore.InfoLevel)
	ethrpcCmd.PersistentFlags().StringVar(&cfgFile, configF, defaultConfig, configFlagUsage)
	ethrpcCmd.PersistentFlags().String(endpointF, eth.DefaultEndpoint, endpointFlagUsage)
	ethrpcCmd.PersistentFlags().Duration(timeoutF, jsonrpc.DefaultTimeout, timeoutFlagUsage)
	ethrpcCmd.PersistentFlags().Var(defaultLogLevel, logLevelF, logLevelFlagUsage)
	ethrpcCmd.PersistentFlags().Bool(colourF, defaultColour, colourFlagUsage)
	ethrpcCmd.PersistentFlags().Bool(prettyF, defaultPretty, prettyFlagUsage)

	ethrpcCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		v := viper.New()
		if cfgFile != "" {
			v.SetConfigType("yaml")
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return err
			}
		}

		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		cfg = new(Config)
		if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		))); err != nil {
			return err
		}

		logger, err := utils.NewZapLogger(&cfg.LogLevel, cfg.Colour)
		if err != nil {
			return err
		}
		log = logger

		if caller, err = newCaller(cfg, log); err != nil {
			return err
		}
		client = eth.NewClient(caller)
		return nil
	}

	ethrpcCmd.AddCommand(
		accountsCmd(), balanceCmd(), blockCmd(), blockNumberCmd(), callCmd(),
		codeCmd(), coinbaseCmd(), gasPriceCmd(), methodsCmd(), nonceCmd(),
		receiptCmd(), storageCmd(), txCmd(), txCountCmd(), versionCmd(),
	)
	return ethrpcCmd
}

// printJSON writes the node's own result bytes, so fields the typed
// views do not model still reach the user.
func printJSON(cmd *cobra.Command, raw json.RawMessage) error {
	if cfg.Pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return err
		}
		raw = buf.Bytes()
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return err
}
