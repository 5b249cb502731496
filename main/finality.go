package main

import (
	"context"
	"errors"
	"finality-benchmark/blockchains/mock"
	"finality-benchmark/blockchains/naptos"
	"finality-benchmark/blockchains/nethereum"
	"finality-benchmark/blockchains/nnear"
	"finality-benchmark/blockchains/nsolana"
	"finality-benchmark/blockchains/nsui"
	"finality-benchmark/core"
	"finality-benchmark/core/configs"
	"finality-benchmark/metrics"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EXIT_SUCCESS int = 0
	EXIT_FAILURE int = 1

	ENV_FILE_DEFAULT = ".env"
)

func buildSystemMap() map[string]core.BlockchainInterface {
	return map[string]core.BlockchainInterface{
		configs.ChainEthereum: &nethereum.BlockchainInterface{},
		configs.ChainSolana:   &nsolana.BlockchainInterface{},
		configs.ChainNear:     &nnear.BlockchainInterface{},
		configs.ChainSui:      &nsui.BlockchainInterface{},
		configs.ChainAptos:    &naptos.BlockchainInterface{},
		configs.ChainMock:     &mock.BlockchainInterface{},
	}
}

// prepareLogger installs the global loggers.
// Verbosity 0 logs info messages, 1 adds debug messages and 2 adds traces.
func prepareLogger(verbosity int) error {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.DisableStacktrace = true

	if verbosity == 0 {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to produce a logger: %w", err)
	}

	zap.ReplaceGlobals(logger)
	core.SetLogger(core.NewZapLogger(logger, verbosity >= 2))

	return nil
}

// loadEnvFile reads the secrets file. The default file is optional.
func loadEnvFile(path string, explicit bool) error {
	err := godotenv.Load(path)
	if (err != nil) && !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

type rootFlags struct {
	configPath string
	envFile    string
	finality   string
	count      int
	results    string
	verbose    int
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:   "finality",
		Short: "Transfer finality benchmark",
		Long: `Send a series of small native token transfers on a network, measure
the time each one takes to reach the chosen confirmation level and write the
results to a CSV file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pflags := root.PersistentFlags()
	pflags.StringVarP(&flags.configPath, "config", "c", "",
		"YAML file laid over the network defaults")
	pflags.StringVar(&flags.envFile, "env-file", ENV_FILE_DEFAULT,
		"File of environment variables holding the secrets")
	pflags.StringVar(&flags.finality, "finality", "",
		"Confirmation level: optimistic or final")
	pflags.IntVar(&flags.count, "count", 0,
		"Number of transactions (default: network default)")
	pflags.StringVar(&flags.results, "results", "",
		"Directory of the CSV files")
	pflags.CountVarP(&flags.verbose, "verbose", "v",
		"Increase verbosity (-v debug, -vv trace)")

	for _, name := range configs.Networks() {
		root.AddCommand(newNetworkCmd(name, &flags))
	}

	return root
}

func newNetworkCmd(name string, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Run the %s benchmark", name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			over := &overrides{
				configPath: flags.configPath,
				finality:   flags.finality,
				count:      flags.count,
				countSet:   cmd.Flags().Changed("count"),
				results:    flags.results,
			}

			return runNetwork(cmd.Context(), name, flags, over,
				cmd.Flags().Changed("env-file"))
		},
	}
}

func runNetwork(ctx context.Context, name string, flags *rootFlags, over *overrides, explicitEnv bool) error {
	var observers core.Observers

	err := prepareLogger(flags.verbose)
	if err != nil {
		return err
	}

	defer zap.L().Sync()

	err = loadEnvFile(flags.envFile, explicitEnv)
	if err != nil {
		return fmt.Errorf("failed to load '%s': %w", flags.envFile, err)
	}

	config, err := loadConfig(name, over, os.LookupEnv)
	if err != nil {
		return err
	}

	iface, ok := buildSystemMap()[config.Chain]
	if !ok {
		return fmt.Errorf("unknown chain '%s'", config.Chain)
	}

	logger := core.ExtendLogger(config.Name)

	printBanner(os.Stdout, config)

	client, err := iface.Client(config, logger)
	if err != nil {
		return fmt.Errorf("failed to create %s client: %w", config.Name,
			err)
	}

	observers = append(observers, core.NewLogObserver(logger))

	if config.Influx.Enabled {
		token, _ := os.LookupEnv(config.Influx.TokenEnv)

		sink, err := metrics.NewInfluxObserver(config, token,
			logger.Extend("influx"))
		if err != nil {
			logger.Warnf("metrics export disabled: %s", err)
		} else {
			logger.Infof("metrics run id: %s", sink.RunId())
			observers = append(observers, sink)
			defer sink.Close()
		}
	}

	bench := core.NewBenchmark(config, client, observers, logger)

	_, err = bench.Run(ctx)

	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt,
		syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "finality: %s\n", err.Error())
		os.Exit(EXIT_FAILURE)
	}

	os.Exit(EXIT_SUCCESS)
}
