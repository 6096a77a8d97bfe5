package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/pmorozov/signalmesh/internal/aggregate"
	"github.com/pmorozov/signalmesh/internal/brief"
	"github.com/pmorozov/signalmesh/internal/market"
	"github.com/pmorozov/signalmesh/internal/model"
	"github.com/pmorozov/signalmesh/internal/source"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "signalmesh",
	Short: "Signalmesh - cross-platform topical intelligence aggregation",
	Long: `Signalmesh collects topical evidence from social and web sources and
prediction markets, then synthesizes it into patterns, sentiment, and
trading-adjacent signals.

Sources fail independently: whatever subset responds in time is what the
synthesis runs on, and every report says which sources were used and which
failed.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("signalmesh v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.signalmesh/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.signalmesh")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("SIGNALMESH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig layers the located config file over the defaults. The brief API
// key comes from the environment only, never from the file.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if path := viper.ConfigFileUsed(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if verbose {
		cfg.Output.Verbose = true
	}
	cfg.Brief.APIKey = os.Getenv("OPENAI_API_KEY")

	return cfg, nil
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return logCfg.Build()
}

// buildAggregator wires the fetch client, source registry, market clients,
// and optional brief generator into one aggregator.
func buildAggregator(cfg *model.Config, logger *zap.Logger) (*aggregate.Aggregator, error) {
	client := source.NewClient(cfg.HTTP)
	registry := source.NewRegistryFromConfig(cfg.Sources, client)

	markets := []market.Client{
		market.NewManifold(cfg.Markets.ManifoldBaseURL, client),
		market.NewPolymarket(cfg.Markets.PolymarketBaseURL, client),
	}

	agg := aggregate.New(cfg, registry, markets, logger)

	if cfg.Brief.Provider != "" {
		gen, err := brief.New(cfg.Brief)
		if err != nil {
			return nil, fmt.Errorf("configure brief: %w", err)
		}
		if gen != nil {
			agg.SetBriefGenerator(gen)
		}
	}

	return agg, nil
}

func printJSON(v any, pretty bool) error {
	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
