package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jatin-tres/SUI-Stake-data/internal/config"
	"github.com/jatin-tres/SUI-Stake-data/internal/rpc"
	"github.com/jatin-tres/SUI-Stake-data/internal/sui"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/jatin-tres/SUI-Stake-data/cmd.Version=1.2.3" .
var Version = "1.0.0"

var (
	cfgDir  string
	cfg     *config.Config
	verbose bool
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "suistake",
	Short: "SUI stake & transfer extractor",
	Long: `suistake — resolve SUI transaction digests against mainnet full nodes
and report stakes/transfers to a named counterparty (e.g. a validator).

Feed it a CSV with a digest column and a search keyword; it appends
amount, note and timestamp columns and writes the result back as CSV.
Fetches go straight to the JSON-RPC API with multi-node failover, so no
block-explorer scraping is involved.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// suiClient builds the failover transport and SUI client from the
// configured endpoint list.
func suiClient() *sui.Client {
	return sui.NewClient(rpc.NewClient(cfg.RPCs))
}

func init() {
	// SUISTAKE_CONFIG_DIR env var overrides --config flag.
	if envDir := os.Getenv("SUISTAKE_CONFIG_DIR"); envDir != "" {
		cfgDir = envDir
	}

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.suistake)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		extractCmd,
		txCmd,
		validatorsCmd,
		rpcCmd,
		configCmd,
	)
}
